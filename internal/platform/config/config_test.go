package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADMIN_EMAIL_LIST", "admin@example.org")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ServiceName != "orchestrator" || cfg.HTTPPort != "8000" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.AuthnMode != AuthnLocal || cfg.AuthzMode != AuthzEmail {
		t.Fatalf("unexpected modes: %s %s", cfg.AuthnMode, cfg.AuthzMode)
	}
	if cfg.OPATimeout != 5*time.Second || cfg.IDPTimeout != 5*time.Second {
		t.Fatalf("unexpected timeouts: %v %v", cfg.OPATimeout, cfg.IDPTimeout)
	}
	if cfg.OutboxRelayBatch != 50 {
		t.Fatalf("unexpected relay batch %d", cfg.OutboxRelayBatch)
	}
}

func TestLoadRejectsUnknownModes(t *testing.T) {
	t.Setenv("AUTHN_MODE", "anonymous")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown AUTHN_MODE")
	}

	t.Setenv("AUTHN_MODE", "local")
	t.Setenv("AUTHZ_MODE", "everyone")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown AUTHZ_MODE")
	}
}

func TestLoadOIDCRequiresTrustedIDPs(t *testing.T) {
	t.Setenv("AUTHN_MODE", "oidc")
	t.Setenv("AUTHZ_MODE", "rego")
	t.Setenv("TRUSTED_IDP_LIST", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for oidc mode without trusted providers")
	}
}

func TestTrustedIDPListFromJSON(t *testing.T) {
	t.Setenv("AUTHN_MODE", "oidc")
	t.Setenv("AUTHZ_MODE", "groups")
	t.Setenv("ADMIN_GROUP_LIST", "admins")
	t.Setenv("TRUSTED_IDP_LIST", `[{"issuer":"https://iam.example.org/","client_id":"orch","client_secret":"s3cret"}]`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(cfg.TrustedIDPs) != 1 {
		t.Fatalf("unexpected idp count %d", len(cfg.TrustedIDPs))
	}
	idp, ok := cfg.TrustedIssuer("https://iam.example.org")
	if !ok || idp.ClientID != "orch" {
		t.Fatalf("issuer lookup failed: %+v ok=%v", idp, ok)
	}
}

func TestTrustedIDPListFromCommaSeparated(t *testing.T) {
	t.Setenv("AUTHN_MODE", "oidc")
	t.Setenv("AUTHZ_MODE", "opa")
	t.Setenv("TRUSTED_IDP_LIST", "https://iam.example.org, https://other.example.org/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(cfg.TrustedIDPs) != 2 {
		t.Fatalf("unexpected idp count %d", len(cfg.TrustedIDPs))
	}
	if _, ok := cfg.TrustedIssuer("https://other.example.org"); !ok {
		t.Fatal("trailing slash issuer not matched")
	}
	if _, ok := cfg.TrustedIssuer("https://unknown.example.org"); ok {
		t.Fatal("unknown issuer matched")
	}
}
