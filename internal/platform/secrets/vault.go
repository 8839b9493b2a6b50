package secrets

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	vault "github.com/hashicorp/vault/api"
)

const privateKeyField = "ssh_private_key"

// VaultOptions configures access to the KV v2 mount holding user key
// material.
type VaultOptions struct {
	Address string
	Role    string
	Mount   string
	Timeout time.Duration
	Logger  *slog.Logger
}

// Vault stores user SSH private keys. Every call logs in with the
// caller's exchanged token; the process never holds a long-lived Vault
// token of its own.
type Vault struct {
	opts VaultOptions
}

func NewVault(opts VaultOptions) *Vault {
	return &Vault{opts: opts}
}

func (v *Vault) StoreUserKey(ctx context.Context, jwt, sub, privateKeyPEM string) error {
	client, err := v.login(ctx, jwt)
	if err != nil {
		return err
	}

	_, err = client.KVv2(v.opts.Mount).Put(ctx, keyPath(sub), map[string]any{
		privateKeyField: privateKeyPEM,
	})
	if err != nil {
		return fmt.Errorf("store private key for %s: %w", sub, err)
	}

	if v.opts.Logger != nil {
		v.opts.Logger.Info("private key stored",
			"event", "vault_key_stored",
			"module", "internal/platform/secrets",
			"layer", "platform",
			"subject", sub,
		)
	}
	return nil
}

func (v *Vault) DeleteUserKey(ctx context.Context, jwt, sub string) error {
	client, err := v.login(ctx, jwt)
	if err != nil {
		return err
	}

	if err := client.KVv2(v.opts.Mount).DeleteMetadata(ctx, keyPath(sub)); err != nil {
		return fmt.Errorf("delete private key for %s: %w", sub, err)
	}
	return nil
}

// Health probes the Vault server without authenticating.
func (v *Vault) Health(ctx context.Context) error {
	client, err := v.newClient()
	if err != nil {
		return err
	}

	resp, err := client.Sys().HealthWithContext(ctx)
	if err != nil {
		return fmt.Errorf("vault health: %w", err)
	}
	if !resp.Initialized || resp.Sealed {
		return fmt.Errorf("vault unavailable: initialized=%v sealed=%v", resp.Initialized, resp.Sealed)
	}
	return nil
}

func (v *Vault) newClient() (*vault.Client, error) {
	cfg := vault.DefaultConfig()
	cfg.Address = v.opts.Address
	if v.opts.Timeout > 0 {
		cfg.Timeout = v.opts.Timeout
	}

	client, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("build vault client: %w", err)
	}
	return client, nil
}

func (v *Vault) login(ctx context.Context, jwt string) (*vault.Client, error) {
	client, err := v.newClient()
	if err != nil {
		return nil, err
	}

	secret, err := client.Logical().WriteWithContext(ctx, "auth/jwt/login", map[string]any{
		"jwt":  jwt,
		"role": v.opts.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("vault jwt login: %w", err)
	}
	if secret == nil || secret.Auth == nil || secret.Auth.ClientToken == "" {
		return nil, fmt.Errorf("vault jwt login returned no client token")
	}

	client.SetToken(secret.Auth.ClientToken)
	return client, nil
}

func keyPath(sub string) string {
	return sub + "/" + privateKeyField
}
