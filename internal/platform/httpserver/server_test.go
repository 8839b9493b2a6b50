package httpserver

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	deploymentservice "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service"
	deploymenterrors "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/domain/errors"
	deploymentports "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/ports"
	templatecatalog "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog"
	catalogmemory "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/adapters/memory"
	toscaadapter "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/adapters/tosca"
	templateerrors "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/domain/errors"
	accesscontrol "github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control"
	jwtadapter "github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/adapters/jwt"
	accessentities "github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/domain/entities"
	userregistry "github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry"
	usererrors "github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/domain/errors"
)

const (
	testSecret     = "httpserver-test-signing-secret"
	testAdminEmail = "operator@cloud.infn.it"
	testIssuer     = "https://iam.cloud.infn.it"
)

// catalogTemplates resolves template bodies through the catalog module
// and translates its not-found into the deployment context's sentinel,
// mirroring the runtime wiring.
type catalogTemplates struct {
	catalog templatecatalog.Module
}

func (s catalogTemplates) TemplateContent(ctx context.Context, templateID string) (string, error) {
	template, err := s.catalog.GetTemplate.Execute(ctx, templateID)
	if err != nil {
		if errors.Is(err, templateerrors.ErrTemplateNotFound) {
			return "", deploymenterrors.ErrUnknownTemplate
		}
		return "", err
	}
	return template.Content, nil
}

// registryOwnerKeys resolves owner SSH keys through the user registry.
// An owner without a registration yields no keys, not an error.
type registryOwnerKeys struct {
	registry userregistry.Module
}

func (s registryOwnerKeys) OwnerKeys(ctx context.Context, sub string, issuer string) ([]string, error) {
	user, err := s.registry.GetUser.ByIdentity(ctx, sub, issuer)
	if err != nil {
		if errors.Is(err, usererrors.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return []string{user.PublicSSHKey}, nil
}

// templateUsage is the catalog's delete guard, bound to the deployment
// module after both modules exist.
type templateUsage struct {
	inUse func(ctx context.Context, templateID string) (bool, error)
}

func (u *templateUsage) InUse(ctx context.Context, templateID string) (bool, error) {
	if u.inUse == nil {
		return false, nil
	}
	return u.inUse(ctx, templateID)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, deploymentports.EventEnvelope) error {
	return nil
}

func newTestServer() *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	base := "http://orchestrator.test"

	users := userregistry.NewInMemoryModule(base, "/api/v1/users", logger)

	usage := &templateUsage{}
	catalogStore := catalogmemory.NewStore(logger)
	templates := templatecatalog.NewModule(templatecatalog.Dependencies{
		Repo:        catalogStore,
		Parser:      toscaadapter.Parser{},
		Usage:       usage,
		Clock:       catalogStore,
		IDGenerator: catalogStore,
		BaseURL:     base,
		ListPath:    "/api/v1/templates",
		Logger:      logger,
	})
	templates.Store = catalogStore

	deployments := deploymentservice.NewInMemoryModule(deploymentservice.Dependencies{
		Templates: catalogTemplates{catalog: templates},
		OwnerKeys: registryOwnerKeys{registry: users},
		Publisher: nopPublisher{},
	}, base, "/api/v1/deployments", logger)
	usage.inUse = deployments.GetDeployment.TemplateInUse

	return New(Options{
		Users:       users,
		Templates:   templates,
		Deployments: deployments,
		Access:      accesscontrol.NewLocalModule(testSecret, []string{testAdminEmail}, logger),
		Logger:      logger,
	})
}

func mintToken(t *testing.T, sub string, email string, groups ...string) string {
	t.Helper()
	verifier := jwtadapter.LocalVerifier{Secret: []byte(testSecret), GroupsClaim: "groups"}
	token, err := verifier.Mint(accessentities.Principal{
		Subject: sub,
		Issuer:  testIssuer,
		Name:    "Test Operator",
		Email:   email,
		Groups:  groups,
	}, time.Hour)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func adminToken(t *testing.T) string {
	t.Helper()
	return mintToken(t, "op-1", testAdminEmail)
}

func readerToken(t *testing.T) string {
	t.Helper()
	return mintToken(t, "reader-1", "reader@cloud.infn.it")
}

func authedRequest(method string, target string, token string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func TestRequestWithoutTokenIsRejected(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestRequestWithMalformedAuthorizationHeaderIsRejected(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set("Authorization", "Token abc")
	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestRequestWithUnverifiableTokenIsRejected(t *testing.T) {
	server := newTestServer()
	req := authedRequest(http.MethodGet, "/api/v1/users", "not-a-jwt", nil)
	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestWriteRequiresAdminEmail(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"sub":"sub-w","name":"W","email":"w@example.org","issuer":"https://iam.cloud.infn.it"}`)
	req := authedRequest(http.MethodPost, "/api/v1/users", readerToken(t), bytes.NewReader(body))
	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestReadOnlyNeedsAuthentication(t *testing.T) {
	server := newTestServer()
	req := authedRequest(http.MethodGet, "/api/v1/users", readerToken(t), nil)
	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestRequestIDIsEchoedAndGenerated(t *testing.T) {
	server := newTestServer()

	req := authedRequest(http.MethodGet, "/api/v1/users", readerToken(t), nil)
	req.Header.Set("X-Request-Id", "req-fixed-1")
	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, req)
	if got := rr.Header().Get("X-Request-Id"); got != "req-fixed-1" {
		t.Fatalf("expected echoed request id, got %q", got)
	}

	req2 := authedRequest(http.MethodGet, "/api/v1/users", readerToken(t), nil)
	rr2 := httptest.NewRecorder()
	server.handler.ServeHTTP(rr2, req2)
	if rr2.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected a generated request id")
	}
}

func TestUnknownRouteInsideAPIPrefixStillRequiresToken(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestOptionsCollectionAdvertisesMethods(t *testing.T) {
	server := newTestServer()
	req := authedRequest(http.MethodOptions, "/api/v1/deployments", readerToken(t), nil)
	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d body=%s", rr.Code, rr.Body.String())
	}
	if allow := rr.Header().Get("Allow"); allow == "" {
		t.Fatal("expected an Allow header")
	}
}
