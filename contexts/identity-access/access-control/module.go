package accesscontrol

import (
	"context"
	"log/slog"
	"time"

	"github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/adapters/allowlist"
	jwtadapter "github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/adapters/jwt"
	"github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/adapters/opahttp"
	regoadapter "github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/adapters/rego"
	"github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/application/queries"
	"github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/ports"
)

// Authentication and authorization mode names accepted by NewModule.
const (
	AuthnLocal = "local"
	AuthnOIDC  = "oidc"

	AuthzEmail  = "email"
	AuthzGroups = "groups"
	AuthzOPA    = "opa"
	AuthzRego   = "rego"
)

// Module is the access-control composition root exposed to runtime wiring.
type Module struct {
	Authenticate queries.AuthenticateUseCase
	Authorize    queries.AuthorizeUseCase
	Exchanger    ports.TokenExchanger

	// WatchPolicy starts policy hot-reload; a no-op unless the rego
	// mode is active.
	WatchPolicy func(ctx context.Context) error
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	AuthnMode        string
	AuthzMode        string
	LocalTokenSecret string
	TrustedIssuers   []ports.TrustedIssuer
	GroupsClaim      string
	IDPTimeout       time.Duration
	AdminEmails      []string
	AdminGroups      []string
	OPAURL           string
	OPATimeout       time.Duration
	PolicyPath       string
	Metrics          ports.DecisionRecorder
	Logger           *slog.Logger
}

// NewModule wires verifier and authorizer implementations for the
// configured modes.
func NewModule(ctx context.Context, deps Dependencies) (Module, error) {
	var verifier ports.TokenVerifier
	var exchanger ports.TokenExchanger
	switch deps.AuthnMode {
	case AuthnOIDC:
		verifier = jwtadapter.NewOIDCVerifier(ctx, deps.TrustedIssuers, deps.GroupsClaim, deps.IDPTimeout, deps.Logger)
		exchanger = jwtadapter.NewExchanger(deps.TrustedIssuers, deps.IDPTimeout, deps.Logger)
	default:
		verifier = jwtadapter.LocalVerifier{Secret: []byte(deps.LocalTokenSecret), GroupsClaim: deps.GroupsClaim}
		exchanger = jwtadapter.PassThroughExchanger{}
	}

	var authorizer ports.Authorizer
	watch := func(context.Context) error { return nil }
	switch deps.AuthzMode {
	case AuthzGroups:
		authorizer = allowlist.GroupsAuthorizer{AdminGroups: deps.AdminGroups}
	case AuthzOPA:
		authorizer = opahttp.New(deps.OPAURL, deps.OPATimeout, deps.Logger)
	case AuthzRego:
		engine, err := regoadapter.NewEngine(ctx, deps.PolicyPath, deps.Logger)
		if err != nil {
			return Module{}, err
		}
		authorizer = engine
		watch = engine.Watch
	default:
		authorizer = allowlist.EmailAuthorizer{AdminEmails: deps.AdminEmails}
	}

	return Module{
		Authenticate: queries.AuthenticateUseCase{Verifier: verifier, Logger: deps.Logger},
		Authorize:    queries.AuthorizeUseCase{Authorizer: authorizer, Metrics: deps.Metrics, Logger: deps.Logger},
		Exchanger:    exchanger,
		WatchPolicy:  watch,
	}, nil
}

// NewLocalModule builds a development/testing module: local token
// verification plus e-mail allow-list authorization.
func NewLocalModule(secret string, adminEmails []string, logger *slog.Logger) Module {
	module, _ := NewModule(context.Background(), Dependencies{
		AuthnMode:        AuthnLocal,
		AuthzMode:        AuthzEmail,
		LocalTokenSecret: secret,
		GroupsClaim:      "groups",
		AdminEmails:      adminEmails,
		Logger:           logger,
	})
	return module
}
