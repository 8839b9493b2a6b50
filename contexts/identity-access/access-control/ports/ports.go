package ports

import (
	"context"

	"github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/domain/entities"
)

// TrustedIssuer is one external identity provider tokens are accepted
// from. Client credentials are used for token exchange only.
type TrustedIssuer struct {
	Issuer       string
	ClientID     string
	ClientSecret string
}

// TokenVerifier turns a raw bearer token into a verified principal.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (entities.Principal, error)
}

// Authorizer answers access questions. Mode identifies the configured
// backend in logs and metrics.
type Authorizer interface {
	Mode() string
	Authorize(ctx context.Context, request entities.AccessRequest) (entities.Decision, error)
}

// TokenExchanger swaps a caller token for one bound to another
// audience, typically for Vault logins.
type TokenExchanger interface {
	Exchange(ctx context.Context, issuer, subjectToken, audience string) (string, error)
}

// DecisionRecorder counts authorization outcomes.
type DecisionRecorder interface {
	CountDecision(mode string, allowed bool)
}
