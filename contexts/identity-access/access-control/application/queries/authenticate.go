package queries

import (
	"context"
	"log/slog"
	"strings"

	"github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/application"
	"github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/domain/entities"
	domainerrors "github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/domain/errors"
	"github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/ports"
)

// AuthenticateQuery carries the raw bearer token of one request.
type AuthenticateQuery struct {
	BearerToken string
}

// AuthenticateUseCase resolves a request's principal through the
// configured token verifier.
type AuthenticateUseCase struct {
	Verifier ports.TokenVerifier
	Logger   *slog.Logger
}

func (uc AuthenticateUseCase) Execute(ctx context.Context, query AuthenticateQuery) (entities.Principal, error) {
	if strings.TrimSpace(query.BearerToken) == "" {
		return entities.Principal{}, domainerrors.ErrTokenMissing
	}

	principal, err := uc.Verifier.Verify(ctx, query.BearerToken)
	if err != nil {
		application.ResolveLogger(uc.Logger).Warn("token verification failed",
			"event", "authn_verify_failed",
			"module", "identity-access/access-control",
			"layer", "application",
			"error", err.Error(),
		)
		return entities.Principal{}, err
	}
	return principal, nil
}
