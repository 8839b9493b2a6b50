package queries

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/domain/entities"
	domainerrors "github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/domain/errors"
	"github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/domain/services"
	"github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/ports"
)

type GetUserUseCase struct {
	Repo   ports.Repository
	Logger *slog.Logger
}

func (u GetUserUseCase) Execute(ctx context.Context, userID string) (entities.User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return entities.User{}, fmt.Errorf("%w: user id is required", domainerrors.ErrInvalidUser)
	}
	return u.Repo.Get(ctx, userID)
}

// ByIdentity resolves the row registered for a token's (sub, issuer)
// couple; this is how "me" becomes a concrete user.
func (u GetUserUseCase) ByIdentity(ctx context.Context, sub string, issuer string) (entities.User, error) {
	sub = strings.TrimSpace(sub)
	if sub == "" {
		return entities.User{}, fmt.Errorf("%w: subject is required", domainerrors.ErrInvalidUser)
	}
	return u.Repo.GetBySubIssuer(ctx, sub, services.NormalizeIssuer(issuer))
}
