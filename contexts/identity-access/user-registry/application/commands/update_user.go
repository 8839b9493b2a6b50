package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/application"
	"github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/domain/entities"
	domainerrors "github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/domain/errors"
	"github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/domain/services"
	"github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/ports"
)

type UpdateUserCommand struct {
	UserID string
	Name   *string
	Email  *string
}

type UpdateUserUseCase struct {
	Repo   ports.Repository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (u UpdateUserUseCase) Execute(ctx context.Context, cmd UpdateUserCommand) (entities.User, error) {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(cmd.UserID) == "" {
		return entities.User{}, fmt.Errorf("%w: user id is required", domainerrors.ErrInvalidUser)
	}
	patch := ports.Patch{}
	if cmd.Name != nil {
		name := strings.TrimSpace(*cmd.Name)
		if name == "" {
			return entities.User{}, fmt.Errorf("%w: name cannot be blank", domainerrors.ErrInvalidUser)
		}
		patch.Name = &name
	}
	if cmd.Email != nil {
		email := strings.TrimSpace(*cmd.Email)
		if !services.ValidEmail(email) {
			return entities.User{}, fmt.Errorf("%w: malformed email", domainerrors.ErrInvalidUser)
		}
		patch.Email = &email
	}
	if patch.Name == nil && patch.Email == nil {
		return entities.User{}, fmt.Errorf("%w: nothing to update", domainerrors.ErrInvalidUser)
	}

	user, err := u.Repo.Update(ctx, strings.TrimSpace(cmd.UserID), patch, u.now())
	if err != nil {
		return entities.User{}, err
	}

	logger.Info("user updated",
		"event", "user_updated",
		"module", "identity-access/user-registry",
		"layer", "application",
		"user_id", user.ID,
	)
	return user, nil
}

func (u UpdateUserUseCase) now() time.Time {
	if u.Clock == nil {
		return time.Now().UTC()
	}
	return u.Clock.Now().UTC()
}
