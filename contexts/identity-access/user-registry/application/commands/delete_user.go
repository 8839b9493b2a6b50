package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/application"
	domainerrors "github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/domain/errors"
	"github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/ports"
)

type DeleteUserCommand struct {
	UserID string
	Caller ports.CallerToken
}

type DeleteUserUseCase struct {
	Repo    ports.Repository
	Secrets ports.SecretStore
	Logger  *slog.Logger
}

func (u DeleteUserUseCase) Execute(ctx context.Context, cmd DeleteUserCommand) error {
	logger := application.ResolveLogger(u.Logger)

	id := strings.TrimSpace(cmd.UserID)
	if id == "" {
		return fmt.Errorf("%w: user id is required", domainerrors.ErrInvalidUser)
	}

	user, err := u.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := u.Repo.Delete(ctx, id); err != nil {
		return err
	}

	if u.Secrets != nil {
		if err := u.Secrets.DeleteUserKey(ctx, cmd.Caller, user.Sub); err != nil {
			logger.Error("user secret cleanup failed",
				"event", "user_secret_cleanup_failed",
				"module", "identity-access/user-registry",
				"layer", "application",
				"user_id", id,
				"error", err.Error(),
			)
			return fmt.Errorf("%w: %v", domainerrors.ErrSecretStore, err)
		}
	}

	logger.Info("user deleted",
		"event", "user_deleted",
		"module", "identity-access/user-registry",
		"layer", "application",
		"user_id", id,
	)
	return nil
}
