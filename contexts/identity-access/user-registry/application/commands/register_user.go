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

type RegisterUserCommand struct {
	Sub    string
	Name   string
	Email  string
	Issuer string
	Caller ports.CallerToken
}

type RegisterUserUseCase struct {
	Repo        ports.Repository
	Keys        ports.KeyIssuer
	Secrets     ports.SecretStore
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u RegisterUserUseCase) Execute(ctx context.Context, cmd RegisterUserCommand) (entities.User, error) {
	logger := application.ResolveLogger(u.Logger)

	sub := strings.TrimSpace(cmd.Sub)
	name := strings.TrimSpace(cmd.Name)
	email := strings.TrimSpace(cmd.Email)
	issuer := services.NormalizeIssuer(cmd.Issuer)
	if sub == "" || name == "" {
		return entities.User{}, fmt.Errorf("%w: sub and name are required", domainerrors.ErrInvalidUser)
	}
	if !services.ValidEmail(email) {
		return entities.User{}, fmt.Errorf("%w: malformed email", domainerrors.ErrInvalidUser)
	}
	if !services.ValidIssuer(issuer) {
		return entities.User{}, fmt.Errorf("%w: issuer must be an http(s) URL", domainerrors.ErrInvalidUser)
	}

	pair, err := u.Keys.Issue()
	if err != nil {
		return entities.User{}, fmt.Errorf("%w: %v", domainerrors.ErrKeyIssuance, err)
	}

	id, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.User{}, err
	}
	now := u.now()
	user := entities.User{
		ID:           id,
		Sub:          sub,
		Name:         name,
		Email:        email,
		Issuer:       issuer,
		PublicSSHKey: pair.PublicOpenSSH,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.Repo.Create(ctx, user); err != nil {
		return entities.User{}, err
	}

	if u.Secrets != nil {
		if err := u.Secrets.StoreUserKey(ctx, cmd.Caller, sub, pair.PrivatePEM); err != nil {
			if dropErr := u.Repo.Delete(ctx, id); dropErr != nil {
				logger.Error("user rollback after secret store failure failed",
					"event", "user_register_rollback_failed",
					"module", "identity-access/user-registry",
					"layer", "application",
					"user_id", id,
					"error", dropErr.Error(),
				)
			}
			return entities.User{}, fmt.Errorf("%w: %v", domainerrors.ErrSecretStore, err)
		}
	}

	logger.Info("user registered",
		"event", "user_registered",
		"module", "identity-access/user-registry",
		"layer", "application",
		"user_id", id,
		"issuer", issuer,
	)
	return user, nil
}

func (u RegisterUserUseCase) now() time.Time {
	if u.Clock == nil {
		return time.Now().UTC()
	}
	return u.Clock.Now().UTC()
}
