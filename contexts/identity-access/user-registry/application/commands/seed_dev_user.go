package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	application "github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/application"
	"github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/domain/entities"
	domainerrors "github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/domain/errors"
	"github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/ports"
)

// Identity seeded when the service authenticates locally. Tokens minted
// for development carry exactly these claims.
const (
	DevSubject = "fake_sub"
	DevIssuer  = "http://fake.iss.it"
	DevName    = "fake_name"
	DevEmail   = "fake@email.com"
)

// SeedDevUserUseCase makes sure the local development identity has a
// user row. The private key is not sent to the secret store: seeding
// happens at startup with no caller token to log in with.
type SeedDevUserUseCase struct {
	Repo        ports.Repository
	Keys        ports.KeyIssuer
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u SeedDevUserUseCase) Execute(ctx context.Context) (entities.User, error) {
	logger := application.ResolveLogger(u.Logger)

	existing, err := u.Repo.GetBySubIssuer(ctx, DevSubject, DevIssuer)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domainerrors.ErrUserNotFound) {
		return entities.User{}, err
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
		Sub:          DevSubject,
		Name:         DevName,
		Email:        DevEmail,
		Issuer:       DevIssuer,
		PublicSSHKey: pair.PublicOpenSSH,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.Repo.Create(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrUserAlreadyExists) {
			return u.Repo.GetBySubIssuer(ctx, DevSubject, DevIssuer)
		}
		return entities.User{}, err
	}

	logger.Info("development identity seeded",
		"event", "dev_user_seeded",
		"module", "identity-access/user-registry",
		"layer", "application",
		"user_id", id,
	)
	return user, nil
}

func (u SeedDevUserUseCase) now() time.Time {
	if u.Clock == nil {
		return time.Now().UTC()
	}
	return u.Clock.Now().UTC()
}

// RemoveDevUserUseCase drops the development identity; run at startup
// when authentication is federated.
type RemoveDevUserUseCase struct {
	Repo   ports.Repository
	Logger *slog.Logger
}

func (u RemoveDevUserUseCase) Execute(ctx context.Context) error {
	logger := application.ResolveLogger(u.Logger)

	user, err := u.Repo.GetBySubIssuer(ctx, DevSubject, DevIssuer)
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return nil
		}
		return err
	}
	if err := u.Repo.Delete(ctx, user.ID); err != nil {
		return err
	}

	logger.Info("development identity removed",
		"event", "dev_user_removed",
		"module", "identity-access/user-registry",
		"layer", "application",
		"user_id", user.ID,
	)
	return nil
}
