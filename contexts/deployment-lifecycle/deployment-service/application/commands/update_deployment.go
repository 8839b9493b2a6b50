package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/application"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/domain/entities"
	domainerrors "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/domain/errors"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/ports"
)

type UpdateDeploymentCommand struct {
	DeploymentID string
	UserGroup    *string
	Actor        string
}

// UpdateDeploymentUseCase changes the one mutable field of a
// deployment, its owning user group. Scheduling knobs are frozen at
// creation: the provisioning workers already hold them.
type UpdateDeploymentUseCase struct {
	Repo   ports.Repository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (u UpdateDeploymentUseCase) Execute(ctx context.Context, cmd UpdateDeploymentCommand) (entities.Deployment, error) {
	logger := application.ResolveLogger(u.Logger)

	if cmd.UserGroup == nil {
		return entities.Deployment{}, fmt.Errorf("%w: no fields to update", domainerrors.ErrInvalidDeployment)
	}
	userGroup := strings.TrimSpace(*cmd.UserGroup)
	if userGroup == "" {
		return entities.Deployment{}, fmt.Errorf("%w: user_group cannot be empty", domainerrors.ErrInvalidDeployment)
	}

	deployment, err := u.Repo.UpdateDeployment(ctx, cmd.DeploymentID, ports.DeploymentPatch{UserGroup: &userGroup}, cmd.Actor, u.now())
	if err != nil {
		return entities.Deployment{}, err
	}

	logger.Info("deployment updated",
		"event", "deployment_updated",
		"module", "deployment-lifecycle/deployment-service",
		"layer", "application",
		"deployment_id", cmd.DeploymentID,
	)
	return deployment, nil
}

func (u UpdateDeploymentUseCase) now() time.Time {
	if u.Clock == nil {
		return time.Now().UTC()
	}
	return u.Clock.Now().UTC()
}
