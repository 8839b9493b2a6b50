package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	application "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/application"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/domain/entities"
	domainerrors "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/domain/errors"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/domain/services"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/ports"
)

type UpdateResourceCommand struct {
	DeploymentID string
	ResourceID   string
	Status       *string
	IMVMIndex    *int
	Info         map[string]any
}

type UpdateResourceUseCase struct {
	Repo   ports.Repository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (u UpdateResourceUseCase) Execute(ctx context.Context, cmd UpdateResourceCommand) (entities.Resource, error) {
	logger := application.ResolveLogger(u.Logger)

	if cmd.Status == nil && cmd.IMVMIndex == nil && cmd.Info == nil {
		return entities.Resource{}, fmt.Errorf("%w: no fields to update", domainerrors.ErrInvalidResource)
	}

	patch := ports.ResourcePatch{IMVMIndex: cmd.IMVMIndex, Info: cmd.Info}
	if cmd.Status != nil {
		if *cmd.Status == "" {
			return entities.Resource{}, fmt.Errorf("%w: status cannot be empty", domainerrors.ErrInvalidResource)
		}
		status, err := services.ParseResourceStatus(*cmd.Status)
		if err != nil {
			return entities.Resource{}, err
		}
		patch.Status = &status
	}

	resource, err := u.Repo.UpdateResource(ctx, cmd.DeploymentID, cmd.ResourceID, patch, u.now())
	if err != nil {
		return entities.Resource{}, err
	}

	logger.Info("resource updated",
		"event", "resource_updated",
		"module", "deployment-lifecycle/deployment-service",
		"layer", "application",
		"deployment_id", cmd.DeploymentID,
		"resource_id", cmd.ResourceID,
	)
	return resource, nil
}

func (u UpdateResourceUseCase) now() time.Time {
	if u.Clock == nil {
		return time.Now().UTC()
	}
	return u.Clock.Now().UTC()
}
