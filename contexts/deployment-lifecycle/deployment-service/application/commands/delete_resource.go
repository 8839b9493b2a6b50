package commands

import (
	"context"
	"log/slog"

	application "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/application"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/ports"
)

type DeleteResourceCommand struct {
	DeploymentID string
	ResourceID   string
}

type DeleteResourceUseCase struct {
	Repo   ports.Repository
	Logger *slog.Logger
}

func (u DeleteResourceUseCase) Execute(ctx context.Context, cmd DeleteResourceCommand) error {
	logger := application.ResolveLogger(u.Logger)

	if err := u.Repo.DeleteResource(ctx, cmd.DeploymentID, cmd.ResourceID); err != nil {
		return err
	}

	logger.Info("resource deleted",
		"event", "resource_deleted",
		"module", "deployment-lifecycle/deployment-service",
		"layer", "application",
		"deployment_id", cmd.DeploymentID,
		"resource_id", cmd.ResourceID,
	)
	return nil
}
