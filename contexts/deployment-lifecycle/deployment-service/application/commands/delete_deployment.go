package commands

import (
	"context"
	"log/slog"

	application "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/application"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/ports"
)

type DeleteDeploymentCommand struct {
	DeploymentID string
}

// DeleteDeploymentUseCase drops the deployment and every resource
// recorded under it. Nothing is enqueued: teardown of live
// infrastructure is driven by the provisioning side, not by this
// ledger.
type DeleteDeploymentUseCase struct {
	Repo   ports.Repository
	Logger *slog.Logger
}

func (u DeleteDeploymentUseCase) Execute(ctx context.Context, cmd DeleteDeploymentCommand) error {
	logger := application.ResolveLogger(u.Logger)

	if err := u.Repo.DeleteDeployment(ctx, cmd.DeploymentID); err != nil {
		return err
	}

	logger.Info("deployment deleted",
		"event", "deployment_deleted",
		"module", "deployment-lifecycle/deployment-service",
		"layer", "application",
		"deployment_id", cmd.DeploymentID,
	)
	return nil
}
