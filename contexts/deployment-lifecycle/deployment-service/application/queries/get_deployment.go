package queries

import (
	"context"

	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/domain/entities"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/ports"
)

type GetDeploymentUseCase struct {
	Repo ports.Repository
}

func (u GetDeploymentUseCase) Execute(ctx context.Context, deploymentID string) (entities.Deployment, error) {
	return u.Repo.GetDeployment(ctx, deploymentID)
}

// TemplateInUse reports whether any deployment still references the
// template. Exposed for the catalog's delete guard.
func (u GetDeploymentUseCase) TemplateInUse(ctx context.Context, templateID string) (bool, error) {
	count, err := u.Repo.CountDeploymentsByTemplate(ctx, templateID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
