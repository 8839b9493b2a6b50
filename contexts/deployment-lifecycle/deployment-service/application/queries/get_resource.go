package queries

import (
	"context"

	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/domain/entities"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/ports"
)

type GetResourceUseCase struct {
	Repo ports.Repository
}

func (u GetResourceUseCase) Execute(ctx context.Context, deploymentID string, resourceID string) (entities.Resource, error) {
	return u.Repo.GetResource(ctx, deploymentID, resourceID)
}
