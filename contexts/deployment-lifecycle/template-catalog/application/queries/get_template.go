package queries

import (
	"context"

	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/domain/entities"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/ports"
)

type GetTemplateUseCase struct {
	Repo ports.Repository
}

func (u GetTemplateUseCase) Execute(ctx context.Context, templateID string) (entities.Template, error) {
	return u.Repo.Get(ctx, templateID)
}
