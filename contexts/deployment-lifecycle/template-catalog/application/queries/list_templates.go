package queries

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/application"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/domain/entities"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/ports"
)

type ListTemplatesQuery struct {
	Name                    string
	Version                 string
	TargetProviderType      string
	ToscaDefinitionsVersion string
	CreatedBefore           *time.Time
	CreatedAfter            *time.Time
	UpdatedBefore           *time.Time
	UpdatedAfter            *time.Time
	Offset                  int
	Limit                   int
	OrderClause             string
}

type ListTemplatesResult struct {
	Items []entities.Template
	Total int64
}

type ListTemplatesUseCase struct {
	Repo   ports.Repository
	Logger *slog.Logger
}

func (u ListTemplatesUseCase) Execute(ctx context.Context, query ListTemplatesQuery) (ListTemplatesResult, error) {
	logger := application.ResolveLogger(u.Logger)

	items, total, err := u.Repo.List(ctx, ports.ListFilter{
		Name:                    strings.TrimSpace(query.Name),
		Version:                 strings.TrimSpace(query.Version),
		TargetProviderType:      strings.TrimSpace(query.TargetProviderType),
		ToscaDefinitionsVersion: strings.TrimSpace(query.ToscaDefinitionsVersion),
		CreatedBefore:           query.CreatedBefore,
		CreatedAfter:            query.CreatedAfter,
		UpdatedBefore:           query.UpdatedBefore,
		UpdatedAfter:            query.UpdatedAfter,
		Offset:                  query.Offset,
		Limit:                   query.Limit,
		OrderClause:             query.OrderClause,
	})
	if err != nil {
		logger.Error("list templates failed",
			"event", "list_templates_failed",
			"module", "deployment-lifecycle/template-catalog",
			"layer", "application",
			"error", err.Error(),
		)
		return ListTemplatesResult{}, err
	}
	return ListTemplatesResult{Items: items, Total: total}, nil
}
