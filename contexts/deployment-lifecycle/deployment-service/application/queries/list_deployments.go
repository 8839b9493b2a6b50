package queries

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/application"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/domain/entities"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/ports"
)

type ListDeploymentsQuery struct {
	UserGroup       string
	TemplateID      string
	TargetProvider  string
	TargetRegion    string
	TotalTimeoutLTE *int
	TotalTimeoutGTE *int
	CreatedBefore   *time.Time
	CreatedAfter    *time.Time
	Offset          int
	Limit           int
	OrderClause     string
}

type ListDeploymentsResult struct {
	Items []entities.Deployment
	Total int64
}

type ListDeploymentsUseCase struct {
	Repo   ports.Repository
	Logger *slog.Logger
}

func (u ListDeploymentsUseCase) Execute(ctx context.Context, query ListDeploymentsQuery) (ListDeploymentsResult, error) {
	logger := application.ResolveLogger(u.Logger)

	items, total, err := u.Repo.ListDeployments(ctx, ports.DeploymentFilter{
		UserGroup:       strings.TrimSpace(query.UserGroup),
		TemplateID:      strings.TrimSpace(query.TemplateID),
		TargetProvider:  strings.TrimSpace(query.TargetProvider),
		TargetRegion:    strings.TrimSpace(query.TargetRegion),
		TotalTimeoutLTE: query.TotalTimeoutLTE,
		TotalTimeoutGTE: query.TotalTimeoutGTE,
		CreatedBefore:   query.CreatedBefore,
		CreatedAfter:    query.CreatedAfter,
		Offset:          query.Offset,
		Limit:           query.Limit,
		OrderClause:     query.OrderClause,
	})
	if err != nil {
		logger.Error("list deployments failed",
			"event", "list_deployments_failed",
			"module", "deployment-lifecycle/deployment-service",
			"layer", "application",
			"error", err.Error(),
		)
		return ListDeploymentsResult{}, err
	}
	return ListDeploymentsResult{Items: items, Total: total}, nil
}
