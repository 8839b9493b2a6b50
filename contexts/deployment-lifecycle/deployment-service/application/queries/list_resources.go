package queries

import (
	"context"
	"log/slog"
	"strings"

	application "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/application"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/domain/entities"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/ports"
)

type ListResourcesQuery struct {
	DeploymentID  string
	Status        string
	ToscaNodeName string
	ToscaNodeType string
	Offset        int
	Limit         int
	OrderClause   string
}

type ListResourcesResult struct {
	Items []entities.Resource
	Total int64
}

type ListResourcesUseCase struct {
	Repo   ports.Repository
	Logger *slog.Logger
}

func (u ListResourcesUseCase) Execute(ctx context.Context, query ListResourcesQuery) (ListResourcesResult, error) {
	logger := application.ResolveLogger(u.Logger)

	if _, err := u.Repo.GetDeployment(ctx, query.DeploymentID); err != nil {
		return ListResourcesResult{}, err
	}

	items, total, err := u.Repo.ListResources(ctx, query.DeploymentID, ports.ResourceFilter{
		Status:        strings.TrimSpace(query.Status),
		ToscaNodeName: strings.TrimSpace(query.ToscaNodeName),
		ToscaNodeType: strings.TrimSpace(query.ToscaNodeType),
		Offset:        query.Offset,
		Limit:         query.Limit,
		OrderClause:   query.OrderClause,
	})
	if err != nil {
		logger.Error("list resources failed",
			"event", "list_resources_failed",
			"module", "deployment-lifecycle/deployment-service",
			"layer", "application",
			"deployment_id", query.DeploymentID,
			"error", err.Error(),
		)
		return ListResourcesResult{}, err
	}
	return ListResourcesResult{Items: items, Total: total}, nil
}
