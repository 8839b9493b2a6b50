package queries

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/application"
	"github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/domain/entities"
	"github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/ports"
)

type ListUsersQuery struct {
	Sub           string
	Name          string
	Email         string
	Issuer        string
	CreatedBefore *time.Time
	CreatedAfter  *time.Time
	Offset        int
	Limit         int
	OrderClause   string
}

type ListUsersResult struct {
	Items []entities.User
	Total int64
}

type ListUsersUseCase struct {
	Repo   ports.Repository
	Logger *slog.Logger
}

func (u ListUsersUseCase) Execute(ctx context.Context, query ListUsersQuery) (ListUsersResult, error) {
	logger := application.ResolveLogger(u.Logger)

	items, total, err := u.Repo.List(ctx, ports.ListFilter{
		Sub:           strings.TrimSpace(query.Sub),
		Name:          strings.TrimSpace(query.Name),
		Email:         strings.TrimSpace(query.Email),
		Issuer:        strings.TrimSpace(query.Issuer),
		CreatedBefore: query.CreatedBefore,
		CreatedAfter:  query.CreatedAfter,
		Offset:        query.Offset,
		Limit:         query.Limit,
		OrderClause:   query.OrderClause,
	})
	if err != nil {
		logger.Error("list users failed",
			"event", "list_users_failed",
			"module", "identity-access/user-registry",
			"layer", "application",
			"error", err.Error(),
		)
		return ListUsersResult{}, err
	}
	return ListUsersResult{Items: items, Total: total}, nil
}
