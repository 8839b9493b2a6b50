package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/application"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/domain/entities"
	domainerrors "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/domain/errors"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/domain/services"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/ports"
)

type RecordResourceCommand struct {
	DeploymentID  string
	IMVMIndex     *int
	Status        string
	ToscaNodeName string
	ToscaNodeType string
	Info          map[string]any
	RequiredBy    []string
}

type RecordResourceUseCase struct {
	Repo        ports.Repository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u RecordResourceUseCase) Execute(ctx context.Context, cmd RecordResourceCommand) (entities.Resource, error) {
	logger := application.ResolveLogger(u.Logger)

	nodeName := strings.TrimSpace(cmd.ToscaNodeName)
	nodeType := strings.TrimSpace(cmd.ToscaNodeType)
	if nodeName == "" || nodeType == "" {
		return entities.Resource{}, fmt.Errorf("%w: tosca_node_name and tosca_node_type are required", domainerrors.ErrInvalidResource)
	}
	status, err := services.ParseResourceStatus(cmd.Status)
	if err != nil {
		return entities.Resource{}, err
	}

	if _, err := u.Repo.GetDeployment(ctx, cmd.DeploymentID); err != nil {
		return entities.Resource{}, err
	}

	id, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Resource{}, err
	}
	now := u.now()
	resource := entities.Resource{
		ID:            id,
		DeploymentID:  cmd.DeploymentID,
		IMVMIndex:     cmd.IMVMIndex,
		Status:        status,
		ToscaNodeName: nodeName,
		ToscaNodeType: nodeType,
		Info:          cmd.Info,
		RequiredBy:    cmd.RequiredBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := u.Repo.CreateResource(ctx, resource); err != nil {
		return entities.Resource{}, err
	}

	logger.Info("resource recorded",
		"event", "resource_recorded",
		"module", "deployment-lifecycle/deployment-service",
		"layer", "application",
		"deployment_id", cmd.DeploymentID,
		"resource_id", id,
		"tosca_node_name", nodeName,
	)
	return resource, nil
}

func (u RecordResourceUseCase) now() time.Time {
	if u.Clock == nil {
		return time.Now().UTC()
	}
	return u.Clock.Now().UTC()
}
