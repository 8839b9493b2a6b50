package httpadapter

import (
	"context"
	"fmt"
	"log/slog"

	application "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/application"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/application/commands"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/application/queries"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/domain/entities"
	httptransport "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/transport/http"
	"github.com/infn-datacloud/orchestrator/internal/shared/identity"
	"github.com/infn-datacloud/orchestrator/internal/shared/pagination"
)

type Handler struct {
	Create         commands.CreateDeploymentUseCase
	Update         commands.UpdateDeploymentUseCase
	Delete         commands.DeleteDeploymentUseCase
	Get            queries.GetDeploymentUseCase
	List           queries.ListDeploymentsUseCase
	RecordResource commands.RecordResourceUseCase
	PatchResource  commands.UpdateResourceUseCase
	DropResource   commands.DeleteResourceUseCase
	GetResource    queries.GetResourceUseCase
	ListResources  queries.ListResourcesUseCase
	BaseURL        string
	ListPath       string
	Logger         *slog.Logger
}

// CreateDeploymentHandler godoc
// @Summary Request a new deployment
// @Description Validates the scheduling knobs, resolves the referenced template and the owner's SSH keys, persists the deployment and enqueues the creation message for the provisioning workers.
// @Tags deployments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body httptransport.CreateDeploymentRequest true "Deployment request"
// @Success 201 {object} httptransport.ItemIDResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /deployments [post]
func (h Handler) CreateDeploymentHandler(ctx context.Context, caller identity.Identity, req httptransport.CreateDeploymentRequest) (httptransport.ItemIDResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Info("create deployment request received",
		"event", "http_create_deployment_received",
		"module", "deployment-lifecycle/deployment-service",
		"layer", "transport",
	)

	deployment, err := h.Create.Execute(ctx, commands.CreateDeploymentCommand{
		TemplateID:            req.TemplateID,
		UserGroup:             req.UserGroup,
		Inputs:                req.Inputs,
		PerProviderMaxRetries: req.PerProviderMaxRetries,
		MaxProviders:          req.MaxProviders,
		TotalTimeout:          req.TotalTimeout,
		PerProviderTimeout:    req.PerProviderTimeout,
		KeepLastAttempt:       req.KeepLastAttempt,
		TargetProvider:        req.TargetProvider,
		TargetRegion:          req.TargetRegion,
		Subject:               caller.Subject,
		Issuer:                caller.Issuer,
		Actor:                 caller.Actor(),
	})
	if err != nil {
		return httptransport.ItemIDResponse{}, err
	}
	return httptransport.ItemIDResponse{ID: deployment.ID}, nil
}

// ListDeploymentsHandler godoc
// @Summary Retrieve deployments
// @Description Returns a paginated list of deployments.
// @Tags deployments
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size (max 100)"
// @Param sort query string false "Sort key, '-' prefix for descending"
// @Param user_group query string false "User group contains"
// @Param template_id query string false "Template id equals"
// @Param target_provider query string false "Target provider contains"
// @Param target_region query string false "Target region contains"
// @Param total_timeout_lte query int false "Total timeout at most (minutes)"
// @Param total_timeout_gte query int false "Total timeout at least (minutes)"
// @Param created_before query string false "Created before (RFC 3339)"
// @Param created_after query string false "Created after (RFC 3339)"
// @Success 200 {object} httptransport.DeploymentListResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /deployments [get]
func (h Handler) ListDeploymentsHandler(ctx context.Context, req httptransport.ListDeploymentsRequest) (httptransport.DeploymentListResponse, error) {
	result, err := h.List.Execute(ctx, queries.ListDeploymentsQuery{
		UserGroup:       req.UserGroup,
		TemplateID:      req.TemplateID,
		TargetProvider:  req.TargetProvider,
		TargetRegion:    req.TargetRegion,
		TotalTimeoutLTE: req.TotalTimeoutLTE,
		TotalTimeoutGTE: req.TotalTimeoutGTE,
		CreatedBefore:   req.CreatedBefore,
		CreatedAfter:    req.CreatedAfter,
		Offset:          req.Query.Offset(),
		Limit:           req.Query.Size,
		OrderClause:     req.OrderClause,
	})
	if err != nil {
		return httptransport.DeploymentListResponse{}, err
	}

	return httptransport.DeploymentListResponse{
		Data:  mapDeployments(result.Items),
		Page:  pagination.NewPage(req.Query, result.Total),
		Links: pagination.NewLinks(h.BaseURL, h.ListPath, req.Query, result.Total),
	}, nil
}

// GetDeploymentHandler godoc
// @Summary Retrieve one deployment
// @Tags deployments
// @Produce json
// @Security BearerAuth
// @Param deployment_id path string true "Deployment id"
// @Success 200 {object} httptransport.DeploymentDTO
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /deployments/{deployment_id} [get]
func (h Handler) GetDeploymentHandler(ctx context.Context, deploymentID string) (httptransport.DeploymentDTO, error) {
	deployment, err := h.Get.Execute(ctx, deploymentID)
	if err != nil {
		return httptransport.DeploymentDTO{}, err
	}
	return mapDeployment(deployment), nil
}

// HeadDeploymentHandler reports existence only; the route layer
// translates the error into a bare status code.
func (h Handler) HeadDeploymentHandler(ctx context.Context, deploymentID string) error {
	_, err := h.Get.Execute(ctx, deploymentID)
	return err
}

// UpdateDeploymentHandler godoc
// @Summary Update a deployment
// @Description Changes the owning user group; every other field is frozen at creation.
// @Tags deployments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param deployment_id path string true "Deployment id"
// @Param request body httptransport.UpdateDeploymentRequest true "Fields to update"
// @Success 200 {object} httptransport.DeploymentDTO
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /deployments/{deployment_id} [patch]
func (h Handler) UpdateDeploymentHandler(ctx context.Context, caller identity.Identity, deploymentID string, req httptransport.UpdateDeploymentRequest) (httptransport.DeploymentDTO, error) {
	deployment, err := h.Update.Execute(ctx, commands.UpdateDeploymentCommand{
		DeploymentID: deploymentID,
		UserGroup:    req.UserGroup,
		Actor:        caller.Actor(),
	})
	if err != nil {
		return httptransport.DeploymentDTO{}, err
	}
	return mapDeployment(deployment), nil
}

// DeleteDeploymentHandler godoc
// @Summary Delete a deployment
// @Description Removes the deployment and its recorded resources. Teardown of live infrastructure is driven by the provisioning side.
// @Tags deployments
// @Security BearerAuth
// @Param deployment_id path string true "Deployment id"
// @Success 204
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /deployments/{deployment_id} [delete]
func (h Handler) DeleteDeploymentHandler(ctx context.Context, deploymentID string) error {
	return h.Delete.Execute(ctx, commands.DeleteDeploymentCommand{DeploymentID: deploymentID})
}

// CreateResourceHandler godoc
// @Summary Record a resource
// @Description Records one TOSCA node under a deployment; the provisioning workers call this as infrastructure materializes.
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param deployment_id path string true "Deployment id"
// @Param request body httptransport.CreateResourceRequest true "Resource to record"
// @Success 201 {object} httptransport.ItemIDResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /deployments/{deployment_id}/resources [post]
func (h Handler) CreateResourceHandler(ctx context.Context, deploymentID string, req httptransport.CreateResourceRequest) (httptransport.ItemIDResponse, error) {
	resource, err := h.RecordResource.Execute(ctx, commands.RecordResourceCommand{
		DeploymentID:  deploymentID,
		IMVMIndex:     req.IMVMIndex,
		Status:        req.Status,
		ToscaNodeName: req.ToscaNodeName,
		ToscaNodeType: req.ToscaNodeType,
		Info:          req.Info,
		RequiredBy:    req.RequiredBy,
	})
	if err != nil {
		return httptransport.ItemIDResponse{}, err
	}
	return httptransport.ItemIDResponse{ID: resource.ID}, nil
}

// ListResourcesHandler godoc
// @Summary Retrieve a deployment's resources
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param deployment_id path string true "Deployment id"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size (max 100)"
// @Param sort query string false "Sort key, '-' prefix for descending"
// @Param status query string false "Status equals"
// @Param tosca_node_name query string false "TOSCA node name equals"
// @Param tosca_node_type query string false "TOSCA node type equals"
// @Success 200 {object} httptransport.ResourceListResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /deployments/{deployment_id}/resources [get]
func (h Handler) ListResourcesHandler(ctx context.Context, deploymentID string, req httptransport.ListResourcesRequest) (httptransport.ResourceListResponse, error) {
	result, err := h.ListResources.Execute(ctx, queries.ListResourcesQuery{
		DeploymentID:  deploymentID,
		Status:        req.Status,
		ToscaNodeName: req.ToscaNodeName,
		ToscaNodeType: req.ToscaNodeType,
		Offset:        req.Query.Offset(),
		Limit:         req.Query.Size,
		OrderClause:   req.OrderClause,
	})
	if err != nil {
		return httptransport.ResourceListResponse{}, err
	}

	path := fmt.Sprintf("%s/%s/resources", h.ListPath, deploymentID)
	return httptransport.ResourceListResponse{
		Data:  mapResources(result.Items),
		Page:  pagination.NewPage(req.Query, result.Total),
		Links: pagination.NewLinks(h.BaseURL, path, req.Query, result.Total),
	}, nil
}

// GetResourceHandler godoc
// @Summary Retrieve one resource
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param deployment_id path string true "Deployment id"
// @Param resource_id path string true "Resource id"
// @Success 200 {object} httptransport.ResourceDTO
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /deployments/{deployment_id}/resources/{resource_id} [get]
func (h Handler) GetResourceHandler(ctx context.Context, deploymentID string, resourceID string) (httptransport.ResourceDTO, error) {
	resource, err := h.GetResource.Execute(ctx, deploymentID, resourceID)
	if err != nil {
		return httptransport.ResourceDTO{}, err
	}
	return mapResource(resource), nil
}

func (h Handler) HeadResourceHandler(ctx context.Context, deploymentID string, resourceID string) error {
	_, err := h.GetResource.Execute(ctx, deploymentID, resourceID)
	return err
}

// UpdateResourceHandler godoc
// @Summary Update a resource
// @Description Mutates the provisioning status, the infrastructure manager VM index or the info document of one resource.
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param deployment_id path string true "Deployment id"
// @Param resource_id path string true "Resource id"
// @Param request body httptransport.UpdateResourceRequest true "Fields to update"
// @Success 200 {object} httptransport.ResourceDTO
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /deployments/{deployment_id}/resources/{resource_id} [patch]
func (h Handler) UpdateResourceHandler(ctx context.Context, deploymentID string, resourceID string, req httptransport.UpdateResourceRequest) (httptransport.ResourceDTO, error) {
	resource, err := h.PatchResource.Execute(ctx, commands.UpdateResourceCommand{
		DeploymentID: deploymentID,
		ResourceID:   resourceID,
		Status:       req.Status,
		IMVMIndex:    req.IMVMIndex,
		Info:         req.Info,
	})
	if err != nil {
		return httptransport.ResourceDTO{}, err
	}
	return mapResource(resource), nil
}

// DeleteResourceHandler godoc
// @Summary Delete a resource record
// @Tags resources
// @Security BearerAuth
// @Param deployment_id path string true "Deployment id"
// @Param resource_id path string true "Resource id"
// @Success 204
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /deployments/{deployment_id}/resources/{resource_id} [delete]
func (h Handler) DeleteResourceHandler(ctx context.Context, deploymentID string, resourceID string) error {
	return h.DropResource.Execute(ctx, commands.DeleteResourceCommand{
		DeploymentID: deploymentID,
		ResourceID:   resourceID,
	})
}

func mapDeployments(items []entities.Deployment) []httptransport.DeploymentDTO {
	out := make([]httptransport.DeploymentDTO, 0, len(items))
	for _, item := range items {
		out = append(out, mapDeployment(item))
	}
	return out
}

func mapDeployment(item entities.Deployment) httptransport.DeploymentDTO {
	inputs := item.Inputs
	if inputs == nil {
		inputs = map[string]any{}
	}
	return httptransport.DeploymentDTO{
		ID:                    item.ID,
		TemplateID:            item.TemplateID,
		UserGroup:             item.UserGroup,
		Inputs:                inputs,
		PerProviderMaxRetries: item.PerProviderMaxRetries,
		MaxProviders:          item.MaxProviders,
		TotalTimeout:          item.TotalTimeout,
		PerProviderTimeout:    item.PerProviderTimeout,
		KeepLastAttempt:       item.KeepLastAttempt,
		TargetProvider:        item.TargetProvider,
		TargetRegion:          item.TargetRegion,
		CreatedAt:             item.CreatedAt,
		CreatedBy:             item.CreatedBy,
		UpdatedAt:             item.UpdatedAt,
		UpdatedBy:             item.UpdatedBy,
	}
}

func mapResources(items []entities.Resource) []httptransport.ResourceDTO {
	out := make([]httptransport.ResourceDTO, 0, len(items))
	for _, item := range items {
		out = append(out, mapResource(item))
	}
	return out
}

func mapResource(item entities.Resource) httptransport.ResourceDTO {
	info := item.Info
	if info == nil {
		info = map[string]any{}
	}
	requiredBy := item.RequiredBy
	if requiredBy == nil {
		requiredBy = []string{}
	}
	return httptransport.ResourceDTO{
		ID:            item.ID,
		DeploymentID:  item.DeploymentID,
		IMVMIndex:     item.IMVMIndex,
		Status:        string(item.Status),
		ToscaNodeName: item.ToscaNodeName,
		ToscaNodeType: item.ToscaNodeType,
		Info:          info,
		RequiredBy:    requiredBy,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}
