package httpadapter

import (
	"context"
	"log/slog"

	application "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/application"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/application/commands"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/application/queries"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/domain/entities"
	httptransport "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/transport/http"
	"github.com/infn-datacloud/orchestrator/internal/shared/identity"
	"github.com/infn-datacloud/orchestrator/internal/shared/pagination"
)

type Handler struct {
	Create   commands.CreateTemplateUseCase
	Replace  commands.UpdateTemplateUseCase
	Delete   commands.DeleteTemplateUseCase
	Get      queries.GetTemplateUseCase
	List     queries.ListTemplatesUseCase
	BaseURL  string
	ListPath string
	Logger   *slog.Logger
}

// CreateTemplateHandler godoc
// @Summary Register a new template
// @Description Validates the submitted TOSCA document, derives its metadata and content hash, and stores it. An identical document registered twice is rejected.
// @Tags templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body httptransport.CreateTemplateRequest true "Template document"
// @Success 201 {object} httptransport.ItemIDResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /templates [post]
func (h Handler) CreateTemplateHandler(ctx context.Context, caller identity.Identity, req httptransport.CreateTemplateRequest) (httptransport.ItemIDResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Info("create template request received",
		"event", "http_create_template_received",
		"module", "deployment-lifecycle/template-catalog",
		"layer", "transport",
	)

	template, err := h.Create.Execute(ctx, commands.CreateTemplateCommand{
		Content: req.Content,
		Actor:   caller.Actor(),
	})
	if err != nil {
		return httptransport.ItemIDResponse{}, err
	}
	return httptransport.ItemIDResponse{ID: template.ID}, nil
}

// ListTemplatesHandler godoc
// @Summary Retrieve templates
// @Description Returns a paginated list of stored templates without their document bodies.
// @Tags templates
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size (max 100)"
// @Param sort query string false "Sort key, '-' prefix for descending"
// @Param name query string false "Template name contains"
// @Param version query string false "Template version contains"
// @Param target_provider_type query string false "Target provider type contains"
// @Param tosca_definitions_version query string false "Definitions version contains"
// @Param created_before query string false "Created before (RFC 3339)"
// @Param created_after query string false "Created after (RFC 3339)"
// @Param updated_before query string false "Updated before (RFC 3339)"
// @Param updated_after query string false "Updated after (RFC 3339)"
// @Success 200 {object} httptransport.TemplateListResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /templates [get]
func (h Handler) ListTemplatesHandler(ctx context.Context, req httptransport.ListTemplatesRequest) (httptransport.TemplateListResponse, error) {
	result, err := h.List.Execute(ctx, queries.ListTemplatesQuery{
		Name:                    req.Name,
		Version:                 req.Version,
		TargetProviderType:      req.TargetProviderType,
		ToscaDefinitionsVersion: req.ToscaDefinitionsVersion,
		CreatedBefore:           req.CreatedBefore,
		CreatedAfter:            req.CreatedAfter,
		UpdatedBefore:           req.UpdatedBefore,
		UpdatedAfter:            req.UpdatedAfter,
		Offset:                  req.Query.Offset(),
		Limit:                   req.Query.Size,
		OrderClause:             req.OrderClause,
	})
	if err != nil {
		return httptransport.TemplateListResponse{}, err
	}

	return httptransport.TemplateListResponse{
		Data:  mapSummaries(result.Items),
		Page:  pagination.NewPage(req.Query, result.Total),
		Links: pagination.NewLinks(h.BaseURL, h.ListPath, req.Query, result.Total),
	}, nil
}

// GetTemplateHandler godoc
// @Summary Retrieve one template
// @Description Returns the template with the given id, document body included.
// @Tags templates
// @Produce json
// @Security BearerAuth
// @Param template_id path string true "Template id"
// @Success 200 {object} httptransport.TemplateDTO
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /templates/{template_id} [get]
func (h Handler) GetTemplateHandler(ctx context.Context, templateID string) (httptransport.TemplateDTO, error) {
	template, err := h.Get.Execute(ctx, templateID)
	if err != nil {
		return httptransport.TemplateDTO{}, err
	}
	return mapTemplate(template), nil
}

// HeadTemplateHandler reports existence only; the route layer
// translates the error into a bare status code.
func (h Handler) HeadTemplateHandler(ctx context.Context, templateID string) error {
	_, err := h.Get.Execute(ctx, templateID)
	return err
}

// ReplaceTemplateHandler godoc
// @Summary Replace a template
// @Description Replaces the stored document wholesale; metadata and hash are re-derived from the new content.
// @Tags templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param template_id path string true "Template id"
// @Param request body httptransport.ReplaceTemplateRequest true "New template document"
// @Success 200 {object} httptransport.TemplateDTO
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /templates/{template_id} [patch]
func (h Handler) ReplaceTemplateHandler(ctx context.Context, caller identity.Identity, templateID string, req httptransport.ReplaceTemplateRequest) (httptransport.TemplateDTO, error) {
	template, err := h.Replace.Execute(ctx, commands.UpdateTemplateCommand{
		TemplateID: templateID,
		Content:    req.Content,
		Actor:      caller.Actor(),
	})
	if err != nil {
		return httptransport.TemplateDTO{}, err
	}
	return mapTemplate(template), nil
}

// DeleteTemplateHandler godoc
// @Summary Delete a template
// @Description Removes the template with the given id. A template still referenced by deployments cannot be deleted.
// @Tags templates
// @Security BearerAuth
// @Param template_id path string true "Template id"
// @Success 204
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /templates/{template_id} [delete]
func (h Handler) DeleteTemplateHandler(ctx context.Context, templateID string) error {
	return h.Delete.Execute(ctx, commands.DeleteTemplateCommand{TemplateID: templateID})
}

func mapSummaries(items []entities.Template) []httptransport.TemplateSummaryDTO {
	out := make([]httptransport.TemplateSummaryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, httptransport.TemplateSummaryDTO{
			ID:                      item.ID,
			ContentHash:             item.ContentHash,
			Name:                    item.Name,
			Version:                 item.Version,
			TargetProviderType:      item.TargetProviderType,
			ToscaDefinitionsVersion: item.ToscaDefinitionsVersion,
			CreatedAt:               item.CreatedAt,
			CreatedBy:               item.CreatedBy,
			UpdatedAt:               item.UpdatedAt,
			UpdatedBy:               item.UpdatedBy,
		})
	}
	return out
}

func mapTemplate(template entities.Template) httptransport.TemplateDTO {
	return httptransport.TemplateDTO{
		ID:                      template.ID,
		Content:                 template.Content,
		ContentHash:             template.ContentHash,
		Name:                    template.Name,
		Version:                 template.Version,
		TargetProviderType:      template.TargetProviderType,
		ToscaDefinitionsVersion: template.ToscaDefinitionsVersion,
		CreatedAt:               template.CreatedAt,
		CreatedBy:               template.CreatedBy,
		UpdatedAt:               template.UpdatedAt,
		UpdatedBy:               template.UpdatedBy,
	}
}
