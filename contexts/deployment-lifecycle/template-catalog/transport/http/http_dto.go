package httptransport

import (
	"time"

	"github.com/infn-datacloud/orchestrator/internal/shared/pagination"
)

type CreateTemplateRequest struct {
	Content string `json:"content"`
}

type ReplaceTemplateRequest struct {
	Content string `json:"content"`
}

type TemplateDTO struct {
	ID                      string    `json:"id"`
	Content                 string    `json:"content"`
	ContentHash             string    `json:"content_hash"`
	Name                    string    `json:"name,omitempty"`
	Version                 string    `json:"version,omitempty"`
	TargetProviderType      string    `json:"target_provider_type,omitempty"`
	ToscaDefinitionsVersion string    `json:"tosca_definitions_version"`
	CreatedAt               time.Time `json:"created_at"`
	CreatedBy               string    `json:"created_by"`
	UpdatedAt               time.Time `json:"updated_at"`
	UpdatedBy               string    `json:"updated_by"`
}

// TemplateSummaryDTO omits the document body; list responses stay
// small even when templates run to many kilobytes.
type TemplateSummaryDTO struct {
	ID                      string    `json:"id"`
	ContentHash             string    `json:"content_hash"`
	Name                    string    `json:"name,omitempty"`
	Version                 string    `json:"version,omitempty"`
	TargetProviderType      string    `json:"target_provider_type,omitempty"`
	ToscaDefinitionsVersion string    `json:"tosca_definitions_version"`
	CreatedAt               time.Time `json:"created_at"`
	CreatedBy               string    `json:"created_by"`
	UpdatedAt               time.Time `json:"updated_at"`
	UpdatedBy               string    `json:"updated_by"`
}

type ItemIDResponse struct {
	ID string `json:"id"`
}

// ListTemplatesRequest is assembled by the route layer from the query
// string; pagination and ordering arrive already validated.
type ListTemplatesRequest struct {
	Name                    string
	Version                 string
	TargetProviderType      string
	ToscaDefinitionsVersion string
	CreatedBefore           *time.Time
	CreatedAfter            *time.Time
	UpdatedBefore           *time.Time
	UpdatedAfter            *time.Time
	Query                   pagination.Query
	OrderClause             string
}

type TemplateListResponse struct {
	Data  []TemplateSummaryDTO `json:"data"`
	Page  pagination.Page      `json:"page"`
	Links pagination.Links     `json:"links"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
