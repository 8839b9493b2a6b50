package httptransport

import (
	"time"

	"github.com/infn-datacloud/orchestrator/internal/shared/pagination"
)

// CreateDeploymentRequest carries the creation body. Knob fields left
// null take the documented defaults.
type CreateDeploymentRequest struct {
	TemplateID            string         `json:"template_id"`
	UserGroup             string         `json:"user_group"`
	Inputs                map[string]any `json:"inputs,omitempty"`
	PerProviderMaxRetries *int           `json:"per_provider_max_retries,omitempty"`
	MaxProviders          *int           `json:"max_providers,omitempty"`
	TotalTimeout          *int           `json:"total_timeout,omitempty"`
	PerProviderTimeout    *int           `json:"per_provider_timeout,omitempty"`
	KeepLastAttempt       bool           `json:"keep_last_attempt,omitempty"`
	TargetProvider        string         `json:"target_provider,omitempty"`
	TargetRegion          string         `json:"target_region,omitempty"`
}

type UpdateDeploymentRequest struct {
	UserGroup *string `json:"user_group,omitempty"`
}

type DeploymentDTO struct {
	ID                    string         `json:"id"`
	TemplateID            string         `json:"template_id"`
	UserGroup             string         `json:"user_group"`
	Inputs                map[string]any `json:"inputs"`
	PerProviderMaxRetries int            `json:"per_provider_max_retries"`
	MaxProviders          *int           `json:"max_providers,omitempty"`
	TotalTimeout          int            `json:"total_timeout"`
	PerProviderTimeout    int            `json:"per_provider_timeout"`
	KeepLastAttempt       bool           `json:"keep_last_attempt"`
	TargetProvider        string         `json:"target_provider,omitempty"`
	TargetRegion          string         `json:"target_region,omitempty"`
	CreatedAt             time.Time      `json:"created_at"`
	CreatedBy             string         `json:"created_by"`
	UpdatedAt             time.Time      `json:"updated_at"`
	UpdatedBy             string         `json:"updated_by"`
}

// CreateResourceRequest records one TOSCA node under a deployment. An
// empty status defaults to INITIAL.
type CreateResourceRequest struct {
	IMVMIndex     *int           `json:"im_vm_index,omitempty"`
	Status        string         `json:"status,omitempty"`
	ToscaNodeName string         `json:"tosca_node_name"`
	ToscaNodeType string         `json:"tosca_node_type"`
	Info          map[string]any `json:"info,omitempty"`
	RequiredBy    []string       `json:"required_by,omitempty"`
}

type UpdateResourceRequest struct {
	Status    *string        `json:"status,omitempty"`
	IMVMIndex *int           `json:"im_vm_index,omitempty"`
	Info      map[string]any `json:"info,omitempty"`
}

type ResourceDTO struct {
	ID            string         `json:"id"`
	DeploymentID  string         `json:"deployment_id"`
	IMVMIndex     *int           `json:"im_vm_index,omitempty"`
	Status        string         `json:"status"`
	ToscaNodeName string         `json:"tosca_node_name"`
	ToscaNodeType string         `json:"tosca_node_type"`
	Info          map[string]any `json:"info"`
	RequiredBy    []string       `json:"required_by"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type ItemIDResponse struct {
	ID string `json:"id"`
}

// ListDeploymentsRequest is assembled by the route layer from the query
// string; pagination and ordering arrive already validated.
type ListDeploymentsRequest struct {
	UserGroup       string
	TemplateID      string
	TargetProvider  string
	TargetRegion    string
	TotalTimeoutLTE *int
	TotalTimeoutGTE *int
	CreatedBefore   *time.Time
	CreatedAfter    *time.Time
	Query           pagination.Query
	OrderClause     string
}

type ListResourcesRequest struct {
	Status        string
	ToscaNodeName string
	ToscaNodeType string
	Query         pagination.Query
	OrderClause   string
}

type DeploymentListResponse struct {
	Data  []DeploymentDTO  `json:"data"`
	Page  pagination.Page  `json:"page"`
	Links pagination.Links `json:"links"`
}

type ResourceListResponse struct {
	Data  []ResourceDTO    `json:"data"`
	Page  pagination.Page  `json:"page"`
	Links pagination.Links `json:"links"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
