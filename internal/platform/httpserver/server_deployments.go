package httpserver

import (
	"errors"
	"net/http"
	"strings"

	deploymenterrors "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/domain/errors"
	deploymenthttp "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/transport/http"
)

func writeDeploymentError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, deploymenthttp.ErrorResponse{Status: status, Code: code, Message: message})
}

func writeDeploymentDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, deploymenterrors.ErrDeploymentNotFound):
		writeDeploymentError(w, http.StatusNotFound, "deployment_not_found", err.Error())
	case errors.Is(err, deploymenterrors.ErrResourceNotFound):
		writeDeploymentError(w, http.StatusNotFound, "resource_not_found", err.Error())
	case errors.Is(err, deploymenterrors.ErrUnknownTemplate):
		writeDeploymentError(w, http.StatusUnprocessableEntity, "unknown_template", err.Error())
	case errors.Is(err, deploymenterrors.ErrInvalidDeployment):
		writeDeploymentError(w, http.StatusUnprocessableEntity, "invalid_deployment", err.Error())
	case errors.Is(err, deploymenterrors.ErrInvalidResource):
		writeDeploymentError(w, http.StatusUnprocessableEntity, "invalid_resource", err.Error())
	default:
		writeDeploymentError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleCreateDeployment(w http.ResponseWriter, r *http.Request) {
	var req deploymenthttp.CreateDeploymentRequest
	if !s.decodeJSON(w, r, &req, writeDeploymentError) {
		return
	}
	resp, err := s.deployments.Handler.CreateDeploymentHandler(r.Context(), callerFrom(r), req)
	if err != nil {
		writeDeploymentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListDeployments(w http.ResponseWriter, r *http.Request) {
	q, orderClause, ok := s.parseListQuery(w, r, writeDeploymentError, "-created_at",
		"created_at", "updated_at", "user_group", "template_id")
	if !ok {
		return
	}

	values := r.URL.Query()
	totalTimeoutLTE, err := parseIntParam(values, "total_timeout_lte")
	if err != nil {
		writeDeploymentError(w, http.StatusBadRequest, "invalid_query", err.Error())
		return
	}
	totalTimeoutGTE, err := parseIntParam(values, "total_timeout_gte")
	if err != nil {
		writeDeploymentError(w, http.StatusBadRequest, "invalid_query", err.Error())
		return
	}
	createdBefore, err := parseTimeParam(values, "created_before")
	if err != nil {
		writeDeploymentError(w, http.StatusBadRequest, "invalid_query", err.Error())
		return
	}
	createdAfter, err := parseTimeParam(values, "created_after")
	if err != nil {
		writeDeploymentError(w, http.StatusBadRequest, "invalid_query", err.Error())
		return
	}

	resp, err := s.deployments.Handler.ListDeploymentsHandler(r.Context(), deploymenthttp.ListDeploymentsRequest{
		UserGroup:       strings.TrimSpace(values.Get("user_group")),
		TemplateID:      strings.TrimSpace(values.Get("template_id")),
		TargetProvider:  strings.TrimSpace(values.Get("target_provider")),
		TargetRegion:    strings.TrimSpace(values.Get("target_region")),
		TotalTimeoutLTE: totalTimeoutLTE,
		TotalTimeoutGTE: totalTimeoutGTE,
		CreatedBefore:   createdBefore,
		CreatedAfter:    createdAfter,
		Query:           q,
		OrderClause:     orderClause,
	})
	if err != nil {
		writeDeploymentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetDeployment(w http.ResponseWriter, r *http.Request) {
	resp, err := s.deployments.Handler.GetDeploymentHandler(r.Context(), r.PathValue("deployment_id"))
	if err != nil {
		writeDeploymentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHeadDeployment(w http.ResponseWriter, r *http.Request) {
	if err := s.deployments.Handler.HeadDeploymentHandler(r.Context(), r.PathValue("deployment_id")); err != nil {
		if errors.Is(err, deploymenterrors.ErrDeploymentNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateDeployment(w http.ResponseWriter, r *http.Request) {
	var req deploymenthttp.UpdateDeploymentRequest
	if !s.decodeJSON(w, r, &req, writeDeploymentError) {
		return
	}
	resp, err := s.deployments.Handler.UpdateDeploymentHandler(r.Context(), callerFrom(r), r.PathValue("deployment_id"), req)
	if err != nil {
		writeDeploymentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteDeployment(w http.ResponseWriter, r *http.Request) {
	if err := s.deployments.Handler.DeleteDeploymentHandler(r.Context(), r.PathValue("deployment_id")); err != nil {
		writeDeploymentDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateResource(w http.ResponseWriter, r *http.Request) {
	var req deploymenthttp.CreateResourceRequest
	if !s.decodeJSON(w, r, &req, writeDeploymentError) {
		return
	}
	resp, err := s.deployments.Handler.CreateResourceHandler(r.Context(), r.PathValue("deployment_id"), req)
	if err != nil {
		writeDeploymentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListResources(w http.ResponseWriter, r *http.Request) {
	q, orderClause, ok := s.parseListQuery(w, r, writeDeploymentError, "-created_at",
		"created_at", "updated_at", "status", "tosca_node_name")
	if !ok {
		return
	}

	values := r.URL.Query()
	resp, err := s.deployments.Handler.ListResourcesHandler(r.Context(), r.PathValue("deployment_id"), deploymenthttp.ListResourcesRequest{
		Status:        strings.TrimSpace(values.Get("status")),
		ToscaNodeName: strings.TrimSpace(values.Get("tosca_node_name")),
		ToscaNodeType: strings.TrimSpace(values.Get("tosca_node_type")),
		Query:         q,
		OrderClause:   orderClause,
	})
	if err != nil {
		writeDeploymentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetResource(w http.ResponseWriter, r *http.Request) {
	resp, err := s.deployments.Handler.GetResourceHandler(r.Context(), r.PathValue("deployment_id"), r.PathValue("resource_id"))
	if err != nil {
		writeDeploymentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHeadResource(w http.ResponseWriter, r *http.Request) {
	err := s.deployments.Handler.HeadResourceHandler(r.Context(), r.PathValue("deployment_id"), r.PathValue("resource_id"))
	if err != nil {
		if errors.Is(err, deploymenterrors.ErrDeploymentNotFound) || errors.Is(err, deploymenterrors.ErrResourceNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateResource(w http.ResponseWriter, r *http.Request) {
	var req deploymenthttp.UpdateResourceRequest
	if !s.decodeJSON(w, r, &req, writeDeploymentError) {
		return
	}
	resp, err := s.deployments.Handler.UpdateResourceHandler(r.Context(), r.PathValue("deployment_id"), r.PathValue("resource_id"), req)
	if err != nil {
		writeDeploymentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteResource(w http.ResponseWriter, r *http.Request) {
	if err := s.deployments.Handler.DeleteResourceHandler(r.Context(), r.PathValue("deployment_id"), r.PathValue("resource_id")); err != nil {
		writeDeploymentDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleOptionsDeployments(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", "GET, POST, OPTIONS")
	w.WriteHeader(http.StatusNoContent)
}
