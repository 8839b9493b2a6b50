package httpserver

import (
	"errors"
	"net/http"
	"strings"

	templatecatalogerrors "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/domain/errors"
	templatehttp "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/transport/http"
)

func writeTemplateError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, templatehttp.ErrorResponse{Status: status, Code: code, Message: message})
}

func writeTemplateDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, templatecatalogerrors.ErrTemplateNotFound):
		writeTemplateError(w, http.StatusNotFound, "template_not_found", err.Error())
	case errors.Is(err, templatecatalogerrors.ErrTemplateAlreadyExists):
		writeTemplateError(w, http.StatusConflict, "template_already_exists", err.Error())
	case errors.Is(err, templatecatalogerrors.ErrTemplateInUse):
		writeTemplateError(w, http.StatusConflict, "template_in_use", err.Error())
	case errors.Is(err, templatecatalogerrors.ErrInvalidTemplate):
		writeTemplateError(w, http.StatusUnprocessableEntity, "invalid_template", err.Error())
	default:
		writeTemplateError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req templatehttp.CreateTemplateRequest
	if !s.decodeJSON(w, r, &req, writeTemplateError) {
		return
	}
	resp, err := s.templates.Handler.CreateTemplateHandler(r.Context(), callerFrom(r), req)
	if err != nil {
		writeTemplateDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	q, orderClause, ok := s.parseListQuery(w, r, writeTemplateError, "-created_at",
		"created_at", "updated_at", "name", "version", "target_provider_type")
	if !ok {
		return
	}

	values := r.URL.Query()
	createdBefore, err := parseTimeParam(values, "created_before")
	if err != nil {
		writeTemplateError(w, http.StatusBadRequest, "invalid_query", err.Error())
		return
	}
	createdAfter, err := parseTimeParam(values, "created_after")
	if err != nil {
		writeTemplateError(w, http.StatusBadRequest, "invalid_query", err.Error())
		return
	}
	updatedBefore, err := parseTimeParam(values, "updated_before")
	if err != nil {
		writeTemplateError(w, http.StatusBadRequest, "invalid_query", err.Error())
		return
	}
	updatedAfter, err := parseTimeParam(values, "updated_after")
	if err != nil {
		writeTemplateError(w, http.StatusBadRequest, "invalid_query", err.Error())
		return
	}

	resp, err := s.templates.Handler.ListTemplatesHandler(r.Context(), templatehttp.ListTemplatesRequest{
		Name:                    strings.TrimSpace(values.Get("name")),
		Version:                 strings.TrimSpace(values.Get("version")),
		TargetProviderType:      strings.TrimSpace(values.Get("target_provider_type")),
		ToscaDefinitionsVersion: strings.TrimSpace(values.Get("tosca_definitions_version")),
		CreatedBefore:           createdBefore,
		CreatedAfter:            createdAfter,
		UpdatedBefore:           updatedBefore,
		UpdatedAfter:            updatedAfter,
		Query:                   q,
		OrderClause:             orderClause,
	})
	if err != nil {
		writeTemplateDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	resp, err := s.templates.Handler.GetTemplateHandler(r.Context(), r.PathValue("template_id"))
	if err != nil {
		writeTemplateDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHeadTemplate(w http.ResponseWriter, r *http.Request) {
	if err := s.templates.Handler.HeadTemplateHandler(r.Context(), r.PathValue("template_id")); err != nil {
		if errors.Is(err, templatecatalogerrors.ErrTemplateNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReplaceTemplate(w http.ResponseWriter, r *http.Request) {
	var req templatehttp.ReplaceTemplateRequest
	if !s.decodeJSON(w, r, &req, writeTemplateError) {
		return
	}
	resp, err := s.templates.Handler.ReplaceTemplateHandler(r.Context(), callerFrom(r), r.PathValue("template_id"), req)
	if err != nil {
		writeTemplateDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := s.templates.Handler.DeleteTemplateHandler(r.Context(), r.PathValue("template_id")); err != nil {
		writeTemplateDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleOptionsTemplates(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", "GET, POST, OPTIONS")
	w.WriteHeader(http.StatusNoContent)
}
