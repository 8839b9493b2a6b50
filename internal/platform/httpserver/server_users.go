package httpserver

import (
	"errors"
	"net/http"
	"strings"

	userregistryerrors "github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/domain/errors"
	userhttp "github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/transport/http"
)

func writeUserError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, userhttp.ErrorResponse{Status: status, Code: code, Message: message})
}

func writeUserDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, userregistryerrors.ErrUserNotFound):
		writeUserError(w, http.StatusNotFound, "user_not_found", err.Error())
	case errors.Is(err, userregistryerrors.ErrUserAlreadyExists):
		writeUserError(w, http.StatusConflict, "user_already_exists", err.Error())
	case errors.Is(err, userregistryerrors.ErrInvalidUser):
		writeUserError(w, http.StatusUnprocessableEntity, "invalid_user", err.Error())
	default:
		writeUserError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req userhttp.CreateUserRequest
	if !s.decodeJSON(w, r, &req, writeUserError) {
		return
	}
	resp, err := s.users.Handler.CreateUserHandler(r.Context(), callerFrom(r), req)
	if err != nil {
		writeUserDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	q, orderClause, ok := s.parseListQuery(w, r, writeUserError, "-created_at",
		"created_at", "updated_at", "sub", "name", "email", "issuer")
	if !ok {
		return
	}

	values := r.URL.Query()
	createdBefore, err := parseTimeParam(values, "created_before")
	if err != nil {
		writeUserError(w, http.StatusBadRequest, "invalid_query", err.Error())
		return
	}
	createdAfter, err := parseTimeParam(values, "created_after")
	if err != nil {
		writeUserError(w, http.StatusBadRequest, "invalid_query", err.Error())
		return
	}

	resp, err := s.users.Handler.ListUsersHandler(r.Context(), userhttp.ListUsersRequest{
		Sub:           strings.TrimSpace(values.Get("sub")),
		Name:          strings.TrimSpace(values.Get("name")),
		Email:         strings.TrimSpace(values.Get("email")),
		Issuer:        strings.TrimSpace(values.Get("issuer")),
		CreatedBefore: createdBefore,
		CreatedAfter:  createdAfter,
		Query:         q,
		OrderClause:   orderClause,
	})
	if err != nil {
		writeUserDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	resp, err := s.users.Handler.GetUserHandler(r.Context(), callerFrom(r), r.PathValue("user_id"))
	if err != nil {
		writeUserDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHeadUser(w http.ResponseWriter, r *http.Request) {
	if err := s.users.Handler.HeadUserHandler(r.Context(), callerFrom(r), r.PathValue("user_id")); err != nil {
		if errors.Is(err, userregistryerrors.ErrUserNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req userhttp.UpdateUserRequest
	if !s.decodeJSON(w, r, &req, writeUserError) {
		return
	}
	resp, err := s.users.Handler.UpdateUserHandler(r.Context(), callerFrom(r), r.PathValue("user_id"), req)
	if err != nil {
		writeUserDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.users.Handler.DeleteUserHandler(r.Context(), callerFrom(r), r.PathValue("user_id")); err != nil {
		writeUserDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleOptionsUsers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", "GET, POST, OPTIONS")
	w.WriteHeader(http.StatusNoContent)
}
