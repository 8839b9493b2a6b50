package httpadapter

import (
	"context"
	"log/slog"

	application "github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/application"
	"github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/application/commands"
	"github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/application/queries"
	"github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/domain/entities"
	"github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/ports"
	httptransport "github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/transport/http"
	"github.com/infn-datacloud/orchestrator/internal/shared/identity"
	"github.com/infn-datacloud/orchestrator/internal/shared/pagination"
)

type Handler struct {
	Register commands.RegisterUserUseCase
	Update   commands.UpdateUserUseCase
	Delete   commands.DeleteUserUseCase
	Get      queries.GetUserUseCase
	List     queries.ListUsersUseCase
	BaseURL  string
	ListPath string
	Logger   *slog.Logger
}

// CreateUserHandler godoc
// @Summary Register a new user
// @Description Adds a user for the given subject and issuer. The couple must not exist yet; an SSH key pair is issued and the public half stored with the user.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body httptransport.CreateUserRequest true "User to register"
// @Success 201 {object} httptransport.ItemIDResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /users [post]
func (h Handler) CreateUserHandler(ctx context.Context, caller identity.Identity, req httptransport.CreateUserRequest) (httptransport.ItemIDResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Info("create user request received",
		"event", "http_create_user_received",
		"module", "identity-access/user-registry",
		"layer", "transport",
	)

	user, err := h.Register.Execute(ctx, commands.RegisterUserCommand{
		Sub:    req.Sub,
		Name:   req.Name,
		Email:  req.Email,
		Issuer: req.Issuer,
		Caller: callerToken(caller),
	})
	if err != nil {
		return httptransport.ItemIDResponse{}, err
	}
	return httptransport.ItemIDResponse{ID: user.ID}, nil
}

// ListUsersHandler godoc
// @Summary Retrieve users
// @Description Returns a paginated list of users with optional filters.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size (max 100)"
// @Param sort query string false "Sort key, '-' prefix for descending"
// @Param sub query string false "Subject contains"
// @Param name query string false "Name contains"
// @Param email query string false "Email contains"
// @Param issuer query string false "Issuer contains"
// @Param created_before query string false "Created before (RFC 3339)"
// @Param created_after query string false "Created after (RFC 3339)"
// @Success 200 {object} httptransport.UserListResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /users [get]
func (h Handler) ListUsersHandler(ctx context.Context, req httptransport.ListUsersRequest) (httptransport.UserListResponse, error) {
	result, err := h.List.Execute(ctx, queries.ListUsersQuery{
		Sub:           req.Sub,
		Name:          req.Name,
		Email:         req.Email,
		Issuer:        req.Issuer,
		CreatedBefore: req.CreatedBefore,
		CreatedAfter:  req.CreatedAfter,
		Offset:        req.Query.Offset(),
		Limit:         req.Query.Size,
		OrderClause:   req.OrderClause,
	})
	if err != nil {
		return httptransport.UserListResponse{}, err
	}

	return httptransport.UserListResponse{
		Data:  mapUsers(result.Items),
		Page:  pagination.NewPage(req.Query, result.Total),
		Links: pagination.NewLinks(h.BaseURL, h.ListPath, req.Query, result.Total),
	}, nil
}

// GetUserHandler godoc
// @Summary Retrieve one user
// @Description Returns the user with the given id. The literal id "me" resolves to the caller's own registration.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User id or 'me'"
// @Success 200 {object} httptransport.UserDTO
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /users/{user_id} [get]
func (h Handler) GetUserHandler(ctx context.Context, caller identity.Identity, userID string) (httptransport.UserDTO, error) {
	user, err := h.resolve(ctx, caller, userID)
	if err != nil {
		return httptransport.UserDTO{}, err
	}
	return mapUser(user), nil
}

// HeadUserHandler reports existence only; the route layer translates
// the error into a bare status code.
func (h Handler) HeadUserHandler(ctx context.Context, caller identity.Identity, userID string) error {
	_, err := h.resolve(ctx, caller, userID)
	return err
}

// UpdateUserHandler godoc
// @Summary Update a user
// @Description Partially updates name and email of the user with the given id.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User id or 'me'"
// @Param request body httptransport.UpdateUserRequest true "Fields to change"
// @Success 200 {object} httptransport.UserDTO
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /users/{user_id} [patch]
func (h Handler) UpdateUserHandler(ctx context.Context, caller identity.Identity, userID string, req httptransport.UpdateUserRequest) (httptransport.UserDTO, error) {
	target, err := h.resolve(ctx, caller, userID)
	if err != nil {
		return httptransport.UserDTO{}, err
	}
	user, err := h.Update.Execute(ctx, commands.UpdateUserCommand{
		UserID: target.ID,
		Name:   req.Name,
		Email:  req.Email,
	})
	if err != nil {
		return httptransport.UserDTO{}, err
	}
	return mapUser(user), nil
}

// DeleteUserHandler godoc
// @Summary Delete a user
// @Description Removes the user with the given id and the private key held for it.
// @Tags users
// @Security BearerAuth
// @Param user_id path string true "User id or 'me'"
// @Success 204
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /users/{user_id} [delete]
func (h Handler) DeleteUserHandler(ctx context.Context, caller identity.Identity, userID string) error {
	target, err := h.resolve(ctx, caller, userID)
	if err != nil {
		return err
	}
	return h.Delete.Execute(ctx, commands.DeleteUserCommand{
		UserID: target.ID,
		Caller: callerToken(caller),
	})
}

func (h Handler) resolve(ctx context.Context, caller identity.Identity, userID string) (entities.User, error) {
	if userID == "me" {
		return h.Get.ByIdentity(ctx, caller.Subject, caller.Issuer)
	}
	return h.Get.Execute(ctx, userID)
}

func callerToken(caller identity.Identity) ports.CallerToken {
	return ports.CallerToken{
		AccessToken: caller.AccessToken,
		Issuer:      caller.Issuer,
	}
}

func mapUsers(items []entities.User) []httptransport.UserDTO {
	out := make([]httptransport.UserDTO, 0, len(items))
	for _, item := range items {
		out = append(out, mapUser(item))
	}
	return out
}

func mapUser(user entities.User) httptransport.UserDTO {
	return httptransport.UserDTO{
		ID:           user.ID,
		Sub:          user.Sub,
		Name:         user.Name,
		Email:        user.Email,
		Issuer:       user.Issuer,
		PublicSSHKey: user.PublicSSHKey,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}
