package httptransport

import (
	"time"

	"github.com/infn-datacloud/orchestrator/internal/shared/pagination"
)

type CreateUserRequest struct {
	Sub    string `json:"sub"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Issuer string `json:"issuer"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

type UserDTO struct {
	ID           string    `json:"id"`
	Sub          string    `json:"sub"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Issuer       string    `json:"issuer"`
	PublicSSHKey string    `json:"public_ssh_key"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ItemIDResponse struct {
	ID string `json:"id"`
}

// ListUsersRequest is assembled by the route layer from the query
// string; pagination and ordering arrive already validated.
type ListUsersRequest struct {
	Sub           string
	Name          string
	Email         string
	Issuer        string
	CreatedBefore *time.Time
	CreatedAfter  *time.Time
	Query         pagination.Query
	OrderClause   string
}

type UserListResponse struct {
	Data  []UserDTO        `json:"data"`
	Page  pagination.Page  `json:"page"`
	Links pagination.Links `json:"links"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
