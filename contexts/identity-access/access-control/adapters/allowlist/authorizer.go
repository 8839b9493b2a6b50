package allowlist

import (
	"context"

	"github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/domain/entities"
	"github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/domain/services"
)

// EmailAuthorizer grants write access to a fixed list of operator
// e-mail addresses. Reads only require an authenticated principal.
type EmailAuthorizer struct {
	AdminEmails []string
}

func (a EmailAuthorizer) Mode() string { return "email" }

func (a EmailAuthorizer) Authorize(_ context.Context, request entities.AccessRequest) (entities.Decision, error) {
	if !services.RequiresAdmin(request.Method) {
		return entities.Decision{Allowed: true, Mode: a.Mode(), Reason: "read access"}, nil
	}
	if services.EmailIsAdmin(request.Principal.Email, a.AdminEmails) {
		return entities.Decision{Allowed: true, Mode: a.Mode(), Reason: "admin e-mail"}, nil
	}
	return entities.Decision{Allowed: false, Mode: a.Mode(), Reason: "e-mail not in admin list"}, nil
}

// GroupsAuthorizer grants write access by entitlement membership from
// the token's group claim.
type GroupsAuthorizer struct {
	AdminGroups []string
}

func (a GroupsAuthorizer) Mode() string { return "groups" }

func (a GroupsAuthorizer) Authorize(_ context.Context, request entities.AccessRequest) (entities.Decision, error) {
	if !services.RequiresAdmin(request.Method) {
		return entities.Decision{Allowed: true, Mode: a.Mode(), Reason: "read access"}, nil
	}
	if services.AnyGroupAdmin(request.Principal.Groups, a.AdminGroups) {
		return entities.Decision{Allowed: true, Mode: a.Mode(), Reason: "admin entitlement"}, nil
	}
	return entities.Decision{Allowed: false, Mode: a.Mode(), Reason: "no admin entitlement"}, nil
}
