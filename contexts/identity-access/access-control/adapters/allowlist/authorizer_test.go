package allowlist

import (
	"context"
	"testing"

	"github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/domain/entities"
)

func TestEmailAuthorizer(t *testing.T) {
	authorizer := EmailAuthorizer{AdminEmails: []string{"ops@example.org"}}

	read := entities.AccessRequest{
		Principal: entities.Principal{Subject: "sub", Email: "user@example.org"},
		Method:    "GET",
		Path:      "/api/v1/users",
	}
	decision, err := authorizer.Authorize(context.Background(), read)
	if err != nil || !decision.Allowed {
		t.Fatalf("read must be allowed for authenticated principals: %+v err=%v", decision, err)
	}

	write := read
	write.Method = "POST"
	write.HasBody = true
	decision, err = authorizer.Authorize(context.Background(), write)
	if err != nil || decision.Allowed {
		t.Fatalf("write must be denied without admin e-mail: %+v err=%v", decision, err)
	}

	write.Principal.Email = "ops@example.org"
	decision, err = authorizer.Authorize(context.Background(), write)
	if err != nil || !decision.Allowed {
		t.Fatalf("write must be allowed for admin e-mail: %+v err=%v", decision, err)
	}
	if decision.Mode != "email" {
		t.Fatalf("unexpected mode %s", decision.Mode)
	}
}

func TestGroupsAuthorizer(t *testing.T) {
	authorizer := GroupsAuthorizer{AdminGroups: []string{"admins/cloud"}}

	request := entities.AccessRequest{
		Principal: entities.Principal{Subject: "sub", Groups: []string{"users"}},
		Method:    "DELETE",
		Path:      "/api/v1/templates/abc",
	}
	decision, err := authorizer.Authorize(context.Background(), request)
	if err != nil || decision.Allowed {
		t.Fatalf("delete must be denied without entitlement: %+v err=%v", decision, err)
	}

	request.Principal.Groups = []string{"users", "admins/cloud"}
	decision, err = authorizer.Authorize(context.Background(), request)
	if err != nil || !decision.Allowed {
		t.Fatalf("delete must be allowed with entitlement: %+v err=%v", decision, err)
	}
}
