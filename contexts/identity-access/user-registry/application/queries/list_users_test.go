package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/adapters/memory"
	"github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/domain/entities"
	domainerrors "github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/domain/errors"
)

func seedUsers(t *testing.T, store *memory.Store) {
	t.Helper()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	users := []entities.User{
		{ID: "u1", Sub: "sub-a", Name: "Ada Lovelace", Email: "ada@cloud.infn.it", Issuer: "https://iam.cloud.infn.it", CreatedAt: base},
		{ID: "u2", Sub: "sub-b", Name: "Grace Hopper", Email: "grace@cloud.infn.it", Issuer: "https://iam.cloud.infn.it", CreatedAt: base.Add(time.Hour)},
		{ID: "u3", Sub: "sub-c", Name: "Alan Turing", Email: "alan@other.org", Issuer: "http://fake.iss.it", CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, user := range users {
		if err := store.Create(context.Background(), user); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
}

func TestListUsersFiltersAndSorts(t *testing.T) {
	store := memory.NewStore(nil)
	seedUsers(t, store)
	useCase := ListUsersUseCase{Repo: store}

	result, err := useCase.Execute(context.Background(), ListUsersQuery{
		Email:       "cloud.infn.it",
		Limit:       10,
		OrderClause: "name ASC",
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Total != 2 || len(result.Items) != 2 {
		t.Fatalf("expected 2 matches, got total=%d len=%d", result.Total, len(result.Items))
	}
	if result.Items[0].Name != "Ada Lovelace" || result.Items[1].Name != "Grace Hopper" {
		t.Fatalf("unexpected order: %s, %s", result.Items[0].Name, result.Items[1].Name)
	}
}

func TestListUsersPagination(t *testing.T) {
	store := memory.NewStore(nil)
	seedUsers(t, store)
	useCase := ListUsersUseCase{Repo: store}

	result, err := useCase.Execute(context.Background(), ListUsersQuery{
		Offset:      1,
		Limit:       1,
		OrderClause: "created_at ASC",
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Total != 3 {
		t.Fatalf("total must count all matches, got %d", result.Total)
	}
	if len(result.Items) != 1 || result.Items[0].ID != "u2" {
		t.Fatalf("expected the middle row, got %+v", result.Items)
	}
}

func TestListUsersCreatedWindow(t *testing.T) {
	store := memory.NewStore(nil)
	seedUsers(t, store)
	useCase := ListUsersUseCase{Repo: store}

	after := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	before := time.Date(2026, 3, 1, 11, 30, 0, 0, time.UTC)
	result, err := useCase.Execute(context.Background(), ListUsersQuery{
		CreatedAfter:  &after,
		CreatedBefore: &before,
		Limit:         10,
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Total != 1 || result.Items[0].ID != "u2" {
		t.Fatalf("expected only u2 in the window, got %+v", result.Items)
	}
}

func TestGetUserByIdentity(t *testing.T) {
	store := memory.NewStore(nil)
	seedUsers(t, store)
	useCase := GetUserUseCase{Repo: store}

	user, err := useCase.ByIdentity(context.Background(), "sub-c", "http://fake.iss.it/")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if user.ID != "u3" {
		t.Fatalf("expected u3, got %s", user.ID)
	}

	_, err = useCase.ByIdentity(context.Background(), "sub-z", "http://fake.iss.it")
	if !errors.Is(err, domainerrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
