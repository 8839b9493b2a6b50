package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/adapters/memory"
	domainerrors "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/domain/errors"
)

func TestDeleteResourceRemovesRecord(t *testing.T) {
	store := memory.NewStore(nil)
	seeded := seedDeployment(t, store, "cms")
	resource := seedResource(t, store, seeded.ID)

	useCase := DeleteResourceUseCase{Repo: store}
	if err := useCase.Execute(context.Background(), DeleteResourceCommand{DeploymentID: seeded.ID, ResourceID: resource.ID}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.GetResource(context.Background(), seeded.ID, resource.ID); !errors.Is(err, domainerrors.ErrResourceNotFound) {
		t.Fatalf("expected ErrResourceNotFound, got %v", err)
	}
	if _, err := store.GetDeployment(context.Background(), seeded.ID); err != nil {
		t.Fatalf("deployment must survive resource deletion: %v", err)
	}
}

func TestDeleteResourceUnknownIDs(t *testing.T) {
	store := memory.NewStore(nil)
	seeded := seedDeployment(t, store, "cms")

	useCase := DeleteResourceUseCase{Repo: store}
	if err := useCase.Execute(context.Background(), DeleteResourceCommand{DeploymentID: seeded.ID, ResourceID: "missing"}); !errors.Is(err, domainerrors.ErrResourceNotFound) {
		t.Fatalf("expected ErrResourceNotFound, got %v", err)
	}
	if err := useCase.Execute(context.Background(), DeleteResourceCommand{DeploymentID: "missing", ResourceID: "missing"}); !errors.Is(err, domainerrors.ErrDeploymentNotFound) {
		t.Fatalf("expected ErrDeploymentNotFound, got %v", err)
	}
}
