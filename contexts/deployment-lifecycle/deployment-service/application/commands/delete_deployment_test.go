package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/adapters/memory"
	domainerrors "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/domain/errors"
)

func TestDeleteDeploymentRemovesResources(t *testing.T) {
	store := memory.NewStore(nil)
	seeded := seedDeployment(t, store, "cms")

	record := RecordResourceUseCase{Repo: store, Clock: store, IDGenerator: store}
	resource, err := record.Execute(context.Background(), RecordResourceCommand{
		DeploymentID:  seeded.ID,
		ToscaNodeName: "server",
		ToscaNodeType: "tosca.nodes.indigo.Compute",
	})
	if err != nil {
		t.Fatalf("record resource failed: %v", err)
	}

	useCase := DeleteDeploymentUseCase{Repo: store}
	if err := useCase.Execute(context.Background(), DeleteDeploymentCommand{DeploymentID: seeded.ID}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := store.GetDeployment(context.Background(), seeded.ID); !errors.Is(err, domainerrors.ErrDeploymentNotFound) {
		t.Fatalf("deployment still present: %v", err)
	}
	if _, err := store.GetResource(context.Background(), seeded.ID, resource.ID); !errors.Is(err, domainerrors.ErrDeploymentNotFound) {
		t.Fatalf("resource lookup should miss the deployment, got %v", err)
	}
}

func TestDeleteDeploymentUnknownID(t *testing.T) {
	store := memory.NewStore(nil)
	useCase := DeleteDeploymentUseCase{Repo: store}
	if err := useCase.Execute(context.Background(), DeleteDeploymentCommand{DeploymentID: "missing"}); !errors.Is(err, domainerrors.ErrDeploymentNotFound) {
		t.Fatalf("expected ErrDeploymentNotFound, got %v", err)
	}
}
