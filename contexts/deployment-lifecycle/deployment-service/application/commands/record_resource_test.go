package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/adapters/memory"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/domain/entities"
	domainerrors "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/domain/errors"
)

func TestRecordResourceDefaultsToInitial(t *testing.T) {
	store := memory.NewStore(nil)
	seeded := seedDeployment(t, store, "cms")

	useCase := RecordResourceUseCase{Repo: store, Clock: store, IDGenerator: store}
	index := 0
	resource, err := useCase.Execute(context.Background(), RecordResourceCommand{
		DeploymentID:  seeded.ID,
		IMVMIndex:     &index,
		ToscaNodeName: "server",
		ToscaNodeType: "tosca.nodes.indigo.Compute",
		Info:          map[string]any{"ip": "10.0.0.4"},
		RequiredBy:    []string{"res-other"},
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if resource.Status != entities.ResourceStatusInitial {
		t.Fatalf("status = %q", resource.Status)
	}
	if resource.ID == "" || resource.DeploymentID != seeded.ID {
		t.Fatalf("identity fields wrong: %+v", resource)
	}

	stored, err := store.GetResource(context.Background(), seeded.ID, resource.ID)
	if err != nil {
		t.Fatalf("stored resource not found: %v", err)
	}
	if stored.IMVMIndex == nil || *stored.IMVMIndex != 0 {
		t.Fatalf("im vm index lost: %v", stored.IMVMIndex)
	}
	if stored.Info["ip"] != "10.0.0.4" {
		t.Fatalf("info lost: %v", stored.Info)
	}
}

func TestRecordResourceAcceptsExplicitStatus(t *testing.T) {
	store := memory.NewStore(nil)
	seeded := seedDeployment(t, store, "cms")

	useCase := RecordResourceUseCase{Repo: store, Clock: store, IDGenerator: store}
	resource, err := useCase.Execute(context.Background(), RecordResourceCommand{
		DeploymentID:  seeded.ID,
		Status:        "CREATING",
		ToscaNodeName: "server",
		ToscaNodeType: "tosca.nodes.indigo.Compute",
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if resource.Status != entities.ResourceStatusCreating {
		t.Fatalf("status = %q", resource.Status)
	}
}

func TestRecordResourceRejectsUnknownStatus(t *testing.T) {
	store := memory.NewStore(nil)
	seeded := seedDeployment(t, store, "cms")

	useCase := RecordResourceUseCase{Repo: store, Clock: store, IDGenerator: store}
	_, err := useCase.Execute(context.Background(), RecordResourceCommand{
		DeploymentID:  seeded.ID,
		Status:        "EXPLODED",
		ToscaNodeName: "server",
		ToscaNodeType: "tosca.nodes.indigo.Compute",
	})
	if !errors.Is(err, domainerrors.ErrInvalidResource) {
		t.Fatalf("expected ErrInvalidResource, got %v", err)
	}
}

func TestRecordResourceRequiresNodeFields(t *testing.T) {
	store := memory.NewStore(nil)
	seeded := seedDeployment(t, store, "cms")

	useCase := RecordResourceUseCase{Repo: store, Clock: store, IDGenerator: store}
	_, err := useCase.Execute(context.Background(), RecordResourceCommand{
		DeploymentID:  seeded.ID,
		ToscaNodeName: "server",
	})
	if !errors.Is(err, domainerrors.ErrInvalidResource) {
		t.Fatalf("expected ErrInvalidResource, got %v", err)
	}
}

func TestRecordResourceUnknownDeployment(t *testing.T) {
	store := memory.NewStore(nil)
	useCase := RecordResourceUseCase{Repo: store, Clock: store, IDGenerator: store}
	_, err := useCase.Execute(context.Background(), RecordResourceCommand{
		DeploymentID:  "missing",
		ToscaNodeName: "server",
		ToscaNodeType: "tosca.nodes.indigo.Compute",
	})
	if !errors.Is(err, domainerrors.ErrDeploymentNotFound) {
		t.Fatalf("expected ErrDeploymentNotFound, got %v", err)
	}
}
