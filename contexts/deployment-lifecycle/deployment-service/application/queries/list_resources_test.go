package queries

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/adapters/memory"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/domain/entities"
	domainerrors "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/domain/errors"
)

func seedResources(t *testing.T, store *memory.Store, deploymentID string) {
	t.Helper()
	statuses := []entities.ResourceStatus{
		entities.ResourceStatusCreated,
		entities.ResourceStatusCreating,
		entities.ResourceStatusStarted,
	}
	for i, status := range statuses {
		created := fixtureBase.Add(time.Duration(i) * time.Minute)
		nodeType := "tosca.nodes.indigo.Compute"
		if i == 2 {
			nodeType = "tosca.nodes.network.Port"
		}
		resource := entities.Resource{
			ID:            fmt.Sprintf("res-%d", i+1),
			DeploymentID:  deploymentID,
			Status:        status,
			ToscaNodeName: fmt.Sprintf("node-%d", i+1),
			ToscaNodeType: nodeType,
			CreatedAt:     created,
			UpdatedAt:     created,
		}
		if err := store.CreateResource(context.Background(), resource); err != nil {
			t.Fatalf("seed resource %d failed: %v", i, err)
		}
	}
}

func TestListResourcesFiltersByStatusAndType(t *testing.T) {
	store := memory.NewStore(nil)
	seeded := seedDeployments(t, store, defaultSeeds())
	seedResources(t, store, seeded[0].ID)

	useCase := ListResourcesUseCase{Repo: store}
	result, err := useCase.Execute(context.Background(), ListResourcesQuery{
		DeploymentID: seeded[0].ID,
		Status:       "CREATING",
		Limit:        10,
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Total != 1 || result.Items[0].Status != entities.ResourceStatusCreating {
		t.Fatalf("status filter wrong: %+v", result.Items)
	}

	result, err = useCase.Execute(context.Background(), ListResourcesQuery{
		DeploymentID:  seeded[0].ID,
		ToscaNodeType: "tosca.nodes.indigo.Compute",
		Limit:         10,
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("expected 2 compute nodes, got %d", result.Total)
	}
}

func TestListResourcesScopedToDeployment(t *testing.T) {
	store := memory.NewStore(nil)
	seeded := seedDeployments(t, store, defaultSeeds())
	seedResources(t, store, seeded[0].ID)

	useCase := ListResourcesUseCase{Repo: store}
	result, err := useCase.Execute(context.Background(), ListResourcesQuery{DeploymentID: seeded[1].ID, Limit: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Total != 0 {
		t.Fatalf("other deployment must have no resources, got %d", result.Total)
	}
}

func TestListResourcesUnknownDeployment(t *testing.T) {
	store := memory.NewStore(nil)

	useCase := ListResourcesUseCase{Repo: store}
	_, err := useCase.Execute(context.Background(), ListResourcesQuery{DeploymentID: "missing", Limit: 10})
	if !errors.Is(err, domainerrors.ErrDeploymentNotFound) {
		t.Fatalf("expected ErrDeploymentNotFound, got %v", err)
	}
}

func TestGetResourceScopedLookup(t *testing.T) {
	store := memory.NewStore(nil)
	seeded := seedDeployments(t, store, defaultSeeds())
	seedResources(t, store, seeded[0].ID)

	useCase := GetResourceUseCase{Repo: store}
	resource, err := useCase.Execute(context.Background(), seeded[0].ID, "res-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if resource.ToscaNodeName != "node-1" {
		t.Fatalf("wrong resource: %+v", resource)
	}

	if _, err := useCase.Execute(context.Background(), seeded[1].ID, "res-1"); !errors.Is(err, domainerrors.ErrResourceNotFound) {
		t.Fatalf("resource of another deployment must be invisible, got %v", err)
	}
}
