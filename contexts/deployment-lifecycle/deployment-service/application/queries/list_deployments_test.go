package queries

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/adapters/memory"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/domain/entities"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/ports"
)

var fixtureBase = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type deploymentSeed struct {
	group    string
	template string
	provider string
	region   string
	timeout  int
	offset   time.Duration
}

func seedDeployments(t *testing.T, store *memory.Store, seeds []deploymentSeed) []entities.Deployment {
	t.Helper()
	out := make([]entities.Deployment, 0, len(seeds))
	for i, seed := range seeds {
		created := fixtureBase.Add(seed.offset)
		deployment := entities.Deployment{
			ID:                    fmt.Sprintf("dep-%d", i+1),
			TemplateID:            seed.template,
			UserGroup:             seed.group,
			Inputs:                map[string]any{},
			PerProviderMaxRetries: 3,
			TotalTimeout:          seed.timeout,
			PerProviderTimeout:    60,
			TargetProvider:        seed.provider,
			TargetRegion:          seed.region,
			CreatedAt:             created,
			CreatedBy:             "seed@iss",
			UpdatedAt:             created,
			UpdatedBy:             "seed@iss",
		}
		envelope := ports.EventEnvelope{
			EventID:       fmt.Sprintf("evt-%d", i+1),
			EventType:     "deployment.creation_requested",
			OccurredAtUTC: created,
		}
		if err := store.CreateDeployment(context.Background(), deployment, envelope, "test.topic"); err != nil {
			t.Fatalf("seed %d failed: %v", i, err)
		}
		out = append(out, deployment)
	}
	return out
}

func defaultSeeds() []deploymentSeed {
	return []deploymentSeed{
		{group: "cms", template: "tpl-a", provider: "openstack", region: "rome", timeout: 600},
		{group: "atlas", template: "tpl-b", provider: "aws", region: "milan", timeout: 1200, offset: time.Hour},
		{group: "cms-analysis", template: "tpl-a", provider: "openstack", region: "bari", timeout: 100, offset: 2 * time.Hour},
		{group: "belle", template: "tpl-c", provider: "kubernetes", region: "rome", timeout: 14400, offset: 3 * time.Hour},
	}
}

func TestListDeploymentsUserGroupContains(t *testing.T) {
	store := memory.NewStore(nil)
	seedDeployments(t, store, defaultSeeds())

	useCase := ListDeploymentsUseCase{Repo: store}
	result, err := useCase.Execute(context.Background(), ListDeploymentsQuery{UserGroup: "cms", Limit: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("expected 2 matches, got %d", result.Total)
	}
	for _, item := range result.Items {
		if item.UserGroup != "cms" && item.UserGroup != "cms-analysis" {
			t.Fatalf("unexpected group %q", item.UserGroup)
		}
	}
}

func TestListDeploymentsTemplateEquality(t *testing.T) {
	store := memory.NewStore(nil)
	seedDeployments(t, store, defaultSeeds())

	useCase := ListDeploymentsUseCase{Repo: store}
	result, err := useCase.Execute(context.Background(), ListDeploymentsQuery{TemplateID: "tpl-a", Limit: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("expected 2 matches, got %d", result.Total)
	}

	result, err = useCase.Execute(context.Background(), ListDeploymentsQuery{TemplateID: "tpl", Limit: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Total != 0 {
		t.Fatalf("prefix must not match on equality filter, got %d", result.Total)
	}
}

func TestListDeploymentsTotalTimeoutWindow(t *testing.T) {
	store := memory.NewStore(nil)
	seedDeployments(t, store, defaultSeeds())

	useCase := ListDeploymentsUseCase{Repo: store}
	lte := 600
	result, err := useCase.Execute(context.Background(), ListDeploymentsQuery{TotalTimeoutLTE: &lte, Limit: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("expected timeouts 600 and 100, got %d rows", result.Total)
	}

	gte := 1200
	result, err = useCase.Execute(context.Background(), ListDeploymentsQuery{TotalTimeoutGTE: &gte, Limit: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("expected timeouts 1200 and 14400, got %d rows", result.Total)
	}

	result, err = useCase.Execute(context.Background(), ListDeploymentsQuery{TotalTimeoutGTE: &gte, TotalTimeoutLTE: &gte, Limit: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Total != 1 || result.Items[0].TotalTimeout != 1200 {
		t.Fatalf("expected exactly the 1200 row, got %+v", result.Items)
	}
}

func TestListDeploymentsCreatedWindow(t *testing.T) {
	store := memory.NewStore(nil)
	seedDeployments(t, store, defaultSeeds())

	after := fixtureBase.Add(30 * time.Minute)
	before := fixtureBase.Add(90 * time.Minute)
	useCase := ListDeploymentsUseCase{Repo: store}
	result, err := useCase.Execute(context.Background(), ListDeploymentsQuery{CreatedAfter: &after, CreatedBefore: &before, Limit: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Total != 1 || result.Items[0].UserGroup != "atlas" {
		t.Fatalf("expected only the one-hour row, got %+v", result.Items)
	}
}

func TestListDeploymentsNewestFirstAndPaging(t *testing.T) {
	store := memory.NewStore(nil)
	seedDeployments(t, store, defaultSeeds())

	useCase := ListDeploymentsUseCase{Repo: store}
	page1, err := useCase.Execute(context.Background(), ListDeploymentsQuery{Limit: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page1.Total != 4 || len(page1.Items) != 2 {
		t.Fatalf("page shape wrong: total=%d len=%d", page1.Total, len(page1.Items))
	}
	if page1.Items[0].UserGroup != "belle" || page1.Items[1].UserGroup != "cms-analysis" {
		t.Fatalf("default order must be newest first, got %q, %q", page1.Items[0].UserGroup, page1.Items[1].UserGroup)
	}

	page2, err := useCase.Execute(context.Background(), ListDeploymentsQuery{Offset: 2, Limit: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(page2.Items) != 2 || page2.Items[0].UserGroup != "atlas" || page2.Items[1].UserGroup != "cms" {
		t.Fatalf("second page wrong: %+v", page2.Items)
	}
}

func TestGetDeploymentAndTemplateInUse(t *testing.T) {
	store := memory.NewStore(nil)
	seeded := seedDeployments(t, store, defaultSeeds())

	useCase := GetDeploymentUseCase{Repo: store}
	deployment, err := useCase.Execute(context.Background(), seeded[0].ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if deployment.UserGroup != "cms" {
		t.Fatalf("wrong row: %+v", deployment)
	}

	inUse, err := useCase.TemplateInUse(context.Background(), "tpl-a")
	if err != nil {
		t.Fatalf("template in use failed: %v", err)
	}
	if !inUse {
		t.Fatal("tpl-a is referenced and must report in use")
	}

	inUse, err = useCase.TemplateInUse(context.Background(), "tpl-unreferenced")
	if err != nil {
		t.Fatalf("template in use failed: %v", err)
	}
	if inUse {
		t.Fatal("unreferenced template must not report in use")
	}
}
