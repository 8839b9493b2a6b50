package deploymentservice

import (
	"log/slog"

	httpadapter "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/adapters/http"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/adapters/memory"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/application/commands"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/application/queries"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/application/workers"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/ports"
)

// Module is the composition surface of the deployment service. Runtime
// wiring consumes Handler and Relay; GetDeployment is exposed for
// composition-root lookups (the catalog's delete guard counts
// references through it). Store is set only by the in-memory
// constructor.
type Module struct {
	Handler       httpadapter.Handler
	Relay         workers.OutboxRelay
	GetDeployment queries.GetDeploymentUseCase
	Store         *memory.Store
}

type Dependencies struct {
	Repo             ports.Repository
	Outbox           ports.OutboxRepository
	Templates        ports.TemplateSource
	OwnerKeys        ports.OwnerKeySource
	Publisher        ports.EventPublisher
	Metrics          ports.RelayMetrics
	Clock            ports.Clock
	IDGenerator      ports.IDGenerator
	CreationTopic    string
	RelayBatchSize   int
	RelayMaxAttempts int
	BaseURL          string
	ListPath         string
	Logger           *slog.Logger
}

func NewModule(deps Dependencies) Module {
	create := commands.CreateDeploymentUseCase{
		Repo:          deps.Repo,
		Templates:     deps.Templates,
		OwnerKeys:     deps.OwnerKeys,
		Clock:         deps.Clock,
		IDGenerator:   deps.IDGenerator,
		CreationTopic: deps.CreationTopic,
		Logger:        deps.Logger,
	}
	update := commands.UpdateDeploymentUseCase{
		Repo:   deps.Repo,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	remove := commands.DeleteDeploymentUseCase{
		Repo:   deps.Repo,
		Logger: deps.Logger,
	}
	recordResource := commands.RecordResourceUseCase{
		Repo:        deps.Repo,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	patchResource := commands.UpdateResourceUseCase{
		Repo:   deps.Repo,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	dropResource := commands.DeleteResourceUseCase{
		Repo:   deps.Repo,
		Logger: deps.Logger,
	}
	getDeployment := queries.GetDeploymentUseCase{Repo: deps.Repo}
	listDeployments := queries.ListDeploymentsUseCase{
		Repo:   deps.Repo,
		Logger: deps.Logger,
	}
	getResource := queries.GetResourceUseCase{Repo: deps.Repo}
	listResources := queries.ListResourcesUseCase{
		Repo:   deps.Repo,
		Logger: deps.Logger,
	}

	handler := httpadapter.Handler{
		Create:         create,
		Update:         update,
		Delete:         remove,
		Get:            getDeployment,
		List:           listDeployments,
		RecordResource: recordResource,
		PatchResource:  patchResource,
		DropResource:   dropResource,
		GetResource:    getResource,
		ListResources:  listResources,
		BaseURL:        deps.BaseURL,
		ListPath:       deps.ListPath,
		Logger:         deps.Logger,
	}

	relay := workers.OutboxRelay{
		Outbox:      deps.Outbox,
		Publisher:   deps.Publisher,
		Metrics:     deps.Metrics,
		Clock:       deps.Clock,
		BatchSize:   deps.RelayBatchSize,
		MaxAttempts: deps.RelayMaxAttempts,
		Logger:      deps.Logger,
	}

	return Module{
		Handler:       handler,
		Relay:         relay,
		GetDeployment: getDeployment,
	}
}

// NewInMemoryModule wires the service against in-memory adapters.
// Templates, OwnerKeys and Publisher still come from the caller; they
// cross context boundaries.
func NewInMemoryModule(deps Dependencies, baseURL string, listPath string, logger *slog.Logger) Module {
	store := memory.NewStore(logger)
	deps.Repo = store
	deps.Outbox = store
	deps.Clock = store
	deps.IDGenerator = store
	deps.BaseURL = baseURL
	deps.ListPath = listPath
	deps.Logger = logger
	module := NewModule(deps)
	module.Store = store
	return module
}
