package templatecatalog

import (
	"log/slog"

	httpadapter "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/adapters/http"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/adapters/memory"
	toscaadapter "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/adapters/tosca"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/application/commands"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/application/queries"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/ports"
)

// Module is the composition surface of the template catalog. Runtime
// wiring consumes Handler; GetTemplate is exposed for composition-root
// lookups (deployment creation resolves its template here). Store is
// set only by the in-memory constructor.
type Module struct {
	Handler     httpadapter.Handler
	GetTemplate queries.GetTemplateUseCase
	Store       *memory.Store
}

type Dependencies struct {
	Repo        ports.Repository
	Parser      ports.ToscaParser
	Usage       ports.UsageChecker
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	BaseURL     string
	ListPath    string
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	parser := deps.Parser
	if parser == nil {
		parser = toscaadapter.Parser{}
	}

	create := commands.CreateTemplateUseCase{
		Repo:        deps.Repo,
		Parser:      parser,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	replace := commands.UpdateTemplateUseCase{
		Repo:   deps.Repo,
		Parser: parser,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	remove := commands.DeleteTemplateUseCase{
		Repo:   deps.Repo,
		Usage:  deps.Usage,
		Logger: deps.Logger,
	}
	getTemplate := queries.GetTemplateUseCase{Repo: deps.Repo}
	listTemplates := queries.ListTemplatesUseCase{
		Repo:   deps.Repo,
		Logger: deps.Logger,
	}

	handler := httpadapter.Handler{
		Create:   create,
		Replace:  replace,
		Delete:   remove,
		Get:      getTemplate,
		List:     listTemplates,
		BaseURL:  deps.BaseURL,
		ListPath: deps.ListPath,
		Logger:   deps.Logger,
	}

	return Module{
		Handler:     handler,
		GetTemplate: getTemplate,
	}
}

// NewInMemoryModule wires the catalog against in-memory adapters.
func NewInMemoryModule(baseURL string, listPath string, logger *slog.Logger) Module {
	store := memory.NewStore(logger)
	module := NewModule(Dependencies{
		Repo:        store,
		Parser:      toscaadapter.Parser{},
		Usage:       nil,
		Clock:       store,
		IDGenerator: store,
		BaseURL:     baseURL,
		ListPath:    listPath,
		Logger:      logger,
	})
	module.Store = store
	return module
}
