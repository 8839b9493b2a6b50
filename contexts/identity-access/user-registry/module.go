package userregistry

import (
	"log/slog"

	httpadapter "github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/adapters/http"
	"github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/adapters/memory"
	sshkeyadapter "github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/adapters/sshkey"
	"github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/application/commands"
	"github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/application/queries"
	"github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/ports"
)

// Module is the composition surface of the user registry. Runtime
// wiring consumes Handler and the seeding commands; GetUser is exposed
// for composition-root lookups (deployment messages need the owner's
// public key). Store is set only by the in-memory constructor.
type Module struct {
	Handler       httpadapter.Handler
	GetUser       queries.GetUserUseCase
	SeedDevUser   commands.SeedDevUserUseCase
	RemoveDevUser commands.RemoveDevUserUseCase
	Store         *memory.Store
}

type Dependencies struct {
	Repo        ports.Repository
	Keys        ports.KeyIssuer
	Secrets     ports.SecretStore
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	BaseURL     string
	ListPath    string
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	register := commands.RegisterUserUseCase{
		Repo:        deps.Repo,
		Keys:        deps.Keys,
		Secrets:     deps.Secrets,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	update := commands.UpdateUserUseCase{
		Repo:   deps.Repo,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	remove := commands.DeleteUserUseCase{
		Repo:    deps.Repo,
		Secrets: deps.Secrets,
		Logger:  deps.Logger,
	}
	getUser := queries.GetUserUseCase{
		Repo:   deps.Repo,
		Logger: deps.Logger,
	}
	listUsers := queries.ListUsersUseCase{
		Repo:   deps.Repo,
		Logger: deps.Logger,
	}

	handler := httpadapter.Handler{
		Register: register,
		Update:   update,
		Delete:   remove,
		Get:      getUser,
		List:     listUsers,
		BaseURL:  deps.BaseURL,
		ListPath: deps.ListPath,
		Logger:   deps.Logger,
	}

	return Module{
		Handler: handler,
		GetUser: getUser,
		SeedDevUser: commands.SeedDevUserUseCase{
			Repo:        deps.Repo,
			Keys:        deps.Keys,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
		RemoveDevUser: commands.RemoveDevUserUseCase{
			Repo:   deps.Repo,
			Logger: deps.Logger,
		},
	}
}

// NewInMemoryModule wires the registry against in-memory adapters.
func NewInMemoryModule(baseURL string, listPath string, logger *slog.Logger) Module {
	store := memory.NewStore(logger)
	module := NewModule(Dependencies{
		Repo:        store,
		Keys:        sshkeyadapter.Generator{},
		Secrets:     nil,
		Clock:       store,
		IDGenerator: store,
		BaseURL:     baseURL,
		ListPath:    listPath,
		Logger:      logger,
	})
	module.Store = store
	return module
}
