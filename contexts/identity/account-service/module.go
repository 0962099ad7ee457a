package accountservice

import (
	"log/slog"

	ledgermemory "agora/contexts/community/vitality-ledger/adapters/memory"
	httpadapter "agora/contexts/identity/account-service/adapters/http"
	"agora/contexts/identity/account-service/adapters/memory"
	"agora/contexts/identity/account-service/application"
	"agora/contexts/identity/account-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repository,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}

// NewInMemoryModule wires the profile store onto the ledger's in-memory
// account grid so both contexts see the same rows, mirroring the shared
// accounts table in postgres mode.
func NewInMemoryModule(grid *ledgermemory.Store, logger *slog.Logger) Module {
	store := memory.NewStore(grid)
	module := NewModule(Dependencies{
		Repository: store,
		Clock:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
