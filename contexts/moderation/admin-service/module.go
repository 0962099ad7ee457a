package adminservice

import (
	"log/slog"

	forummemory "agora/contexts/community/forum-service/adapters/memory"
	ledgermemory "agora/contexts/community/vitality-ledger/adapters/memory"
	httpadapter "agora/contexts/moderation/admin-service/adapters/http"
	"agora/contexts/moderation/admin-service/adapters/memory"
	"agora/contexts/moderation/admin-service/application"
	"agora/contexts/moderation/admin-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository  ports.Repository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repository,
		Clock:  deps.Clock,
		IDGen:  deps.IDGenerator,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}

// NewInMemoryModule moderates against the other contexts' in-memory stores.
func NewInMemoryModule(grid *ledgermemory.Store, forum *forummemory.Store, logger *slog.Logger) Module {
	store := memory.NewStore(grid, forum)
	module := NewModule(Dependencies{
		Repository:  store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
