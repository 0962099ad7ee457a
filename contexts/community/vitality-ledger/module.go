package vitalityledger

import (
	"context"
	"log/slog"
	"time"

	httpadapter "agora/contexts/community/vitality-ledger/adapters/http"
	"agora/contexts/community/vitality-ledger/adapters/memory"
	"agora/contexts/community/vitality-ledger/application"
	"agora/contexts/community/vitality-ledger/ports"
)

// Module is the composition surface of the vitality ledger. Handler serves
// the HTTP layer, Service backs the worker sweep, and Ledger is the narrow
// write facade other contexts depend on.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Ledger  Ledger
	Store   *memory.Store
}

type Dependencies struct {
	Repository       ports.Repository
	Clock            ports.Clock
	IDGenerator      ports.IDGenerator
	InactivityWindow time.Duration
	Logger           *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:             deps.Repository,
		Clock:            deps.Clock,
		IDGen:            deps.IDGenerator,
		InactivityWindow: deps.InactivityWindow,
		Logger:           deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Service: service,
		Ledger:  Ledger{service: service},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore(logger)
	module := NewModule(Dependencies{
		Repository:  store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}

// Ledger is the write surface consumed by the forum, ticket, and profile
// contexts. Missing or exempt accounts are silent no-ops.
type Ledger struct {
	service application.Service
}

func (l Ledger) ApplyDelta(ctx context.Context, accountID string, delta int, reason string) error {
	_, err := l.service.ApplyDelta(ctx, application.ApplyDeltaInput{
		AccountID: accountID,
		Delta:     delta,
		Reason:    reason,
	})
	return err
}

func (l Ledger) TouchActivity(ctx context.Context, accountID string) error {
	return l.service.TouchActivity(ctx, accountID)
}
