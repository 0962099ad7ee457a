package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	forumservice "agora/contexts/community/forum-service"
	forumpostgres "agora/contexts/community/forum-service/adapters/postgres"
	vitalityledger "agora/contexts/community/vitality-ledger"
	vitalitypostgres "agora/contexts/community/vitality-ledger/adapters/postgres"
	ledgerworkers "agora/contexts/community/vitality-ledger/application/workers"
	accountservice "agora/contexts/identity/account-service"
	accountpostgres "agora/contexts/identity/account-service/adapters/postgres"
	adminservice "agora/contexts/moderation/admin-service"
	adminpostgres "agora/contexts/moderation/admin-service/adapters/postgres"
	ticketservice "agora/contexts/support/ticket-service"
	ticketpostgres "agora/contexts/support/ticket-service/adapters/postgres"
	"agora/internal/platform/config"
	"agora/internal/platform/db"
	"agora/internal/platform/httpserver"
	"agora/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres      *db.Postgres
	sweeper       ledgerworkers.DecaySweeper
	outboxRelay   ledgerworkers.OutboxRelay
	decaySchedule string
	pollInterval  time.Duration
	logger        *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	vitalityRepo := vitalitypostgres.NewRepository(pg.DB, logger)
	vitalityModule := vitalityledger.NewModule(vitalityledger.Dependencies{
		Repository:       vitalityRepo,
		Clock:            vitalitypostgres.SystemClock{},
		IDGenerator:      vitalitypostgres.UUIDGenerator{},
		InactivityWindow: cfg.InactivityWindow,
		Logger:           logger,
	})

	forumModule := forumservice.NewModule(forumservice.Dependencies{
		Repository:  forumpostgres.NewRepository(pg.DB, logger),
		Ledger:      vitalityModule.Ledger,
		Clock:       forumpostgres.SystemClock{},
		IDGenerator: forumpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	accountModule := accountservice.NewModule(accountservice.Dependencies{
		Repository: accountpostgres.NewRepository(pg.DB, logger),
		Clock:      accountpostgres.SystemClock{},
		Logger:     logger,
	})

	ticketModule := ticketservice.NewModule(ticketservice.Dependencies{
		Repository:  ticketpostgres.NewRepository(pg.DB, logger),
		Ledger:      vitalityModule.Ledger,
		Clock:       ticketpostgres.SystemClock{},
		IDGenerator: ticketpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	adminModule := adminservice.NewModule(adminservice.Dependencies{
		Repository:  adminpostgres.NewRepository(pg.DB, logger),
		Clock:       adminpostgres.SystemClock{},
		IDGenerator: adminpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	server := httpserver.New(
		vitalityModule,
		forumModule,
		accountModule,
		ticketModule,
		adminModule,
		cfg.AdminSecret,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	repo := vitalitypostgres.NewRepository(pg.DB, logger)
	module := vitalityledger.NewModule(vitalityledger.Dependencies{
		Repository:       repo,
		Clock:            vitalitypostgres.SystemClock{},
		IDGenerator:      vitalitypostgres.UUIDGenerator{},
		InactivityWindow: cfg.InactivityWindow,
		Logger:           logger,
	})

	bus := messaging.NewBus(logger)
	return &WorkerApp{
		postgres: pg,
		sweeper: ledgerworkers.DecaySweeper{
			Ledger: module.Service,
			Logger: logger,
		},
		outboxRelay: ledgerworkers.OutboxRelay{
			Outbox:    repo,
			Publisher: bus,
			Clock:     vitalitypostgres.SystemClock{},
			Topic:     "community.vitality.changed",
			BatchSize: 100,
			Logger:    logger,
		},
		decaySchedule: cfg.DecaySchedule,
		pollInterval:  cfg.OutboxPollInterval,
		logger:        logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(w.decaySchedule, func() {
		_ = w.sweeper.RunOnce(ctx)
	}); err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"decay_schedule", w.decaySchedule,
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.outboxRelay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
