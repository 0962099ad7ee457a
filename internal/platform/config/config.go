package config

import (
	"os"
	"strings"
	"time"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	// AdminSecret gates the moderation endpoints and the decay trigger.
	AdminSecret string

	// DecaySchedule is a cron spec for the weekly inactivity sweep.
	DecaySchedule string

	// InactivityWindow is how long an account must be idle before the
	// decay sweep selects it.
	InactivityWindow time.Duration

	OutboxPollInterval time.Duration
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "agora"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	secret := os.Getenv("ADMIN_SECRET")
	if secret == "" {
		secret = "adminsecret"
	}

	schedule := strings.TrimSpace(os.Getenv("DECAY_CRON"))
	if schedule == "" {
		// Mondays at 04:00 UTC.
		schedule = "0 4 * * 1"
	}

	return Config{
		ServiceName:        service,
		HTTPPort:           port,
		PostgresDSN:        os.Getenv("POSTGRES_DSN"),
		AdminSecret:        secret,
		DecaySchedule:      schedule,
		InactivityWindow:   envDuration("INACTIVITY_WINDOW", 7*24*time.Hour),
		OutboxPollInterval: envDuration("OUTBOX_POLL_INTERVAL", 5*time.Second),
	}, nil
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
