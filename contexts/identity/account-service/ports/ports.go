package ports

import (
	"context"
	"time"

	"agora/contexts/identity/account-service/domain/entities"
)

type RegisterOutcome string

const (
	// OutcomeBootstrapped means the registration was the first account in
	// the store. The first account is written exempt with both admin flags
	// set; every later account starts at a normal score of zero.
	OutcomeBootstrapped RegisterOutcome = "bootstrapped"
	OutcomeCreated      RegisterOutcome = "created"
	OutcomeExisting     RegisterOutcome = "existing"
)

// Registration carries the handle data for a profile init. The adapter
// decides the bootstrap outcome atomically with the insert so two racing
// first registrations can never both bootstrap.
type Registration struct {
	AccountID   string
	Username    string
	DisplayName string
	JoinedAt    time.Time
}

type Repository interface {
	CreateAccount(ctx context.Context, registration Registration) (RegisterOutcome, error)
	GetProfile(ctx context.Context, accountID string) (entities.Profile, error)
}

type Clock interface {
	Now() time.Time
}
