package ports

import (
	"context"
	"time"

	"agora/contexts/community/vitality-ledger/domain/entities"
	"agora/internal/shared/events"
	"agora/internal/shared/outbox"
)

// ApplyOutcome reports what a delta application did. Missing and exempt
// accounts are silent no-ops, never errors.
type ApplyOutcome string

const (
	OutcomeApplied   ApplyOutcome = "applied"
	OutcomeNoAccount ApplyOutcome = "no_account"
	OutcomeExempt    ApplyOutcome = "exempt"
)

// LedgerChange is one fully-identified delta application. Delta is recorded
// raw in the log even when clamping alters the effective change.
type LedgerChange struct {
	EntryID   string
	EventID   string
	AccountID string
	Delta     int
	Reason    string
	AppliedAt time.Time
}

// AccountVitality is the read projection served to profile rendering and
// permission checks. Admin flags are owned by the account entity; the
// ledger only reads them alongside the score.
type AccountVitality struct {
	AccountID    string
	Vitality     entities.Vitality
	IsAdmin      bool
	IsSuperAdmin bool
	LastActivity time.Time
}

// Repository owns the atomicity contract of the ledger: the clamped score
// update, the log append, and the outbox row commit together, and
// concurrent deltas against one account never lose updates.
type Repository interface {
	ApplyDelta(ctx context.Context, change LedgerChange) (ApplyOutcome, error)
	TouchActivity(ctx context.Context, accountID string, now time.Time) (bool, error)
	ListDecayCandidates(ctx context.Context, idleBefore time.Time) ([]string, error)
	GetVitality(ctx context.Context, accountID string) (AccountVitality, error)
	ListEntries(ctx context.Context, accountID string, limit int) ([]entities.LedgerEntry, error)
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]outbox.Message, error)
	MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, envelope events.Envelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
