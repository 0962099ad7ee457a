package ports

import (
	"context"
	"time"

	"agora/contexts/support/ticket-service/domain/entities"
)

type Repository interface {
	CreateTicket(ctx context.Context, ticket entities.Ticket) error
	// ListTickets returns newest tickets first; an empty author lists all.
	ListTickets(ctx context.Context, author string, limit int) ([]entities.Ticket, error)
}

// ActivityLedger is the slice of the community ledger this context needs.
// Filing a ticket counts as activity but never moves reputation.
type ActivityLedger interface {
	TouchActivity(ctx context.Context, accountID string) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
