package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"agora/contexts/support/ticket-service/domain/entities"
)

type Store struct {
	mu      sync.Mutex
	tickets []entities.Ticket
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) CreateTicket(_ context.Context, ticket entities.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets = append(s.tickets, ticket)
	return nil
}

func (s *Store) ListTickets(_ context.Context, author string, limit int) ([]entities.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []entities.Ticket
	for i := len(s.tickets) - 1; i >= 0 && len(items) < limit; i-- {
		if author != "" && s.tickets[i].Author != author {
			continue
		}
		items = append(items, s.tickets[i])
	}
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
