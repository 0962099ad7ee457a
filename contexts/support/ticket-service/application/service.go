package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"agora/contexts/support/ticket-service/domain/entities"
	domainerrors "agora/contexts/support/ticket-service/domain/errors"
	"agora/contexts/support/ticket-service/ports"
)

type Service struct {
	Repo   ports.Repository
	Ledger ports.ActivityLedger
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

type CreateTicketInput struct {
	Author string
	Title  string
	Body   string
}

func (s Service) CreateTicket(ctx context.Context, input CreateTicketInput) (entities.Ticket, error) {
	author := strings.TrimSpace(input.Author)
	title := strings.TrimSpace(input.Title)
	if author == "" || title == "" {
		return entities.Ticket{}, domainerrors.ErrInvalidRequest
	}

	ticketID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Ticket{}, err
	}
	ticket := entities.Ticket{
		TicketID:  ticketID,
		Author:    author,
		Title:     title,
		Body:      strings.TrimSpace(input.Body),
		Status:    entities.StatusOpen,
		CreatedAt: s.now(),
	}
	if err := s.Repo.CreateTicket(ctx, ticket); err != nil {
		return entities.Ticket{}, err
	}
	if err := s.Ledger.TouchActivity(ctx, author); err != nil {
		return entities.Ticket{}, err
	}

	resolveLogger(s.Logger).Info("ticket created",
		"event", "support_ticket_created",
		"module", "support/ticket-service",
		"layer", "application",
		"ticket_id", ticket.TicketID,
		"author", author,
	)
	return ticket, nil
}

func (s Service) ListTickets(ctx context.Context, author string, limit int) ([]entities.Ticket, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	return s.Repo.ListTickets(ctx, strings.TrimSpace(author), limit)
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
