package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"agora/contexts/support/ticket-service/domain/entities"
	domainerrors "agora/contexts/support/ticket-service/domain/errors"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateTicket(ctx context.Context, ticket entities.Ticket) error {
	row := ticketModel{
		TicketID:  ticket.TicketID,
		Author:    ticket.Author,
		Title:     ticket.Title,
		Body:      ticket.Body,
		Status:    ticket.Status,
		CreatedAt: ticket.CreatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidRequest
		}
		return err
	}
	return nil
}

func (r *Repository) ListTickets(ctx context.Context, author string, limit int) ([]entities.Ticket, error) {
	query := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit)
	if author != "" {
		query = query.Where("author = ?", author)
	}

	var rows []ticketModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Ticket, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

type ticketModel struct {
	TicketID  string    `gorm:"column:ticket_id;primaryKey"`
	Author    string    `gorm:"column:author"`
	Title     string    `gorm:"column:title"`
	Body      string    `gorm:"column:body"`
	Status    string    `gorm:"column:status"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (ticketModel) TableName() string {
	return "tickets"
}

func (m ticketModel) toEntity() entities.Ticket {
	return entities.Ticket{
		TicketID:  m.TicketID,
		Author:    m.Author,
		Title:     m.Title,
		Body:      m.Body,
		Status:    m.Status,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
