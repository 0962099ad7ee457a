package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"agora/contexts/community/vitality-ledger/domain/entities"
	domainerrors "agora/contexts/community/vitality-ledger/domain/errors"
	"agora/contexts/community/vitality-ledger/ports"
	"agora/internal/shared/events"
	"agora/internal/shared/outbox"
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

// ApplyDelta performs the clamped score arithmetic inside a single UPDATE,
// so concurrent deltas against one account serialize at the row level and
// never lose updates. The log append and outbox row commit in the same
// transaction as the score change.
func (r *Repository) ApplyDelta(ctx context.Context, change ports.LedgerChange) (ports.ApplyOutcome, error) {
	outcome := ports.OutcomeApplied

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&accountModel{}).
			Where("account_id = ? AND vitality IS NOT NULL", change.AccountID).
			Updates(map[string]any{
				"vitality": gorm.Expr(
					"LEAST(?, GREATEST(?, vitality + ?))",
					entities.MaxScore, entities.MinScore, change.Delta,
				),
				"last_activity": change.AppliedAt.UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&accountModel{}).
				Where("account_id = ?", change.AccountID).
				Count(&count).
				Error; err != nil {
				return err
			}
			if count == 0 {
				outcome = ports.OutcomeNoAccount
			} else {
				outcome = ports.OutcomeExempt
			}
			return nil
		}

		logRow := vitalityLogModel{
			EntryID:   change.EntryID,
			AccountID: change.AccountID,
			Delta:     change.Delta,
			Reason:    change.Reason,
			CreatedAt: change.AppliedAt.UTC(),
		}
		if err := tx.Create(&logRow).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrInvalidRequest
			}
			return err
		}

		payload, err := json.Marshal(changedEnvelope(change))
		if err != nil {
			return err
		}
		outboxRow := outboxModel{
			OutboxID:  change.EventID,
			EventType: "community.vitality.changed",
			Payload:   payload,
			Status:    outbox.StatusPending,
			CreatedAt: change.AppliedAt.UTC(),
		}
		return tx.Create(&outboxRow).Error
	})
	if err != nil {
		return "", err
	}
	return outcome, nil
}

func (r *Repository) TouchActivity(ctx context.Context, accountID string, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&accountModel{}).
		Where("account_id = ?", accountID).
		Update("last_activity", now.UTC())
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) ListDecayCandidates(ctx context.Context, idleBefore time.Time) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&accountModel{}).
		Where("vitality IS NOT NULL AND vitality > 0 AND last_activity < ?", idleBefore.UTC()).
		Order("account_id ASC").
		Pluck("account_id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *Repository) GetVitality(ctx context.Context, accountID string) (ports.AccountVitality, error) {
	var row accountModel
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.AccountVitality{}, domainerrors.ErrAccountNotFound
		}
		return ports.AccountVitality{}, err
	}
	return row.toVitality(), nil
}

func (r *Repository) ListEntries(ctx context.Context, accountID string, limit int) ([]entities.LedgerEntry, error) {
	var rows []vitalityLogModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.LedgerEntry, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]outbox.Message, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outbox.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]outbox.Message, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toMessage())
	}
	return items, nil
}

func (r *Repository) MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":  outbox.StatusSent,
			"sent_at": sentAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrInvalidRequest
	}
	return nil
}

type accountModel struct {
	AccountID    string    `gorm:"column:account_id;primaryKey"`
	Username     string    `gorm:"column:username"`
	DisplayName  string    `gorm:"column:display_name"`
	Vitality     *int64    `gorm:"column:vitality"`
	IsAdmin      bool      `gorm:"column:is_admin"`
	IsSuperAdmin bool      `gorm:"column:is_super_admin"`
	LastActivity time.Time `gorm:"column:last_activity"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (accountModel) TableName() string {
	return "accounts"
}

func (m accountModel) toVitality() ports.AccountVitality {
	vitality := entities.Exempt()
	if m.Vitality != nil {
		vitality = entities.Normal(int(*m.Vitality))
	}
	return ports.AccountVitality{
		AccountID:    m.AccountID,
		Vitality:     vitality,
		IsAdmin:      m.IsAdmin,
		IsSuperAdmin: m.IsSuperAdmin,
		LastActivity: m.LastActivity.UTC(),
	}
}

type vitalityLogModel struct {
	EntryID   string    `gorm:"column:entry_id;primaryKey"`
	AccountID string    `gorm:"column:account_id"`
	Delta     int       `gorm:"column:delta"`
	Reason    string    `gorm:"column:reason"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (vitalityLogModel) TableName() string {
	return "vitality_logs"
}

func (m vitalityLogModel) toEntity() entities.LedgerEntry {
	return entities.LedgerEntry{
		EntryID:   m.EntryID,
		AccountID: m.AccountID,
		Delta:     m.Delta,
		Reason:    m.Reason,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

type outboxModel struct {
	OutboxID  string     `gorm:"column:outbox_id;primaryKey"`
	EventType string     `gorm:"column:event_type"`
	Payload   []byte     `gorm:"column:payload"`
	Status    string     `gorm:"column:status"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	SentAt    *time.Time `gorm:"column:sent_at"`
}

func (outboxModel) TableName() string {
	return "vitality_outbox"
}

func (m outboxModel) toMessage() outbox.Message {
	return outbox.Message{
		OutboxID:  m.OutboxID,
		EventType: m.EventType,
		Payload:   append([]byte(nil), m.Payload...),
		Status:    m.Status,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func changedEnvelope(change ports.LedgerChange) events.Envelope {
	payload, _ := json.Marshal(map[string]any{
		"account_id": change.AccountID,
		"delta":      change.Delta,
		"reason":     change.Reason,
	})
	return events.Envelope{
		EventID:        change.EventID,
		EventType:      "community.vitality.changed",
		SourceService:  "vitality-ledger",
		OccurredAtUTC:  change.AppliedAt.UTC(),
		EntityType:     "account",
		EntityID:       change.AccountID,
		PayloadVersion: 1,
		Payload:        payload,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
