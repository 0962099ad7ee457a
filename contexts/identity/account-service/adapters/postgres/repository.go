package postgresadapter

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"agora/contexts/identity/account-service/domain/entities"
	domainerrors "agora/contexts/identity/account-service/domain/errors"
	"agora/contexts/identity/account-service/ports"
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

// CreateAccount counts existing rows and inserts inside one serializable
// transaction, so two racing first registrations cannot both claim the
// bootstrap. A unique violation on the insert means the account already
// exists and is reported as such, not as an error.
func (r *Repository) CreateAccount(ctx context.Context, registration ports.Registration) (ports.RegisterOutcome, error) {
	outcome := ports.OutcomeCreated

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&accountModel{}).
			Where("account_id = ?", registration.AccountID).
			Count(&existing).
			Error; err != nil {
			return err
		}
		if existing > 0 {
			outcome = ports.OutcomeExisting
			return nil
		}

		var total int64
		if err := tx.Model(&accountModel{}).Count(&total).Error; err != nil {
			return err
		}

		row := accountModel{
			AccountID:    registration.AccountID,
			Username:     registration.Username,
			DisplayName:  registration.DisplayName,
			LastActivity: registration.JoinedAt.UTC(),
			CreatedAt:    registration.JoinedAt.UTC(),
		}
		if total == 0 {
			// The first account is exempt (vitality stays NULL) and holds
			// both admin flags.
			row.IsAdmin = true
			row.IsSuperAdmin = true
			outcome = ports.OutcomeBootstrapped
		} else {
			score := int64(0)
			row.Vitality = &score
		}

		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				outcome = ports.OutcomeExisting
				return nil
			}
			return err
		}
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return "", err
	}
	return outcome, nil
}

func (r *Repository) GetProfile(ctx context.Context, accountID string) (entities.Profile, error) {
	var row accountModel
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Profile{}, domainerrors.ErrAccountNotFound
		}
		return entities.Profile{}, err
	}
	return row.toProfile(), nil
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

func (m accountModel) toProfile() entities.Profile {
	profile := entities.Profile{
		AccountID:    m.AccountID,
		Username:     m.Username,
		DisplayName:  m.DisplayName,
		Exempt:       m.Vitality == nil,
		IsAdmin:      m.IsAdmin,
		IsSuperAdmin: m.IsSuperAdmin,
		LastActivity: m.LastActivity.UTC(),
		JoinedAt:     m.CreatedAt.UTC(),
	}
	if m.Vitality != nil {
		profile.Score = int(*m.Vitality)
	}
	return profile
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
