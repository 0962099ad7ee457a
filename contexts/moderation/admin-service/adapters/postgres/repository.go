package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"agora/contexts/moderation/admin-service/domain/entities"
	domainerrors "agora/contexts/moderation/admin-service/domain/errors"
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

func (r *Repository) IsAdmin(ctx context.Context, accountID string) (bool, error) {
	var row accountFlagsModel
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return row.IsAdmin, nil
}

func (r *Repository) DeletePost(ctx context.Context, postID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&postRowModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) DeleteReply(ctx context.Context, replyID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("reply_id = ?", replyID).
		Delete(&replyRowModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// BanAccount nulls the vitality column, which the ledger reads as exempt,
// and clears the admin flag in the same UPDATE.
func (r *Repository) BanAccount(ctx context.Context, accountID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&accountFlagsModel{}).
		Where("account_id = ?", accountID).
		Updates(map[string]any{
			"vitality": nil,
			"is_admin": false,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) AppendReport(ctx context.Context, report entities.AdminReport) error {
	row := reportModel{
		ReportID:  report.ReportID,
		Actor:     report.Actor,
		Action:    report.Action,
		TargetID:  report.TargetID,
		Note:      report.Note,
		CreatedAt: report.CreatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidRequest
		}
		return err
	}
	return nil
}

func (r *Repository) ListReports(ctx context.Context, limit int) ([]entities.AdminReport, error) {
	var rows []reportModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.AdminReport, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// Minimal projections of rows owned by the community and identity
// contexts; moderation only needs the columns it touches.
type accountFlagsModel struct {
	AccountID string `gorm:"column:account_id;primaryKey"`
	IsAdmin   bool   `gorm:"column:is_admin"`
}

func (accountFlagsModel) TableName() string {
	return "accounts"
}

type postRowModel struct {
	PostID string `gorm:"column:post_id;primaryKey"`
}

func (postRowModel) TableName() string {
	return "posts"
}

type replyRowModel struct {
	ReplyID string `gorm:"column:reply_id;primaryKey"`
}

func (replyRowModel) TableName() string {
	return "replies"
}

type reportModel struct {
	ReportID  string    `gorm:"column:report_id;primaryKey"`
	Actor     string    `gorm:"column:actor"`
	Action    string    `gorm:"column:action"`
	TargetID  string    `gorm:"column:target_id"`
	Note      string    `gorm:"column:note"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (reportModel) TableName() string {
	return "admin_reports"
}

func (m reportModel) toEntity() entities.AdminReport {
	return entities.AdminReport{
		ReportID:  m.ReportID,
		Actor:     m.Actor,
		Action:    m.Action,
		TargetID:  m.TargetID,
		Note:      m.Note,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
