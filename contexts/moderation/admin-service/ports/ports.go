package ports

import (
	"context"
	"time"

	"agora/contexts/moderation/admin-service/domain/entities"
)

// Repository spans the rows moderation touches: the account grid for
// authorization and bans, forum content for removals, and the audit table.
// Delete and ban report whether the target existed.
type Repository interface {
	IsAdmin(ctx context.Context, accountID string) (bool, error)
	DeletePost(ctx context.Context, postID string) (bool, error)
	DeleteReply(ctx context.Context, replyID string) (bool, error)
	// BanAccount forces the account exempt and strips its admin flag.
	// There is no un-ban path.
	BanAccount(ctx context.Context, accountID string) (bool, error)
	AppendReport(ctx context.Context, report entities.AdminReport) error
	ListReports(ctx context.Context, limit int) ([]entities.AdminReport, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
