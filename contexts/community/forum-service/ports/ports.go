package ports

import (
	"context"
	"time"

	"agora/contexts/community/forum-service/domain/entities"
)

type Repository interface {
	CreatePost(ctx context.Context, post entities.Post) error
	ListPosts(ctx context.Context, limit int) ([]entities.Post, error)
	GetPostAuthor(ctx context.Context, postID string) (string, bool, error)

	CreateReply(ctx context.Context, reply entities.Reply) error
	GetReplyAuthor(ctx context.Context, replyID string) (string, bool, error)

	CreateReaction(ctx context.Context, reaction entities.Reaction) error

	// CreateFollow reports whether a new edge was inserted; re-following is
	// a no-op so a pair can never mint repeated reputation.
	CreateFollow(ctx context.Context, follow entities.Follow) (bool, error)
	DeleteFollow(ctx context.Context, follower string, followee string) (bool, error)
	ListFollowers(ctx context.Context, accountID string) ([]string, error)
	ListFollowing(ctx context.Context, accountID string) ([]string, error)
}

// ReputationLedger is the vitality write surface owned by the ledger
// context. Every call is fire-and-observe: missing and exempt accounts are
// silent no-ops inside the ledger.
type ReputationLedger interface {
	ApplyDelta(ctx context.Context, accountID string, delta int, reason string) error
	TouchActivity(ctx context.Context, accountID string) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
