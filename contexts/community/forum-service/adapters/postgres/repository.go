package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agora/contexts/community/forum-service/domain/entities"
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

func (r *Repository) CreatePost(ctx context.Context, post entities.Post) error {
	row := postModel{
		PostID:    post.PostID,
		Author:    post.Author,
		Title:     post.Title,
		Content:   post.Content,
		CreatedAt: post.CreatedAt.UTC(),
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) ListPosts(ctx context.Context, limit int) ([]entities.Post, error) {
	var rows []postModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.Post, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) GetPostAuthor(ctx context.Context, postID string) (string, bool, error) {
	var row postModel
	err := r.db.WithContext(ctx).
		Select("author").
		Where("post_id = ?", postID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return row.Author, true, nil
}

func (r *Repository) CreateReply(ctx context.Context, reply entities.Reply) error {
	row := replyModel{
		ReplyID:   reply.ReplyID,
		PostID:    reply.PostID,
		Author:    reply.Author,
		Content:   reply.Content,
		CreatedAt: reply.CreatedAt.UTC(),
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) GetReplyAuthor(ctx context.Context, replyID string) (string, bool, error) {
	var row replyModel
	err := r.db.WithContext(ctx).
		Select("author").
		Where("reply_id = ?", replyID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return row.Author, true, nil
}

func (r *Repository) CreateReaction(ctx context.Context, reaction entities.Reaction) error {
	row := reactionModel{
		ReactionID: reaction.ReactionID,
		TargetType: string(reaction.TargetType),
		TargetID:   reaction.TargetID,
		Author:     reaction.Author,
		Kind:       string(reaction.Kind),
		CreatedAt:  reaction.CreatedAt.UTC(),
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) CreateFollow(ctx context.Context, follow entities.Follow) (bool, error) {
	row := followModel{
		Follower:  follow.Follower,
		Followee:  follow.Followee,
		CreatedAt: follow.CreatedAt.UTC(),
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "follower"}, {Name: "followee"}},
			DoNothing: true,
		}).
		Create(&row)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) DeleteFollow(ctx context.Context, follower string, followee string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("follower = ? AND followee = ?", follower, followee).
		Delete(&followModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) ListFollowers(ctx context.Context, accountID string) ([]string, error) {
	var followers []string
	err := r.db.WithContext(ctx).
		Model(&followModel{}).
		Where("followee = ?", accountID).
		Order("follower ASC").
		Pluck("follower", &followers).
		Error
	return followers, err
}

func (r *Repository) ListFollowing(ctx context.Context, accountID string) ([]string, error) {
	var following []string
	err := r.db.WithContext(ctx).
		Model(&followModel{}).
		Where("follower = ?", accountID).
		Order("followee ASC").
		Pluck("followee", &following).
		Error
	return following, err
}

type postModel struct {
	PostID    string    `gorm:"column:post_id;primaryKey"`
	Author    string    `gorm:"column:author"`
	Title     string    `gorm:"column:title"`
	Content   string    `gorm:"column:content"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (postModel) TableName() string {
	return "posts"
}

func (m postModel) toEntity() entities.Post {
	return entities.Post{
		PostID:    m.PostID,
		Author:    m.Author,
		Title:     m.Title,
		Content:   m.Content,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

type replyModel struct {
	ReplyID   string    `gorm:"column:reply_id;primaryKey"`
	PostID    string    `gorm:"column:post_id"`
	Author    string    `gorm:"column:author"`
	Content   string    `gorm:"column:content"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (replyModel) TableName() string {
	return "replies"
}

type reactionModel struct {
	ReactionID string    `gorm:"column:reaction_id;primaryKey"`
	TargetType string    `gorm:"column:target_type"`
	TargetID   string    `gorm:"column:target_id"`
	Author     string    `gorm:"column:author"`
	Kind       string    `gorm:"column:kind"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (reactionModel) TableName() string {
	return "reactions"
}

type followModel struct {
	Follower  string    `gorm:"column:follower;primaryKey"`
	Followee  string    `gorm:"column:followee;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (followModel) TableName() string {
	return "follows"
}
