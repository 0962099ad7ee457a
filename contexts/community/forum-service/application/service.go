package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"agora/contexts/community/forum-service/domain/entities"
	domainerrors "agora/contexts/community/forum-service/domain/errors"
	"agora/contexts/community/forum-service/ports"
)

// Reputation policy applied by forum events. The ledger clamps and audits;
// the forum only decides which event carries which delta.
const (
	deltaPostCreated     = 2
	deltaReplyCreated    = 1
	deltaReceivedLike    = 2
	deltaReceivedDislike = -2
	deltaReceivedUseful  = 5
	deltaFollowed        = 5
	deltaUnfollowed      = -5

	reasonPostCreated     = "post_created"
	reasonReplyCreated    = "reply_created"
	reasonReceivedLike    = "received_like"
	reasonReceivedDislike = "received_dislike"
	reasonReceivedUseful  = "received_useful"
	reasonFollowed        = "followed"
	reasonUnfollowed      = "unfollowed"
)

type Service struct {
	Repo   ports.Repository
	Ledger ports.ReputationLedger
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

type CreatePostInput struct {
	Author  string
	Title   string
	Content string
}

type CreateReplyInput struct {
	Author  string
	PostID  string
	Content string
}

type ReactInput struct {
	Author     string
	TargetType entities.TargetType
	TargetID   string
	Kind       entities.ReactionKind
}

type FollowInput struct {
	Follower string
	Followee string
}

func (s Service) CreatePost(ctx context.Context, input CreatePostInput) (entities.Post, error) {
	author := strings.TrimSpace(input.Author)
	title := strings.TrimSpace(input.Title)
	if author == "" || title == "" {
		return entities.Post{}, domainerrors.ErrInvalidRequest
	}

	postID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Post{}, err
	}
	post := entities.Post{
		PostID:    postID,
		Author:    author,
		Title:     title,
		Content:   strings.TrimSpace(input.Content),
		CreatedAt: s.now(),
	}
	if err := s.Repo.CreatePost(ctx, post); err != nil {
		return entities.Post{}, err
	}
	if err := s.Ledger.ApplyDelta(ctx, author, deltaPostCreated, reasonPostCreated); err != nil {
		return entities.Post{}, err
	}

	resolveLogger(s.Logger).Info("post created",
		"event", "forum_post_created",
		"module", "community/forum-service",
		"layer", "application",
		"post_id", post.PostID,
		"author", author,
	)
	return post, nil
}

func (s Service) ListPosts(ctx context.Context, limit int) ([]entities.Post, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	return s.Repo.ListPosts(ctx, limit)
}

func (s Service) CreateReply(ctx context.Context, input CreateReplyInput) (entities.Reply, error) {
	author := strings.TrimSpace(input.Author)
	postID := strings.TrimSpace(input.PostID)
	if author == "" || postID == "" {
		return entities.Reply{}, domainerrors.ErrInvalidRequest
	}

	if _, found, err := s.Repo.GetPostAuthor(ctx, postID); err != nil {
		return entities.Reply{}, err
	} else if !found {
		return entities.Reply{}, domainerrors.ErrPostNotFound
	}

	replyID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Reply{}, err
	}
	reply := entities.Reply{
		ReplyID:   replyID,
		PostID:    postID,
		Author:    author,
		Content:   strings.TrimSpace(input.Content),
		CreatedAt: s.now(),
	}
	if err := s.Repo.CreateReply(ctx, reply); err != nil {
		return entities.Reply{}, err
	}
	if err := s.Ledger.ApplyDelta(ctx, author, deltaReplyCreated, reasonReplyCreated); err != nil {
		return entities.Reply{}, err
	}
	return reply, nil
}

// React stores the reaction, credits the content owner, and touches the
// acting account's activity clock without granting it reputation.
func (s Service) React(ctx context.Context, input ReactInput) error {
	author := strings.TrimSpace(input.Author)
	targetID := strings.TrimSpace(input.TargetID)
	if author == "" || targetID == "" {
		return domainerrors.ErrInvalidRequest
	}
	if input.TargetType != entities.TargetPost && input.TargetType != entities.TargetReply {
		return domainerrors.ErrInvalidRequest
	}
	if !entities.IsValidReactionKind(input.Kind) {
		return domainerrors.ErrInvalidRequest
	}

	reactionID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	if err := s.Repo.CreateReaction(ctx, entities.Reaction{
		ReactionID: reactionID,
		TargetType: input.TargetType,
		TargetID:   targetID,
		Author:     author,
		Kind:       input.Kind,
		CreatedAt:  s.now(),
	}); err != nil {
		return err
	}

	owner, found, err := s.lookupOwner(ctx, input.TargetType, targetID)
	if err != nil {
		return err
	}
	if found && owner != "" {
		delta, reason := reactionPolicy(input.Kind)
		if err := s.Ledger.ApplyDelta(ctx, owner, delta, reason); err != nil {
			return err
		}
	}

	return s.Ledger.TouchActivity(ctx, author)
}

func (s Service) Follow(ctx context.Context, input FollowInput) error {
	follower := strings.TrimSpace(input.Follower)
	followee := strings.TrimSpace(input.Followee)
	if follower == "" || followee == "" || follower == followee {
		return domainerrors.ErrInvalidRequest
	}

	created, err := s.Repo.CreateFollow(ctx, entities.Follow{
		Follower:  follower,
		Followee:  followee,
		CreatedAt: s.now(),
	})
	if err != nil {
		return err
	}
	if created {
		if err := s.Ledger.ApplyDelta(ctx, followee, deltaFollowed, reasonFollowed); err != nil {
			return err
		}
	}
	return s.Ledger.TouchActivity(ctx, follower)
}

func (s Service) Unfollow(ctx context.Context, input FollowInput) error {
	follower := strings.TrimSpace(input.Follower)
	followee := strings.TrimSpace(input.Followee)
	if follower == "" || followee == "" {
		return domainerrors.ErrInvalidRequest
	}

	deleted, err := s.Repo.DeleteFollow(ctx, follower, followee)
	if err != nil {
		return err
	}
	if deleted {
		if err := s.Ledger.ApplyDelta(ctx, followee, deltaUnfollowed, reasonUnfollowed); err != nil {
			return err
		}
	}
	return s.Ledger.TouchActivity(ctx, follower)
}

func (s Service) ListFollowers(ctx context.Context, accountID string) ([]string, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, domainerrors.ErrInvalidRequest
	}
	return s.Repo.ListFollowers(ctx, accountID)
}

func (s Service) ListFollowing(ctx context.Context, accountID string) ([]string, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, domainerrors.ErrInvalidRequest
	}
	return s.Repo.ListFollowing(ctx, accountID)
}

func (s Service) lookupOwner(ctx context.Context, targetType entities.TargetType, targetID string) (string, bool, error) {
	if targetType == entities.TargetPost {
		return s.Repo.GetPostAuthor(ctx, targetID)
	}
	return s.Repo.GetReplyAuthor(ctx, targetID)
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func reactionPolicy(kind entities.ReactionKind) (int, string) {
	switch kind {
	case entities.ReactionDislike:
		return deltaReceivedDislike, reasonReceivedDislike
	case entities.ReactionUseful:
		return deltaReceivedUseful, reasonReceivedUseful
	default:
		return deltaReceivedLike, reasonReceivedLike
	}
}
