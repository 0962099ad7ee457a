package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"agora/contexts/community/forum-service/application"
	"agora/contexts/community/forum-service/domain/entities"
	domainerrors "agora/contexts/community/forum-service/domain/errors"
	httptransport "agora/contexts/community/forum-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreatePostHandler(ctx context.Context, req httptransport.CreatePostRequest) (httptransport.CreatePostResponse, error) {
	post, err := h.Service.CreatePost(ctx, application.CreatePostInput{
		Author:  req.Author,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return httptransport.CreatePostResponse{}, err
	}

	resp := httptransport.CreatePostResponse{Status: "success"}
	resp.Data.PostID = post.PostID
	return resp, nil
}

func (h Handler) ListPostsHandler(ctx context.Context, limit int) (httptransport.ListPostsResponse, error) {
	posts, err := h.Service.ListPosts(ctx, limit)
	if err != nil {
		return httptransport.ListPostsResponse{}, err
	}

	resp := httptransport.ListPostsResponse{Status: "success"}
	resp.Data.Posts = make([]httptransport.PostDTO, 0, len(posts))
	for _, post := range posts {
		resp.Data.Posts = append(resp.Data.Posts, httptransport.PostDTO{
			PostID:    post.PostID,
			Author:    post.Author,
			Title:     post.Title,
			Content:   post.Content,
			CreatedAt: post.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return resp, nil
}

func (h Handler) CreateReplyHandler(ctx context.Context, req httptransport.CreateReplyRequest) (httptransport.CreateReplyResponse, error) {
	reply, err := h.Service.CreateReply(ctx, application.CreateReplyInput{
		Author:  req.Author,
		PostID:  req.PostID,
		Content: req.Content,
	})
	if err != nil {
		return httptransport.CreateReplyResponse{}, err
	}

	resp := httptransport.CreateReplyResponse{Status: "success"}
	resp.Data.ReplyID = reply.ReplyID
	return resp, nil
}

func (h Handler) ReactHandler(ctx context.Context, req httptransport.ReactRequest) (httptransport.OkResponse, error) {
	err := h.Service.React(ctx, application.ReactInput{
		Author:     req.Author,
		TargetType: entities.TargetType(strings.TrimSpace(req.TargetType)),
		TargetID:   req.TargetID,
		Kind:       entities.ReactionKind(strings.TrimSpace(req.Kind)),
	})
	if err != nil {
		return httptransport.OkResponse{}, err
	}
	return httptransport.OkResponse{Status: "success"}, nil
}

func (h Handler) FollowHandler(ctx context.Context, req httptransport.FollowRequest) (httptransport.OkResponse, error) {
	input := application.FollowInput{
		Follower: req.Follower,
		Followee: req.Followee,
	}

	var err error
	switch strings.TrimSpace(req.Action) {
	case "follow":
		err = h.Service.Follow(ctx, input)
	case "unfollow":
		err = h.Service.Unfollow(ctx, input)
	default:
		err = domainerrors.ErrInvalidRequest
	}
	if err != nil {
		return httptransport.OkResponse{}, err
	}
	return httptransport.OkResponse{Status: "success"}, nil
}

func (h Handler) FollowListHandler(ctx context.Context, accountID string, listType string) (httptransport.FollowListResponse, error) {
	var accounts []string
	var err error
	switch strings.TrimSpace(listType) {
	case "followers":
		accounts, err = h.Service.ListFollowers(ctx, accountID)
	case "following":
		accounts, err = h.Service.ListFollowing(ctx, accountID)
	default:
		err = domainerrors.ErrInvalidRequest
	}
	if err != nil {
		return httptransport.FollowListResponse{}, err
	}

	resp := httptransport.FollowListResponse{Status: "success"}
	resp.Data.AccountID = strings.TrimSpace(accountID)
	resp.Data.Accounts = accounts
	if resp.Data.Accounts == nil {
		resp.Data.Accounts = []string{}
	}
	return resp, nil
}
