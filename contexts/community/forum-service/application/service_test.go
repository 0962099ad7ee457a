package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"agora/contexts/community/forum-service/domain/entities"
	domainerrors "agora/contexts/community/forum-service/domain/errors"
)

type deltaCall struct {
	accountID string
	delta     int
	reason    string
}

type fakeLedger struct {
	deltas  []deltaCall
	touched []string
}

func (l *fakeLedger) ApplyDelta(_ context.Context, accountID string, delta int, reason string) error {
	l.deltas = append(l.deltas, deltaCall{accountID: accountID, delta: delta, reason: reason})
	return nil
}

func (l *fakeLedger) TouchActivity(_ context.Context, accountID string) error {
	l.touched = append(l.touched, accountID)
	return nil
}

type fakeRepo struct {
	posts       map[string]entities.Post
	replies     map[string]entities.Reply
	reactions   []entities.Reaction
	follows     map[string]bool
	followAdds  int
	followDrops int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		posts:   make(map[string]entities.Post),
		replies: make(map[string]entities.Reply),
		follows: make(map[string]bool),
	}
}

func (r *fakeRepo) CreatePost(_ context.Context, post entities.Post) error {
	r.posts[post.PostID] = post
	return nil
}

func (r *fakeRepo) ListPosts(_ context.Context, _ int) ([]entities.Post, error) {
	return nil, nil
}

func (r *fakeRepo) GetPostAuthor(_ context.Context, postID string) (string, bool, error) {
	post, ok := r.posts[postID]
	if !ok {
		return "", false, nil
	}
	return post.Author, true, nil
}

func (r *fakeRepo) CreateReply(_ context.Context, reply entities.Reply) error {
	r.replies[reply.ReplyID] = reply
	return nil
}

func (r *fakeRepo) GetReplyAuthor(_ context.Context, replyID string) (string, bool, error) {
	reply, ok := r.replies[replyID]
	if !ok {
		return "", false, nil
	}
	return reply.Author, true, nil
}

func (r *fakeRepo) CreateReaction(_ context.Context, reaction entities.Reaction) error {
	r.reactions = append(r.reactions, reaction)
	return nil
}

func (r *fakeRepo) CreateFollow(_ context.Context, follow entities.Follow) (bool, error) {
	key := follow.Follower + "/" + follow.Followee
	if r.follows[key] {
		return false, nil
	}
	r.follows[key] = true
	r.followAdds++
	return true, nil
}

func (r *fakeRepo) DeleteFollow(_ context.Context, follower string, followee string) (bool, error) {
	key := follower + "/" + followee
	if !r.follows[key] {
		return false, nil
	}
	delete(r.follows, key)
	r.followDrops++
	return true, nil
}

func (r *fakeRepo) ListFollowers(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

func (r *fakeRepo) ListFollowing(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

type sequenceIDs struct {
	next int
}

func (g *sequenceIDs) NewID(_ context.Context) (string, error) {
	g.next++
	return fmt.Sprintf("id-%d", g.next), nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func newTestService(repo *fakeRepo, ledger *fakeLedger) Service {
	return Service{
		Repo:   repo,
		Ledger: ledger,
		Clock:  fixedClock{now: time.Date(2026, time.April, 1, 10, 0, 0, 0, time.UTC)},
		IDGen:  &sequenceIDs{},
	}
}

func TestCreatePostCreditsAuthor(t *testing.T) {
	repo := newFakeRepo()
	ledger := &fakeLedger{}
	service := newTestService(repo, ledger)

	post, err := service.CreatePost(context.Background(), CreatePostInput{
		Author: "acct-1",
		Title:  "hello",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if _, ok := repo.posts[post.PostID]; !ok {
		t.Fatalf("expected post to be stored")
	}
	if len(ledger.deltas) != 1 {
		t.Fatalf("expected one ledger call, got %d", len(ledger.deltas))
	}
	call := ledger.deltas[0]
	if call.accountID != "acct-1" || call.delta != 2 || call.reason != "post_created" {
		t.Fatalf("expected +2 post_created for acct-1, got %+v", call)
	}
}

func TestCreateReplyCreditsAuthorAndRequiresPost(t *testing.T) {
	repo := newFakeRepo()
	ledger := &fakeLedger{}
	service := newTestService(repo, ledger)

	_, err := service.CreateReply(context.Background(), CreateReplyInput{
		Author: "acct-2",
		PostID: "missing",
	})
	if !errors.Is(err, domainerrors.ErrPostNotFound) {
		t.Fatalf("expected post not found, got %v", err)
	}

	post, _ := service.CreatePost(context.Background(), CreatePostInput{Author: "acct-1", Title: "t"})
	ledger.deltas = nil

	_, err = service.CreateReply(context.Background(), CreateReplyInput{
		Author: "acct-2",
		PostID: post.PostID,
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(ledger.deltas) != 1 {
		t.Fatalf("expected one ledger call, got %d", len(ledger.deltas))
	}
	call := ledger.deltas[0]
	if call.accountID != "acct-2" || call.delta != 1 || call.reason != "reply_created" {
		t.Fatalf("expected +1 reply_created for acct-2, got %+v", call)
	}
}

func TestReactCreditsOwnerAndTouchesActor(t *testing.T) {
	cases := []struct {
		kind   entities.ReactionKind
		delta  int
		reason string
	}{
		{entities.ReactionLike, 2, "received_like"},
		{entities.ReactionDislike, -2, "received_dislike"},
		{entities.ReactionUseful, 5, "received_useful"},
	}

	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			repo := newFakeRepo()
			ledger := &fakeLedger{}
			service := newTestService(repo, ledger)

			post, _ := service.CreatePost(context.Background(), CreatePostInput{Author: "owner", Title: "t"})
			ledger.deltas = nil

			err := service.React(context.Background(), ReactInput{
				Author:     "actor",
				TargetType: entities.TargetPost,
				TargetID:   post.PostID,
				Kind:       tc.kind,
			})
			if err != nil {
				t.Fatalf("expected success, got %v", err)
			}
			if len(ledger.deltas) != 1 {
				t.Fatalf("expected one ledger call, got %d", len(ledger.deltas))
			}
			call := ledger.deltas[0]
			if call.accountID != "owner" || call.delta != tc.delta || call.reason != tc.reason {
				t.Fatalf("expected %d %s for owner, got %+v", tc.delta, tc.reason, call)
			}
			if len(ledger.touched) != 1 || ledger.touched[0] != "actor" {
				t.Fatalf("expected actor activity touch, got %v", ledger.touched)
			}
		})
	}
}

func TestReactOnMissingTargetSkipsDeltaButTouchesActor(t *testing.T) {
	repo := newFakeRepo()
	ledger := &fakeLedger{}
	service := newTestService(repo, ledger)

	err := service.React(context.Background(), ReactInput{
		Author:     "actor",
		TargetType: entities.TargetReply,
		TargetID:   "missing",
		Kind:       entities.ReactionLike,
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(ledger.deltas) != 0 {
		t.Fatalf("expected no ledger delta for missing target, got %v", ledger.deltas)
	}
	if len(ledger.touched) != 1 {
		t.Fatalf("expected actor touch, got %v", ledger.touched)
	}
}

func TestReactRejectsUnknownKind(t *testing.T) {
	service := newTestService(newFakeRepo(), &fakeLedger{})

	err := service.React(context.Background(), ReactInput{
		Author:     "actor",
		TargetType: entities.TargetPost,
		TargetID:   "p1",
		Kind:       entities.ReactionKind("love"),
	})
	if !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
}

func TestFollowGrantsOnceAndUnfollowRevokes(t *testing.T) {
	repo := newFakeRepo()
	ledger := &fakeLedger{}
	service := newTestService(repo, ledger)

	input := FollowInput{Follower: "a", Followee: "b"}
	if err := service.Follow(context.Background(), input); err != nil {
		t.Fatalf("expected follow success, got %v", err)
	}
	if err := service.Follow(context.Background(), input); err != nil {
		t.Fatalf("expected duplicate follow to be a no-op, got %v", err)
	}
	if len(ledger.deltas) != 1 {
		t.Fatalf("expected a single +5 for repeated follow, got %v", ledger.deltas)
	}
	if ledger.deltas[0].accountID != "b" || ledger.deltas[0].delta != 5 || ledger.deltas[0].reason != "followed" {
		t.Fatalf("expected +5 followed for b, got %+v", ledger.deltas[0])
	}

	if err := service.Unfollow(context.Background(), input); err != nil {
		t.Fatalf("expected unfollow success, got %v", err)
	}
	if len(ledger.deltas) != 2 {
		t.Fatalf("expected unfollow delta, got %v", ledger.deltas)
	}
	if ledger.deltas[1].delta != -5 || ledger.deltas[1].reason != "unfollowed" {
		t.Fatalf("expected -5 unfollowed, got %+v", ledger.deltas[1])
	}

	if err := service.Unfollow(context.Background(), input); err != nil {
		t.Fatalf("expected repeat unfollow to be a no-op, got %v", err)
	}
	if len(ledger.deltas) != 2 {
		t.Fatalf("expected no extra delta on repeat unfollow, got %v", ledger.deltas)
	}
	if len(ledger.touched) != 4 {
		t.Fatalf("expected follower touched on every call, got %d", len(ledger.touched))
	}
}

func TestFollowRejectsSelf(t *testing.T) {
	service := newTestService(newFakeRepo(), &fakeLedger{})

	err := service.Follow(context.Background(), FollowInput{Follower: "a", Followee: "a"})
	if !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request for self-follow, got %v", err)
	}
}
