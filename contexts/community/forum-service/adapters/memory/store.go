package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"agora/contexts/community/forum-service/domain/entities"
)

// Store is the in-memory forum adapter for local runtime and tests.
type Store struct {
	mu        sync.RWMutex
	posts     map[string]entities.Post
	replies   map[string]entities.Reply
	reactions map[string]entities.Reaction
	follows   map[string]entities.Follow
}

func NewStore() *Store {
	return &Store{
		posts:     make(map[string]entities.Post),
		replies:   make(map[string]entities.Reply),
		reactions: make(map[string]entities.Reaction),
		follows:   make(map[string]entities.Follow),
	}
}

func (s *Store) CreatePost(_ context.Context, post entities.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[post.PostID] = post
	return nil
}

func (s *Store) ListPosts(_ context.Context, limit int) ([]entities.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Post, 0, len(s.posts))
	for _, post := range s.posts {
		items = append(items, post)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].PostID < items[j].PostID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) GetPostAuthor(_ context.Context, postID string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[postID]
	if !ok {
		return "", false, nil
	}
	return post.Author, true, nil
}

func (s *Store) CreateReply(_ context.Context, reply entities.Reply) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[reply.ReplyID] = reply
	return nil
}

func (s *Store) GetReplyAuthor(_ context.Context, replyID string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reply, ok := s.replies[replyID]
	if !ok {
		return "", false, nil
	}
	return reply.Author, true, nil
}

func (s *Store) CreateReaction(_ context.Context, reaction entities.Reaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reactions[reaction.ReactionID] = reaction
	return nil
}

func (s *Store) CreateFollow(_ context.Context, follow entities.Follow) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := followKey(follow.Follower, follow.Followee)
	if _, exists := s.follows[key]; exists {
		return false, nil
	}
	s.follows[key] = follow
	return true, nil
}

func (s *Store) DeleteFollow(_ context.Context, follower string, followee string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := followKey(follower, followee)
	if _, exists := s.follows[key]; !exists {
		return false, nil
	}
	delete(s.follows, key)
	return true, nil
}

func (s *Store) ListFollowers(_ context.Context, accountID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var followers []string
	for _, follow := range s.follows {
		if follow.Followee == accountID {
			followers = append(followers, follow.Follower)
		}
	}
	sort.Strings(followers)
	return followers, nil
}

func (s *Store) ListFollowing(_ context.Context, accountID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var following []string
	for _, follow := range s.follows {
		if follow.Follower == accountID {
			following = append(following, follow.Followee)
		}
	}
	sort.Strings(following)
	return following, nil
}

// DeletePost removes a post. Shared with the moderation context in the
// in-memory runtime.
func (s *Store) DeletePost(_ context.Context, postID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[postID]; !ok {
		return false, nil
	}
	delete(s.posts, postID)
	return true, nil
}

func (s *Store) DeleteReply(_ context.Context, replyID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.replies[replyID]; !ok {
		return false, nil
	}
	delete(s.replies, replyID)
	return true, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func followKey(follower string, followee string) string {
	return follower + "\x00" + followee
}
