package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	forummemory "agora/contexts/community/forum-service/adapters/memory"
	ledgermemory "agora/contexts/community/vitality-ledger/adapters/memory"
	ledgererrors "agora/contexts/community/vitality-ledger/domain/errors"
	"agora/contexts/moderation/admin-service/domain/entities"
)

// Store applies moderation against the other contexts' in-memory stores,
// the way the postgres adapter reaches across their tables. Only the audit
// rows live here.
type Store struct {
	mu      sync.Mutex
	grid    *ledgermemory.Store
	forum   *forummemory.Store
	reports []entities.AdminReport
}

func NewStore(grid *ledgermemory.Store, forum *forummemory.Store) *Store {
	return &Store{
		grid:  grid,
		forum: forum,
	}
}

func (s *Store) IsAdmin(ctx context.Context, accountID string) (bool, error) {
	row, err := s.grid.GetVitality(ctx, accountID)
	if err != nil {
		if errors.Is(err, ledgererrors.ErrAccountNotFound) {
			return false, nil
		}
		return false, err
	}
	return row.IsAdmin, nil
}

func (s *Store) DeletePost(ctx context.Context, postID string) (bool, error) {
	return s.forum.DeletePost(ctx, postID)
}

func (s *Store) DeleteReply(ctx context.Context, replyID string) (bool, error) {
	return s.forum.DeleteReply(ctx, replyID)
}

func (s *Store) BanAccount(_ context.Context, accountID string) (bool, error) {
	return s.grid.ForceExempt(accountID), nil
}

func (s *Store) AppendReport(_ context.Context, report entities.AdminReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, report)
	return nil
}

func (s *Store) ListReports(_ context.Context, limit int) ([]entities.AdminReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []entities.AdminReport
	for i := len(s.reports) - 1; i >= 0 && len(items) < limit; i-- {
		items = append(items, s.reports[i])
	}
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
