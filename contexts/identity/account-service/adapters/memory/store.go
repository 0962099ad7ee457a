package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	ledgermemory "agora/contexts/community/vitality-ledger/adapters/memory"
	ledgerentities "agora/contexts/community/vitality-ledger/domain/entities"
	ledgererrors "agora/contexts/community/vitality-ledger/domain/errors"
	"agora/contexts/identity/account-service/domain/entities"
	domainerrors "agora/contexts/identity/account-service/domain/errors"
	"agora/contexts/identity/account-service/ports"
)

type profileRow struct {
	username    string
	displayName string
	joinedAt    time.Time
}

// Store keeps profile handles locally and shares the ledger's in-memory
// store as the account grid, the same way the postgres adapters of both
// contexts share the accounts table. The store mutex serializes
// registrations, which keeps the first-account check atomic.
type Store struct {
	mu       sync.Mutex
	grid     *ledgermemory.Store
	profiles map[string]profileRow
}

func NewStore(grid *ledgermemory.Store) *Store {
	return &Store{
		grid:     grid,
		profiles: make(map[string]profileRow),
	}
}

func (s *Store) CreateAccount(_ context.Context, registration ports.Registration) (ports.RegisterOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[registration.AccountID]; ok {
		return ports.OutcomeExisting, nil
	}

	first := s.grid.AccountCount() == 0
	vitality := ledgerentities.Normal(0)
	if first {
		vitality = ledgerentities.Exempt()
	}
	s.grid.SeedAccount(registration.AccountID, vitality, first, first, registration.JoinedAt)
	s.profiles[registration.AccountID] = profileRow{
		username:    registration.Username,
		displayName: registration.DisplayName,
		joinedAt:    registration.JoinedAt.UTC(),
	}

	if first {
		return ports.OutcomeBootstrapped, nil
	}
	return ports.OutcomeCreated, nil
}

func (s *Store) GetProfile(ctx context.Context, accountID string) (entities.Profile, error) {
	s.mu.Lock()
	row, ok := s.profiles[accountID]
	s.mu.Unlock()
	if !ok {
		return entities.Profile{}, domainerrors.ErrAccountNotFound
	}

	grid, err := s.grid.GetVitality(ctx, accountID)
	if err != nil {
		if errors.Is(err, ledgererrors.ErrAccountNotFound) {
			return entities.Profile{}, domainerrors.ErrAccountNotFound
		}
		return entities.Profile{}, err
	}

	return entities.Profile{
		AccountID:    accountID,
		Username:     row.username,
		DisplayName:  row.displayName,
		Exempt:       grid.Vitality.Exempt,
		Score:        grid.Vitality.Score,
		IsAdmin:      grid.IsAdmin,
		IsSuperAdmin: grid.IsSuperAdmin,
		LastActivity: grid.LastActivity,
		JoinedAt:     row.joinedAt,
	}, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}
