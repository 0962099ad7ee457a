package memory

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"agora/contexts/community/vitality-ledger/application"
	"agora/contexts/community/vitality-ledger/domain/entities"
	domainerrors "agora/contexts/community/vitality-ledger/domain/errors"
	"agora/contexts/community/vitality-ledger/ports"
	"agora/internal/shared/events"
	"agora/internal/shared/outbox"
)

type accountState struct {
	vitality     entities.Vitality
	isAdmin      bool
	isSuperAdmin bool
	lastActivity time.Time
}

// Store is the in-memory ledger adapter for local runtime and tests. The
// store mutex serializes delta application per store, which satisfies the
// lost-update guarantee the postgres adapter gets from atomic UPDATEs.
type Store struct {
	mu          sync.Mutex
	accounts    map[string]*accountState
	entries     []entities.LedgerEntry
	outboxRows  map[string]outbox.Message
	outboxOrder []string
	logger      *slog.Logger
}

func NewStore(logger *slog.Logger) *Store {
	return &Store{
		accounts:   make(map[string]*accountState),
		outboxRows: make(map[string]outbox.Message),
		logger:     application.ResolveLogger(logger),
	}
}

// SeedAccount registers an account projection for tests and local runtime.
func (s *Store) SeedAccount(accountID string, vitality entities.Vitality, isAdmin bool, isSuperAdmin bool, lastActivity time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[accountID] = &accountState{
		vitality:     vitality,
		isAdmin:      isAdmin,
		isSuperAdmin: isSuperAdmin,
		lastActivity: lastActivity.UTC(),
	}
}

// AccountCount reports how many accounts the store holds. The identity
// context shares this store as its account table in memory mode and uses
// the count for its first-account check.
func (s *Store) AccountCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts)
}

// ForceExempt switches the account to the exempt state and clears its admin
// flag. Used by the moderation context when banning an account. Reports
// whether the account exists.
func (s *Store) ForceExempt(accountID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return false
	}
	account.vitality = entities.Exempt()
	account.isAdmin = false
	return true
}

func (s *Store) ApplyDelta(_ context.Context, change ports.LedgerChange) (ports.ApplyOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[change.AccountID]
	if !ok {
		return ports.OutcomeNoAccount, nil
	}
	if account.vitality.Exempt {
		return ports.OutcomeExempt, nil
	}

	account.vitality = account.vitality.Apply(change.Delta)
	account.lastActivity = change.AppliedAt.UTC()

	s.entries = append(s.entries, entities.LedgerEntry{
		EntryID:   change.EntryID,
		AccountID: change.AccountID,
		Delta:     change.Delta,
		Reason:    change.Reason,
		CreatedAt: change.AppliedAt.UTC(),
	})

	payload, err := json.Marshal(changedEnvelope(change))
	if err != nil {
		return "", err
	}
	s.outboxRows[change.EventID] = outbox.Message{
		OutboxID:  change.EventID,
		EventType: "community.vitality.changed",
		Payload:   payload,
		Status:    outbox.StatusPending,
		CreatedAt: change.AppliedAt.UTC(),
	}
	s.outboxOrder = append(s.outboxOrder, change.EventID)

	return ports.OutcomeApplied, nil
}

func (s *Store) TouchActivity(_ context.Context, accountID string, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return false, nil
	}
	account.lastActivity = now.UTC()
	return true, nil
}

func (s *Store) ListDecayCandidates(_ context.Context, idleBefore time.Time) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var candidates []string
	for accountID, account := range s.accounts {
		if account.vitality.Exempt {
			continue
		}
		if account.vitality.Score <= 0 {
			continue
		}
		if !account.lastActivity.Before(idleBefore.UTC()) {
			continue
		}
		candidates = append(candidates, accountID)
	}
	sort.Strings(candidates)
	return candidates, nil
}

func (s *Store) GetVitality(_ context.Context, accountID string) (ports.AccountVitality, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return ports.AccountVitality{}, domainerrors.ErrAccountNotFound
	}
	return ports.AccountVitality{
		AccountID:    accountID,
		Vitality:     account.vitality,
		IsAdmin:      account.isAdmin,
		IsSuperAdmin: account.isSuperAdmin,
		LastActivity: account.lastActivity,
	}, nil
}

func (s *Store) ListEntries(_ context.Context, accountID string, limit int) ([]entities.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []entities.LedgerEntry
	for i := len(s.entries) - 1; i >= 0 && len(items) < limit; i-- {
		if s.entries[i].AccountID == accountID {
			items = append(items, s.entries[i])
		}
	}
	return items, nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]outbox.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []outbox.Message
	for _, outboxID := range s.outboxOrder {
		if len(items) >= limit {
			break
		}
		row := s.outboxRows[outboxID]
		if row.Status == outbox.StatusPending {
			items = append(items, row)
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxSent(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.outboxRows[outboxID]
	if !ok {
		return domainerrors.ErrInvalidRequest
	}
	row.Status = outbox.StatusSent
	s.outboxRows[outboxID] = row
	return nil
}

// EntryCount reports how many log entries exist for an account. Test hook.
func (s *Store) EntryCount(accountID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, entry := range s.entries {
		if entry.AccountID == accountID {
			count++
		}
	}
	return count
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func changedEnvelope(change ports.LedgerChange) events.Envelope {
	payload, _ := json.Marshal(map[string]any{
		"account_id": change.AccountID,
		"delta":      change.Delta,
		"reason":     change.Reason,
	})
	return events.Envelope{
		EventID:        change.EventID,
		EventType:      "community.vitality.changed",
		SourceService:  "vitality-ledger",
		OccurredAtUTC:  change.AppliedAt.UTC(),
		EntityType:     "account",
		EntityID:       change.AccountID,
		PayloadVersion: 1,
		Payload:        payload,
	}
}
