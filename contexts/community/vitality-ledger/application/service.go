package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"agora/contexts/community/vitality-ledger/domain/entities"
	domainerrors "agora/contexts/community/vitality-ledger/domain/errors"
	"agora/contexts/community/vitality-ledger/ports"
)

// Service applies bounded, audited deltas to per-account vitality. Bounds
// and exemption are enforced here and in the repository, never by callers.
type Service struct {
	Repo             ports.Repository
	Clock            ports.Clock
	IDGen            ports.IDGenerator
	InactivityWindow time.Duration
	Logger           *slog.Logger
}

type ApplyDeltaInput struct {
	AccountID string
	Delta     int
	Reason    string
}

type ApplyDeltaResult struct {
	Outcome ports.ApplyOutcome
}

type DecaySweepResult struct {
	Affected int
	Failed   int
}

func (s Service) ApplyDelta(ctx context.Context, input ApplyDeltaInput) (ApplyDeltaResult, error) {
	accountID := strings.TrimSpace(input.AccountID)
	if accountID == "" {
		return ApplyDeltaResult{}, domainerrors.ErrInvalidRequest
	}
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		reason = entities.ReasonSystem
	}

	entryID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ApplyDeltaResult{}, err
	}
	eventID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ApplyDeltaResult{}, err
	}

	outcome, err := s.Repo.ApplyDelta(ctx, ports.LedgerChange{
		EntryID:   entryID,
		EventID:   eventID,
		AccountID: accountID,
		Delta:     input.Delta,
		Reason:    reason,
		AppliedAt: s.now(),
	})
	if err != nil {
		return ApplyDeltaResult{}, err
	}

	logger := ResolveLogger(s.Logger)
	if outcome == ports.OutcomeApplied {
		logger.Info("vitality delta applied",
			"event", "vitality_delta_applied",
			"module", "community/vitality-ledger",
			"layer", "application",
			"account_id", accountID,
			"delta", input.Delta,
			"reason", reason,
		)
	} else {
		logger.Debug("vitality delta skipped",
			"event", "vitality_delta_skipped",
			"module", "community/vitality-ledger",
			"layer", "application",
			"account_id", accountID,
			"outcome", string(outcome),
		)
	}
	return ApplyDeltaResult{Outcome: outcome}, nil
}

func (s Service) TouchActivity(ctx context.Context, accountID string) error {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return domainerrors.ErrInvalidRequest
	}

	touched, err := s.Repo.TouchActivity(ctx, accountID, s.now())
	if err != nil {
		return err
	}
	if !touched {
		ResolveLogger(s.Logger).Debug("activity touch skipped for unknown account",
			"event", "vitality_touch_skipped",
			"module", "community/vitality-ledger",
			"layer", "application",
			"account_id", accountID,
		)
	}
	return nil
}

// RunWeeklyDecay decrements every non-exempt account idle past the
// inactivity window with a positive score. Accounts are processed
// independently; one failure never aborts the sweep.
func (s Service) RunWeeklyDecay(ctx context.Context) (DecaySweepResult, error) {
	cutoff := s.now().Add(-s.inactivityWindow())
	candidates, err := s.Repo.ListDecayCandidates(ctx, cutoff)
	if err != nil {
		return DecaySweepResult{}, err
	}

	logger := ResolveLogger(s.Logger)
	result := DecaySweepResult{}
	for _, accountID := range candidates {
		applied, err := s.ApplyDelta(ctx, ApplyDeltaInput{
			AccountID: accountID,
			Delta:     entities.DeltaWeeklyDecay,
			Reason:    entities.ReasonWeeklyDecay,
		})
		if err != nil {
			result.Failed++
			logger.Error("decay decrement failed",
				"event", "vitality_decay_account_failed",
				"module", "community/vitality-ledger",
				"layer", "application",
				"account_id", accountID,
				"error", err.Error(),
			)
			continue
		}
		if applied.Outcome == ports.OutcomeApplied {
			result.Affected++
		}
	}

	logger.Info("weekly decay sweep completed",
		"event", "vitality_decay_completed",
		"module", "community/vitality-ledger",
		"layer", "application",
		"candidates", len(candidates),
		"affected", result.Affected,
		"failed", result.Failed,
	)
	return result, nil
}

func (s Service) GetVitality(ctx context.Context, accountID string) (ports.AccountVitality, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return ports.AccountVitality{}, domainerrors.ErrInvalidRequest
	}
	return s.Repo.GetVitality(ctx, accountID)
}

func (s Service) History(ctx context.Context, accountID string, limit int) ([]entities.LedgerEntry, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, domainerrors.ErrInvalidRequest
	}
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	return s.Repo.ListEntries(ctx, accountID, limit)
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func (s Service) inactivityWindow() time.Duration {
	if s.InactivityWindow <= 0 {
		return 7 * 24 * time.Hour
	}
	return s.InactivityWindow
}
