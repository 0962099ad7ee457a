package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"agora/contexts/community/vitality-ledger/domain/entities"
	domainerrors "agora/contexts/community/vitality-ledger/domain/errors"
	"agora/contexts/community/vitality-ledger/ports"
)

type fakeRepo struct {
	changes    []ports.LedgerChange
	outcomes   map[string]ports.ApplyOutcome
	failFor    map[string]error
	candidates []string
	touched    []string
	touchKnown bool
}

func (r *fakeRepo) ApplyDelta(_ context.Context, change ports.LedgerChange) (ports.ApplyOutcome, error) {
	if err, ok := r.failFor[change.AccountID]; ok {
		return "", err
	}
	r.changes = append(r.changes, change)
	if outcome, ok := r.outcomes[change.AccountID]; ok {
		return outcome, nil
	}
	return ports.OutcomeApplied, nil
}

func (r *fakeRepo) TouchActivity(_ context.Context, accountID string, _ time.Time) (bool, error) {
	r.touched = append(r.touched, accountID)
	return r.touchKnown, nil
}

func (r *fakeRepo) ListDecayCandidates(_ context.Context, _ time.Time) ([]string, error) {
	return r.candidates, nil
}

func (r *fakeRepo) GetVitality(_ context.Context, accountID string) (ports.AccountVitality, error) {
	return ports.AccountVitality{AccountID: accountID}, nil
}

func (r *fakeRepo) ListEntries(_ context.Context, _ string, _ int) ([]entities.LedgerEntry, error) {
	return nil, nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type sequenceIDs struct {
	next int
}

func (g *sequenceIDs) NewID(_ context.Context) (string, error) {
	g.next++
	return fmt.Sprintf("id-%d", g.next), nil
}

func newTestService(repo *fakeRepo) Service {
	return Service{
		Repo:  repo,
		Clock: fixedClock{now: time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)},
		IDGen: &sequenceIDs{},
	}
}

func TestApplyDeltaDefaultsReasonToSystem(t *testing.T) {
	repo := &fakeRepo{}
	service := newTestService(repo)

	_, err := service.ApplyDelta(context.Background(), ApplyDeltaInput{AccountID: "acct-1", Delta: 3})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(repo.changes) != 1 {
		t.Fatalf("expected one repository change, got %d", len(repo.changes))
	}
	if repo.changes[0].Reason != entities.ReasonSystem {
		t.Fatalf("expected system reason, got %q", repo.changes[0].Reason)
	}
	if repo.changes[0].Delta != 3 {
		t.Fatalf("expected raw delta 3, got %d", repo.changes[0].Delta)
	}
}

func TestApplyDeltaRejectsBlankAccount(t *testing.T) {
	service := newTestService(&fakeRepo{})

	_, err := service.ApplyDelta(context.Background(), ApplyDeltaInput{AccountID: "   ", Delta: 1})
	if !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
}

func TestApplyDeltaReportsNoOpOutcomes(t *testing.T) {
	repo := &fakeRepo{outcomes: map[string]ports.ApplyOutcome{
		"ghost": ports.OutcomeNoAccount,
		"root":  ports.OutcomeExempt,
	}}
	service := newTestService(repo)

	result, err := service.ApplyDelta(context.Background(), ApplyDeltaInput{AccountID: "ghost", Delta: 1})
	if err != nil || result.Outcome != ports.OutcomeNoAccount {
		t.Fatalf("expected no_account outcome, got %v %v", result.Outcome, err)
	}
	result, err = service.ApplyDelta(context.Background(), ApplyDeltaInput{AccountID: "root", Delta: 1})
	if err != nil || result.Outcome != ports.OutcomeExempt {
		t.Fatalf("expected exempt outcome, got %v %v", result.Outcome, err)
	}
}

func TestRunWeeklyDecayCountsOnlyAppliedAccounts(t *testing.T) {
	repo := &fakeRepo{
		candidates: []string{"a", "b", "c", "d"},
		outcomes:   map[string]ports.ApplyOutcome{"c": ports.OutcomeExempt},
		failFor:    map[string]error{"b": errors.New("storage down")},
	}
	service := newTestService(repo)

	result, err := service.RunWeeklyDecay(context.Background())
	if err != nil {
		t.Fatalf("expected sweep to survive per-account failure, got %v", err)
	}
	if result.Affected != 2 {
		t.Fatalf("expected 2 affected accounts, got %d", result.Affected)
	}
	if result.Failed != 1 {
		t.Fatalf("expected 1 failed account, got %d", result.Failed)
	}
	for _, change := range repo.changes {
		if change.Delta != entities.DeltaWeeklyDecay || change.Reason != entities.ReasonWeeklyDecay {
			t.Fatalf("expected weekly_decay -1 change, got %+v", change)
		}
	}
}

func TestTouchActivityIgnoresUnknownAccount(t *testing.T) {
	repo := &fakeRepo{touchKnown: false}
	service := newTestService(repo)

	if err := service.TouchActivity(context.Background(), "nobody"); err != nil {
		t.Fatalf("expected silent no-op for unknown account, got %v", err)
	}
	if len(repo.touched) != 1 || repo.touched[0] != "nobody" {
		t.Fatalf("expected one touch attempt, got %v", repo.touched)
	}
}
