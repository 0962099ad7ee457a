package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"agora/contexts/moderation/admin-service/domain/entities"
	domainerrors "agora/contexts/moderation/admin-service/domain/errors"
)

type fakeRepo struct {
	admins  map[string]bool
	posts   map[string]bool
	replies map[string]bool
	banned  []string
	reports []entities.AdminReport
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		admins:  make(map[string]bool),
		posts:   make(map[string]bool),
		replies: make(map[string]bool),
	}
}

func (r *fakeRepo) IsAdmin(_ context.Context, accountID string) (bool, error) {
	return r.admins[accountID], nil
}

func (r *fakeRepo) DeletePost(_ context.Context, postID string) (bool, error) {
	if !r.posts[postID] {
		return false, nil
	}
	delete(r.posts, postID)
	return true, nil
}

func (r *fakeRepo) DeleteReply(_ context.Context, replyID string) (bool, error) {
	if !r.replies[replyID] {
		return false, nil
	}
	delete(r.replies, replyID)
	return true, nil
}

func (r *fakeRepo) BanAccount(_ context.Context, accountID string) (bool, error) {
	r.banned = append(r.banned, accountID)
	r.admins[accountID] = false
	return true, nil
}

func (r *fakeRepo) AppendReport(_ context.Context, report entities.AdminReport) error {
	r.reports = append(r.reports, report)
	return nil
}

func (r *fakeRepo) ListReports(_ context.Context, limit int) ([]entities.AdminReport, error) {
	var items []entities.AdminReport
	for i := len(r.reports) - 1; i >= 0 && len(items) < limit; i-- {
		items = append(items, r.reports[i])
	}
	return items, nil
}

type sequenceIDs struct {
	next int
}

func (g *sequenceIDs) NewID(_ context.Context) (string, error) {
	g.next++
	return fmt.Sprintf("report-%d", g.next), nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func newTestService(repo *fakeRepo) Service {
	return Service{
		Repo:  repo,
		Clock: fixedClock{now: time.Date(2026, time.April, 1, 10, 0, 0, 0, time.UTC)},
		IDGen: &sequenceIDs{},
	}
}

func TestExecuteActionRequiresAdminOrSecret(t *testing.T) {
	repo := newFakeRepo()
	repo.posts["p1"] = true
	service := newTestService(repo)

	_, err := service.ExecuteAction(context.Background(), ActionInput{
		Actor:    "pleb",
		Action:   entities.ActionDeletePost,
		TargetID: "p1",
	})
	if !errors.Is(err, domainerrors.ErrNotAuthorized) {
		t.Fatalf("expected not authorized, got %v", err)
	}
	if len(repo.reports) != 0 {
		t.Fatalf("expected no audit row for rejected action, got %d", len(repo.reports))
	}

	result, err := service.ExecuteAction(context.Background(), ActionInput{
		Actor:    "pleb",
		Action:   entities.ActionDeletePost,
		TargetID: "p1",
		SecretOK: true,
	})
	if err != nil {
		t.Fatalf("expected secret to authorize, got %v", err)
	}
	if !result.Affected {
		t.Fatalf("expected post deletion, got %+v", result)
	}
}

func TestExecuteActionAdminFlagAuthorizes(t *testing.T) {
	repo := newFakeRepo()
	repo.admins["mod"] = true
	repo.replies["r1"] = true
	service := newTestService(repo)

	result, err := service.ExecuteAction(context.Background(), ActionInput{
		Actor:    "mod",
		Action:   entities.ActionDeleteReply,
		TargetID: "r1",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if !result.Affected {
		t.Fatalf("expected reply deletion, got %+v", result)
	}
}

func TestExecuteActionAlwaysAppendsAuditRow(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	result, err := service.ExecuteAction(context.Background(), ActionInput{
		Actor:    "mod",
		Action:   entities.ActionDeletePost,
		TargetID: "ghost",
		SecretOK: true,
	})
	if err != nil {
		t.Fatalf("expected success for missing target, got %v", err)
	}
	if result.Affected {
		t.Fatalf("expected no effect for missing target, got %+v", result)
	}
	if len(repo.reports) != 1 {
		t.Fatalf("expected audit row despite missing target, got %d", len(repo.reports))
	}
	report := repo.reports[0]
	if report.Actor != "mod" || report.Action != entities.ActionDeletePost || report.TargetID != "ghost" {
		t.Fatalf("unexpected audit row %+v", report)
	}
}

func TestExecuteActionBanAndWarn(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	result, err := service.ExecuteAction(context.Background(), ActionInput{
		Actor:    "mod",
		Action:   entities.ActionBanUser,
		TargetID: "acct-2",
		SecretOK: true,
	})
	if err != nil {
		t.Fatalf("expected ban to succeed, got %v", err)
	}
	if !result.Affected || len(repo.banned) != 1 || repo.banned[0] != "acct-2" {
		t.Fatalf("expected acct-2 banned, got %+v banned=%v", result, repo.banned)
	}

	result, err = service.ExecuteAction(context.Background(), ActionInput{
		Actor:    "mod",
		Action:   entities.ActionWarnUser,
		TargetID: "acct-3",
		Note:     "tone it down",
		SecretOK: true,
	})
	if err != nil {
		t.Fatalf("expected warn to succeed, got %v", err)
	}
	if !result.Affected {
		t.Fatalf("expected warn to report affected, got %+v", result)
	}
	if len(repo.reports) != 2 || repo.reports[1].Note != "tone it down" {
		t.Fatalf("expected warn audit row with note, got %+v", repo.reports)
	}
}

func TestExecuteActionRejectsUnknownAction(t *testing.T) {
	service := newTestService(newFakeRepo())

	_, err := service.ExecuteAction(context.Background(), ActionInput{
		Actor:    "mod",
		Action:   "shadowban",
		TargetID: "acct-2",
		SecretOK: true,
	})
	if !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
}
