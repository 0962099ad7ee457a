package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"agora/contexts/moderation/admin-service/domain/entities"
	domainerrors "agora/contexts/moderation/admin-service/domain/errors"
	"agora/contexts/moderation/admin-service/ports"
)

type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

type ActionInput struct {
	Actor    string
	Action   string
	TargetID string
	Note     string
	// SecretOK is set by the HTTP layer when the request carried the
	// configured admin secret. It bypasses the actor's admin-flag check.
	SecretOK bool
}

type ActionResult struct {
	Action   string
	TargetID string
	Affected bool
}

// ExecuteAction authorizes, applies the action, and appends the audit row.
// A missing target is not an error; the audit row is written either way and
// Affected reports whether anything changed.
func (s Service) ExecuteAction(ctx context.Context, input ActionInput) (ActionResult, error) {
	actor := strings.TrimSpace(input.Actor)
	action := strings.TrimSpace(input.Action)
	targetID := strings.TrimSpace(input.TargetID)
	if actor == "" || targetID == "" {
		return ActionResult{}, domainerrors.ErrInvalidRequest
	}
	if !entities.IsValidAction(action) {
		return ActionResult{}, domainerrors.ErrInvalidRequest
	}

	if !input.SecretOK {
		isAdmin, err := s.Repo.IsAdmin(ctx, actor)
		if err != nil {
			return ActionResult{}, err
		}
		if !isAdmin {
			return ActionResult{}, domainerrors.ErrNotAuthorized
		}
	}

	var affected bool
	var err error
	switch action {
	case entities.ActionDeletePost:
		affected, err = s.Repo.DeletePost(ctx, targetID)
	case entities.ActionDeleteReply:
		affected, err = s.Repo.DeleteReply(ctx, targetID)
	case entities.ActionBanUser:
		affected, err = s.Repo.BanAccount(ctx, targetID)
	case entities.ActionWarnUser:
		affected = true
	}
	if err != nil {
		return ActionResult{}, err
	}

	reportID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return ActionResult{}, err
	}
	if err := s.Repo.AppendReport(ctx, entities.AdminReport{
		ReportID:  reportID,
		Actor:     actor,
		Action:    action,
		TargetID:  targetID,
		Note:      strings.TrimSpace(input.Note),
		CreatedAt: s.now(),
	}); err != nil {
		return ActionResult{}, err
	}

	resolveLogger(s.Logger).Info("admin action executed",
		"event", "admin_action_executed",
		"module", "moderation/admin-service",
		"layer", "application",
		"actor", actor,
		"action", action,
		"target_id", targetID,
		"affected", affected,
	)
	return ActionResult{
		Action:   action,
		TargetID: targetID,
		Affected: affected,
	}, nil
}

func (s Service) ListReports(ctx context.Context, limit int) ([]entities.AdminReport, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	return s.Repo.ListReports(ctx, limit)
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
