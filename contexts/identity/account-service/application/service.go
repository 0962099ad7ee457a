package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"agora/contexts/identity/account-service/domain/entities"
	domainerrors "agora/contexts/identity/account-service/domain/errors"
	"agora/contexts/identity/account-service/ports"
)

type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	Logger *slog.Logger
}

type InitProfileInput struct {
	AccountID   string
	Username    string
	DisplayName string
}

type InitProfileResult struct {
	Created      bool
	Bootstrapped bool
}

// InitProfile registers an account if it does not exist yet. Repeated calls
// for the same account are a no-op, so clients may retry freely. The very
// first account in the store is bootstrapped as an exempt super admin.
func (s Service) InitProfile(ctx context.Context, input InitProfileInput) (InitProfileResult, error) {
	accountID := strings.TrimSpace(input.AccountID)
	username := strings.TrimSpace(input.Username)
	if accountID == "" || username == "" {
		return InitProfileResult{}, domainerrors.ErrInvalidRequest
	}
	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		displayName = username
	}

	outcome, err := s.Repo.CreateAccount(ctx, ports.Registration{
		AccountID:   accountID,
		Username:    username,
		DisplayName: displayName,
		JoinedAt:    s.now(),
	})
	if err != nil {
		return InitProfileResult{}, err
	}

	switch outcome {
	case ports.OutcomeBootstrapped:
		resolveLogger(s.Logger).Info("first account bootstrapped as exempt super admin",
			"event", "account_bootstrapped",
			"module", "identity/account-service",
			"layer", "application",
			"account_id", accountID,
		)
		return InitProfileResult{Created: true, Bootstrapped: true}, nil
	case ports.OutcomeCreated:
		resolveLogger(s.Logger).Info("account created",
			"event", "account_created",
			"module", "identity/account-service",
			"layer", "application",
			"account_id", accountID,
		)
		return InitProfileResult{Created: true}, nil
	default:
		return InitProfileResult{}, nil
	}
}

func (s Service) GetProfile(ctx context.Context, accountID string) (entities.Profile, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return entities.Profile{}, domainerrors.ErrInvalidRequest
	}
	return s.Repo.GetProfile(ctx, accountID)
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
