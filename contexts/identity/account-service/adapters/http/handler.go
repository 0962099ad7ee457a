package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"agora/contexts/identity/account-service/application"
	httptransport "agora/contexts/identity/account-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) InitProfileHandler(ctx context.Context, req httptransport.InitProfileRequest) (httptransport.InitProfileResponse, error) {
	result, err := h.Service.InitProfile(ctx, application.InitProfileInput{
		AccountID:   req.AccountID,
		Username:    req.Username,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		return httptransport.InitProfileResponse{}, err
	}

	resp := httptransport.InitProfileResponse{Status: "success"}
	resp.Data.AccountID = req.AccountID
	resp.Data.Created = result.Created
	resp.Data.Bootstrapped = result.Bootstrapped
	return resp, nil
}

func (h Handler) GetProfileHandler(ctx context.Context, accountID string) (httptransport.ProfileResponse, error) {
	profile, err := h.Service.GetProfile(ctx, accountID)
	if err != nil {
		return httptransport.ProfileResponse{}, err
	}

	resp := httptransport.ProfileResponse{Status: "success"}
	resp.Data.AccountID = profile.AccountID
	resp.Data.Username = profile.Username
	resp.Data.DisplayName = profile.DisplayName
	if profile.Exempt {
		resp.Data.Exempt = true
	} else {
		score := profile.Score
		resp.Data.Vitality = &score
	}
	resp.Data.IsAdmin = profile.IsAdmin
	resp.Data.IsSuperAdmin = profile.IsSuperAdmin
	resp.Data.LastActivity = profile.LastActivity.UTC().Format(time.RFC3339)
	resp.Data.JoinedAt = profile.JoinedAt.UTC().Format(time.RFC3339)
	return resp, nil
}
