package httpadapter

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"agora/contexts/community/vitality-ledger/application"
	domainerrors "agora/contexts/community/vitality-ledger/domain/errors"
	httptransport "agora/contexts/community/vitality-ledger/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) GetVitalityHandler(ctx context.Context, accountID string) (httptransport.VitalityResponse, error) {
	item, err := h.Service.GetVitality(ctx, accountID)
	if err != nil {
		return httptransport.VitalityResponse{}, err
	}

	resp := httptransport.VitalityResponse{Status: "success"}
	resp.Data.AccountID = item.AccountID
	if item.Vitality.Exempt {
		resp.Data.Exempt = true
	} else {
		score := item.Vitality.Score
		resp.Data.Vitality = &score
	}
	resp.Data.IsAdmin = item.IsAdmin
	resp.Data.IsSuperAdmin = item.IsSuperAdmin
	resp.Data.LastActivity = item.LastActivity.UTC().Format(time.RFC3339)
	return resp, nil
}

func (h Handler) GetHistoryHandler(ctx context.Context, accountID string, limitRaw string) (httptransport.HistoryResponse, error) {
	limit := 0
	if strings.TrimSpace(limitRaw) != "" {
		parsed, err := strconv.Atoi(strings.TrimSpace(limitRaw))
		if err != nil {
			return httptransport.HistoryResponse{}, domainerrors.ErrInvalidRequest
		}
		limit = parsed
	}

	entries, err := h.Service.History(ctx, accountID, limit)
	if err != nil {
		return httptransport.HistoryResponse{}, err
	}

	resp := httptransport.HistoryResponse{Status: "success"}
	resp.Data.AccountID = strings.TrimSpace(accountID)
	resp.Data.Entries = make([]httptransport.HistoryEntryDTO, 0, len(entries))
	for _, entry := range entries {
		resp.Data.Entries = append(resp.Data.Entries, httptransport.HistoryEntryDTO{
			EntryID:   entry.EntryID,
			Delta:     entry.Delta,
			Reason:    entry.Reason,
			CreatedAt: entry.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return resp, nil
}

func (h Handler) RunWeeklyDecayHandler(ctx context.Context) (httptransport.DecayResponse, error) {
	result, err := h.Service.RunWeeklyDecay(ctx)
	if err != nil {
		return httptransport.DecayResponse{}, err
	}

	resp := httptransport.DecayResponse{Status: "success"}
	resp.Data.Affected = result.Affected
	resp.Data.Failed = result.Failed
	return resp, nil
}
