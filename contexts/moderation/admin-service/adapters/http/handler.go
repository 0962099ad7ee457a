package httpadapter

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"agora/contexts/moderation/admin-service/application"
	domainerrors "agora/contexts/moderation/admin-service/domain/errors"
	httptransport "agora/contexts/moderation/admin-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) ExecuteActionHandler(ctx context.Context, req httptransport.AdminActionRequest, secretOK bool) (httptransport.AdminActionResponse, error) {
	result, err := h.Service.ExecuteAction(ctx, application.ActionInput{
		Actor:    req.Actor,
		Action:   req.Action,
		TargetID: req.TargetID,
		Note:     req.Note,
		SecretOK: secretOK,
	})
	if err != nil {
		return httptransport.AdminActionResponse{}, err
	}

	resp := httptransport.AdminActionResponse{Status: "success"}
	resp.Data.Action = result.Action
	resp.Data.TargetID = result.TargetID
	resp.Data.Affected = result.Affected
	return resp, nil
}

func (h Handler) ListReportsHandler(ctx context.Context, limitRaw string) (httptransport.ListReportsResponse, error) {
	limit := 0
	if strings.TrimSpace(limitRaw) != "" {
		parsed, err := strconv.Atoi(strings.TrimSpace(limitRaw))
		if err != nil {
			return httptransport.ListReportsResponse{}, domainerrors.ErrInvalidRequest
		}
		limit = parsed
	}

	reports, err := h.Service.ListReports(ctx, limit)
	if err != nil {
		return httptransport.ListReportsResponse{}, err
	}

	resp := httptransport.ListReportsResponse{Status: "success"}
	resp.Data.Reports = make([]httptransport.ReportDTO, 0, len(reports))
	for _, report := range reports {
		resp.Data.Reports = append(resp.Data.Reports, httptransport.ReportDTO{
			ReportID:  report.ReportID,
			Actor:     report.Actor,
			Action:    report.Action,
			TargetID:  report.TargetID,
			Note:      report.Note,
			CreatedAt: report.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return resp, nil
}
