package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	adminerrors "agora/contexts/moderation/admin-service/domain/errors"
	adminhttp "agora/contexts/moderation/admin-service/transport/http"
)

func writeAdminError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, adminhttp.ErrorResponse{Code: code, Message: message})
}

func writeAdminDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, adminerrors.ErrInvalidRequest):
		writeAdminError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, adminerrors.ErrNotAuthorized):
		writeAdminError(w, http.StatusForbidden, "forbidden", err.Error())
	default:
		writeAdminError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleAdminAction(w http.ResponseWriter, r *http.Request) {
	var req adminhttp.AdminActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAdminError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.admin.Handler.ExecuteActionHandler(r.Context(), req, s.secretOK(r))
	if err != nil {
		writeAdminDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListAdminReports(w http.ResponseWriter, r *http.Request) {
	if !s.secretOK(r) {
		writeAdminError(w, http.StatusForbidden, "forbidden", "admin secret required")
		return
	}

	resp, err := s.admin.Handler.ListReportsHandler(r.Context(), r.URL.Query().Get("limit"))
	if err != nil {
		writeAdminDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
