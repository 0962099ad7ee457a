package httpserver

import (
	"errors"
	"net/http"

	vitalityerrors "agora/contexts/community/vitality-ledger/domain/errors"
	vitalityhttp "agora/contexts/community/vitality-ledger/transport/http"
)

func writeVitalityError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, vitalityhttp.ErrorResponse{Code: code, Message: message})
}

func writeVitalityDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, vitalityerrors.ErrInvalidRequest):
		writeVitalityError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, vitalityerrors.ErrAccountNotFound):
		writeVitalityError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		writeVitalityError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleGetVitality(w http.ResponseWriter, r *http.Request) {
	accountID := r.PathValue("account_id")
	resp, err := s.vitality.Handler.GetVitalityHandler(r.Context(), accountID)
	if err != nil {
		writeVitalityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetVitalityHistory(w http.ResponseWriter, r *http.Request) {
	accountID := r.PathValue("account_id")
	resp, err := s.vitality.Handler.GetHistoryHandler(r.Context(), accountID, r.URL.Query().Get("limit"))
	if err != nil {
		writeVitalityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// The decay sweep also runs on the worker schedule; this endpoint exists so
// operators can trigger it out of band.
func (s *Server) handleRunWeeklyDecay(w http.ResponseWriter, r *http.Request) {
	if !s.secretOK(r) {
		writeVitalityError(w, http.StatusForbidden, "forbidden", "admin secret required")
		return
	}

	resp, err := s.vitality.Handler.RunWeeklyDecayHandler(r.Context())
	if err != nil {
		writeVitalityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
