package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	accounterrors "agora/contexts/identity/account-service/domain/errors"
	accounthttp "agora/contexts/identity/account-service/transport/http"
)

func writeProfileError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, accounthttp.ErrorResponse{Code: code, Message: message})
}

func writeProfileDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, accounterrors.ErrInvalidRequest):
		writeProfileError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, accounterrors.ErrAccountNotFound):
		writeProfileError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		writeProfileError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleInitProfile(w http.ResponseWriter, r *http.Request) {
	var req accounthttp.InitProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProfileError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.accounts.Handler.InitProfileHandler(r.Context(), req)
	if err != nil {
		writeProfileDomainError(w, err)
		return
	}
	status := http.StatusOK
	if resp.Data.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	accountID := r.PathValue("account_id")
	resp, err := s.accounts.Handler.GetProfileHandler(r.Context(), accountID)
	if err != nil {
		writeProfileDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
