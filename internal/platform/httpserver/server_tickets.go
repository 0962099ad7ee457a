package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	ticketerrors "agora/contexts/support/ticket-service/domain/errors"
	tickethttp "agora/contexts/support/ticket-service/transport/http"
)

func writeTicketError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, tickethttp.ErrorResponse{Code: code, Message: message})
}

func writeTicketDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ticketerrors.ErrInvalidRequest):
		writeTicketError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeTicketError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleCreateTicket(w http.ResponseWriter, r *http.Request) {
	var req tickethttp.CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTicketError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.tickets.Handler.CreateTicketHandler(r.Context(), req)
	if err != nil {
		writeTicketDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListTickets(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.tickets.Handler.ListTicketsHandler(r.Context(), query.Get("author"), query.Get("limit"))
	if err != nil {
		writeTicketDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
