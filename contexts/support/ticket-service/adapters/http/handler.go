package httpadapter

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"agora/contexts/support/ticket-service/application"
	"agora/contexts/support/ticket-service/domain/entities"
	domainerrors "agora/contexts/support/ticket-service/domain/errors"
	httptransport "agora/contexts/support/ticket-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateTicketHandler(ctx context.Context, req httptransport.CreateTicketRequest) (httptransport.CreateTicketResponse, error) {
	ticket, err := h.Service.CreateTicket(ctx, application.CreateTicketInput{
		Author: req.Author,
		Title:  req.Title,
		Body:   req.Body,
	})
	if err != nil {
		return httptransport.CreateTicketResponse{}, err
	}
	return httptransport.CreateTicketResponse{
		Status: "success",
		Data:   toTicketDTO(ticket),
	}, nil
}

func (h Handler) ListTicketsHandler(ctx context.Context, author string, limitRaw string) (httptransport.ListTicketsResponse, error) {
	limit := 0
	if strings.TrimSpace(limitRaw) != "" {
		parsed, err := strconv.Atoi(strings.TrimSpace(limitRaw))
		if err != nil {
			return httptransport.ListTicketsResponse{}, domainerrors.ErrInvalidRequest
		}
		limit = parsed
	}

	tickets, err := h.Service.ListTickets(ctx, author, limit)
	if err != nil {
		return httptransport.ListTicketsResponse{}, err
	}

	resp := httptransport.ListTicketsResponse{Status: "success"}
	resp.Data.Tickets = make([]httptransport.TicketDTO, 0, len(tickets))
	for _, ticket := range tickets {
		resp.Data.Tickets = append(resp.Data.Tickets, toTicketDTO(ticket))
	}
	return resp, nil
}

func toTicketDTO(ticket entities.Ticket) httptransport.TicketDTO {
	return httptransport.TicketDTO{
		TicketID:  ticket.TicketID,
		Author:    ticket.Author,
		Title:     ticket.Title,
		Body:      ticket.Body,
		Status:    ticket.Status,
		CreatedAt: ticket.CreatedAt.UTC().Format(time.RFC3339),
	}
}
