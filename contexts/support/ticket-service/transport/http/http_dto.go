package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateTicketRequest struct {
	Author string `json:"author"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

type TicketDTO struct {
	TicketID  string `json:"ticket_id"`
	Author    string `json:"author"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

type CreateTicketResponse struct {
	Status string    `json:"status"`
	Data   TicketDTO `json:"data"`
}

type ListTicketsResponse struct {
	Status string `json:"status"`
	Data   struct {
		Tickets []TicketDTO `json:"tickets"`
	} `json:"data"`
}
