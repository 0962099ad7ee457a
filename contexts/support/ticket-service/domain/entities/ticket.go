package entities

import "time"

const StatusOpen = "open"

type Ticket struct {
	TicketID  string
	Author    string
	Title     string
	Body      string
	Status    string
	CreatedAt time.Time
}
