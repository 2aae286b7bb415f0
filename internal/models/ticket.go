package models

import "time"

type TicketStatus string

const (
	TicketActive    TicketStatus = "active"
	TicketUsed      TicketStatus = "used"
	TicketCancelled TicketStatus = "cancelled"
)

type Ticket struct {
	ID           string       `json:"id"`
	EventID      string       `json:"event_id"`
	StudentID    string       `json:"student_id"`
	StudentName  string       `json:"student_name"`
	PurchaseDate time.Time    `json:"purchase_date"`
	Price        int64        `json:"price"`
	Status       TicketStatus `json:"status"`
}
