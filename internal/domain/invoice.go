package domain

import "time"

// Invoice is a read projection derived from a booking, its event, and the
// purchasing user. It has no lifecycle of its own and must be reproducible
// byte for byte from its sources at any later time.
type Invoice struct {
	InvoiceNumber   string        `json:"invoice_number"`
	IssueDate       time.Time     `json:"issue_date"`
	TicketCode      string        `json:"ticket_code"`
	EventName       string        `json:"event_name"`
	EventDate       time.Time     `json:"event_date"`
	EventLocation   string        `json:"event_location"`
	AttendeeName    string        `json:"attendee_name"`
	AttendeeEmail   string        `json:"attendee_email"`
	NumberOfTickets int           `json:"number_of_tickets"`
	UnitPrice       float64       `json:"unit_price"`
	TotalAmount     float64       `json:"total_amount"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
}
