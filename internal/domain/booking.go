package domain

import "time"

// PaymentStatus is the payment state of a booking.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// IsActive reports whether the status counts toward the one-active-booking
// per user per event rule.
func (s PaymentStatus) IsActive() bool {
	return s == PaymentStatusPending || s == PaymentStatusCompleted
}

// IsTerminal reports whether the status can never change again.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusRefunded || s == PaymentStatusFailed
}

// CanTransitionTo validates a payment status transition. PENDING -> COMPLETED
// and PENDING -> FAILED are reserved for an asynchronous payment integration;
// the current booking flow creates bookings as COMPLETED directly.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	switch s {
	case PaymentStatusPending:
		return next == PaymentStatusCompleted || next == PaymentStatusFailed
	case PaymentStatusCompleted:
		return next == PaymentStatusRefunded
	default:
		return false
	}
}

// Booking is a durable allocation of tickets for a user against an event.
// Bookings are never deleted; refunds and failures are status transitions
// so the audit trail survives.
type Booking struct {
	ID              string        `json:"id"`
	EventID         string        `json:"event_id"`
	UserID          string        `json:"user_id"`
	NumberOfTickets int           `json:"number_of_tickets"`
	TicketCode      string        `json:"ticket_code"`
	PaymentStatus   PaymentStatus `json:"payment_status"`
	RegisteredAt    time.Time     `json:"registered_at"`
}

// BookingDetail is a booking joined with the event fields the UI renders
// on the my-bookings page.
type BookingDetail struct {
	Booking
	EventName      string    `json:"event_name"`
	EventLocation  string    `json:"event_location"`
	EventStartDate time.Time `json:"event_start_date"`
	EventEndDate   time.Time `json:"event_end_date"`
	TicketPrice    float64   `json:"ticket_price"`
}
