package dto

import (
	"fmt"

	"github.com/ayushMishra464/EventManagement/internal/domain"
)

// CreateBookingRequest is the payload for POST /bookings.
type CreateBookingRequest struct {
	EventID         string `json:"event_id"`
	NumberOfTickets int    `json:"number_of_tickets"`
}

// Validate checks the request and returns (false, reason) when invalid.
func (r *CreateBookingRequest) Validate() (bool, string) {
	if r.EventID == "" {
		return false, "event_id is required"
	}
	if r.NumberOfTickets < 1 {
		return false, "number_of_tickets must be at least 1"
	}
	return true, ""
}

// BookingResponse is the wire shape of a booking.
type BookingResponse struct {
	ID              string `json:"id"`
	EventID         string `json:"event_id"`
	UserID          string `json:"user_id"`
	NumberOfTickets int    `json:"number_of_tickets"`
	TicketCode      string `json:"ticket_code"`
	PaymentStatus   string `json:"payment_status"`
	RegisteredAt    string `json:"registered_at"`
}

// ToBookingResponse maps a domain booking to its wire shape.
func ToBookingResponse(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:              b.ID,
		EventID:         b.EventID,
		UserID:          b.UserID,
		NumberOfTickets: b.NumberOfTickets,
		TicketCode:      b.TicketCode,
		PaymentStatus:   string(b.PaymentStatus),
		RegisteredAt:    b.RegisteredAt.Format(timeFormat),
	}
}

// BookingDetailResponse is a booking enriched with event fields for the
// my-bookings listing.
type BookingDetailResponse struct {
	BookingResponse
	EventName      string  `json:"event_name"`
	EventLocation  string  `json:"event_location"`
	EventStartDate string  `json:"event_start_date"`
	EventEndDate   string  `json:"event_end_date"`
	TicketPrice    float64 `json:"ticket_price"`
}

// ToBookingDetailResponse maps a joined booking row to its wire shape.
func ToBookingDetailResponse(d *domain.BookingDetail) *BookingDetailResponse {
	return &BookingDetailResponse{
		BookingResponse: *ToBookingResponse(&d.Booking),
		EventName:       d.EventName,
		EventLocation:   d.EventLocation,
		EventStartDate:  d.EventStartDate.Format(timeFormat),
		EventEndDate:    d.EventEndDate.Format(timeFormat),
		TicketPrice:     d.TicketPrice,
	}
}

// InvoiceResponse is the wire shape of an invoice.
type InvoiceResponse struct {
	InvoiceNumber   string  `json:"invoice_number"`
	IssueDate       string  `json:"issue_date"`
	TicketCode      string  `json:"ticket_code"`
	EventName       string  `json:"event_name"`
	EventDate       string  `json:"event_date"`
	EventLocation   string  `json:"event_location"`
	AttendeeName    string  `json:"attendee_name"`
	AttendeeEmail   string  `json:"attendee_email"`
	NumberOfTickets int     `json:"number_of_tickets"`
	UnitPrice       float64 `json:"unit_price"`
	TotalAmount     float64 `json:"total_amount"`
	PaymentStatus   string  `json:"payment_status"`
}

// ToInvoiceResponse maps a domain invoice to its wire shape.
func ToInvoiceResponse(inv *domain.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		InvoiceNumber:   inv.InvoiceNumber,
		IssueDate:       inv.IssueDate.Format(timeFormat),
		TicketCode:      inv.TicketCode,
		EventName:       inv.EventName,
		EventDate:       inv.EventDate.Format(timeFormat),
		EventLocation:   inv.EventLocation,
		AttendeeName:    inv.AttendeeName,
		AttendeeEmail:   inv.AttendeeEmail,
		NumberOfTickets: inv.NumberOfTickets,
		UnitPrice:       inv.UnitPrice,
		TotalAmount:     inv.TotalAmount,
		PaymentStatus:   string(inv.PaymentStatus),
	}
}

// HasBookedResponse answers the UI's "Book" vs "Already booked" question.
type HasBookedResponse struct {
	EventID string `json:"event_id"`
	Booked  bool   `json:"booked"`
}

func (r *CreateBookingRequest) String() string {
	return fmt.Sprintf("CreateBookingRequest{event_id=%s, number_of_tickets=%d}", r.EventID, r.NumberOfTickets)
}
