package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/ayushMishra464/EventManagement/internal/domain"
)

// InvoiceGenerator derives an invoice view from a booking, its event, and
// the purchasing user. It is pure: no side effects, no persisted state, and
// the same inputs always produce the same invoice.
type InvoiceGenerator struct{}

// NewInvoiceGenerator creates a new InvoiceGenerator.
func NewInvoiceGenerator() *InvoiceGenerator {
	return &InvoiceGenerator{}
}

// Generate builds the invoice. All three inputs must already be loaded by
// the caller; a nil input is the only error condition.
func (g *InvoiceGenerator) Generate(booking *domain.Booking, event *domain.Event, user *domain.User) (*domain.Invoice, error) {
	if booking == nil {
		return nil, domain.ErrBookingNotFound
	}
	if event == nil {
		return nil, domain.ErrEventNotFound
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	unitPrice := event.TicketPrice
	total := roundToCents(unitPrice * float64(booking.NumberOfTickets))

	return &domain.Invoice{
		InvoiceNumber:   invoiceNumber(booking),
		IssueDate:       booking.RegisteredAt,
		TicketCode:      booking.TicketCode,
		EventName:       event.Name,
		EventDate:       event.StartDate,
		EventLocation:   event.Location,
		AttendeeName:    user.FullName(),
		AttendeeEmail:   user.Email,
		NumberOfTickets: booking.NumberOfTickets,
		UnitPrice:       unitPrice,
		TotalAmount:     total,
		PaymentStatus:   booking.PaymentStatus,
	}, nil
}

// invoiceNumber derives a stable invoice number from the booking: the same
// booking always yields the same number on repeated calls.
func invoiceNumber(booking *domain.Booking) string {
	id := strings.ToUpper(strings.ReplaceAll(booking.ID, "-", ""))
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("INV-%s-%s", id, booking.RegisteredAt.Format("20060102"))
}

// roundToCents rounds to the currency's minor unit using half-up rounding.
func roundToCents(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
