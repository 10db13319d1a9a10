package service

import (
	"context"

	"github.com/ayushMishra464/EventManagement/internal/domain"
	"github.com/ayushMishra464/EventManagement/internal/dto"
)

// BookingService orchestrates one booking request as an all-or-nothing
// unit: validation, duplicate guard, inventory reservation, ledger write,
// and invoice issuance. Authorization is enforced here, not in the
// transport layer.
type BookingService interface {
	// Book turns a "book N tickets" request into a durable allocation.
	Book(ctx context.Context, actor domain.Actor, eventID string, quantity int) (*domain.Booking, error)
	// ListMyBookings returns the actor's bookings with event details.
	ListMyBookings(ctx context.Context, actor domain.Actor) ([]*domain.BookingDetail, error)
	// GetInvoice derives the invoice for a booking. The actor must own the
	// booking or hold the admin role.
	GetInvoice(ctx context.Context, actor domain.Actor, bookingID string) (*domain.Invoice, error)
	// HasBooked reports whether the actor holds an active booking for the
	// event.
	HasBooked(ctx context.Context, actor domain.Actor, eventID string) (bool, error)
	// Refund transitions a COMPLETED booking to REFUNDED and releases its
	// tickets back to inventory.
	Refund(ctx context.Context, actor domain.Actor, bookingID string) (*domain.Booking, error)
}

// EventService covers the minimal event lifecycle the booking core needs
// to run end to end. Full event management is an external collaborator.
type EventService interface {
	// CreateEvent stores a draft event owned by the actor.
	CreateEvent(ctx context.Context, actor domain.Actor, req *dto.CreateEventRequest) (*domain.Event, error)
	// PublishEvent transitions a draft event to PUBLISHED and provisions
	// its ticket inventory.
	PublishEvent(ctx context.Context, actor domain.Actor, eventID string) (*domain.Event, error)
	// GetEvent returns an event and its tickets-left read view (nil when
	// no inventory record exists).
	GetEvent(ctx context.Context, eventID string) (*domain.Event, *int, error)
	// ListPublishedEvents returns published events with pagination.
	ListPublishedEvents(ctx context.Context, limit, offset int) ([]*domain.Event, int, error)
}
