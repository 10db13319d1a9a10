package repository

import (
	"context"

	"github.com/ayushMishra464/EventManagement/internal/domain"
)

// BookingRepository is the durable booking ledger: append-only except for
// payment-status transitions.
type BookingRepository interface {
	// Create appends a booking. Returns ErrAlreadyBooked when an active
	// booking for the same (event, user) pair already exists; the ledger
	// enforces this with a uniqueness constraint so a race between two
	// requests from the same user is rejected at write time.
	Create(ctx context.Context, booking *domain.Booking) error
	// GetByID retrieves a booking, or ErrBookingNotFound.
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	// ListByUser returns the user's bookings joined with event details,
	// newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.BookingDetail, error)
	// HasActiveBooking reports whether a booking with status PENDING or
	// COMPLETED exists for the pair. This is the advisory duplicate check;
	// the constraint enforced in Create remains the authority.
	HasActiveBooking(ctx context.Context, eventID, userID string) (bool, error)
	// UpdatePaymentStatus transitions a booking from one payment status to
	// another as a single conditional update. Returns
	// ErrInvalidStatusTransition when the booking is not in the expected
	// status, or ErrBookingNotFound when it does not exist.
	UpdatePaymentStatus(ctx context.Context, id string, from, to domain.PaymentStatus) error
}
