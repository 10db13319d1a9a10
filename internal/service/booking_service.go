package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ayushMishra464/EventManagement/internal/domain"
	"github.com/ayushMishra464/EventManagement/internal/events"
	"github.com/ayushMishra464/EventManagement/internal/repository"
	"github.com/ayushMishra464/EventManagement/pkg/logger"
)

// bookingService implements the BookingService interface.
type bookingService struct {
	bookingRepo repository.BookingRepository
	eventRepo   repository.EventRepository
	userRepo    repository.UserRepository
	inventory   repository.TicketInventoryRepository
	invoices    *InvoiceGenerator
	publisher   events.Publisher
	now         func() time.Time
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookingRepo repository.BookingRepository,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	inventory repository.TicketInventoryRepository,
	publisher events.Publisher,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		eventRepo:   eventRepo,
		userRepo:    userRepo,
		inventory:   inventory,
		invoices:    NewInvoiceGenerator(),
		publisher:   publisher,
		now:         time.Now,
	}
}

// Book orchestrates one booking request. The inventory reservation is the
// only step that consumes shared capacity; every failure after it releases
// the reserved quantity before returning, so a failed booking never leaves
// capacity consumed without a ledger record.
func (s *bookingService) Book(ctx context.Context, actor domain.Actor, eventID string, quantity int) (*domain.Booking, error) {
	if !actor.CanBook() {
		return nil, domain.ErrForbidden
	}
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, domain.ErrEventNotBookable
		}
		return nil, err
	}
	if !event.IsBookable(s.now()) {
		return nil, domain.ErrEventNotBookable
	}

	// Advisory duplicate check: fails fast with a clean error. The ledger's
	// uniqueness constraint remains the authority under races.
	hasActive, err := s.bookingRepo.HasActiveBooking(ctx, eventID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if hasActive {
		return nil, domain.ErrAlreadyBooked
	}

	if err := s.inventory.Reserve(ctx, eventID, quantity); err != nil {
		if errors.Is(err, domain.ErrInventoryNotFound) {
			return nil, domain.ErrEventNotBookable
		}
		return nil, err
	}

	booking := &domain.Booking{
		ID:              uuid.New().String(),
		EventID:         eventID,
		UserID:          actor.UserID,
		NumberOfTickets: quantity,
		TicketCode:      generateTicketCode(),
		PaymentStatus:   domain.PaymentStatusCompleted,
		RegisteredAt:    s.now(),
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		// Compensate: the reservation succeeded but the ledger write did
		// not, so the reserved quantity must go back before we surface the
		// error.
		if relErr := s.inventory.Release(ctx, eventID, quantity); relErr != nil {
			logger.ErrorCtx(ctx, "failed to release reservation after ledger write failure",
				zap.String("event_id", eventID),
				zap.Int("quantity", quantity),
				zap.Error(relErr),
			)
		}
		if errors.Is(err, domain.ErrAlreadyBooked) {
			return nil, domain.ErrAlreadyBooked
		}
		return nil, fmt.Errorf("write booking: %w", err)
	}

	if err := s.publisher.BookingConfirmed(ctx, booking); err != nil {
		logger.WarnCtx(ctx, "failed to publish booking confirmed event",
			zap.String("booking_id", booking.ID),
			zap.Error(err),
		)
	}

	logger.InfoCtx(ctx, "booking created",
		zap.String("booking_id", booking.ID),
		zap.String("event_id", eventID),
		zap.String("user_id", actor.UserID),
		zap.Int("quantity", quantity),
	)
	return booking, nil
}

// ListMyBookings returns the actor's bookings with event details.
func (s *bookingService) ListMyBookings(ctx context.Context, actor domain.Actor) ([]*domain.BookingDetail, error) {
	return s.bookingRepo.ListByUser(ctx, actor.UserID)
}

// GetInvoice loads the booking, event, and purchasing user, then derives
// the invoice. Only the booking owner or an admin may read it.
func (s *bookingService) GetInvoice(ctx context.Context, actor domain.Actor, bookingID string) (*domain.Invoice, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	event, err := s.eventRepo.GetByID(ctx, booking.EventID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, booking.UserID)
	if err != nil {
		return nil, err
	}
	return s.invoices.Generate(booking, event, user)
}

// HasBooked reports whether the actor holds an active booking for the event.
func (s *bookingService) HasBooked(ctx context.Context, actor domain.Actor, eventID string) (bool, error) {
	return s.bookingRepo.HasActiveBooking(ctx, eventID, actor.UserID)
}

// Refund transitions a COMPLETED booking to REFUNDED and releases its
// tickets. The conditional status update guarantees the release runs at
// most once even if two refund requests race.
func (s *bookingService) Refund(ctx context.Context, actor domain.Actor, bookingID string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	err = s.bookingRepo.UpdatePaymentStatus(ctx, bookingID, domain.PaymentStatusCompleted, domain.PaymentStatusRefunded)
	if err != nil {
		return nil, err
	}

	if err := s.inventory.Release(ctx, booking.EventID, booking.NumberOfTickets); err != nil {
		logger.ErrorCtx(ctx, "failed to release tickets for refunded booking",
			zap.String("booking_id", bookingID),
			zap.Error(err),
		)
	}

	booking.PaymentStatus = domain.PaymentStatusRefunded
	if err := s.publisher.BookingRefunded(ctx, booking); err != nil {
		logger.WarnCtx(ctx, "failed to publish booking refunded event",
			zap.String("booking_id", booking.ID),
			zap.Error(err),
		)
	}

	logger.InfoCtx(ctx, "booking refunded",
		zap.String("booking_id", bookingID),
		zap.String("event_id", booking.EventID),
	)
	return booking, nil
}

// generateTicketCode returns an opaque, unguessable ticket code. The code
// doubles as the proof of purchase presented at the venue, so it must not
// be derivable from booking order.
func generateTicketCode() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a
		// random UUID rather than panic in the booking path.
		return "TKT-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	}
	return "TKT-" + strings.ToUpper(hex.EncodeToString(buf))
}
