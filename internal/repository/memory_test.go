package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ayushMishra464/EventManagement/internal/domain"
)

func TestMemoryInventory_ReserveAndRelease(t *testing.T) {
	ctx := context.Background()
	inv := NewMemoryTicketInventoryRepository()

	if err := inv.Provision(ctx, "evt-1", 10); err != nil {
		t.Fatalf("provision: %v", err)
	}

	if err := inv.Reserve(ctx, "evt-1", 4); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	rec, err := inv.Get(ctx, "evt-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.TicketsSold != 4 {
		t.Errorf("tickets sold = %d, want 4", rec.TicketsSold)
	}
	if rec.TicketsLeft() != 6 {
		t.Errorf("tickets left = %d, want 6", rec.TicketsLeft())
	}

	err = inv.Reserve(ctx, "evt-1", 7)
	if !errors.Is(err, domain.ErrSoldOut) {
		t.Fatalf("expected sold out, got %v", err)
	}
	var soldOut *domain.SoldOutError
	if !errors.As(err, &soldOut) {
		t.Fatal("expected SoldOutError")
	}
	if soldOut.Remaining != 6 {
		t.Errorf("remaining = %d, want 6", soldOut.Remaining)
	}

	if err := inv.Release(ctx, "evt-1", 4); err != nil {
		t.Fatalf("release: %v", err)
	}
	rec, _ = inv.Get(ctx, "evt-1")
	if rec.TicketsSold != 0 {
		t.Errorf("tickets sold after release = %d, want 0", rec.TicketsSold)
	}

	// Release floors at zero.
	if err := inv.Release(ctx, "evt-1", 5); err != nil {
		t.Fatalf("release: %v", err)
	}
	rec, _ = inv.Get(ctx, "evt-1")
	if rec.TicketsSold != 0 {
		t.Errorf("tickets sold = %d, want 0", rec.TicketsSold)
	}
}

func TestMemoryInventory_ReserveMissingEvent(t *testing.T) {
	inv := NewMemoryTicketInventoryRepository()
	err := inv.Reserve(context.Background(), "missing", 1)
	if !errors.Is(err, domain.ErrInventoryNotFound) {
		t.Fatalf("expected ErrInventoryNotFound, got %v", err)
	}
}

// The sum of granted reservations must never exceed capacity, no matter how
// the goroutines interleave.
func TestMemoryInventory_ConcurrentReserve(t *testing.T) {
	ctx := context.Background()
	inv := NewMemoryTicketInventoryRepository()

	const capacity = 50
	const workers = 200

	if err := inv.Provision(ctx, "evt-1", capacity); err != nil {
		t.Fatalf("provision: %v", err)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	granted := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := inv.Reserve(ctx, "evt-1", 1); err == nil {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if granted != capacity {
		t.Errorf("granted = %d, want %d", granted, capacity)
	}
	rec, err := inv.Get(ctx, "evt-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.TicketsSold != capacity {
		t.Errorf("tickets sold = %d, want %d", rec.TicketsSold, capacity)
	}
}

func TestMemoryBooking_DuplicateActiveRejected(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBookingRepository(nil)

	first := &domain.Booking{
		ID:              "bk-1",
		EventID:         "evt-1",
		UserID:          "user-1",
		NumberOfTickets: 2,
		TicketCode:      "TKT-AAA",
		PaymentStatus:   domain.PaymentStatusCompleted,
		RegisteredAt:    time.Now(),
	}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}

	dup := &domain.Booking{
		ID:            "bk-2",
		EventID:       "evt-1",
		UserID:        "user-1",
		TicketCode:    "TKT-BBB",
		PaymentStatus: domain.PaymentStatusCompleted,
	}
	if err := repo.Create(ctx, dup); !errors.Is(err, domain.ErrAlreadyBooked) {
		t.Fatalf("expected ErrAlreadyBooked, got %v", err)
	}

	// A refunded booking no longer blocks a new one.
	if err := repo.UpdatePaymentStatus(ctx, "bk-1", domain.PaymentStatusCompleted, domain.PaymentStatusRefunded); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if err := repo.Create(ctx, dup); err != nil {
		t.Fatalf("create after refund: %v", err)
	}
}

func TestMemoryBooking_UpdatePaymentStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBookingRepository(nil)

	b := &domain.Booking{
		ID:            "bk-1",
		EventID:       "evt-1",
		UserID:        "user-1",
		PaymentStatus: domain.PaymentStatusCompleted,
	}
	if err := repo.Create(ctx, b); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Wrong expected status is rejected.
	err := repo.UpdatePaymentStatus(ctx, "bk-1", domain.PaymentStatusPending, domain.PaymentStatusCompleted)
	if !errors.Is(err, domain.ErrInvalidStatusTransition) {
		t.Fatalf("expected ErrInvalidStatusTransition, got %v", err)
	}

	err = repo.UpdatePaymentStatus(ctx, "missing", domain.PaymentStatusCompleted, domain.PaymentStatusRefunded)
	if !errors.Is(err, domain.ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}
