package repository

import (
	"context"

	"github.com/ayushMishra464/EventManagement/internal/domain"
)

// TicketInventoryRepository is the single source of truth for how many
// tickets remain per event, and the only path through which that count
// changes.
type TicketInventoryRepository interface {
	// Provision creates the inventory record for an event. Called when an
	// event transitions to PUBLISHED with a capacity.
	Provision(ctx context.Context, eventID string, capacity int) error
	// Get retrieves the inventory record for an event.
	Get(ctx context.Context, eventID string) (*domain.TicketInventoryRecord, error)
	// Reserve atomically increments tickets_sold by quantity, succeeding
	// only if tickets_sold + quantity <= capacity. The check-and-increment
	// is a single atomic operation with respect to all other Reserve calls
	// on the same event. Returns a SoldOutError carrying the remaining
	// count when capacity is insufficient, or ErrInventoryNotFound when no
	// record exists.
	Reserve(ctx context.Context, eventID string, quantity int) error
	// Release decrements tickets_sold by quantity, floored at zero. Callers
	// must release exactly once per reserved quantity that was rolled back
	// or refunded; double release is not detected here.
	Release(ctx context.Context, eventID string, quantity int) error
	// Archive removes the inventory record when an event is deleted or
	// permanently closed.
	Archive(ctx context.Context, eventID string) error
}
