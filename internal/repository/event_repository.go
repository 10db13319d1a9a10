package repository

import (
	"context"

	"github.com/ayushMishra464/EventManagement/internal/domain"
)

// EventRepository provides access to event records. The booking core only
// reads events; the lifecycle methods exist for the management surface.
type EventRepository interface {
	// Create stores a new event.
	Create(ctx context.Context, event *domain.Event) error
	// GetByID retrieves an event, or ErrEventNotFound.
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	// ListPublished returns published events with pagination.
	ListPublished(ctx context.Context, limit, offset int) ([]*domain.Event, int, error)
	// UpdateStatus transitions an event's lifecycle status.
	UpdateStatus(ctx context.Context, id string, status domain.EventStatus) error
}

// UserRepository provides read access to user accounts for invoice
// rendering and ownership checks.
type UserRepository interface {
	// GetByID retrieves a user, or ErrUserNotFound.
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByEmail retrieves a user by email, or ErrUserNotFound.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
