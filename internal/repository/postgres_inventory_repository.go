package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ayushMishra464/EventManagement/internal/domain"
)

// PostgresTicketInventoryRepository implements TicketInventoryRepository
// using PostgreSQL. Capacity is enforced by a single conditional UPDATE so
// the check-and-increment cannot interleave with concurrent reservations,
// in this process or any other sharing the database.
type PostgresTicketInventoryRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTicketInventoryRepository creates a new PostgresTicketInventoryRepository.
func NewPostgresTicketInventoryRepository(pool *pgxpool.Pool) *PostgresTicketInventoryRepository {
	return &PostgresTicketInventoryRepository{pool: pool}
}

// Provision creates the inventory record for an event.
func (r *PostgresTicketInventoryRepository) Provision(ctx context.Context, eventID string, capacity int) error {
	query := `
		INSERT INTO ticket_inventory (event_id, capacity, tickets_sold, updated_at)
		VALUES ($1, $2, 0, $3)
		ON CONFLICT (event_id) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query, eventID, capacity, time.Now())
	if err != nil {
		return fmt.Errorf("provision inventory: %w", err)
	}
	return nil
}

// Get retrieves the inventory record for an event.
func (r *PostgresTicketInventoryRepository) Get(ctx context.Context, eventID string) (*domain.TicketInventoryRecord, error) {
	query := `SELECT event_id, capacity, tickets_sold, updated_at FROM ticket_inventory WHERE event_id = $1`
	rec := &domain.TicketInventoryRecord{}
	err := r.pool.QueryRow(ctx, query, eventID).Scan(
		&rec.EventID,
		&rec.Capacity,
		&rec.TicketsSold,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInventoryNotFound
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return rec, nil
}

// Reserve atomically claims quantity tickets against capacity. A zero
// rows-affected result means either the row is missing or the remaining
// capacity is too small; a follow-up read distinguishes the two and fills
// in the remaining count for the caller.
func (r *PostgresTicketInventoryRepository) Reserve(ctx context.Context, eventID string, quantity int) error {
	query := `
		UPDATE ticket_inventory
		SET tickets_sold = tickets_sold + $2, updated_at = $3
		WHERE event_id = $1 AND tickets_sold + $2 <= capacity
	`
	tag, err := r.pool.Exec(ctx, query, eventID, quantity, time.Now())
	if err != nil {
		return fmt.Errorf("reserve tickets: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	rec, err := r.Get(ctx, eventID)
	if err != nil {
		return err
	}
	return &domain.SoldOutError{Remaining: rec.TicketsLeft()}
}

// Release returns quantity tickets to the pool, floored at zero.
func (r *PostgresTicketInventoryRepository) Release(ctx context.Context, eventID string, quantity int) error {
	query := `
		UPDATE ticket_inventory
		SET tickets_sold = GREATEST(tickets_sold - $2, 0), updated_at = $3
		WHERE event_id = $1
	`
	tag, err := r.pool.Exec(ctx, query, eventID, quantity, time.Now())
	if err != nil {
		return fmt.Errorf("release tickets: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInventoryNotFound
	}
	return nil
}

// Archive removes the inventory record for an event.
func (r *PostgresTicketInventoryRepository) Archive(ctx context.Context, eventID string) error {
	query := `DELETE FROM ticket_inventory WHERE event_id = $1`
	_, err := r.pool.Exec(ctx, query, eventID)
	if err != nil {
		return fmt.Errorf("archive inventory: %w", err)
	}
	return nil
}
