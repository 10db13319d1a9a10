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

const eventColumns = `id, name, COALESCE(description, '') as description, start_date, end_date,
	COALESCE(location, '') as location, status, capacity, ticket_price, venue_id, organizer_id,
	created_at, updated_at`

// PostgresEventRepository implements EventRepository using PostgreSQL.
type PostgresEventRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEventRepository creates a new PostgresEventRepository.
func NewPostgresEventRepository(pool *pgxpool.Pool) *PostgresEventRepository {
	return &PostgresEventRepository{pool: pool}
}

func (r *PostgresEventRepository) scanEvent(row pgx.Row) (*domain.Event, error) {
	e := &domain.Event{}
	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Description,
		&e.StartDate,
		&e.EndDate,
		&e.Location,
		&e.Status,
		&e.Capacity,
		&e.TicketPrice,
		&e.VenueID,
		&e.OrganizerID,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("scan event: %w", err)
	}
	return e, nil
}

// Create stores a new event.
func (r *PostgresEventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (id, name, description, start_date, end_date, location, status,
			capacity, ticket_price, venue_id, organizer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.Name,
		event.Description,
		event.StartDate,
		event.EndDate,
		event.Location,
		event.Status,
		event.Capacity,
		event.TicketPrice,
		event.VenueID,
		event.OrganizerID,
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// GetByID retrieves an event by ID.
func (r *PostgresEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return r.scanEvent(r.pool.QueryRow(ctx, query, id))
}

// ListPublished returns published events with pagination.
func (r *PostgresEventRepository) ListPublished(ctx context.Context, limit, offset int) ([]*domain.Event, int, error) {
	countQuery := `SELECT COUNT(*) FROM events WHERE status = $1`
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, domain.EventStatusPublished).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	query := `SELECT ` + eventColumns + ` FROM events
		WHERE status = $1
		ORDER BY start_date ASC
		LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, domain.EventStatusPublished, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		e := &domain.Event{}
		err := rows.Scan(
			&e.ID,
			&e.Name,
			&e.Description,
			&e.StartDate,
			&e.EndDate,
			&e.Location,
			&e.Status,
			&e.Capacity,
			&e.TicketPrice,
			&e.VenueID,
			&e.OrganizerID,
			&e.CreatedAt,
			&e.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, total, rows.Err()
}

// UpdateStatus transitions an event's lifecycle status.
func (r *PostgresEventRepository) UpdateStatus(ctx context.Context, id string, status domain.EventStatus) error {
	query := `UPDATE events SET status = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return fmt.Errorf("update event status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// PostgresUserRepository implements UserRepository using PostgreSQL.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository creates a new PostgresUserRepository.
func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

const userColumns = `id, first_name, last_name, email, role, created_at`

// GetByID retrieves a user by ID.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

// GetByEmail retrieves a user by email.
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *PostgresUserRepository) scanUser(row pgx.Row) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.Role,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}
