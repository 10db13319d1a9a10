package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ayushMishra464/EventManagement/internal/domain"
)

// PostgresBookingRepository implements BookingRepository using PostgreSQL.
// The one-active-booking-per-user-per-event rule is enforced by a partial
// unique index on (event_id, user_id) restricted to active payment
// statuses; see migrations/schema.sql.
type PostgresBookingRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresBookingRepository creates a new PostgresBookingRepository.
func NewPostgresBookingRepository(pool *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{pool: pool}
}

// Create appends a booking to the ledger.
func (r *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (id, event_id, user_id, number_of_tickets, ticket_code, payment_status, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		booking.ID,
		booking.EventID,
		booking.UserID,
		booking.NumberOfTickets,
		booking.TicketCode,
		booking.PaymentStatus,
		booking.RegisteredAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyBooked
		}
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by ID.
func (r *PostgresBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `
		SELECT id, event_id, user_id, number_of_tickets, ticket_code, payment_status, registered_at
		FROM bookings
		WHERE id = $1
	`
	b := &domain.Booking{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&b.ID,
		&b.EventID,
		&b.UserID,
		&b.NumberOfTickets,
		&b.TicketCode,
		&b.PaymentStatus,
		&b.RegisteredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

// ListByUser returns the user's bookings joined with event details.
func (r *PostgresBookingRepository) ListByUser(ctx context.Context, userID string) ([]*domain.BookingDetail, error) {
	query := `
		SELECT b.id, b.event_id, b.user_id, b.number_of_tickets, b.ticket_code, b.payment_status, b.registered_at,
			e.name, COALESCE(e.location, ''), e.start_date, e.end_date, e.ticket_price
		FROM bookings b
		JOIN events e ON e.id = b.event_id
		WHERE b.user_id = $1
		ORDER BY b.registered_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var details []*domain.BookingDetail
	for rows.Next() {
		d := &domain.BookingDetail{}
		err := rows.Scan(
			&d.ID,
			&d.EventID,
			&d.UserID,
			&d.NumberOfTickets,
			&d.TicketCode,
			&d.PaymentStatus,
			&d.RegisteredAt,
			&d.EventName,
			&d.EventLocation,
			&d.EventStartDate,
			&d.EventEndDate,
			&d.TicketPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// HasActiveBooking reports whether the user already holds an active booking
// for the event.
func (r *PostgresBookingRepository) HasActiveBooking(ctx context.Context, eventID, userID string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE event_id = $1 AND user_id = $2 AND payment_status IN ($3, $4)
		)
	`
	var exists bool
	err := r.pool.QueryRow(ctx, query, eventID, userID,
		domain.PaymentStatusPending, domain.PaymentStatusCompleted).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check active booking: %w", err)
	}
	return exists, nil
}

// UpdatePaymentStatus transitions a booking between payment statuses as a
// single conditional update, so two concurrent refunds cannot both succeed.
func (r *PostgresBookingRepository) UpdatePaymentStatus(ctx context.Context, id string, from, to domain.PaymentStatus) error {
	query := `UPDATE bookings SET payment_status = $3 WHERE id = $1 AND payment_status = $2`
	tag, err := r.pool.Exec(ctx, query, id, from, to)
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return domain.ErrInvalidStatusTransition
	}
	return nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
