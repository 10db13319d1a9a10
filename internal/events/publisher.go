package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/ayushMishra464/EventManagement/internal/domain"
)

// Event type names on the wire.
const (
	TypeBookingConfirmed = "booking.confirmed"
	TypeBookingRefunded  = "booking.refunded"
)

// BookingEvent is the payload published for booking lifecycle changes.
// Downstream consumers (notifications, analytics) key on BookingID.
type BookingEvent struct {
	Type            string    `json:"type"`
	BookingID       string    `json:"booking_id"`
	EventID         string    `json:"event_id"`
	UserID          string    `json:"user_id"`
	NumberOfTickets int       `json:"number_of_tickets"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// Publisher emits booking lifecycle events. Publishing is best effort: the
// booking itself is already durable when a publish happens, so callers log
// failures rather than unwinding the booking.
type Publisher interface {
	BookingConfirmed(ctx context.Context, booking *domain.Booking) error
	BookingRefunded(ctx context.Context, booking *domain.Booking) error
	Close() error
}

// KafkaPublisher publishes booking events to a Kafka topic.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher creates a publisher writing to the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}
	return &KafkaPublisher{writer: writer}
}

// BookingConfirmed publishes a booking.confirmed event.
func (p *KafkaPublisher) BookingConfirmed(ctx context.Context, booking *domain.Booking) error {
	return p.publish(ctx, TypeBookingConfirmed, booking)
}

// BookingRefunded publishes a booking.refunded event.
func (p *KafkaPublisher) BookingRefunded(ctx context.Context, booking *domain.Booking) error {
	return p.publish(ctx, TypeBookingRefunded, booking)
}

func (p *KafkaPublisher) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	payload := BookingEvent{
		Type:            eventType,
		BookingID:       booking.ID,
		EventID:         booking.EventID,
		UserID:          booking.UserID,
		NumberOfTickets: booking.NumberOfTickets,
		OccurredAt:      time.Now().UTC(),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(booking.ID),
		Value: data,
		Time:  time.Now(),
	})
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher discards all events. Used when Kafka is not configured and
// in tests.
type NopPublisher struct{}

func (NopPublisher) BookingConfirmed(ctx context.Context, booking *domain.Booking) error { return nil }
func (NopPublisher) BookingRefunded(ctx context.Context, booking *domain.Booking) error  { return nil }
func (NopPublisher) Close() error                                                        { return nil }
