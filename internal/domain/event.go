package domain

import "time"

// Event represents an event attendees can book tickets for.
type Event struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	Location    string      `json:"location"`
	Status      EventStatus `json:"status"`
	Capacity    *int        `json:"capacity,omitempty"` // nil means unlimited
	TicketPrice float64     `json:"ticket_price"`
	VenueID     *string     `json:"venue_id,omitempty"`
	OrganizerID string      `json:"organizer_id"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// EventStatus is the lifecycle state of an event.
type EventStatus string

const (
	EventStatusDraft     EventStatus = "DRAFT"
	EventStatusPublished EventStatus = "PUBLISHED"
	EventStatusCancelled EventStatus = "CANCELLED"
	EventStatusCompleted EventStatus = "COMPLETED"
)

// IsBookable reports whether bookings may be created against the event:
// it must be published, carry a capacity, and not have started yet.
func (e *Event) IsBookable(now time.Time) bool {
	return e.Status == EventStatusPublished &&
		e.Capacity != nil &&
		e.StartDate.After(now)
}

// Venue is where events are held. Venue capacity seeds event capacity
// at event creation.
type Venue struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TicketInventoryRecord is the authoritative count of tickets sold for an
// event. It is owned exclusively by the ticket inventory: 0 <= TicketsSold
// <= Capacity holds at all times, under all concurrent access.
type TicketInventoryRecord struct {
	EventID     string    `json:"event_id"`
	Capacity    int       `json:"capacity"`
	TicketsSold int       `json:"tickets_sold"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TicketsLeft returns the remaining sellable tickets.
func (r *TicketInventoryRecord) TicketsLeft() int {
	return r.Capacity - r.TicketsSold
}
