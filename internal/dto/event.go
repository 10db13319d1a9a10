package dto

import (
	"time"

	"github.com/ayushMishra464/EventManagement/internal/domain"
)

// timeFormat is the wire format for all timestamps.
const timeFormat = time.RFC3339

// CreateEventRequest is the payload for POST /events.
type CreateEventRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Location    string  `json:"location"`
	Capacity    *int    `json:"capacity,omitempty"`
	TicketPrice float64 `json:"ticket_price"`
	VenueID     *string `json:"venue_id,omitempty"`

	// Set from the JWT context, not the request body.
	OrganizerID string `json:"-"`
}

// Validate checks the request and returns (false, reason) when invalid.
func (r *CreateEventRequest) Validate() (bool, string) {
	if r.Name == "" {
		return false, "name is required"
	}
	start, err := time.Parse(timeFormat, r.StartDate)
	if err != nil {
		return false, "invalid start_date format, expected RFC3339"
	}
	end, err := time.Parse(timeFormat, r.EndDate)
	if err != nil {
		return false, "invalid end_date format, expected RFC3339"
	}
	if end.Before(start) {
		return false, "end_date must not be before start_date"
	}
	if r.Capacity != nil && *r.Capacity < 1 {
		return false, "capacity must be at least 1"
	}
	if r.TicketPrice < 0 {
		return false, "ticket_price must not be negative"
	}
	return true, ""
}

// Dates returns the parsed start and end dates. Validate must have
// succeeded first.
func (r *CreateEventRequest) Dates() (time.Time, time.Time) {
	start, _ := time.Parse(timeFormat, r.StartDate)
	end, _ := time.Parse(timeFormat, r.EndDate)
	return start, end
}

// EventResponse is the wire shape of an event, including the live
// tickets-left read view when inventory exists.
type EventResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Location    string  `json:"location"`
	Status      string  `json:"status"`
	Capacity    *int    `json:"capacity,omitempty"`
	TicketPrice float64 `json:"ticket_price"`
	TicketsLeft *int    `json:"tickets_left,omitempty"`
}

// ToEventResponse maps a domain event to its wire shape. ticketsLeft may be
// nil when the event has no inventory record yet.
func ToEventResponse(e *domain.Event, ticketsLeft *int) *EventResponse {
	return &EventResponse{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		StartDate:   e.StartDate.Format(timeFormat),
		EndDate:     e.EndDate.Format(timeFormat),
		Location:    e.Location,
		Status:      string(e.Status),
		Capacity:    e.Capacity,
		TicketPrice: e.TicketPrice,
		TicketsLeft: ticketsLeft,
	}
}
