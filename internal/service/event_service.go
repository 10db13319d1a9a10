package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ayushMishra464/EventManagement/internal/domain"
	"github.com/ayushMishra464/EventManagement/internal/dto"
	"github.com/ayushMishra464/EventManagement/internal/repository"
	"github.com/ayushMishra464/EventManagement/pkg/logger"
)

// eventService implements the EventService interface.
type eventService struct {
	eventRepo repository.EventRepository
	inventory repository.TicketInventoryRepository
	now       func() time.Time
}

// NewEventService creates a new EventService.
func NewEventService(eventRepo repository.EventRepository, inventory repository.TicketInventoryRepository) EventService {
	return &eventService{
		eventRepo: eventRepo,
		inventory: inventory,
		now:       time.Now,
	}
}

// CreateEvent stores a draft event owned by the actor.
func (s *eventService) CreateEvent(ctx context.Context, actor domain.Actor, req *dto.CreateEventRequest) (*domain.Event, error) {
	if actor.Role != domain.RoleOrganizer && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if valid, msg := req.Validate(); !valid {
		return nil, errors.New(msg)
	}

	start, end := req.Dates()
	now := s.now()
	event := &domain.Event{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		StartDate:   start,
		EndDate:     end,
		Location:    req.Location,
		Status:      domain.EventStatusDraft,
		Capacity:    req.Capacity,
		TicketPrice: req.TicketPrice,
		VenueID:     req.VenueID,
		OrganizerID: actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// PublishEvent transitions a draft event to PUBLISHED. Publishing an event
// with a capacity provisions its inventory record; from then on the ticket
// inventory owns the sold count.
func (s *eventService) PublishEvent(ctx context.Context, actor domain.Actor, eventID string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != actor.UserID && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	if err := s.eventRepo.UpdateStatus(ctx, eventID, domain.EventStatusPublished); err != nil {
		return nil, err
	}
	event.Status = domain.EventStatusPublished

	if event.Capacity != nil {
		if err := s.inventory.Provision(ctx, eventID, *event.Capacity); err != nil {
			return nil, err
		}
	} else {
		logger.WarnCtx(ctx, "published event has no capacity, bookings will be rejected",
			zap.String("event_id", eventID),
		)
	}
	return event, nil
}

// GetEvent returns an event together with its tickets-left read view.
func (s *eventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, *int, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}

	rec, err := s.inventory.Get(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrInventoryNotFound) {
			return event, nil, nil
		}
		return nil, nil, err
	}
	left := rec.TicketsLeft()
	return event, &left, nil
}

// ListPublishedEvents returns published events with pagination.
func (s *eventService) ListPublishedEvents(ctx context.Context, limit, offset int) ([]*domain.Event, int, error) {
	return s.eventRepo.ListPublished(ctx, limit, offset)
}
