package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/ayushMishra464/EventManagement/internal/domain"
	"github.com/ayushMishra464/EventManagement/internal/dto"
	"github.com/ayushMishra464/EventManagement/internal/service"
	"github.com/ayushMishra464/EventManagement/pkg/response"
	"github.com/ayushMishra464/EventManagement/pkg/telemetry"
)

// EventHandler handles event HTTP requests
type EventHandler struct {
	eventService service.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// Create handles POST /events
func (h *EventHandler) Create(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.event.create")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	actor, ok := actorFromContext(c)
	if !ok {
		span.SetStatus(codes.Error, "unauthorized")
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid request")
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	if valid, msg := req.Validate(); !valid {
		span.SetStatus(codes.Error, "validation failed")
		c.JSON(http.StatusBadRequest, response.Error(response.ErrCodeValidationFailed, msg))
		return
	}
	req.OrganizerID = actor.UserID

	span.SetAttributes(
		attribute.String("user_id", actor.UserID),
		attribute.String("event_name", req.Name),
	)

	event, err := h.eventService.CreateEvent(ctx, actor, &req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusCreated, response.Success(dto.ToEventResponse(event, nil)))
}

// Publish handles POST /events/:id/publish
func (h *EventHandler) Publish(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.event.publish")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	actor, ok := actorFromContext(c)
	if !ok {
		span.SetStatus(codes.Error, "unauthorized")
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	eventID := c.Param("id")
	span.SetAttributes(
		attribute.String("user_id", actor.UserID),
		attribute.String("event_id", eventID),
	)

	event, err := h.eventService.PublishEvent(ctx, actor, eventID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, response.Success(dto.ToEventResponse(event, nil)))
}

// Get handles GET /events/:id
func (h *EventHandler) Get(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.event.get")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	eventID := c.Param("id")
	span.SetAttributes(attribute.String("event_id", eventID))

	event, ticketsLeft, err := h.eventService.GetEvent(ctx, eventID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, response.Success(dto.ToEventResponse(event, ticketsLeft)))
}

// List handles GET /events
func (h *EventHandler) List(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.event.list")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	offset := (page - 1) * perPage

	events, total, err := h.eventService.ListPublishedEvents(ctx, perPage, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.handleError(c, err)
		return
	}

	out := make([]*dto.EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, dto.ToEventResponse(e, nil))
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, response.Paginated(out, page, perPage, int64(total)))
}

// handleError converts domain errors to HTTP responses
func (h *EventHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrEventNotFound):
		c.JSON(http.StatusNotFound, response.NotFound(err.Error()))
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, response.Forbidden(""))
	case errors.Is(err, domain.ErrInvalidStatusTransition):
		c.JSON(http.StatusConflict, response.Error(response.ErrCodeConflict, err.Error()))
	default:
		c.JSON(http.StatusServiceUnavailable, response.ServiceUnavailable(""))
	}
}
