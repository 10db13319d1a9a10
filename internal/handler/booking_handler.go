package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/ayushMishra464/EventManagement/internal/domain"
	"github.com/ayushMishra464/EventManagement/internal/dto"
	"github.com/ayushMishra464/EventManagement/internal/service"
	"github.com/ayushMishra464/EventManagement/pkg/middleware"
	"github.com/ayushMishra464/EventManagement/pkg/response"
	"github.com/ayushMishra464/EventManagement/pkg/telemetry"
)

// BookingHandler handles booking HTTP requests
type BookingHandler struct {
	bookingService service.BookingService
	metrics        *bookingMetrics
}

// bookingMetrics tracks booking attempts and outcomes. All fields may be
// nil if meter creation fails; recording is skipped in that case.
type bookingMetrics struct {
	attempts    *telemetry.Counter
	ticketsSold *telemetry.Counter
	duration    *telemetry.Histogram
}

func newBookingMetrics() *bookingMetrics {
	m := &bookingMetrics{}
	m.attempts, _ = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "booking_attempts_total",
		Description: "Booking attempts by result",
		Unit:        "{attempt}",
	})
	m.ticketsSold, _ = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "tickets_sold_total",
		Description: "Tickets sold through successful bookings",
		Unit:        "{ticket}",
	})
	m.duration, _ = telemetry.NewHistogram(telemetry.MetricOpts{
		Name:        "booking_duration_seconds",
		Description: "End-to-end booking request duration",
		Unit:        "s",
	})
	return m
}

func (m *bookingMetrics) recordAttempt(ctx context.Context, eventID, result string, tickets int, elapsed time.Duration) {
	if m.attempts != nil {
		m.attempts.Inc(ctx, telemetry.EventIDAttr(eventID), telemetry.BookingStatusAttr(result))
	}
	if result == "confirmed" && m.ticketsSold != nil {
		m.ticketsSold.Add(ctx, int64(tickets), telemetry.EventIDAttr(eventID))
	}
	if m.duration != nil {
		m.duration.Record(ctx, elapsed.Seconds(), telemetry.BookingStatusAttr(result))
	}
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		metrics:        newBookingMetrics(),
	}
}

// actorFromContext builds the authenticated actor from the values the JWT
// middleware stored on the request.
func actorFromContext(c *gin.Context) (domain.Actor, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok || userID == "" {
		return domain.Actor{}, false
	}
	email, _ := middleware.GetEmail(c)
	role, _ := middleware.GetRole(c)
	return domain.Actor{
		UserID: userID,
		Email:  email,
		Role:   domain.Role(role),
	}, true
}

// Create handles POST /bookings
func (h *BookingHandler) Create(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.booking.create")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	actor, ok := actorFromContext(c)
	if !ok {
		span.SetStatus(codes.Error, "unauthorized")
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	var req dto.CreateBookingRequest
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

	span.SetAttributes(
		attribute.String("user_id", actor.UserID),
		attribute.String("event_id", req.EventID),
		attribute.Int("number_of_tickets", req.NumberOfTickets),
	)

	start := time.Now()
	booking, err := h.bookingService.Book(ctx, actor, req.EventID, req.NumberOfTickets)
	if err != nil {
		h.metrics.recordAttempt(ctx, req.EventID, bookingResult(err), 0, time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.handleError(c, err)
		return
	}
	h.metrics.recordAttempt(ctx, req.EventID, "confirmed", booking.NumberOfTickets, time.Since(start))

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusCreated, response.Success(dto.ToBookingResponse(booking)))
}

// ListMy handles GET /bookings/my
func (h *BookingHandler) ListMy(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.booking.list_my")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	actor, ok := actorFromContext(c)
	if !ok {
		span.SetStatus(codes.Error, "unauthorized")
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	span.SetAttributes(attribute.String("user_id", actor.UserID))

	details, err := h.bookingService.ListMyBookings(ctx, actor)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.handleError(c, err)
		return
	}

	out := make([]*dto.BookingDetailResponse, 0, len(details))
	for _, d := range details {
		out = append(out, dto.ToBookingDetailResponse(d))
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, response.Success(out))
}

// GetInvoice handles GET /bookings/:id/invoice
func (h *BookingHandler) GetInvoice(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.booking.get_invoice")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	actor, ok := actorFromContext(c)
	if !ok {
		span.SetStatus(codes.Error, "unauthorized")
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	bookingID := c.Param("id")
	span.SetAttributes(
		attribute.String("user_id", actor.UserID),
		attribute.String("booking_id", bookingID),
	)

	invoice, err := h.bookingService.GetInvoice(ctx, actor, bookingID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, response.Success(dto.ToInvoiceResponse(invoice)))
}

// Refund handles POST /bookings/:id/refund
func (h *BookingHandler) Refund(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.booking.refund")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	actor, ok := actorFromContext(c)
	if !ok {
		span.SetStatus(codes.Error, "unauthorized")
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	bookingID := c.Param("id")
	span.SetAttributes(
		attribute.String("user_id", actor.UserID),
		attribute.String("booking_id", bookingID),
	)

	booking, err := h.bookingService.Refund(ctx, actor, bookingID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, response.Success(dto.ToBookingResponse(booking)))
}

// HasBooked handles GET /events/:id/booked
func (h *BookingHandler) HasBooked(c *gin.Context) {
	ctx, span := telemetry.StartSpan(c.Request.Context(), "handler.booking.has_booked")
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

	booked, err := h.bookingService.HasBooked(ctx, actor, eventID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.handleError(c, err)
		return
	}

	span.SetStatus(codes.Ok, "")
	c.JSON(http.StatusOK, response.Success(&dto.HasBookedResponse{
		EventID: eventID,
		Booked:  booked,
	}))
}

// bookingResult buckets a booking failure for the attempts metric
func bookingResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrSoldOut):
		return "sold_out"
	case errors.Is(err, domain.ErrAlreadyBooked):
		return "already_booked"
	case errors.Is(err, domain.ErrEventNotBookable):
		return "not_bookable"
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	default:
		return "error"
	}
}

// handleError converts domain errors to HTTP responses
func (h *BookingHandler) handleError(c *gin.Context, err error) {
	var soldOut *domain.SoldOutError
	switch {
	case errors.As(err, &soldOut):
		c.JSON(http.StatusConflict, response.SoldOut(err.Error(), map[string]string{
			"remaining": strconv.Itoa(soldOut.Remaining),
		}))
	case errors.Is(err, domain.ErrSoldOut):
		c.JSON(http.StatusConflict, response.SoldOut(err.Error(), nil))
	case errors.Is(err, domain.ErrAlreadyBooked):
		c.JSON(http.StatusConflict, response.Error(response.ErrCodeAlreadyBooked, err.Error()))
	case errors.Is(err, domain.ErrEventNotBookable):
		c.JSON(http.StatusConflict, response.Error(response.ErrCodeEventNotBookable, err.Error()))
	case errors.Is(err, domain.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, response.Error(response.ErrCodeValidationFailed, err.Error()))
	case errors.Is(err, domain.ErrInvalidStatusTransition):
		c.JSON(http.StatusConflict, response.Error(response.ErrCodeConflict, err.Error()))
	case errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, response.NotFound(err.Error()))
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, response.Forbidden(""))
	default:
		c.JSON(http.StatusServiceUnavailable, response.ServiceUnavailable(""))
	}
}
