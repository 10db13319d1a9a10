package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayushMishra464/EventManagement/internal/domain"
	"github.com/ayushMishra464/EventManagement/internal/dto"
)

type stubEventService struct {
	createFn  func(ctx context.Context, actor domain.Actor, req *dto.CreateEventRequest) (*domain.Event, error)
	publishFn func(ctx context.Context, actor domain.Actor, eventID string) (*domain.Event, error)
	getFn     func(ctx context.Context, eventID string) (*domain.Event, *int, error)
	listFn    func(ctx context.Context, limit, offset int) ([]*domain.Event, int, error)
}

func (s *stubEventService) CreateEvent(ctx context.Context, actor domain.Actor, req *dto.CreateEventRequest) (*domain.Event, error) {
	return s.createFn(ctx, actor, req)
}

func (s *stubEventService) PublishEvent(ctx context.Context, actor domain.Actor, eventID string) (*domain.Event, error) {
	return s.publishFn(ctx, actor, eventID)
}

func (s *stubEventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, *int, error) {
	return s.getFn(ctx, eventID)
}

func (s *stubEventService) ListPublishedEvents(ctx context.Context, limit, offset int) ([]*domain.Event, int, error) {
	return s.listFn(ctx, limit, offset)
}

func newEventRouter(svc *stubEventService, auth gin.HandlerFunc) *gin.Engine {
	h := NewEventHandler(svc)
	r := gin.New()
	grp := r.Group("/api/v1")
	if auth != nil {
		grp.Use(auth)
	}
	grp.POST("/events", h.Create)
	grp.POST("/events/:id/publish", h.Publish)
	grp.GET("/events", h.List)
	grp.GET("/events/:id", h.Get)
	return r
}

func sampleEvent(status domain.EventStatus) *domain.Event {
	capacity := 100
	return &domain.Event{
		ID:          "evt-1",
		Name:        "GopherCon",
		StartDate:   time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 9, 2, 18, 0, 0, 0, time.UTC),
		Location:    "Bangkok",
		Status:      status,
		Capacity:    &capacity,
		TicketPrice: 500,
		OrganizerID: "org-1",
	}
}

func TestEventHandler_Create(t *testing.T) {
	svc := &stubEventService{
		createFn: func(_ context.Context, actor domain.Actor, req *dto.CreateEventRequest) (*domain.Event, error) {
			assert.Equal(t, "org-1", actor.UserID)
			assert.Equal(t, "org-1", req.OrganizerID)
			assert.Equal(t, "GopherCon", req.Name)
			return sampleEvent(domain.EventStatusDraft), nil
		},
	}
	router := newEventRouter(svc, asUser("org-1", "org@example.com", "ORGANIZER"))

	body := bytes.NewBufferString(`{
		"name": "GopherCon",
		"start_date": "2026-09-01T09:00:00Z",
		"end_date": "2026-09-02T18:00:00Z",
		"location": "Bangkok",
		"capacity": 100,
		"ticket_price": 500
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "DRAFT", data["status"])
}

func TestEventHandler_Create_InvalidDates(t *testing.T) {
	svc := &stubEventService{}
	router := newEventRouter(svc, asUser("org-1", "org@example.com", "ORGANIZER"))

	body := bytes.NewBufferString(`{
		"name": "GopherCon",
		"start_date": "2026-09-02T09:00:00Z",
		"end_date": "2026-09-01T18:00:00Z",
		"ticket_price": 500
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEventHandler_Publish(t *testing.T) {
	svc := &stubEventService{
		publishFn: func(_ context.Context, _ domain.Actor, eventID string) (*domain.Event, error) {
			assert.Equal(t, "evt-1", eventID)
			return sampleEvent(domain.EventStatusPublished), nil
		},
	}
	router := newEventRouter(svc, asUser("org-1", "org@example.com", "ORGANIZER"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/evt-1/publish", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "PUBLISHED", data["status"])
}

func TestEventHandler_Publish_Forbidden(t *testing.T) {
	svc := &stubEventService{
		publishFn: func(context.Context, domain.Actor, string) (*domain.Event, error) {
			return nil, domain.ErrForbidden
		},
	}
	router := newEventRouter(svc, asUser("other", "x@example.com", "ORGANIZER"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/evt-1/publish", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestEventHandler_Get(t *testing.T) {
	left := 42
	svc := &stubEventService{
		getFn: func(_ context.Context, eventID string) (*domain.Event, *int, error) {
			if eventID != "evt-1" {
				return nil, nil, domain.ErrEventNotFound
			}
			return sampleEvent(domain.EventStatusPublished), &left, nil
		},
	}
	router := newEventRouter(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/evt-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(42), data["tickets_left"])

	req = httptest.NewRequest(http.MethodGet, "/api/v1/events/missing", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEventHandler_List(t *testing.T) {
	svc := &stubEventService{
		listFn: func(_ context.Context, limit, offset int) ([]*domain.Event, int, error) {
			assert.Equal(t, 20, limit)
			assert.Equal(t, 0, offset)
			return []*domain.Event{sampleEvent(domain.EventStatusPublished)}, 1, nil
		},
	}
	router := newEventRouter(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Page)
	assert.Equal(t, int64(1), resp.Meta.Total)
	items := resp.Data.([]interface{})
	assert.Len(t, items, 1)
}

func TestEventHandler_List_Pagination(t *testing.T) {
	svc := &stubEventService{
		listFn: func(_ context.Context, limit, offset int) ([]*domain.Event, int, error) {
			assert.Equal(t, 10, limit)
			assert.Equal(t, 20, offset)
			return nil, 35, nil
		},
	}
	router := newEventRouter(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events?page=3&per_page=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 3, resp.Meta.Page)
	assert.Equal(t, 4, resp.Meta.TotalPages)
}
