package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/ayushMishra464/EventManagement/internal/domain"
)

// In-memory implementations of the repository interfaces. They back the
// service test suites and local development without PostgreSQL, and uphold
// the same invariants: the inventory check-and-increment happens under a
// single lock, and the booking store rejects duplicate active bookings the
// way the partial unique index does.

// MemoryTicketInventoryRepository is an in-memory TicketInventoryRepository.
type MemoryTicketInventoryRepository struct {
	mu      sync.Mutex
	records map[string]*domain.TicketInventoryRecord
}

// NewMemoryTicketInventoryRepository creates an empty in-memory inventory.
func NewMemoryTicketInventoryRepository() *MemoryTicketInventoryRepository {
	return &MemoryTicketInventoryRepository{
		records: make(map[string]*domain.TicketInventoryRecord),
	}
}

// Provision creates the inventory record for an event.
func (r *MemoryTicketInventoryRepository) Provision(ctx context.Context, eventID string, capacity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[eventID]; exists {
		return nil
	}
	r.records[eventID] = &domain.TicketInventoryRecord{
		EventID:  eventID,
		Capacity: capacity,
	}
	return nil
}

// Get retrieves a copy of the inventory record for an event.
func (r *MemoryTicketInventoryRepository) Get(ctx context.Context, eventID string) (*domain.TicketInventoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, exists := r.records[eventID]
	if !exists {
		return nil, domain.ErrInventoryNotFound
	}
	copied := *rec
	return &copied, nil
}

// Reserve performs the check-and-increment under the store lock, matching
// the conditional UPDATE of the PostgreSQL implementation.
func (r *MemoryTicketInventoryRepository) Reserve(ctx context.Context, eventID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, exists := r.records[eventID]
	if !exists {
		return domain.ErrInventoryNotFound
	}
	if rec.TicketsSold+quantity > rec.Capacity {
		return &domain.SoldOutError{Remaining: rec.TicketsLeft()}
	}
	rec.TicketsSold += quantity
	return nil
}

// Release returns quantity tickets to the pool, floored at zero.
func (r *MemoryTicketInventoryRepository) Release(ctx context.Context, eventID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, exists := r.records[eventID]
	if !exists {
		return domain.ErrInventoryNotFound
	}
	rec.TicketsSold -= quantity
	if rec.TicketsSold < 0 {
		rec.TicketsSold = 0
	}
	return nil
}

// Archive removes the inventory record for an event.
func (r *MemoryTicketInventoryRepository) Archive(ctx context.Context, eventID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, eventID)
	return nil
}

// MemoryBookingRepository is an in-memory BookingRepository.
type MemoryBookingRepository struct {
	mu       sync.Mutex
	bookings map[string]*domain.Booking
	events   map[string]*domain.Event // for ListByUser joins
}

// NewMemoryBookingRepository creates an empty in-memory booking ledger.
// events supplies the join side of ListByUser and may be shared with a
// MemoryEventRepository.
func NewMemoryBookingRepository(events *MemoryEventRepository) *MemoryBookingRepository {
	var eventMap map[string]*domain.Event
	if events != nil {
		eventMap = events.events
	} else {
		eventMap = make(map[string]*domain.Event)
	}
	return &MemoryBookingRepository{
		bookings: make(map[string]*domain.Booking),
		events:   eventMap,
	}
}

// Create appends a booking, rejecting duplicate active bookings for the
// same (event, user) pair under the store lock.
func (r *MemoryBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.EventID == booking.EventID && b.UserID == booking.UserID && b.PaymentStatus.IsActive() {
			return domain.ErrAlreadyBooked
		}
	}
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

// GetByID retrieves a copy of a booking.
func (r *MemoryBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, exists := r.bookings[id]
	if !exists {
		return nil, domain.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

// ListByUser returns the user's bookings joined with event details,
// newest first.
func (r *MemoryBookingRepository) ListByUser(ctx context.Context, userID string) ([]*domain.BookingDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var details []*domain.BookingDetail
	for _, b := range r.bookings {
		if b.UserID != userID {
			continue
		}
		d := &domain.BookingDetail{Booking: *b}
		if e, ok := r.events[b.EventID]; ok {
			d.EventName = e.Name
			d.EventLocation = e.Location
			d.EventStartDate = e.StartDate
			d.EventEndDate = e.EndDate
			d.TicketPrice = e.TicketPrice
		}
		details = append(details, d)
	}
	sort.Slice(details, func(i, j int) bool {
		return details[i].RegisteredAt.After(details[j].RegisteredAt)
	})
	return details, nil
}

// HasActiveBooking reports whether the user already holds an active booking
// for the event.
func (r *MemoryBookingRepository) HasActiveBooking(ctx context.Context, eventID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.EventID == eventID && b.UserID == userID && b.PaymentStatus.IsActive() {
			return true, nil
		}
	}
	return false, nil
}

// UpdatePaymentStatus transitions a booking between payment statuses.
func (r *MemoryBookingRepository) UpdatePaymentStatus(ctx context.Context, id string, from, to domain.PaymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, exists := r.bookings[id]
	if !exists {
		return domain.ErrBookingNotFound
	}
	if b.PaymentStatus != from {
		return domain.ErrInvalidStatusTransition
	}
	b.PaymentStatus = to
	return nil
}

// MemoryEventRepository is an in-memory EventRepository.
type MemoryEventRepository struct {
	mu     sync.Mutex
	events map[string]*domain.Event
}

// NewMemoryEventRepository creates an empty in-memory event store.
func NewMemoryEventRepository() *MemoryEventRepository {
	return &MemoryEventRepository{events: make(map[string]*domain.Event)}
}

// Create stores a new event.
func (r *MemoryEventRepository) Create(ctx context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *event
	r.events[event.ID] = &copied
	return nil
}

// GetByID retrieves a copy of an event.
func (r *MemoryEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, exists := r.events[id]
	if !exists {
		return nil, domain.ErrEventNotFound
	}
	copied := *e
	return &copied, nil
}

// ListPublished returns published events with pagination.
func (r *MemoryEventRepository) ListPublished(ctx context.Context, limit, offset int) ([]*domain.Event, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var published []*domain.Event
	for _, e := range r.events {
		if e.Status == domain.EventStatusPublished {
			copied := *e
			published = append(published, &copied)
		}
	}
	sort.Slice(published, func(i, j int) bool {
		return published[i].StartDate.Before(published[j].StartDate)
	})

	total := len(published)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return published[offset:end], total, nil
}

// UpdateStatus transitions an event's lifecycle status.
func (r *MemoryEventRepository) UpdateStatus(ctx context.Context, id string, status domain.EventStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, exists := r.events[id]
	if !exists {
		return domain.ErrEventNotFound
	}
	e.Status = status
	return nil
}

// MemoryUserRepository is an in-memory UserRepository.
type MemoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

// NewMemoryUserRepository creates an empty in-memory user store.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]*domain.User)}
}

// Add stores a user. It exists for seeding; account management is owned by
// the identity collaborator.
func (r *MemoryUserRepository) Add(user *domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *user
	r.users[user.ID] = &copied
}

// GetByID retrieves a copy of a user.
func (r *MemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, exists := r.users[id]
	if !exists {
		return nil, domain.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

// GetByEmail retrieves a copy of a user by email.
func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}
