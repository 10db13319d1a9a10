package di

import (
	"github.com/ayushMishra464/EventManagement/internal/events"
	"github.com/ayushMishra464/EventManagement/internal/handler"
	"github.com/ayushMishra464/EventManagement/internal/repository"
	"github.com/ayushMishra464/EventManagement/internal/service"
	"github.com/ayushMishra464/EventManagement/pkg/database"
	"github.com/ayushMishra464/EventManagement/pkg/redis"
)

// Container holds all dependencies for the booking service
type Container struct {
	// Infrastructure
	DB        *database.PostgresDB
	Redis     *redis.Client
	Publisher events.Publisher

	// Repositories
	BookingRepo   repository.BookingRepository
	EventRepo     repository.EventRepository
	UserRepo      repository.UserRepository
	InventoryRepo repository.TicketInventoryRepository

	// Services
	BookingService service.BookingService
	EventService   service.EventService

	// Handlers
	HealthHandler  *handler.HealthHandler
	BookingHandler *handler.BookingHandler
	EventHandler   *handler.EventHandler
}

// ContainerConfig contains configuration for building the container.
// Redis and Publisher are optional; a nil Publisher falls back to the
// no-op publisher.
type ContainerConfig struct {
	DB        *database.PostgresDB
	Redis     *redis.Client
	Publisher events.Publisher
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:        cfg.DB,
		Redis:     cfg.Redis,
		Publisher: cfg.Publisher,
	}
	if c.Publisher == nil {
		c.Publisher = events.NopPublisher{}
	}

	// Initialize repositories
	pool := c.DB.Pool()
	c.BookingRepo = repository.NewPostgresBookingRepository(pool)
	c.EventRepo = repository.NewPostgresEventRepository(pool)
	c.UserRepo = repository.NewPostgresUserRepository(pool)
	c.InventoryRepo = repository.NewPostgresTicketInventoryRepository(pool)

	// Initialize services
	c.BookingService = service.NewBookingService(
		c.BookingRepo,
		c.EventRepo,
		c.UserRepo,
		c.InventoryRepo,
		c.Publisher,
	)
	c.EventService = service.NewEventService(c.EventRepo, c.InventoryRepo)

	// Initialize handlers
	c.HealthHandler = handler.NewHealthHandler(c.DB, c.Redis)
	c.BookingHandler = handler.NewBookingHandler(c.BookingService)
	c.EventHandler = handler.NewEventHandler(c.EventService)

	return c
}
