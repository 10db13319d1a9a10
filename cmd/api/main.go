package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ayushMishra464/EventManagement/internal/di"
	"github.com/ayushMishra464/EventManagement/internal/events"
	"github.com/ayushMishra464/EventManagement/pkg/config"
	"github.com/ayushMishra464/EventManagement/pkg/database"
	"github.com/ayushMishra464/EventManagement/pkg/logger"
	"github.com/ayushMishra464/EventManagement/pkg/middleware"
	"github.com/ayushMishra464/EventManagement/pkg/redis"
	"github.com/ayushMishra464/EventManagement/pkg/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(&logger.Config{
		Level:       logLevel(cfg),
		ServiceName: cfg.App.Name,
		Development: cfg.App.Environment == "development",
		OutputPath:  "stdout",
	}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := telemetry.Init(ctx, &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
	}); err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown failed", zap.Error(err))
		}
	}()

	db, err := database.NewPostgres(ctx, &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        int32(cfg.Database.MaxOpenConns),
		MinConns:        int32(cfg.Database.MaxIdleConns),
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
	})
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = redis.New(ctx, &redis.Config{
			Addr:         cfg.Redis.Addr(),
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer redisClient.Close()
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Kafka.Enabled {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	container := di.NewContainer(&di.ContainerConfig{
		DB:        db,
		Redis:     redisClient,
		Publisher: publisher,
	})

	auditLogger := middleware.NewAuditLogger(&middleware.AuditConfig{
		DB:        db.Pool(),
		SkipPaths: []string{"/health", "/health/ready"},
	})
	defer auditLogger.Close()

	router := buildRouter(cfg, container, auditLogger, redisClient)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("environment", cfg.App.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func buildRouter(cfg *config.Config, c *di.Container, auditLogger *middleware.AuditLogger, redisClient *redis.Client) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.AuditMiddleware(auditLogger))

	router.GET("/health", c.HealthHandler.Liveness)
	router.GET("/health/ready", c.HealthHandler.Readiness)

	jwtAuth := middleware.JWTMiddleware(&middleware.JWTConfig{Secret: cfg.JWT.Secret})

	var bookingLimiter gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		bookingLimiter = middleware.RateLimiter(middleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
			Window:            cfg.RateLimit.Window,
			UseRedis:          redisClient != nil,
			RedisClient:       redisClient,
			KeyPrefix:         "ratelimit:booking:",
			EntryTTL:          5 * time.Minute,
		})
	}

	v1 := router.Group("/api/v1")

	// Public event reads
	v1.GET("/events", c.EventHandler.List)
	v1.GET("/events/:id", c.EventHandler.Get)

	// Event management
	eventWrites := v1.Group("")
	eventWrites.Use(jwtAuth, middleware.RequireRole("ORGANIZER", "ADMIN"))
	eventWrites.POST("/events", c.EventHandler.Create)
	eventWrites.POST("/events/:id/publish", c.EventHandler.Publish)

	// Booking reads and refunds
	authed := v1.Group("")
	authed.Use(jwtAuth)
	authed.GET("/bookings/my", c.BookingHandler.ListMy)
	authed.GET("/bookings/:id/invoice", c.BookingHandler.GetInvoice)
	authed.POST("/bookings/:id/refund", c.BookingHandler.Refund)
	authed.GET("/events/:id/booked", c.BookingHandler.HasBooked)

	// Booking creation carries the rate limit; this is the endpoint a
	// ticket rush hammers.
	bookingCreate := v1.Group("")
	bookingCreate.Use(jwtAuth, middleware.RequireRole("ATTENDEE", "ADMIN"))
	if bookingLimiter != nil {
		bookingCreate.Use(bookingLimiter)
	}
	bookingCreate.POST("/bookings", c.BookingHandler.Create)

	return router
}

func logLevel(cfg *config.Config) string {
	if cfg.App.Debug {
		return "debug"
	}
	return "info"
}
