package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ayushMishra464/EventManagement/pkg/database"
	"github.com/ayushMishra464/EventManagement/pkg/redis"
	"github.com/ayushMishra464/EventManagement/pkg/response"
)

// HealthHandler reports service and dependency health
type HealthHandler struct {
	db    *database.PostgresDB
	redis *redis.Client
}

// NewHealthHandler creates a new health handler. redis may be nil when
// the cache is disabled.
func NewHealthHandler(db *database.PostgresDB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

// Liveness handles GET /health
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	}))
}

// Readiness handles GET /health/ready and checks dependencies
func (h *HealthHandler) Readiness(c *gin.Context) {
	checks := gin.H{}
	healthy := true

	if h.db != nil {
		if err := h.db.HealthCheck(c.Request.Context()); err != nil {
			checks["database"] = err.Error()
			healthy = false
		} else {
			checks["database"] = "ok"
		}
	}

	if h.redis != nil {
		if err := h.redis.HealthCheck(c.Request.Context()); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, response.Error(response.ErrCodeServiceUnavailable, "dependency check failed"))
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{
		"status": "ready",
		"checks": checks,
	}))
}
