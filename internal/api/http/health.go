package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/hummbl-dev/models-api/internal/models/service"
)

type HealthResponse struct {
	Status    string      `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Service   string      `json:"service"`
	Version   string      `json:"version"`
	Cache     CacheHealth `json:"cache"`
	Redis     string      `json:"redis"`
}

type CacheHealth struct {
	Cached     bool  `json:"cached"`
	AgeSeconds int64 `json:"age_seconds"`
	service.MetricsSnapshot
}

type HealthHandler struct {
	serviceName string
	version     string
	cache       *service.DocumentCache
	redis       *redis.Client
}

// NewHealthHandler creates a health handler. rdb may be nil when events are disabled.
func NewHealthHandler(serviceName, version string, cache *service.DocumentCache, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		cache:       cache,
		redis:       rdb,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	redisStatus := "disabled"
	if h.redis != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := h.redis.Ping(pingCtx).Err(); err != nil {
			redisStatus = "down"
		} else {
			redisStatus = "up"
		}
	}

	var cache CacheHealth
	if h.cache != nil {
		age, ok := h.cache.Age()
		cache = CacheHealth{
			Cached:          ok,
			AgeSeconds:      int64(age.Seconds()),
			MetricsSnapshot: h.cache.Metrics().Snapshot(),
		}
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		Cache:     cache,
		Redis:     redisStatus,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
