package http

import (
	"time"

	"github.com/hummbl-dev/models-api/internal/models/domain"
	"github.com/hummbl-dev/models-api/internal/models/service"
)

// Handler handles HTTP requests for models
type Handler struct {
	models *service.ModelService
	now    func() time.Time
}

// New creates a new Handler
func New(models *service.ModelService) *Handler {
	return &Handler{
		models: models,
		now:    time.Now,
	}
}

// ListResponse is the body of GET /v1/models
type ListResponse struct {
	Total    int                  `json:"total"`
	Models   []domain.PublicModel `json:"models"`
	Metadata *ListMetadata        `json:"metadata,omitempty"`
}

type ListMetadata struct {
	GeneratedAt    string `json:"generated_at"`
	CacheAge       int64  `json:"cache_age"`
	FiltersApplied bool   `json:"filters_applied"`
}

// ErrorResponse is the body of every error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
