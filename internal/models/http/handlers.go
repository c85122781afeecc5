package http

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hummbl-dev/models-api/internal/models/domain"
	"github.com/hummbl-dev/models-api/internal/models/service"
)

const cacheControl = "public, max-age=3600"

var modelCodePattern = regexp.MustCompile(`^[A-Za-z]{1,2}\d{1,2}$`)

// ListModels returns the filtered model list
func (h *Handler) ListModels(c *gin.Context) {
	q := service.ParseQuery(c.Request.URL.Query())

	models, err := h.models.List(c.Request.Context(), q)
	if err != nil {
		h.internalError(c, err)
		return
	}

	resp := ListResponse{
		Total:  len(models),
		Models: models,
	}
	if q.IncludeMetadata {
		resp.Metadata = &ListMetadata{
			GeneratedAt:    h.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
			CacheAge:       int64(h.models.CacheAge().Seconds()),
			FiltersApplied: q.FiltersApplied(),
		}
	}

	c.Header("Cache-Control", cacheControl)
	c.IndentedJSON(http.StatusOK, resp)
}

// GetModel returns a single model by code
func (h *Handler) GetModel(c *gin.Context) {
	code := c.Param("code")
	if !modelCodePattern.MatchString(code) {
		h.NotFound(c)
		return
	}
	code = strings.ToUpper(code)

	model, err := h.models.Get(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, domain.ErrModelNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "Not Found",
				Message: fmt.Sprintf("Model %s not found", code),
			})
			return
		}
		h.internalError(c, err)
		return
	}

	c.Header("Cache-Control", cacheControl)
	c.IndentedJSON(http.StatusOK, model)
}

// Preflight answers OPTIONS on any path
func (h *Handler) Preflight(c *gin.Context) {
	c.Status(http.StatusOK)
}

// NotFound is the fallback for unknown routes and methods
func (h *Handler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   "Not Found",
		Message: "Endpoint not found",
	})
}

func (h *Handler) internalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "Internal Server Error",
		Message: err.Error(),
	})
}

// Recovered converts a panic into the internal error envelope
func (h *Handler) Recovered(c *gin.Context, recovered any) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "Internal Server Error",
		Message: fmt.Sprint(recovered),
	})
}
