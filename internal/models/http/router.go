package http

import "github.com/gin-gonic/gin"

// Register registers the models routes and the engine-wide fallbacks.
// Trailing-slash redirects are disabled so near-miss paths get a 404.
func (h *Handler) Register(r *gin.Engine) {
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false

	r.OPTIONS("/*path", h.Preflight)

	v1 := r.Group("/v1")
	v1.GET("/models", h.ListModels)
	v1.GET("/models/:code", h.GetModel)

	r.NoRoute(h.NotFound)
	r.NoMethod(h.NotFound)
}
