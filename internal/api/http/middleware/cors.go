package middleware

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	corsMethods = []string{http.MethodGet, http.MethodOptions}
	corsHeaders = []string{"Content-Type"}
)

// CORS returns the middleware chain that makes the API readable from any
// origin. The static headers go on every response, including those sent to
// clients that never set Origin; browser preflights are answered by
// gin-contrib/cors with 200 instead of its default 204.
func CORS() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		staticCORSHeaders(),
		cors.New(cors.Config{
			AllowAllOrigins:           true,
			AllowMethods:              corsMethods,
			AllowHeaders:              corsHeaders,
			OptionsResponseStatusCode: http.StatusOK,
		}),
	}
}

func staticCORSHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		c.Next()
	}
}
