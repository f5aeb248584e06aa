package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the listed origins to call the API from a browser. With no
// origins configured it is a no-op, which suits the embedded admin where
// the frontend is served from the same host.
func CORS(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"Origin",
			HeaderRequestID,
			HeaderCorrelationID,
		},
		ExposeHeaders: []string{
			HeaderRequestID,
			RetryInvalidSessionHeader,
			"Retry-After",
		},
		MaxAge: 12 * time.Hour,
	})
}
