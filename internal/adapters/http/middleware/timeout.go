package middleware

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/acme/quote-manager/internal/adapters/http/dto"
	"github.com/acme/quote-manager/internal/platform/logging"
)

// Timeout puts a deadline on the request context. Relay calls inherit it,
// and a request whose deadline expires before anything was written gets a
// 503 envelope. Paths in skip get no deadline.
//
// The handler stays on the request goroutine, so one that ignores the
// deadline delays the 503 rather than racing it on the gin context.
func Timeout(timeout time.Duration, skip ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 || slices.Contains(skip, c.Request.URL.Path) {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if c.Writer.Written() || !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return
		}

		timeoutsTotal.WithLabelValues(c.FullPath()).Inc()
		logging.FromContext(ctx).Warn("request deadline exceeded", slog.Duration("timeout", timeout))

		dto.AbortWithErrorCode(c, dto.ErrorCodeTimeout, "request timeout exceeded")
	}
}
