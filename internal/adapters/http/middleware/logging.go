package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/acme/quote-manager/internal/platform/logging"
)

// Logging logs each request through the context logger, which already
// carries the request, correlation and trace ids. Probes under /-/, the
// scrape endpoint and any extra paths are not logged.
//
// The install handshake query carries the authorization code and hmac, so
// query strings under /auth are dropped.
func Logging(logger *slog.Logger, skip ...string) gin.HandlerFunc {
	skipped := map[string]bool{"/metrics": true}
	for _, p := range skip {
		skipped[p] = true
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if skipped[path] || strings.HasPrefix(path, "/-/") {
			c.Next()
			return
		}

		target := path
		if q := c.Request.URL.RawQuery; q != "" && !strings.HasPrefix(path, "/auth") {
			target += "?" + q
		}

		ctx := c.Request.Context()
		reqLogger := logging.FromContextOr(ctx, logger).With(
			slog.String("method", c.Request.Method),
			slog.String("path", target),
		)

		reqLogger.DebugContext(ctx, "request started",
			slog.String("client_ip", c.ClientIP()),
			slog.String("user_agent", c.Request.UserAgent()),
		)

		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		attrs := []slog.Attr{
			slog.String("route", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", elapsed),
			slog.Int64("latency_ms", elapsed.Milliseconds()),
			slog.Int("bytes", c.Writer.Size()),
		}
		if id := c.Param("id"); id != "" {
			attrs = append(attrs, slog.String("quote_id", id))
		}

		reqLogger.LogAttrs(ctx, levelFor(c.Writer.Status()), "request completed", attrs...)
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
