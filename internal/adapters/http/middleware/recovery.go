package middleware

import (
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/acme/quote-manager/internal/adapters/http/dto"
	"github.com/acme/quote-manager/internal/platform/logging"
)

// Recovery turns a handler panic into a 500 envelope and counts it. It is
// installed first so it covers the whole chain. Hooks get the panic value
// and stack.
func Recovery(logger *slog.Logger, hooks ...func(recovered any, stack []byte)) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}

			stack := debug.Stack()
			for _, hook := range hooks {
				hook(recovered, stack)
			}

			panicsTotal.WithLabelValues(c.FullPath()).Inc()

			traceID := dto.GetTraceID(c)
			logging.FromContextOr(c.Request.Context(), logger).Error("handler panicked",
				slog.Any("error", recovered),
				slog.String("stack", string(stack)),
				slog.String("method", c.Request.Method),
				slog.String("path", c.Request.URL.Path),
				slog.String("trace_id", traceID),
			)

			// Headers are gone once the body started; all that is left is to stop.
			if c.Writer.Written() {
				c.Abort()
				return
			}

			dto.AbortWithErrorCode(c, dto.ErrorCodeInternal, "an internal error occurred")
		}()

		c.Next()
	}
}
