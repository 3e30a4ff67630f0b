package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/shared/metrics"
	"ats-backend/internal/shared/server/respond"
	"ats-backend/internal/shared/telemetry"
)

const maxStackBytes = 8 << 10

// Recovery turns a handler panic into a 500 internal_error response. Scoring
// panics are already recovered inside the analyses service; this catches the rest.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			metrics.IncHTTPPanics()
			fields := map[string]any{
				"request_id": RequestIDFromContext(c),
				"error":      panicMessage(rec),
				"stack":      trimStack(debug.Stack()),
				"path":       c.Request.URL.Path,
				"method":     c.Request.Method,
			}
			if analysisID := c.GetString(AnalysisIDKey); analysisID != "" {
				fields["analysis_id"] = analysisID
			}
			telemetry.Error("http.panic", fields)
			if c.Writer.Written() {
				c.Abort()
				return
			}
			respond.Error(c, http.StatusInternalServerError, "internal_error", "internal error", nil)
		}()
		c.Next()
	}
}

func panicMessage(rec any) string {
	if err, ok := rec.(error); ok {
		return err.Error()
	}
	return strings.TrimSpace(fmt.Sprint(rec))
}

func trimStack(stack []byte) string {
	if len(stack) > maxStackBytes {
		stack = stack[:maxStackBytes]
	}
	return string(stack)
}
