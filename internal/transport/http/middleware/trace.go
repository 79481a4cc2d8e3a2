package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const TraceContextKey = "trace_id"

// Trace attaches a per-request trace id, taken from the X-Trace-Id header
// when the caller supplies one.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader("X-Trace-Id")
		if traceID == "" {
			traceID = strings.ReplaceAll(uuid.New().String(), "-", "")
		}
		c.Set(TraceContextKey, traceID)
		c.Header("X-Trace-Id", traceID)
		c.Next()
	}
}
