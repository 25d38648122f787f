package middleware

import (
	"time"

	"iwfm-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger derives a request-scoped logger carrying the request id
// and writes one access log line when the request completes. Must run
// after RequestID.
func RequestLogger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.WithRequestID(base, c.GetString("request_id"))
		start := time.Now()

		c.Next()

		log.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
