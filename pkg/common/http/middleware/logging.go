package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/huynhanx03/codelens/pkg/common/apperr"
	"github.com/huynhanx03/codelens/pkg/common/http/response"
	"github.com/huynhanx03/codelens/pkg/constraints"
	"github.com/huynhanx03/codelens/pkg/metrics"
)

// Logger writes one line per request. Server errors log at error with the
// handler's error chain.
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetHeader(constraints.HeaderRequestID)),
		}
		if uid, ok := c.Get(constraints.ContextKeyUserID); ok {
			fields = append(fields, zap.Any("user_id", uid))
		}

		switch {
		case status >= 500:
			fields = append(fields, zap.String("error", c.Errors.String()))
			logger.Error("request", fields...)
		case status >= 400:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}

// Recovery turns a panic into a 500 reply and an error log.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.String("path", c.Request.URL.Path))
				response.ErrorResponse(c, apperr.New(apperr.CodeInternal, "internal error", http.StatusInternalServerError, nil))
			}
		}()
		c.Next()
	}
}

// Metrics records request count and latency labelled by route template.
func Metrics(m *metrics.HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.Requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.Duration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
