package logger

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ginContextLoggerKey is where the request-scoped logger lives in the gin
// context. The request ID is stored by the RequestID middleware under the
// same key it uses for the response header.
const (
	ginContextLoggerKey    = "logger"
	ginContextRequestIDKey = "X-Request-ID"
)

// GinMiddleware returns a gin middleware that logs each HTTP request once it
// completes, choosing the level from the response status. A request-scoped
// logger carrying the request ID is stored in the gin context for handlers.
func GinMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		reqLogger := log.With(
			zap.String("request_id", requestIDFromContext(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
		)
		c.Set(ginContextLoggerKey, reqLogger)

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()),
		}
		if query != "" {
			fields = append(fields, zap.String("query", query))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			reqLogger.Error("request completed", fields...)
		case status >= http.StatusBadRequest:
			reqLogger.Warn("request completed", fields...)
		default:
			reqLogger.Info("request completed", fields...)
		}
	}
}

// Recovery returns a gin middleware that turns panics into logged 500s.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error("panic recovered",
					zap.String("request_id", requestIDFromContext(c)),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Any("error", err),
					zap.Stack("stacktrace"),
				)
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}

// GetGinLogger retrieves the request-scoped logger from the gin context,
// falling back to a no-op logger outside of a request.
func GetGinLogger(c *gin.Context) *zap.Logger {
	if value, exists := c.Get(ginContextLoggerKey); exists {
		if log, ok := value.(*zap.Logger); ok {
			return log
		}
	}
	return zap.NewNop()
}

func requestIDFromContext(c *gin.Context) string {
	if value, exists := c.Get(ginContextRequestIDKey); exists {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
