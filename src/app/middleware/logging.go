package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"qaboard/src/infra/logger"
)

// maxLoggedBody caps how much of a request or response body is attached at
// debug level.
const maxLoggedBody = 1024

// Logging emits one line per request, at a level chosen by the status code.
// Bodies are attached only when debug logging is enabled.
func Logging(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		debug := log.Enabled(c.Request.Context(), slog.LevelDebug)

		var reqBody []byte
		var rec *responseCapture
		if debug {
			if c.Request.Body != nil {
				reqBody, _ = io.ReadAll(c.Request.Body)
				c.Request.Body = io.NopCloser(bytes.NewReader(reqBody))
			}
			rec = &responseCapture{ResponseWriter: c.Writer}
			c.Writer = rec
		}

		c.Next()

		status := c.Writer.Status()
		reqLog := logger.WithRequestID(log, GetRequestID(c))
		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", status,
			"duration", time.Since(start),
		}
		if debug {
			args = append(args,
				"request", truncate(reqBody),
				"response", truncate(rec.body.Bytes()),
			)
		}

		switch {
		case status >= 500:
			reqLog.Error("request completed", args...)
		case status >= 400:
			reqLog.Warn("request completed", args...)
		default:
			reqLog.Info("request completed", args...)
		}
	}
}

// responseCapture captures response body while delegating to original writer.
type responseCapture struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (r *responseCapture) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseCapture) WriteString(s string) (int, error) {
	r.body.WriteString(s)
	return r.ResponseWriter.WriteString(s)
}

func truncate(b []byte) string {
	if len(b) > maxLoggedBody {
		return string(b[:maxLoggedBody]) + "..."
	}
	return string(b)
}
