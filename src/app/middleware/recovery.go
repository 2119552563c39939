package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"qaboard/src/app/http/response"
	"qaboard/src/infra/logger"
)

// Recovery turns a handler panic into a 500 with the generic internal error
// body. The panic value and stack are logged with the request id.
//
// Register it before every other middleware:
//
//	router.Use(middleware.Recovery(logger))
func Recovery(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			requestID := GetRequestID(c)
			logger.Error(logger.WithRequestID(log, requestID), "panic recovered",
				"panic", rec,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"stack", string(debug.Stack()),
			)
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.Error{
				Error: response.ErrorDetail{
					Code:      "INTERNAL_ERROR",
					Message:   "An unexpected error occurred",
					RequestID: requestID,
				},
			})
		}()

		c.Next()
	}
}
