package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"qaboard/src/app/http/response"
	"qaboard/src/app/middleware"
)

// pathID parses a positive numeric path parameter. On failure it writes a
// 400 response and returns false.
func pathID(c *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid "+label+" id", middleware.GetRequestID(c))
		return 0, false
	}
	return id, true
}
