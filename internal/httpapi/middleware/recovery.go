package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/raylincc/codechat/internal/common"
)

// Recovery converts panics into the uniform JSON error envelope. A handler
// failure must never surface as a bare transport-level error.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("panic recovered",
					"panic", r,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
				)
				if !c.Writer.Written() {
					common.Fail(c, http.StatusInternalServerError, common.CodeInternalError, "internal server error")
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}
