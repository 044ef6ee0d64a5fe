package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/LemonieOff/ARDeco-server-sub001/response"
)

// Recovery converts panics into the standard error envelope so nothing
// escapes as a raw unhandled exception.
func Recovery(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				l.Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("path", c.Request.URL.Path),
				)
				response.AbortKO(c, 500, response.DescServerError)
			}
		}()
		c.Next()
	}
}
