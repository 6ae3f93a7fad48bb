package logging

import (
	"time"

	"github.com/gin-gonic/gin"
)

// GinMiddleware logs every request handled by a gin router through the
// global zap logger.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		LogHTTPRequest(c.ClientIP(), c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
