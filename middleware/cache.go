package middleware

import "github.com/gin-gonic/gin"

// CacheControlMiddleware sets a fixed Cache-Control header, e.g. "no-store"
// for per-user API responses.
func CacheControlMiddleware(value string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", value)
		c.Next()
	}
}
