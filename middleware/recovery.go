package middleware

import (
	"runtime/debug"

	"github.com/SumanthSV/AI-Todo-summarizer/utils"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
)

func EnhancedRecoveryMiddleware(logger hclog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"request_id", c.GetString("request_id"),
					"panic", err,
					"stack", string(debug.Stack()),
				)
				utils.TrackError("http", "panic")
				if !c.Writer.Written() {
					utils.InternalError(c, "Internal server error")
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}
