package errors

import (
	"net/http"
	"runtime/debug"

	"messaging-demo/backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler returns a middleware that renders errors attached to the
// context as envelope-shaped responses.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		appErr := FromError(c.Errors[0].Err)

		if log, ok := c.Get("logger"); ok {
			log.(*logger.Logger).Error("Request error",
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"status_code", appErr.StatusCode,
				"error_title", appErr.Title,
				"message", appErr.Message,
			)
		}

		c.AbortWithStatusJSON(appErr.StatusCode, gin.H{
			"error_code":    appErr.Code(),
			"error_title":   appErr.Title,
			"error_message": appErr.Message,
		})
	}
}

// RecoveryWithLogger returns a middleware that recovers from panics, logs
// the stack, and responds with a generic error envelope.
func RecoveryWithLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())

				var log *logger.Logger
				if l, exists := c.Get("logger"); exists {
					log = l.(*logger.Logger)
				} else {
					log = logger.GetGlobal()
				}

				if log != nil {
					log.Error("Panic recovered",
						"error", r,
						"stack", stack,
						"path", c.Request.URL.Path,
						"method", c.Request.Method,
					)
				}

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error_code":    "500",
					"error_title":   "Internal Error",
					"error_message": "An unexpected error occurred",
				})
			}
		}()

		c.Next()
	}
}
