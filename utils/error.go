package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"safaricamp/models"
)

// ErrorHandler is a middleware that turns panics into the booking failure
// response, so the guest always gets contacts to finish the booking by hand.
func ErrorHandler(fallback *models.FallbackContacts) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err), zap.String("path", c.Request.URL.Path))

				c.AbortWithStatusJSON(http.StatusInternalServerError, models.BookingResponse{
					Success:  false,
					Code:     "InternalError",
					Message:  "We could not process your booking automatically. Please contact us directly.",
					Fallback: fallback,
				})
			}
		}()
		c.Next()
	}
}

// JSONError logs a failure and sends it as a structured booking response.
func JSONError(c *gin.Context, status int, code, message string, fallback *models.FallbackContacts) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("code", code), zap.Int("status", status))
	c.JSON(status, models.BookingResponse{
		Success:  false,
		Code:     code,
		Message:  message,
		Fallback: fallback,
	})
}
