// File: safaricamp/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Optional Redis client, reported by the health endpoint.
	RedisClient *redis.Client

	// Allowed CORS origins.
	AllowedOrigins []string

	// Booking endpoints
	SubmitBooking gin.HandlerFunc
	QuoteBooking  gin.HandlerFunc
}
