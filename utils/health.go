package utils

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Status    string    `json:"status"`
	Redis     string    `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

// CheckHealth pings the optional Redis dependency. The booking path works
// without Redis, so a failed ping degrades the status instead of failing it.
func CheckHealth(ctx context.Context, client *redis.Client) HealthStatus {
	status := HealthStatus{Status: "ok", Redis: "disabled", CheckedAt: time.Now().UTC()}
	if client == nil {
		return status
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		status.Status = "degraded"
		status.Redis = "unreachable"
		return status
	}
	status.Redis = "ok"
	return status
}
