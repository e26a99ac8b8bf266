package booking

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"safaricamp/models"
)

const replayKeyPrefix = "booking:dispatched:"

// ClaimStatus is the outcome of claiming a booking id.
type ClaimStatus int

const (
	// ClaimAcquired means the id was free; the booking should be dispatched.
	ClaimAcquired ClaimStatus = iota
	// ClaimReplay means the same booking was already dispatched under this id.
	ClaimReplay
	// ClaimConflict means the id was already dispatched with different details.
	ClaimConflict
)

// ReplayGuard stops a double-submitted booking from notifying the operator twice.
type ReplayGuard interface {
	// Claim records fingerprint under bookingID the first time the id is seen.
	// Later claims report whether the stored fingerprint matches.
	Claim(ctx context.Context, bookingID, fingerprint string) (ClaimStatus, error)
	// Release forgets a claim so the guest can retry after a failed dispatch.
	Release(ctx context.Context, bookingID string) error
}

// Fingerprint digests the details the operator acts on. Two submissions with
// the same fingerprint produce the same notification.
func Fingerprint(record *models.BookingRecord) string {
	p := record.Pricing
	parts := []string{
		strings.ToLower(record.Email),
		record.CheckInAt.UTC().Format(time.RFC3339),
		record.CheckOutAt.UTC().Format(time.RFC3339),
		fmt.Sprintf("%d", p.GroupSize),
		fmt.Sprintf("%.2f", p.Total),
		record.Location.Name,
		record.AccommodationType,
		record.MealPlan,
		record.FullName(),
		record.Phone,
		record.SpecialRequests,
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return hex.EncodeToString(sum[:])
}

// RedisReplayGuard claims booking ids with SETNX so every instance behind a
// load balancer sees the same claims. The stored value is the fingerprint.
type RedisReplayGuard struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisReplayGuard(client *redis.Client, ttl time.Duration) *RedisReplayGuard {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisReplayGuard{Client: client, TTL: ttl}
}

func (g *RedisReplayGuard) Claim(ctx context.Context, bookingID, fingerprint string) (ClaimStatus, error) {
	key := replayKeyPrefix + bookingID
	ok, err := g.Client.SetNX(ctx, key, fingerprint, g.TTL).Result()
	if err != nil {
		return ClaimAcquired, fmt.Errorf("claim booking %s: %w", bookingID, err)
	}
	if ok {
		return ClaimAcquired, nil
	}
	stored, err := g.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return ClaimAcquired, fmt.Errorf("claim booking %s: claim expired while checking it", bookingID)
	}
	if err != nil {
		return ClaimAcquired, fmt.Errorf("read claim for booking %s: %w", bookingID, err)
	}
	return compareClaim(stored, fingerprint), nil
}

func (g *RedisReplayGuard) Release(ctx context.Context, bookingID string) error {
	if err := g.Client.Del(ctx, replayKeyPrefix+bookingID).Err(); err != nil {
		return fmt.Errorf("release booking %s: %w", bookingID, err)
	}
	return nil
}

func compareClaim(stored, fingerprint string) ClaimStatus {
	if stored == fingerprint {
		return ClaimReplay
	}
	return ClaimConflict
}

// NoopReplayGuard accepts every claim. Used when Redis is not configured.
type NoopReplayGuard struct{}

func (NoopReplayGuard) Claim(context.Context, string, string) (ClaimStatus, error) {
	return ClaimAcquired, nil
}

func (NoopReplayGuard) Release(context.Context, string) error {
	return nil
}
