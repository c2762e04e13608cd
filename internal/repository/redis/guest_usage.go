package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"ayitichat/internal/domain/repositories"
)

// guestUsageTTL keeps daily counters around a little past midnight UTC so a
// guest cannot reset their quota by waiting out a short expiry.
const guestUsageTTL = 26 * time.Hour

// RedisGuestUsageRepository tracks per-guest daily message counters in Redis.
// Keys are date-scoped so the quota resets at midnight UTC without any
// cleanup job.
type RedisGuestUsageRepository struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// NewGuestUsageRepository creates a new RedisGuestUsageRepository. The prefix
// separates dev/test/prod keyspaces the same way table prefixes do.
func NewGuestUsageRepository(client *redis.Client, prefix string, logger *slog.Logger) repositories.GuestUsageRepository {
	return &RedisGuestUsageRepository{
		client: client,
		prefix: prefix,
		logger: logger,
	}
}

func (r *RedisGuestUsageRepository) key(guestID string) string {
	day := time.Now().UTC().Format("2006-01-02")
	return fmt.Sprintf("%sguest_usage:%s:%s", r.prefix, guestID, day)
}

// Increment bumps today's counter for the guest and returns the new value.
// The TTL is set on first increment only; EXPIRE NX keeps replays from
// extending the window.
func (r *RedisGuestUsageRepository) Increment(ctx context.Context, guestID string) (int, error) {
	key := r.key(guestID)

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("increment guest usage: %w", err)
	}

	if count == 1 {
		if err := r.client.Expire(ctx, key, guestUsageTTL).Err(); err != nil {
			r.logger.Warn("failed to set guest usage expiry", "key", key, "error", err)
		}
	}

	return int(count), nil
}

// Count reads today's counter without bumping it. A missing key is zero.
func (r *RedisGuestUsageRepository) Count(ctx context.Context, guestID string) (int, error) {
	count, err := r.client.Get(ctx, r.key(guestID)).Int()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("get guest usage: %w", err)
	}

	return count, nil
}
