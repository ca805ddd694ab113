package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const windowKeyPrefix = "ratelimit:window:"

// Redis implements ratelimit.WindowStore on a sorted set per client key,
// scored by request time. The key expires after the window, so idle clients
// are evicted by Redis itself. The prune/count/append sequence is not
// transactional; a concurrent lost update under-counts, which is acceptable
// for a soft throttle.
type Redis struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedis constructs a Redis-backed window store.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client, now: time.Now}
}

func (s *Redis) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := s.now()
	redisKey := windowKeyPrefix + key
	cutoff := strconv.FormatInt(now.Add(-window).UnixNano(), 10)

	if err := s.client.ZRemRangeByScore(ctx, redisKey, "-inf", cutoff).Err(); err != nil {
		return false, fmt.Errorf("prune rate limit window: %w", err)
	}

	count, err := s.client.ZCard(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("count rate limit window: %w", err)
	}
	if count >= int64(limit) {
		return false, nil
	}

	member := strconv.FormatInt(now.UnixNano(), 10)
	pipe := s.client.TxPipeline()
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixNano()), Member: member})
	pipe.Expire(ctx, redisKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("record rate limit hit: %w", err)
	}
	return true, nil
}
