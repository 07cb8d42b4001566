package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewClient connects to redis and checks that it answers.
func NewClient(ctx context.Context, cfg config.RedisConnect) (*redis.Client, error) {

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

type RateLimiter struct {
	client *redis.Client
	config config.RateConfig
	prefix string
	now    func() time.Time
}

func NewRateLimiter(client *redis.Client, cfg config.RateConfig, prefix string) *RateLimiter {
	return &RateLimiter{client: client, config: cfg, prefix: prefix, now: time.Now}
}

// Allow records one attempt for key in a sliding window and reports whether
// it is within the limit. It returns isAllowed, attempts left, seconds to
// wait and an error.
func (r *RateLimiter) Allow(ctx context.Context, key string) (bool, int, int, error) {

	key = fmt.Sprintf("%s:%s", r.prefix, key)

	now := r.now()
	nowMs := now.UnixMilli()

	// only attempts after this point are counted
	windowStart := nowMs - r.config.WindowSize.Milliseconds()

	pipe := r.client.Pipeline()

	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(nowMs), Member: strconv.FormatInt(now.UnixNano(), 10)})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, r.config.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, 0, err
	}

	attempts := count.Val()

	if attempts > r.config.MaxAttempts {
		oldest, err := r.client.ZRangeWithScores(ctx, key, 0, 0).Result()
		if err != nil || len(oldest) == 0 {
			return false, 0, int(r.config.WindowSize.Seconds()), err
		}

		retryAfterMs := int64(oldest[0].Score) + r.config.WindowSize.Milliseconds() - nowMs
		retryAfter := int((retryAfterMs + 999) / 1000)
		if retryAfter < 1 {
			retryAfter = 1
		}

		return false, 0, retryAfter, nil
	}

	return true, int(r.config.MaxAttempts - attempts), 0, nil
}

/*
	Attempts are kept in a sorted set per key:

	suggest:<session>
	---------------------------------------
	| Score (unix ms) | Member (unix ns)   |
	---------------------------------------
	| 1700000000000   | 1700000000000123456 |
	| 1700000002000   | 1700000002000654321 |
*/
