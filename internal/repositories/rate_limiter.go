package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/config"
	"github.com/redis/go-redis/v9"
)

type RateLimitRepository interface {
	// CheckSubmissionRateLimit records one order-submission attempt for the customer and
	// returns isAllowed, attempts left and seconds to wait.
	CheckSubmissionRateLimit(ctx context.Context, customerID string) (bool, int, int, error)
}

type redisRateLimiter struct {
	client redis.Cmdable
	cfg    config.RateLimit
	now    func() time.Time
}

func NewRateLimitRepo(client redis.Cmdable, cfg config.RateLimit) RateLimitRepository {
	return &redisRateLimiter{client: client, cfg: cfg, now: time.Now}
}

func submissionKey(customerID string) string {
	return "order_submissions:" + customerID
}

// The window is a sorted set scored by attempt time in milliseconds; entries older than the
// window are trimmed before counting.
func (r *redisRateLimiter) CheckSubmissionRateLimit(ctx context.Context, customerID string) (bool, int, int, error) {
	logger := middleware.LoggerFromContext(ctx)

	key := submissionKey(customerID)
	now := r.now()
	nowMs := now.UnixMilli()
	windowStart := nowMs - r.cfg.SubmitWindow.Milliseconds()

	pipe := r.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(nowMs), Member: strconv.FormatInt(now.UnixNano(), 10)})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, r.cfg.SubmitWindow)

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Error("Redis pipeline execution failed for rate limit", slog.String("key", key), slog.Any("error", err))
		return false, 0, 0, fmt.Errorf("redis pipeline error for rate limit check: %w", err)
	}

	attempts := count.Val()
	remaining := r.cfg.SubmitMaxAttempts - attempts

	if attempts > r.cfg.SubmitMaxAttempts {
		scores, err := r.client.ZRangeWithScores(ctx, key, 0, 0).Result()
		if err == nil && len(scores) == 0 {
			err = errors.New("empty rate limit window")
		}
		if err != nil {
			logger.Error("Failed to get oldest attempt time for rate limit", slog.String("key", key), slog.Any("error", err))
			return false, 0, int(r.cfg.SubmitWindow.Seconds()), fmt.Errorf("failed to get oldest attempt time: %w", err)
		}

		oldestMs := int64(scores[0].Score)
		retryAfterMs := max(oldestMs+r.cfg.SubmitWindow.Milliseconds()-nowMs, 0)
		retryAfter := int((retryAfterMs + 999) / 1000)

		logger.Warn("Order submission rate limit exceeded", slog.String("customer_id", customerID), slog.Int64("attempts", attempts))
		return false, 0, retryAfter, nil
	}

	logger.Debug("Rate limit check passed", slog.String("customer_id", customerID), slog.Int64("attempts", attempts), slog.Int64("remaining", remaining))
	return true, int(remaining), 0, nil
}
