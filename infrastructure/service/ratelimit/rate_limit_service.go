package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/vobe/voicedesk/application/port/outbound"
	"github.com/vobe/voicedesk/infrastructure/service/logger"
)

// Config for the login rate limiter
type Config struct {
	Enabled       bool
	IPAttempts    int
	IPWindow      time.Duration
	BlockDuration time.Duration
}

type rateLimitService struct {
	client *redis.Client
	logger logger.Logger
}

// NewRateLimitService returns a Redis-backed limiter, or a noop limiter when
// disabled or no client is available.
func NewRateLimitService(client *redis.Client, cfg Config, log logger.Logger) outbound.RateLimitService {
	if !cfg.Enabled || client == nil {
		log.Info(context.Background(), "rate limiting disabled", nil)
		return &noopRateLimitService{}
	}
	return &rateLimitService{
		client: client,
		logger: log,
	}
}

func (s *rateLimitService) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	attemptsKey := fmt.Sprintf("rate_limit:attempts:%s", key)

	count, err := s.client.Get(ctx, attemptsKey).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return true, nil
		}
		return true, fmt.Errorf("failed to read attempt counter: %w", err)
	}

	return count < limit, nil
}

func (s *rateLimitService) Increment(ctx context.Context, key string, window time.Duration) error {
	attemptsKey := fmt.Sprintf("rate_limit:attempts:%s", key)

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, attemptsKey)
	pipe.Expire(ctx, attemptsKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to increment attempt counter: %w", err)
	}

	s.logger.Debug(ctx, "rate limit counter incremented", map[string]interface{}{
		"key":      key,
		"attempts": incr.Val(),
	})
	return nil
}

func (s *rateLimitService) Block(ctx context.Context, key string, duration time.Duration, reason string) error {
	blockKey := fmt.Sprintf("rate_limit:blocked:%s", key)

	if err := s.client.Set(ctx, blockKey, reason, duration).Err(); err != nil {
		return fmt.Errorf("failed to block key: %w", err)
	}

	logger.LogSecurityEvent(ctx, s.logger, "rate_limit_block", "HIGH", map[string]interface{}{
		"key":      key,
		"duration": duration.String(),
		"reason":   reason,
	})
	return nil
}

func (s *rateLimitService) IsBlocked(ctx context.Context, key string) (bool, error) {
	blockKey := fmt.Sprintf("rate_limit:blocked:%s", key)

	_, err := s.client.Get(ctx, blockKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check block status: %w", err)
	}
	return true, nil
}

// noopRateLimitService allows everything.
type noopRateLimitService struct{}

func (n *noopRateLimitService) CheckLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return true, nil
}

func (n *noopRateLimitService) Increment(ctx context.Context, key string, window time.Duration) error {
	return nil
}

func (n *noopRateLimitService) Block(ctx context.Context, key string, duration time.Duration, reason string) error {
	return nil
}

func (n *noopRateLimitService) IsBlocked(ctx context.Context, key string) (bool, error) {
	return false, nil
}
