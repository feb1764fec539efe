// Package middleware provides HTTP middleware components for the API server.
package middleware

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimitStore implements RateLimitStore backed by Redis, so the
// limit holds across multiple API instances. It uses a fixed window counter:
// INCR on the key, with the window TTL set when the key is created.
//
// The store fails open: if Redis is unreachable the request is allowed with
// a full quota, and the error is counted on the optional metrics. Rate
// limiting is a protection layer, not a correctness requirement, so an
// unavailable Redis must not take the API down with it.
type RedisRateLimitStore struct {
	client  *redis.Client
	metrics *Metrics
}

// NewRedisRateLimitStore creates a Redis-backed rate limit store.
func NewRedisRateLimitStore(client *redis.Client) *RedisRateLimitStore {
	return &RedisRateLimitStore{client: client}
}

// WithMetrics attaches middleware metrics for fail-open error counting.
func (s *RedisRateLimitStore) WithMetrics(m *Metrics) *RedisRateLimitStore {
	s.metrics = m
	return s
}

// Allow checks if a request from the given key should be allowed.
// Implements the RateLimitStore interface.
func (s *RedisRateLimitStore) Allow(ctx context.Context, key string, config RateLimitConfig) (bool, int, int) {
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return s.failOpen(ctx, key, config, err)
	}

	if count == 1 {
		// First request in the window owns the TTL.
		if err := s.client.Expire(ctx, key, config.WindowDuration).Err(); err != nil {
			return s.failOpen(ctx, key, config, err)
		}
	}

	if count <= int64(config.RequestsPerWindow) {
		return true, config.RequestsPerWindow - int(count), 0
	}

	retryAfter := int(config.WindowDuration.Seconds())
	if ttl, err := s.client.TTL(ctx, key).Result(); err == nil && ttl > 0 {
		retryAfter = int(ttl.Seconds())
		if retryAfter <= 0 {
			retryAfter = 1
		}
	}
	return false, 0, retryAfter
}

// failOpen allows the request and records the Redis error.
func (s *RedisRateLimitStore) failOpen(ctx context.Context, key string, config RateLimitConfig, err error) (bool, int, int) {
	if s.metrics != nil {
		s.metrics.IncRateLimitRedisErrors()
	}
	slog.WarnContext(ctx, "redis rate limit check failed, failing open",
		"key", key,
		"error", err)
	return true, config.RequestsPerWindow, 0
}
