package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/employeeflow/employeeflow-backend-go/internal/config"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "employeeflow:summary:"

var ErrNotConfigured = errors.New("redis client not configured")

// SummaryCache stores computed dashboard summaries in Redis. A nil
// *SummaryCache is valid and caches nothing, so callers never branch on
// whether Redis is configured.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache returns nil when no address is configured.
func NewSummaryCache(cfg config.RedisConfig) *SummaryCache {
	if cfg.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("unable to reach redis, summaries will be computed on every request", "addr", cfg.Addr, "error", err)
	} else {
		slog.Info("connected to redis", "addr", cfg.Addr)
	}

	return &SummaryCache{client: client, ttl: cfg.TTL}
}

// Get decodes the cached value for key into dest and reports whether it was
// found. Redis failures count as a miss.
func (c *SummaryCache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}
	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("summary cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		slog.Warn("summary cache entry undecodable", "key", key, "error", err)
		return false
	}
	return true
}

func (c *SummaryCache) Set(ctx context.Context, key string, value any) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		slog.Warn("summary cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, keyPrefix+key, raw, c.ttl).Err(); err != nil {
		slog.Warn("summary cache write failed", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached summary.
func (c *SummaryCache) InvalidateAll(ctx context.Context) {
	if c == nil {
		return
	}
	var keys []string
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		slog.Warn("summary cache scan failed", "error", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("summary cache invalidation failed", "keys", len(keys), "error", err)
	}
}

func (c *SummaryCache) Ping(ctx context.Context) error {
	if c == nil {
		return ErrNotConfigured
	}
	return c.client.Ping(ctx).Err()
}

func (c *SummaryCache) Close() {
	if c != nil && c.client != nil {
		_ = c.client.Close()
	}
}
