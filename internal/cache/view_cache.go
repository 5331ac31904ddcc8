package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/PY-Dev20/traint-5x5/internal/i18n"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "catalog:"

func ProgramKey(programID int64, locale i18n.Locale) string {
	return fmt.Sprintf("%sprogram:%d:%s", keyPrefix, programID, locale)
}

func ProgramListKey(locale i18n.Locale) string {
	return fmt.Sprintf("%sprograms:%s", keyPrefix, locale)
}

func ExerciseKey(exerciseID int64, locale i18n.Locale) string {
	return fmt.Sprintf("%sexercise:%d:%s", keyPrefix, exerciseID, locale)
}

func ExerciseListKey(locale i18n.Locale) string {
	return fmt.Sprintf("%sexercises:%s", keyPrefix, locale)
}

func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// ViewCache stores locale-resolved catalog views as JSON. A nil *ViewCache
// is valid and caches nothing. Redis failures are logged and treated as
// misses.
type ViewCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewViewCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *ViewCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &ViewCache{client: client, ttl: ttl, logger: logger}
}

func (c *ViewCache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("catalog cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn("catalog cache entry undecodable", "key", key, "error", err)
		return false
	}
	return true
}

func (c *ViewCache) Set(ctx context.Context, key string, value any) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("catalog cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("catalog cache write failed", "key", key, "error", err)
	}
}

// Flush deletes every catalog view and returns how many keys were removed.
func (c *ViewCache) Flush(ctx context.Context) (int, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}

	removed := 0
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 200).Iterator()
	batch := make([]string, 0, 200)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			n, err := c.client.Del(ctx, batch...).Result()
			if err != nil {
				return removed, fmt.Errorf("delete catalog keys: %w", err)
			}
			removed += int(n)
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("scan catalog keys: %w", err)
	}
	if len(batch) > 0 {
		n, err := c.client.Del(ctx, batch...).Result()
		if err != nil {
			return removed, fmt.Errorf("delete catalog keys: %w", err)
		}
		removed += int(n)
	}
	return removed, nil
}
