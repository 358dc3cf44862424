// Package cache is a JSON-over-Redis cache. Every helper degrades to a
// no-op when Redis is down, so cached paths fall through to the database
// instead of failing.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shashiranjanraj/drivehub/config"
	"github.com/shashiranjanraj/drivehub/pkg/metrics"
)

// RDB is nil until Connect succeeds; the queue's Redis driver shares it.
var RDB *redis.Client

var Ctx = context.Background()

// Connect dials Redis and pings it. On failure RDB stays nil and the
// caller decides whether that is fatal.
func Connect() error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
	})
	if err := client.Ping(Ctx).Err(); err != nil {
		return fmt.Errorf("cache: redis ping: %w", err)
	}
	RDB = client
	return nil
}

// Get reads key into dest. False means miss, error, or no Redis.
func Get(key string, dest interface{}) bool {
	if RDB == nil {
		return false
	}
	raw, err := RDB.Get(Ctx, key).Bytes()
	if err != nil {
		metrics.CacheMisses.WithLabelValues("redis").Inc()
		return false
	}
	if json.Unmarshal(raw, dest) != nil {
		metrics.CacheMisses.WithLabelValues("redis").Inc()
		return false
	}
	metrics.CacheHits.WithLabelValues("redis").Inc()
	return true
}

// Set stores value as JSON under key with a TTL.
func Set(key string, value interface{}, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return RDB.Set(Ctx, key, data, ttl).Err()
}

// Del drops keys.
func Del(keys ...string) error {
	if RDB == nil {
		return nil
	}
	return RDB.Del(Ctx, keys...).Err()
}

// Forget drops a single key; reads as invalidation at call sites.
func Forget(key string) error { return Del(key) }
