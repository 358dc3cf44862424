package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisJobsKey = "drivehub:queue:jobs"

// RedisDriver makes the queue durable: envelopes go through a Redis list
// shared by every worker process (drivehub serve and drivehub queue:work).
type RedisDriver struct {
	rdb *redis.Client
}

// NewRedisDriver wraps the client pkg/cache already holds.
func NewRedisDriver(rdb *redis.Client) *RedisDriver {
	return &RedisDriver{rdb: rdb}
}

func (d *RedisDriver) Push(payload []byte) error {
	if err := d.rdb.LPush(context.Background(), redisJobsKey, payload).Err(); err != nil {
		return fmt.Errorf("queue/redis: push: %w", err)
	}
	return nil
}

// Pop blocks up to five seconds waiting for a job. A nil, nil return means
// the wait timed out and the worker should poll again.
func (d *RedisDriver) Pop(ctx context.Context) ([]byte, error) {
	result, err := d.rdb.BRPop(ctx, 5*time.Second, redisJobsKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("queue/redis: pop: %w", err)
	}
	// BRPop yields [key, value]
	if len(result) < 2 {
		return nil, nil
	}
	return []byte(result[1]), nil
}
