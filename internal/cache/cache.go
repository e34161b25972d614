// Package cache provides the optional Redis cache layer.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// New connects a Redis client from a URL, verifying connectivity.
func New(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, errParse := redis.ParseURL(redisURL)
	if errParse != nil {
		return nil, fmt.Errorf("cache: parse redis url: %w", errParse)
	}

	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.PoolTimeout = 4 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)
	if errPing := client.Ping(ctx).Err(); errPing != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: ping redis: %w", errPing)
	}
	return client, nil
}
