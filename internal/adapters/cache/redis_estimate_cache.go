package cache

import (
	"context"
	"delivery-time-service/internal/platform/obs"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisEstimateCache stores model outputs in Redis with a fixed TTL.
type RedisEstimateCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisEstimateCache(client *redis.Client, ttl time.Duration) *RedisEstimateCache {
	return &RedisEstimateCache{Client: client, TTL: ttl}
}

// NewRedisClient opens a client and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		PoolSize:     10,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}

func (c *RedisEstimateCache) Get(ctx context.Context, key string) (_ float64, _ bool, err error) {
	defer obs.Time(ctx, "estimate.cache.Get")(&err)

	if c.Client == nil {
		return 0, false, errors.New("estimate cache: client is nil")
	}
	if key == "" {
		return 0, false, errors.New("get estimate cache: key must not be empty")
	}

	v, err := c.Client.Get(ctx, key).Float64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get estimate cache: %w", err)
	}
	return v, true, nil
}

func (c *RedisEstimateCache) Set(ctx context.Context, key string, minutes float64) (err error) {
	defer obs.Time(ctx, "estimate.cache.Set")(&err)

	if c.Client == nil {
		return errors.New("estimate cache: client is nil")
	}
	if key == "" {
		return errors.New("set estimate cache: key must not be empty")
	}

	val := strconv.FormatFloat(minutes, 'g', -1, 64)
	if err := c.Client.Set(ctx, key, val, c.TTL).Err(); err != nil {
		return fmt.Errorf("set estimate cache: %w", err)
	}
	return nil
}
