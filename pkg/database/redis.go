package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds the Redis connection configuration
type RedisConfig struct {
	Address      string
	Password     string
	DB           int
	MaxRetries   int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
}

// DefaultRedisConfig returns a default configuration for local development
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Address:      "localhost:6379",
		MaxRetries:   3,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
	}
}

// Options converts the configuration to go-redis options
func (cfg RedisConfig) Options() *redis.Options {
	return &redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   cfg.MaxRetries,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
	}
}

// NewRedis creates a Redis client and checks it with a ping
func NewRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	client := redis.NewClient(cfg.Options())
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Address, err)
	}
	return client, nil
}
