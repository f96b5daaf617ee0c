package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KBesada24/CSC430-SWE/shared/utils"
)

// notificationStream is the stream notification fan-out summaries land on
const notificationStream = "club:notifications"

// maxStreamLength caps the stream; older entries are trimmed approximately
const maxStreamLength = 10000

// Config holds all configuration for the Redis client
type Config struct {
	Addr     string
	Password string
	DB       int
}

// NewConfigFromEnv builds the Redis configuration from the environment
func NewConfigFromEnv() *Config {
	db, _ := strconv.Atoi(utils.GetEnvOrDefault("REDIS_DB", "0"))
	return &Config{
		Addr:     utils.GetEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		Password: utils.GetEnvOrDefault("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

// RedisClient is a wrapper around the go-redis client. It publishes
// notification fan-out summaries onto a Redis Stream for downstream
// consumers (dashboards, delivery workers).
type RedisClient struct {
	client *redis.Client
	config *Config
}

// NewClient creates and connects a new RedisClient.
func NewClient(cfg *Config) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisClient{
		client: rdb,
		config: cfg,
	}, nil
}

// Close gracefully closes the Redis connection.
func (c *RedisClient) Close() error {
	return c.client.Close()
}

// PublishNotificationEvent adds a fan-out summary to the notification
// stream using XADD. '*' lets Redis mint a timestamp-based entry ID.
func (c *RedisClient) PublishNotificationEvent(ctx context.Context, data map[string]interface{}) error {
	args := &redis.XAddArgs{
		Stream: notificationStream,
		MaxLen: maxStreamLength,
		Approx: true,
		Values: data,
	}

	if err := c.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("failed to XADD to stream %s: %w", notificationStream, err)
	}
	return nil
}

// GetStreamLength returns the current notification stream length
func (c *RedisClient) GetStreamLength(ctx context.Context) (int64, error) {
	return c.client.XLen(ctx, notificationStream).Result()
}

// HealthCheck verifies Redis connectivity
func (c *RedisClient) HealthCheck(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
