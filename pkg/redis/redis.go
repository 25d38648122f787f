package redis

import (
	"context"
	"fmt"
	"time"

	"iwfm-backend/internal/config"

	"github.com/redis/go-redis/v9"
)

// Client wraps the go-redis client used for the forecast feed cache.
type Client struct {
	client *redis.Client
}

type HealthStatus struct {
	IsConnected    bool          `json:"isConnected"`
	ResponseTime   time.Duration `json:"responseTime"`
	ConnectionInfo string        `json:"connectionInfo"`
	Error          string        `json:"error,omitempty"`
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

// HealthCheck pings the server and reports connectivity. A failed ping is
// reported, not fatal; the cache fails open.
func (c *Client) HealthCheck() HealthStatus {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	start := time.Now()
	err := c.client.Ping(ctx).Err()
	status := HealthStatus{
		IsConnected:    err == nil,
		ResponseTime:   time.Since(start),
		ConnectionInfo: fmt.Sprintf("redis://%s", c.client.Options().Addr),
	}
	if err != nil {
		status.Error = err.Error()
	}

	return status
}

// GetClient exposes the underlying go-redis client.
func (c *Client) GetClient() *redis.Client {
	return c.client
}

func (c *Client) Close() error {
	return c.client.Close()
}
