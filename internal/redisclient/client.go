package redisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"catalog-admin/internal/models"

	"github.com/go-redis/redis/v8"
)

const catalogKey = "catalog:active"

// Client caches the active-product catalog used for order pricing. The
// upstream service stays the source of truth; cached entries expire after
// the configured TTL and are invalidated on any product mutation.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewClient creates a new Redis client and verifies connectivity.
func NewClient(addr, password string, db int, ttl time.Duration) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb, ttl: ttl}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// GetCatalog returns the cached catalog snapshot, or (nil, nil) on a miss.
func (c *Client) GetCatalog(ctx context.Context) ([]models.Product, error) {
	raw, err := c.rdb.Get(ctx, catalogKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("catalog cache get failed: %w", err)
	}

	var products []models.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("catalog cache decode failed: %w", err)
	}
	return products, nil
}

// SetCatalog stores a catalog snapshot with the configured TTL.
func (c *Client) SetCatalog(ctx context.Context, products []models.Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("catalog cache encode failed: %w", err)
	}

	if err := c.rdb.Set(ctx, catalogKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("catalog cache set failed: %w", err)
	}
	return nil
}

// InvalidateCatalog drops the cached snapshot after a product mutation.
func (c *Client) InvalidateCatalog(ctx context.Context) error {
	if err := c.rdb.Del(ctx, catalogKey).Err(); err != nil {
		return fmt.Errorf("catalog cache invalidate failed: %w", err)
	}
	return nil
}
