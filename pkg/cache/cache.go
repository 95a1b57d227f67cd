// Package cache provides a Redis-backed user-existence cache. Only
// positive entries are stored; accounts are never deleted.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// UserExistence caches the set of user ids known to exist
type UserExistence struct {
	client *redis.Client
	ttl    time.Duration
}

// NewUserExistence creates a cache against the given Redis address
func NewUserExistence(addr string, ttl time.Duration) *UserExistence {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &UserExistence{client: client, ttl: ttl}
}

func key(userID uint) string {
	return fmt.Sprintf("user:exists:%d", userID)
}

// Known reports whether the user id has been cached as existing. A nil
// receiver or a Redis error reads as a miss.
func (c *UserExistence) Known(ctx context.Context, userID uint) bool {
	if c == nil {
		return false
	}
	n, err := c.client.Exists(ctx, key(userID)).Result()
	return err == nil && n > 0
}

// MarkKnown records that the user id exists. Write errors are dropped;
// the database stays authoritative.
func (c *UserExistence) MarkKnown(ctx context.Context, userID uint) {
	if c == nil {
		return
	}
	c.client.Set(ctx, key(userID), 1, c.ttl)
}

// Close releases the underlying Redis connection
func (c *UserExistence) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
