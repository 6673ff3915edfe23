package redisadapter

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	unreadKeyPrefix = "qa:unread:"
	unreadKeyTTL    = 5 * time.Minute
)

// Cache is the optional read-through cache for unread notification counts.
// Entries expire on their own; dispatch invalidates eagerly so fresh
// notifications show up before the TTL lapses.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) GetUnreadCount(ctx context.Context, recipientID string) (int, bool, error) {
	count, err := c.client.Get(ctx, unreadKeyPrefix+recipientID).Int()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return count, true, nil
}

func (c *Cache) SetUnreadCount(ctx context.Context, recipientID string, count int) error {
	return c.client.Set(ctx, unreadKeyPrefix+recipientID, count, unreadKeyTTL).Err()
}

func (c *Cache) InvalidateUnreadCount(ctx context.Context, recipientID string) error {
	return c.client.Del(ctx, unreadKeyPrefix+recipientID).Err()
}
