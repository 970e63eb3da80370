package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const versionKey = "reports:version"

// Cache memoises report payloads in Redis behind a global version counter.
// Writers invalidate every cached report at once by bumping the version,
// which is cheaper and safer than tracking per-report keys: any booking or
// payment write can shift several reports at the same time.
//
// A nil Cache (or one built over a nil client) degrades to pass-through so
// the API keeps working when Redis is not deployed.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) version(ctx context.Context) (int64, error) {
	ver, err := c.client.Get(ctx, versionKey).Int64()
	if err == redis.Nil || (err == nil && ver <= 0) {
		if setErr := c.client.Set(ctx, versionKey, 1, 0).Err(); setErr != nil {
			return 0, setErr
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

// BuildKey joins the key parts and suffixes the current cache version.
func (c *Cache) BuildKey(ctx context.Context, parts ...string) (string, error) {
	joined := strings.Join(parts, ":")
	if c == nil || c.client == nil {
		return joined, nil
	}
	ver, err := c.version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%d", joined, ver), nil
}

// FetchJSON returns the cached JSON payload for key, or runs the loader,
// stores its encoding, and returns that. Callers decode the payload
// themselves, so every reader sharing one build sees the same bytes.
func (c *Cache) FetchJSON(ctx context.Context, key string, loader func(context.Context) (interface{}, error)) ([]byte, error) {
	if loader == nil {
		return nil, errors.New("reports: cache loader required")
	}
	if c != nil && c.client != nil {
		payload, err := c.client.Get(ctx, key).Bytes()
		if err == nil {
			return payload, nil
		}
		if err != redis.Nil {
			return nil, err
		}
	}
	value, err := loader(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	if c != nil && c.client != nil {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			return nil, err
		}
	}
	return raw, nil
}

// Bump invalidates all cached reports by incrementing the version counter.
// Booking and payment writes call this through their stats invalidator hook.
func (c *Cache) Bump(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, versionKey).Err()
}
