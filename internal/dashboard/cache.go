package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const (
	chartVersionKey  = "dashboard:charts:version"
	chartBumpChannel = "dashboard.charts.bump"
)

// ChartCache stores rendered chart markup in Redis under versioned keys.
// A nil cache or client renders on every call.
type ChartCache struct {
	client *redis.Client
	ttl    time.Duration
	group  singleflight.Group
}

// NewChartCache instantiates the cache helper.
func NewChartCache(client *redis.Client, ttl time.Duration) *ChartCache {
	return &ChartCache{client: client, ttl: ttl}
}

// Version returns the current cache version, initialising when missing.
func (c *ChartCache) Version(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, chartVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.SetNX(ctx, chartVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return c.client.Get(ctx, chartVersionKey).Int64()
	}
	if err != nil {
		return 0, err
	}
	if ver <= 0 {
		ver = 1
		if err := c.client.Set(ctx, chartVersionKey, ver, 0).Err(); err != nil {
			return 0, err
		}
	}
	return ver, nil
}

// BuildKey composes the cache key with the current version.
func (c *ChartCache) BuildKey(ctx context.Context, parts ...string) (string, error) {
	joined := strings.Join(append([]string{"dashboard", "chart"}, parts...), ":")
	if c == nil || c.client == nil {
		return joined, nil
	}
	ver, err := c.Version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%d", joined, ver), nil
}

// Fetch returns the cached markup for key, rendering and storing it on a
// miss. Concurrent misses for one key share a single render.
func (c *ChartCache) Fetch(ctx context.Context, key string, render func() (string, error)) (string, error) {
	if render == nil {
		return "", errors.New("dashboard: chart renderer required")
	}
	if c == nil || c.client == nil {
		return render()
	}
	payload, err := c.client.Get(ctx, key).Result()
	if err == nil {
		return payload, nil
	}
	if !errors.Is(err, redis.Nil) {
		return "", err
	}
	resultChan := c.group.DoChan(key, func() (interface{}, error) {
		markup, err := render()
		if err != nil {
			return "", err
		}
		if err := c.client.Set(ctx, key, markup, c.ttl).Err(); err != nil {
			return "", err
		}
		return markup, nil
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-resultChan:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// Bump invalidates every cached chart by incrementing the version and
// publishing the new value.
func (c *ChartCache) Bump(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Incr(ctx, chartVersionKey).Result()
	if err != nil {
		return 0, err
	}
	if err := c.client.Publish(ctx, chartBumpChannel, strconv.FormatInt(ver, 10)).Err(); err != nil {
		return 0, err
	}
	return ver, nil
}
