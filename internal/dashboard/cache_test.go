package dashboard

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadscore/roadscore/internal/dashboard/loop"
	"github.com/roadscore/roadscore/internal/telemetry"
)

func setupChartCache(t *testing.T) (*ChartCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewChartCache(client, time.Minute), mr
}

func TestChartCacheFetchStoresOnMiss(t *testing.T) {
	cache, mr := setupChartCache(t)
	ctx := context.Background()
	key, err := cache.BuildKey(ctx, "trend", "abc")
	require.NoError(t, err)
	assert.Equal(t, "dashboard:chart:trend:abc:1", key)

	calls := 0
	render := func() (string, error) {
		calls++
		return "<svg></svg>", nil
	}
	for i := 0; i < 3; i++ {
		markup, err := cache.Fetch(ctx, key, render)
		require.NoError(t, err)
		assert.Equal(t, "<svg></svg>", markup)
	}
	assert.Equal(t, 1, calls)
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))
}

func TestChartCacheBumpChangesKeys(t *testing.T) {
	cache, _ := setupChartCache(t)
	ctx := context.Background()
	before, err := cache.BuildKey(ctx, "radar", "abc")
	require.NoError(t, err)

	ver, err := cache.Bump(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), ver)

	after, err := cache.BuildKey(ctx, "radar", "abc")
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
	assert.True(t, strings.HasSuffix(after, ":2"))
}

func TestChartCacheDoesNotStoreFailures(t *testing.T) {
	cache, mr := setupChartCache(t)
	ctx := context.Background()
	boom := errors.New("boom")
	_, err := cache.Fetch(ctx, "dashboard:chart:x", func() (string, error) { return "", boom })
	require.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("dashboard:chart:x"))
}

func TestChartCacheSharesConcurrentMisses(t *testing.T) {
	cache, _ := setupChartCache(t)
	ctx := context.Background()
	var calls atomic.Int32
	release := make(chan struct{})
	render := func() (string, error) {
		calls.Add(1)
		<-release
		return "<svg/>", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			markup, err := cache.Fetch(ctx, "dashboard:chart:shared", render)
			assert.NoError(t, err)
			assert.Equal(t, "<svg/>", markup)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	assert.LessOrEqual(t, calls.Load(), int32(4))
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
}

func TestNilChartCacheRendersDirectly(t *testing.T) {
	var cache *ChartCache
	ctx := context.Background()
	key, err := cache.BuildKey(ctx, "trend", "v")
	require.NoError(t, err)
	assert.Equal(t, "dashboard:chart:trend:v", key)
	markup, err := cache.Fetch(ctx, key, func() (string, error) { return "<svg/>", nil })
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", markup)
}

func TestChartRendererRendersTree(t *testing.T) {
	cache, mr := setupChartCache(t)
	store := telemetry.DefaultStore()
	renderer := NewChartRenderer(store, cache)
	composer, err := NewComposer(loop.NewManual(), store, DefaultSettings())
	require.NoError(t, err)

	charts, err := renderer.Render(context.Background(), composer.Render())
	require.NoError(t, err)
	assert.Contains(t, string(charts.Trend), "Monthly Trends")
	assert.Contains(t, string(charts.Trend), "rgba(52,211,153,1.0)")
	assert.Contains(t, string(charts.Radar), "Night Driving")
	assert.True(t, mr.Exists("dashboard:chart:trend:"+store.Fingerprint()+":1"))
	assert.True(t, mr.Exists("dashboard:chart:radar:"+store.Fingerprint()+":1"))

	warmed, err := renderer.Warm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, charts, warmed)
}

func TestChartRendererEmptySeries(t *testing.T) {
	fixtures := telemetry.DefaultFixtures()
	fixtures.Monthly = nil
	fixtures.Skills = nil
	store, err := telemetry.NewStore(fixtures)
	require.NoError(t, err)

	charts, err := NewChartRenderer(store, nil).Warm(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(charts.Trend), `data-empty="true"`)
	assert.Contains(t, string(charts.Radar), `data-empty="true"`)
}
