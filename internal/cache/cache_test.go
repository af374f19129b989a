package cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilCacheComputes(t *testing.T) {
	var c *Cache
	calls := 0
	compute := func(context.Context) ([]int, error) {
		calls++
		return []int{1, 2}, nil
	}

	for i := 0; i < 2; i++ {
		v, err := Remember(context.Background(), c, "leaderboard:all", compute)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, v)
	}
	assert.Equal(t, 2, calls)

	c.Invalidate(context.Background(), "leaderboard:")
	assert.NoError(t, c.Close())
}

func TestUnreachableRedisFallsBackToCompute(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := New(client, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer c.Close()

	v, err := Remember(context.Background(), c, "leaderboard:all", func(context.Context) (string, error) {
		return "fresh", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", v)

	c.Invalidate(context.Background(), "leaderboard:")
}

func TestComputeErrorIsReturned(t *testing.T) {
	boom := errors.New("boom")
	_, err := Remember(context.Background(), nil, "k", func(context.Context) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
}

// liveCache connects to TEST_REDIS_URL and returns a key namespace no other
// run uses.
func liveCache(t *testing.T) (*Cache, string) {
	t.Helper()
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("set TEST_REDIS_URL to run against Redis")
	}
	c, err := Connect(context.Background(), url, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	ns := "test-" + uuid.NewString() + ":"
	t.Cleanup(func() {
		c.Invalidate(context.Background(), ns)
		c.Close()
	})
	return c, ns
}

func TestRememberServesFromRedis(t *testing.T) {
	c, ns := liveCache(t)
	ctx := context.Background()
	calls := 0
	compute := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	for i := 0; i < 3; i++ {
		v, err := Remember(ctx, c, ns+"leaderboard:all", compute)
		require.NoError(t, err)
		assert.Equal(t, 1, v)
	}
	assert.Equal(t, 1, calls, "later reads hit the cache")
}

func TestInvalidateDropsOnlyPrefix(t *testing.T) {
	c, ns := liveCache(t)
	ctx := context.Background()
	calls := map[string]int{}
	remember := func(key string) int {
		v, err := Remember(ctx, c, ns+key, func(context.Context) (int, error) {
			calls[key]++
			return calls[key], nil
		})
		require.NoError(t, err)
		return v
	}

	remember("leaderboard:all")
	remember("leaderboard:school:school-1")
	remember("school-stats")

	c.Invalidate(ctx, ns+"leaderboard:")

	assert.Equal(t, 2, remember("leaderboard:all"))
	assert.Equal(t, 2, remember("leaderboard:school:school-1"))
	assert.Equal(t, 1, remember("school-stats"), "other keys survive")
}
