package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// localRedis returns a client for localhost:6379 or skips the test when nothing answers there.
func localRedis(t *testing.T) redis.UniversalClient {
	t.Helper()
	client, err := NewRedisUniversalClient("redis://localhost:6379/0", func(o *redis.Options) {
		o.DialTimeout = 200 * time.Millisecond
	})
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("redis not reachable on localhost:6379: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestNewRedisUniversalClient_BadURL(t *testing.T) {
	_, err := NewRedisUniversalClient("localhost:6379")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cant parse redis url")
}

func TestRedisRateLimitStats_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "adapters.redis_stats.go: redis client is required", func() {
		RedisRateLimitStats(nil, "ratelimit", 0)
	})
	client, err := NewRedisUniversalClient("redis://localhost:6379/0")
	require.NoError(t, err)
	defer client.Close()
	assert.PanicsWithValue(t, "adapters.redis_stats.go: prefix is required", func() {
		RedisRateLimitStats(client, "", 0)
	})
}

func TestRedisRateLimitStats_Record(t *testing.T) {
	client := localRedis(t)
	ctx := context.Background()
	prefix := "test-ratelimit-" + time.Now().Format("150405.000000000")
	key := prefix + ":10.0.0.1"
	t.Cleanup(func() { client.Del(context.Background(), key) })

	stats := RedisRateLimitStats(client, prefix, time.Minute)
	require.NoError(t, stats.Record(ctx, "10.0.0.1", true))
	require.NoError(t, stats.Record(ctx, "10.0.0.1", true))
	require.NoError(t, stats.Record(ctx, "10.0.0.1", false))

	got, err := client.HGetAll(ctx, key).Result()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"allowed": "2", "denied": "1"}, got)

	ttl, err := client.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestRedisRateLimitStats_Key(t *testing.T) {
	client, err := NewRedisUniversalClient("redis://localhost:6379/0")
	require.NoError(t, err)
	defer client.Close()

	tests := []struct {
		prefix string
		want   string
	}{
		{prefix: "ratelimit", want: "ratelimit:10.0.0.1"},
		{prefix: "ratelimit:", want: "ratelimit:10.0.0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			stats := RedisRateLimitStats(client, tt.prefix, time.Hour).(*redisRateLimitStats)
			assert.Equal(t, tt.want, stats.key("10.0.0.1"))
		})
	}
}
