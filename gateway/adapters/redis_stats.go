package adapters

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/denis-svg/Crash-Game/gateway/helpers"
	"github.com/denis-svg/Crash-Game/gateway/interfaces"

	"github.com/go-redis/redis/v8"
)

const (
	statsFieldAllowed = "allowed"
	statsFieldDenied  = "denied"
)

// RedisRateLimitStats creates an interfaces.RateLimitStats keeping per identity counters in a hash
// "<prefix>:<identity>" with fields allowed and denied. Every write refreshes the key TTL.
//
// Parameters: client — shared redis client; prefix — key prefix (cmd/main uses "ratelimit", a trailing ":" is
// dropped); ttl — key expiry,
// 0 keeps keys forever.
//
// Called from cmd/main when REDIS_ADDR is set.
func RedisRateLimitStats(client redis.UniversalClient, prefix string, ttl time.Duration) interfaces.RateLimitStats {
	return &redisRateLimitStats{
		client: helpers.NilPanic(client, "adapters.redis_stats.go: redis client is required"),
		prefix: strings.TrimSuffix(helpers.StrPanic(prefix, "adapters.redis_stats.go: prefix is required"), ":"),
		ttl:    ttl,
	}
}

type redisRateLimitStats struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func (s *redisRateLimitStats) Record(ctx context.Context, identity string, allowed bool) error {
	field := statsFieldDenied
	if allowed {
		field = statsFieldAllowed
	}
	key := s.key(identity)
	pipe := s.client.TxPipeline()
	pipe.HIncrBy(ctx, key, field, 1)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("can't record rate limit decision (key='%s'), err: %w", key, err)
	}
	return nil
}

func (s *redisRateLimitStats) key(identity string) string {
	return s.prefix + ":" + identity
}
