package interfaces

import "context"

// RateLimitStats records limiter decisions per client identity. Failures are logged by the caller and
// never affect the request.
//
// Implemented by adapters.RedisRateLimitStats.
//
//go:generate moq -stub -out mock/rate_limit_stats.go -pkg mock . RateLimitStats
type RateLimitStats interface {
	Record(ctx context.Context, identity string, allowed bool) error
}
