package interfaces

import "github.com/denis-svg/Crash-Game/gateway/domain"

// RateLimiter is the per-client fixed window limiter consulted before dispatch on rate limited routes.
//
//go:generate moq -stub -out mock/rate_limiter.go -pkg mock . RateLimiter
type RateLimiter interface {
	// Allow reports whether one more request from identity fits in its current window (and counts it).
	Allow(identity string) bool

	// Decide is Allow with details: count in window, limit and, when denied, time left in the window.
	// Called from handlers.RateLimitMiddleware.
	Decide(identity string) domain.RateDecision
}
