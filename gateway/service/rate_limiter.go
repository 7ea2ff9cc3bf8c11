package service

import (
	"context"
	"sync"
	"time"

	"github.com/denis-svg/Crash-Game/gateway/domain"
	"github.com/denis-svg/Crash-Game/gateway/helpers"
	"github.com/denis-svg/Crash-Game/gateway/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// rateWindow is the (start, count) pair of one client identity.
type rateWindow struct {
	start time.Time
	count int
}

// FixedWindowLimiter implements interfaces.RateLimiter with a fixed window counter per identity.
//
// A window starts on the first request of an identity, or on the first request arriving more than window
// after the current window start; it then counts up to limit. Across a window boundary a client can get up to
// 2*limit requests through; this is accepted for coarse abuse protection.
//
// Windows whose period has elapsed carry no state a later request would use (that request starts a new
// window anyway), so Sweep deletes them and StartJanitor runs Sweep periodically.
type FixedWindowLimiter struct {
	limit  int
	window time.Duration
	clock  interfaces.TimeProvider
	logger log.Logger

	mu      sync.Mutex
	windows map[string]*rateWindow
}

// NewFixedWindowLimiter creates a limiter allowing limit requests per window per identity.
// Panics on nil clock/logger or non-positive limit/window.
//
// Called from cmd/main with RATE_LIMIT_COUNT and RATE_LIMIT_WINDOW_MS.
func NewFixedWindowLimiter(limit int, window time.Duration, clock interfaces.TimeProvider, logger log.Logger) *FixedWindowLimiter {
	if limit < 1 {
		panic("service.rate_limiter.go: limit must be positive")
	}
	if window <= 0 {
		panic("service.rate_limiter.go: window must be positive")
	}
	return &FixedWindowLimiter{
		limit:   limit,
		window:  window,
		clock:   helpers.NilPanic(clock, "service.rate_limiter.go: clock is required"),
		logger:  log.With(helpers.NilPanic(logger, "service.rate_limiter.go: logger is required"), "component", "rate_limiter"),
		windows: make(map[string]*rateWindow),
	}
}

// Allow counts one request for identity and reports whether it fits in the current window.
func (l *FixedWindowLimiter) Allow(identity string) bool {
	return l.Decide(identity).Allowed
}

// Decide counts one request for identity. Denied requests are not counted.
//
// Returns: domain.RateDecision with Allowed, Count (requests in the current window including this one when
// allowed), Limit, and RetryAfter (time until a new window can start) when denied.
func (l *FixedWindowLimiter) Decide(identity string) domain.RateDecision {
	now := l.clock.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[identity]
	if !ok || now.Sub(w.start) > l.window {
		l.windows[identity] = &rateWindow{start: now, count: 1}
		return domain.RateDecision{Allowed: true, Count: 1, Limit: l.limit}
	}
	if w.count < l.limit {
		w.count++
		return domain.RateDecision{Allowed: true, Count: w.count, Limit: l.limit}
	}
	return domain.RateDecision{
		Allowed:    false,
		Count:      w.count,
		Limit:      l.limit,
		RetryAfter: l.window - now.Sub(w.start),
	}
}

// Sweep removes every window that has elapsed. Returns the number of identities removed.
func (l *FixedWindowLimiter) Sweep() int {
	now := l.clock.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	for identity, w := range l.windows {
		if now.Sub(w.start) > l.window {
			delete(l.windows, identity)
			removed++
		}
	}
	return removed
}

// Len returns the number of identities currently tracked.
func (l *FixedWindowLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

// StartJanitor runs Sweep every interval until ctx is done. Non-positive interval falls back to the window length.
//
// Called from cmd/main in its own goroutine.
func (l *FixedWindowLimiter) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = l.window
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := l.Sweep(); removed > 0 {
				level.Debug(l.logger).Log("msg", "swept rate windows", "removed", removed, "tracked", l.Len())
			}
		}
	}
}
