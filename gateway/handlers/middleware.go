package handlers

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/denis-svg/Crash-Game/gateway/helpers"
	"github.com/denis-svg/Crash-Game/gateway/interfaces"
	"github.com/denis-svg/Crash-Game/gateway/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const statsTimeout = 200 * time.Millisecond

// RateLimit applies limiter per client identity. A denied request gets 429 with an empty body and a
// Retry-After header and never reaches the dispatcher. stats, when not nil, records every decision;
// its failures are logged and ignored.
func RateLimit(limiter interfaces.RateLimiter, stats interfaces.RateLimitStats, trustForwarded bool, logger log.Logger) echo.MiddlewareFunc {
	limiter = helpers.NilPanic(limiter, "handlers.middleware.go: rate limiter is required")
	logger = log.With(helpers.NilPanic(logger, "handlers.middleware.go: logger is required"), "component", "rate_limit")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := helpers.ClientIdentity(c.Request(), trustForwarded)
			decision := limiter.Decide(identity)
			if stats != nil {
				ctx, cancel := context.WithTimeout(c.Request().Context(), statsTimeout)
				if err := stats.Record(ctx, identity, decision.Allowed); err != nil {
					level.Warn(logger).Log("msg", "rate limit stats not recorded", "identity", identity, "err", err)
				}
				cancel()
			}
			if decision.Allowed {
				return next(c)
			}
			level.Info(logger).Log("msg", "rate limited", "identity", identity, "path", c.Request().URL.Path, "count", decision.Count, "limit", decision.Limit)
			c.Response().Header().Set(helpers.HeaderRetryAfter, retryAfterSeconds(decision.RetryAfter))
			return c.NoContent(http.StatusTooManyRequests)
		}
	}
}

// retryAfterSeconds rounds up to whole seconds, at least 1.
func retryAfterSeconds(d time.Duration) string {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// GlobalRateLimit admits requests through a single token bucket shared by all clients; the rest get 429.
func GlobalRateLimit(limiter *rate.Limiter) echo.MiddlewareFunc {
	limiter = helpers.NilPanic(limiter, "handlers.middleware.go: global limiter is required")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow() {
				return c.NoContent(http.StatusTooManyRequests)
			}
			return next(c)
		}
	}
}

// ConcurrencyLimit caps in-flight requests at limit. A request arriving at the cap is rejected at once with
// 503 (overloaded) instead of queuing.
func ConcurrencyLimit(limit int) echo.MiddlewareFunc {
	if limit < 1 {
		panic("handlers.middleware.go: limit must be positive")
	}
	slots := make(chan struct{}, limit)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			select {
			case slots <- struct{}{}:
				defer func() { <-slots }()
				return next(c)
			default:
				return service.NewGatewayError(service.ErrOverloaded, "too many requests in flight", nil)
			}
		}
	}
}
