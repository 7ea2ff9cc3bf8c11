package service

import (
	"time"

	"github.com/denis-svg/Crash-Game/gateway/helpers"
	"github.com/denis-svg/Crash-Game/gateway/interfaces"
)

// timeProvider implements interfaces.TimeProvider via the injected now func.
type timeProvider struct {
	now func() time.Time
}

// NewTimeProvider creates a TimeProvider that returns time via the given now func. Panics on nil now.
//
// Parameter now — in prod time.Now().UTC, in tests a controllable clock.
//
// Called from cmd/main when building the rate limiter.
func NewTimeProvider(now func() time.Time) interfaces.TimeProvider {
	return &timeProvider{now: helpers.NilPanic(now, "service.time_provider.go: now is required")}
}

// Now returns the current time from the injected function.
func (t *timeProvider) Now() time.Time {
	return t.now()
}
