package interfaces

import "time"

// TimeProvider supplies the current time for the rate limiter windows.
// Injected so tests can move a fake clock across window boundaries instead of sleeping.
//
// Constructed in cmd/main as service.NewTimeProvider(func() time.Time { return time.Now().UTC() }).
//
//go:generate moq -stub -out mock/time_provider.go -pkg mock . TimeProvider
type TimeProvider interface {
	// Now returns current time (UTC in prod; a controlled value in tests).
	// Called from service.fixedWindowLimiter.Decide and Sweep.
	Now() time.Time
}
