package service

import (
	"errors"
	"fmt"

	"github.com/denis-svg/Crash-Game/gateway/domain"
)

// ErrNoInstancesAvailable is returned when a service type has no registered instance (empty or unknown).
// Nothing is retried and no backend is contacted.
var ErrNoInstancesAvailable = errors.New("no instances available")

// ErrAllInstancesDown is returned when every candidate instance used up its retries without a returnable response.
var ErrAllInstancesDown = errors.New("all instances are down")

// DispatchError is returned by dispatcher.Forward when no backend response can be handed back to the caller.
// Err is ErrNoInstancesAvailable, ErrAllInstancesDown or the caller's context error; Last is the failure of the
// final attempt (transport error or retryable status), nil when no attempt was made.
type DispatchError struct {
	Service  domain.ServiceType
	Attempts int
	Last     error
	Err      error
}

func (e *DispatchError) Error() string {
	if e.Last != nil {
		return fmt.Sprintf("dispatch %s: %v after %d attempts, last: %v", e.Service, e.Err, e.Attempts, e.Last)
	}
	return fmt.Sprintf("dispatch %s: %v after %d attempts", e.Service, e.Err, e.Attempts)
}

// Unwrap returns Err so errors.Is works against the sentinels and context errors.
func (e *DispatchError) Unwrap() error {
	return e.Err
}

// RetryableStatusError records a backend answer that is retried (5xx or 408). It only shows up as DispatchError.Last.
type RetryableStatusError struct {
	Instance   domain.InstanceURL
	StatusCode int
}

func (e *RetryableStatusError) Error() string {
	return fmt.Sprintf("%s answered %d", e.Instance, e.StatusCode)
}
