package service

import (
	"fmt"
	"sync"

	"github.com/denis-svg/Crash-Game/gateway/domain"
	"github.com/denis-svg/Crash-Game/gateway/helpers"
	"github.com/denis-svg/Crash-Game/gateway/interfaces"
)

// roundRobinSelector implements interfaces.Selector with one cursor per service type. The cursor is created at 0
// on first use, never reset, and re-clamped with modulo on every call because the registry list can shrink
// between calls. Reading the list and advancing the cursor happen under mu, so concurrent callers get
// consecutive slots.
type roundRobinSelector struct {
	registry interfaces.Registry

	mu      sync.Mutex
	cursors map[domain.ServiceType]int
}

// NewRoundRobinSelector creates a selector reading instance lists from registry. Panics on nil registry.
//
// Called from cmd/main; the result is passed to NewDispatcher.
func NewRoundRobinSelector(registry interfaces.Registry) interfaces.Selector {
	return &roundRobinSelector{
		registry: helpers.NilPanic(registry, "service.selector.go: registry is required"),
		cursors:  make(map[domain.ServiceType]int),
	}
}

// Next returns the instance at the cursor and moves the cursor one slot forward.
//
// Returns: (url, nil); ("", error wrapping ErrNoInstancesAvailable) when the service has no instances.
func (s *roundRobinSelector) Next(service domain.ServiceType) (domain.InstanceURL, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	instances := s.registry.Snapshot(service)
	if len(instances) == 0 {
		return "", fmt.Errorf("%w for %s", ErrNoInstancesAvailable, service)
	}
	idx := s.cursors[service] % len(instances)
	s.cursors[service] = (idx + 1) % len(instances)
	return instances[idx], nil
}
