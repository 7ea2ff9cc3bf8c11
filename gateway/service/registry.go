package service

import (
	"sync"

	"github.com/denis-svg/Crash-Game/gateway/domain"
	"github.com/denis-svg/Crash-Game/gateway/helpers"
	"github.com/denis-svg/Crash-Game/gateway/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// registry implements interfaces.Registry as a copy-on-write map: every mutation builds a new slice for the
// touched service type and swaps it in under mu, so a slice handed out by Snapshot is never written again.
// Observers are called after the lock is released.
type registry struct {
	logger    log.Logger
	observers []interfaces.RegistryObserver

	changeMu sync.Mutex // serializes each mutation with its observer notification
	mu       sync.RWMutex
	services map[domain.ServiceType][]domain.InstanceURL
}

// NewRegistry creates an empty in-memory registry. Panics on nil logger.
//
// Parameters: logger — registration changes are logged at info; observers — notified with the new instance
// count after each Register and each successful Deregister (e.g. adapters.HealthReporter).
//
// Returns: interfaces.Registry (*registry).
//
// Called from cmd/main at startup.
func NewRegistry(logger log.Logger, observers ...interfaces.RegistryObserver) interfaces.Registry {
	return &registry{
		logger:    log.With(helpers.NilPanic(logger, "service.registry.go: logger is required"), "component", "registry"),
		observers: observers,
		services:  make(map[domain.ServiceType][]domain.InstanceURL),
	}
}

// Register appends url to the service list. Duplicates are kept and bias round robin toward that instance.
func (r *registry) Register(service domain.ServiceType, url domain.InstanceURL) {
	r.changeMu.Lock()
	defer r.changeMu.Unlock()

	r.mu.Lock()
	current := r.services[service]
	next := make([]domain.InstanceURL, len(current), len(current)+1)
	copy(next, current)
	next = append(next, url)
	r.services[service] = next
	count := len(next)
	r.mu.Unlock()

	level.Info(r.logger).Log("msg", "instance registered", "service", service, "url", url, "instances", count)
	r.notify(service, count)
}

// Deregister removes the first entry equal to url. An emptied list is dropped from the map.
func (r *registry) Deregister(service domain.ServiceType, url domain.InstanceURL) bool {
	r.changeMu.Lock()
	defer r.changeMu.Unlock()

	r.mu.Lock()
	current := r.services[service]
	idx := -1
	for i, u := range current {
		if u == url {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.mu.Unlock()
		return false
	}
	next := make([]domain.InstanceURL, 0, len(current)-1)
	next = append(next, current[:idx]...)
	next = append(next, current[idx+1:]...)
	if len(next) == 0 {
		delete(r.services, service)
	} else {
		r.services[service] = next
	}
	count := len(next)
	r.mu.Unlock()

	level.Info(r.logger).Log("msg", "instance deregistered", "service", service, "url", url, "instances", count)
	r.notify(service, count)
	return true
}

func (r *registry) Snapshot(service domain.ServiceType) []domain.InstanceURL {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.services[service]
}

func (r *registry) Services() map[domain.ServiceType][]domain.InstanceURL {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[domain.ServiceType][]domain.InstanceURL, len(r.services))
	for service, urls := range r.services {
		out[service] = urls
	}
	return out
}

func (r *registry) notify(service domain.ServiceType, count int) {
	for _, o := range r.observers {
		o.InstancesChanged(service, count)
	}
}
