package interfaces

import "github.com/denis-svg/Crash-Game/gateway/domain"

// Registry holds, per service type, the ordered list of known instance base URLs.
// Order is insertion order and is load-bearing: the round-robin cursor indexes into it positionally.
// Duplicate entries are kept. A type with no instances is the same as an unknown type.
//
// Implemented by service.registry. Mutated by handlers (admin cache API), adapters.EtcdSource and the
// startup bootstrap; read by service.roundRobinSelector, service.dispatcher and service.statusReporter.
//
//go:generate moq -stub -out mock/registry.go -pkg mock . Registry
type Registry interface {
	// Register appends url to the service's list, creating the list if absent. No uniqueness check.
	Register(service domain.ServiceType, url domain.InstanceURL)

	// Deregister removes the first exact match of url from the service's list.
	// Returns: true when an entry was removed; false for an unknown service or no match.
	Deregister(service domain.ServiceType, url domain.InstanceURL) bool

	// Snapshot returns the current list for the service (nil when unknown). The returned slice is never
	// mutated afterwards, so callers may iterate it while other goroutines register or deregister.
	// Callers must not modify it.
	Snapshot(service domain.ServiceType) []domain.InstanceURL

	// Services returns a snapshot of every non-empty service list, keyed by type.
	Services() map[domain.ServiceType][]domain.InstanceURL
}

// RegistryObserver is notified after every successful Registry mutation with the new instance count.
// Implemented by adapters.HealthReporter. Called synchronously from service.registry outside its lock.
type RegistryObserver interface {
	InstancesChanged(service domain.ServiceType, count int)
}
