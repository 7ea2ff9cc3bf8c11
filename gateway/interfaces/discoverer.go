package interfaces

import (
	"context"

	"github.com/denis-svg/Crash-Game/gateway/domain"
)

// Discoverer lists the registrations held by the discovery service so the gateway can seed its registry
// after a restart.
//
// Implemented by adapters.DiscovererHTTP. Called once from cmd/main (bootstrapRegistry) when DISCOVERY_URL is set.
//
//go:generate moq -stub -out mock/discoverer.go -pkg mock . Discoverer
type Discoverer interface {
	// GetServices returns every registered instance grouped by service type, in registration order.
	// Returns: (map, nil) on success (possibly empty); (nil, error) on network error, non-200 or bad JSON.
	GetServices(ctx context.Context) (map[domain.ServiceType][]domain.InstanceURL, error)
}
