package interfaces

import "github.com/denis-svg/Crash-Game/gateway/domain"

// Selector hands out instances of a service type in round-robin order.
//
//go:generate moq -stub -out mock/selector.go -pkg mock . Selector
type Selector interface {
	// Next returns the instance at the current cursor for the service and advances the cursor,
	// wrapping modulo the current list length.
	// Returns: (url, nil) on success; ("", service.ErrNoInstancesAvailable) when the list is empty or unknown.
	// Called from service.dispatcher.Forward once per request to pick the first candidate.
	Next(service domain.ServiceType) (domain.InstanceURL, error)
}
