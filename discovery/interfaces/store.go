package interfaces

import (
	"context"

	"github.com/denis-svg/Crash-Game/discovery/domain"
)

// Store keeps registrations grouped by service type, in registration order.
//
// Implemented by adapters/memory, adapters/myredis and adapters/etcdstore.
//
//go:generate moq -stub -out mock/store.go -pkg mock . Store
type Store interface {
	// Register appends reg to its service type, creating the type when needed.
	// Returns: nil on success; internal_server_error when the storage write fails.
	Register(ctx context.Context, reg domain.Registration) error

	// Deregister removes every entry of reg.ServiceType equal to reg.ServiceURL.
	// Returns:
	// 1) (true, nil) when the service type is known, whether or not an entry matched;
	// 2) (false, nil) when the service type was never registered;
	// 3) (false, internal_server_error) when the storage fails.
	Deregister(ctx context.Context, reg domain.Registration) (bool, error)

	// Services returns every known service type with its urls. A type whose urls were all deregistered
	// stays in the map with an empty list.
	// Returns: (map, nil) on success; (nil, internal_server_error) when the storage fails.
	Services(ctx context.Context) (map[string][]string, error)
}
