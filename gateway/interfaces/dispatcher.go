package interfaces

import (
	"context"

	"github.com/denis-svg/Crash-Game/gateway/domain"
)

// Dispatcher forwards a logical request to the instances of a service type with per-instance retry and
// cross-instance failover.
//
// Implemented by service.dispatcher. Called from handlers.GatewayServer for every proxied route.
//
//go:generate moq -stub -out mock/dispatcher.go -pkg mock . Dispatcher
type Dispatcher interface {
	// Forward delivers req and returns the first returnable backend response (2xx/3xx or a 4xx other than 408).
	// Returns: (response, nil) on success; (zero, *service.DispatchError) wrapping ErrNoInstancesAvailable,
	// ErrAllInstancesDown or the ctx error.
	Forward(ctx context.Context, req domain.ForwardRequest) (domain.BackendResponse, error)
}
