package interfaces

import (
	"context"

	"github.com/denis-svg/Crash-Game/gateway/domain"
)

// Sender delivers one HTTP request to one backend instance. It does no retries of its own.
//
// Implemented by adapters.BackendHTTP. Called from service.dispatcher (one call per attempt) and from
// service.statusReporter (status pings).
//
//go:generate moq -stub -out mock/sender.go -pkg mock . Sender
type Sender interface {
	// Send performs req against instance (instance + req.PathSuffix + "?" + req.RawQuery).
	// Parameters: ctx — bounds the whole exchange, cancel aborts the in-flight request; instance — base URL.
	// Returns: (response, nil) for any HTTP status, including 4xx/5xx; (zero, error) on transport failure
	// (dial, connect timeout, read timeout, body read, cancelled ctx).
	Send(ctx context.Context, instance domain.InstanceURL, req domain.ForwardRequest) (domain.BackendResponse, error)
}
