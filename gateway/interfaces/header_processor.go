package interfaces

import (
	"context"
	"net/http"

	"github.com/denis-svg/Crash-Game/gateway/domain"
)

// HeaderProcessor transforms the headers sent to a backend for one route.
//
// Implemented by helpers.RouteHeaderFilter, helpers.ForwardedForProcessor and helpers.HeaderProcessorChain.
// Called from handlers.GatewayServer before the request is handed to the dispatcher.
//
//go:generate moq -stub -out mock/header_processor.go -pkg mock . HeaderProcessor
type HeaderProcessor interface {
	// Process returns the headers for the next stage. headers must not be mutated.
	// Returns: (headers, nil) or (nil, error) when the request must be rejected (echo.HTTPError or GatewayError).
	Process(ctx context.Context, headers http.Header, route domain.Route) (http.Header, error)
}
