package helpers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/denis-svg/Crash-Game/gateway/domain"
	"github.com/denis-svg/Crash-Game/gateway/interfaces"
)

// HeaderProcessorChain is a slice of HeaderProcessors run in sequence; each processor receives
// the output headers of the previous. Used to compose RouteHeaderFilter and ForwardedForProcessor.
// Implements interfaces.HeaderProcessor.
type HeaderProcessorChain []interfaces.HeaderProcessor

// NewHeaderProcessorChain creates a chain of header processors from the given list. Panics on nil slice or nil element (fail-fast at startup).
//
// Parameters: processors — ordered list of HeaderProcessor implementations (first gets the client headers, next gets previous result).
//
// Returns: HeaderProcessorChain ([]HeaderProcessor) implementing interfaces.HeaderProcessor.
//
// Called from cmd/main when building the gateway server.
func NewHeaderProcessorChain(processors ...interfaces.HeaderProcessor) HeaderProcessorChain {
	for i, p := range processors {
		if p == nil {
			panic("helpers.header_chain.go: processor at index " + strconv.Itoa(i) + " is required")
		}
	}
	return HeaderProcessorChain(NilPanic(processors, "helpers.header_chain.go: processors is required"))
}

// Process runs all processors in order: output of one is input to the next. Input headers are not mutated (work is done on a copy). Returns the first processor error.
//
// Parameters: ctx — request context; headers — headers of the client request; route — the matched route (per-route policy inside processors).
//
// Returns: (outgoing headers, nil) when all processors succeed; (nil, error) on any processor error.
//
// Called from handlers.GatewayServer before Dispatcher.Forward.
func (c HeaderProcessorChain) Process(ctx context.Context, headers http.Header, route domain.Route) (http.Header, error) {
	out := headers.Clone()
	if out == nil {
		out = http.Header{}
	}
	for _, p := range c {
		next, err := p.Process(ctx, out, route)
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}
