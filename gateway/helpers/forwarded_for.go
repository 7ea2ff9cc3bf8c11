package helpers

import (
	"context"
	"net/http"

	"github.com/denis-svg/Crash-Game/gateway/domain"
)

// ForwardedForProcessor rewrites X-Forwarded-For: the client chain is kept only when trustForwarded is set,
// then the client address stored by ContextWithClientIP is appended. Runs ahead of RouteHeaderFilter, which
// passes the rewritten header on.
type ForwardedForProcessor struct {
	trustForwarded bool
}

// NewForwardedForProcessor creates the processor. trustForwarded is RATE_LIMIT_TRUST_FORWARDED.
func NewForwardedForProcessor(trustForwarded bool) *ForwardedForProcessor {
	return &ForwardedForProcessor{trustForwarded: trustForwarded}
}

func (p *ForwardedForProcessor) Process(ctx context.Context, headers http.Header, _ domain.Route) (http.Header, error) {
	out := headers.Clone()
	if out == nil {
		out = http.Header{}
	}
	chain := ""
	if p.trustForwarded {
		chain, _ = GetHeaderValue(headers, HeaderForwardedFor)
	}
	if ip, ok := ClientIPFromContext(ctx); ok {
		if chain != "" {
			chain += ", " + ip
		} else {
			chain = ip
		}
	}
	if chain == "" {
		out.Del(HeaderForwardedFor)
		return out, nil
	}
	out.Set(HeaderForwardedFor, chain)
	return out, nil
}
