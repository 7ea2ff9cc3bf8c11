package helpers

import (
	"context"
	"net/http"

	"github.com/denis-svg/Crash-Game/gateway/domain"
)

// RouteHeaderFilter implements interfaces.HeaderProcessor. It keeps only the headers a route is allowed to
// send upstream: Authorization when the route has ForwardAuth, Content-Type when it has ForwardBody,
// X-Forwarded-For as left by ForwardedForProcessor, and the configured passthrough list (Accept by default).
// Everything else, hop-by-hop headers included, is dropped.
type RouteHeaderFilter struct {
	passthrough []string
}

// NewRouteHeaderFilter creates the filter. passthrough names headers copied on every route; nil means Accept.
//
// Called from cmd/main as the second stage of the header chain, after ForwardedForProcessor.
func NewRouteHeaderFilter(passthrough ...string) *RouteHeaderFilter {
	if passthrough == nil {
		passthrough = []string{"Accept"}
	}
	return &RouteHeaderFilter{passthrough: passthrough}
}

// Process returns a new header set built from headers according to route. A missing Authorization on a
// ForwardAuth route is not an error: the backend decides what an anonymous call means.
func (f *RouteHeaderFilter) Process(_ context.Context, headers http.Header, route domain.Route) (http.Header, error) {
	out := http.Header{}
	copyHeader(out, headers, HeaderForwardedFor)
	for _, name := range f.passthrough {
		copyHeader(out, headers, name)
	}
	if route.ForwardAuth {
		if token, ok := GetAuthToken(headers); ok {
			out.Set(HeaderAuthorization, token)
		}
	}
	if route.ForwardBody {
		copyHeader(out, headers, HeaderContentType)
	}
	return out, nil
}

func copyHeader(dst, src http.Header, name string) {
	for _, v := range src.Values(name) {
		dst.Add(name, v)
	}
}
