package domain

import (
	"net/http"
	"strconv"
	"strings"
)

// Route maps one inbound endpoint to a backend service type.
// Path uses echo syntax (":id" for parameters) and is relative to the gateway base path; the same path is
// used as the suffix on the backend. ForwardAuth copies the Authorization header, ForwardBody copies the
// request body and Content-Type, RateLimited puts the route behind the per-client fixed window limiter.
type Route struct {
	Method      string
	Path        string
	Service     ServiceType
	ForwardAuth bool
	ForwardBody bool
	RateLimited bool
}

// DefaultRoutes returns the built-in route table. All user/auth routes are rate limited.
func DefaultRoutes() []Route {
	return []Route{
		{Method: http.MethodPost, Path: "/user/v1/auth/register", Service: ServiceAuth, ForwardBody: true, RateLimited: true},
		{Method: http.MethodPost, Path: "/user/v1/auth/login", Service: ServiceAuth, ForwardBody: true, RateLimited: true},
		{Method: http.MethodGet, Path: "/user/v1/auth/validate", Service: ServiceAuth, ForwardAuth: true, RateLimited: true},
		{Method: http.MethodGet, Path: "/user/v1/balance", Service: ServiceAuth, ForwardAuth: true, RateLimited: true},
		{Method: http.MethodPost, Path: "/user/v1/balance", Service: ServiceAuth, ForwardAuth: true, ForwardBody: true, RateLimited: true},
		{Method: http.MethodPut, Path: "/user/v1/balance", Service: ServiceAuth, ForwardAuth: true, ForwardBody: true, RateLimited: true},
		{Method: http.MethodGet, Path: "/user/v1/status", Service: ServiceAuth, RateLimited: true},
		{Method: http.MethodGet, Path: "/game/v1/status", Service: ServiceGame},
		{Method: http.MethodPost, Path: "/game/v1/lobby", Service: ServiceGame, ForwardAuth: true, ForwardBody: true},
		{Method: http.MethodGet, Path: "/game/v1/lobby/:id", Service: ServiceGame},
	}
}

// ValidateRouteConfig validates a route table: every route has a supported method, a path starting with "/",
// a non-empty service, and no two routes share the same method and path.
//
// Parameter routes — route table (built-in or from YAML via cmd.LoadConfig). Service references are not
// checked here (LoadConfig does that against the services section).
//
// Returns: nil when valid; *RouteConfigError with the 0-based Index of the first offending route.
//
// Called from cmd.LoadConfig and handlers.NewGatewayServer.
func ValidateRouteConfig(routes []Route) error {
	seen := make(map[string]int, len(routes))
	for i, r := range routes {
		switch r.Method {
		case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
		default:
			return &RouteConfigError{Index: i, Reason: "method must be GET|POST|PUT|DELETE|PATCH"}
		}
		if r.Path == "" {
			return &RouteConfigError{Index: i, Reason: "path must be non-empty"}
		}
		if r.Path[0] != '/' {
			return &RouteConfigError{Index: i, Reason: "path must start with /"}
		}
		if strings.TrimSpace(string(r.Service)) == "" {
			return &RouteConfigError{Index: i, Reason: "service must be non-empty"}
		}
		key := r.Method + " " + r.Path
		if prev, dup := seen[key]; dup {
			return &RouteConfigError{Index: i, Reason: "duplicate of route[" + strconv.Itoa(prev) + "]"}
		}
		seen[key] = i
	}
	return nil
}

// RouteConfigError is returned by ValidateRouteConfig when a route is invalid.
// Index is the route index (0-based); Reason is a human-readable message.
type RouteConfigError struct {
	Index  int
	Reason string
}

// Error returns "route[N]: " + Reason.
func (e *RouteConfigError) Error() string {
	return "route[" + strconv.Itoa(e.Index) + "]: " + e.Reason
}
