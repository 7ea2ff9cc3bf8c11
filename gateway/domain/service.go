package domain

import (
	"net/http"
	"time"
)

// ServiceType identifies a class of interchangeable backend instances (e.g. "auth_service").
// Unknown types are a lookup miss, never a parse error.
type ServiceType string

const (
	ServiceAuth ServiceType = "auth_service"
	ServiceGame ServiceType = "game_service"
)

// InstanceURL is the base URL (scheme://host:port) of one backend instance.
type InstanceURL string

// ServiceConfig holds per service type settings: StatusPath is pinged by the aggregate status report,
// Instances are registered at startup before any discovery source runs.
type ServiceConfig struct {
	StatusPath string
	Instances  []InstanceURL
}

// DefaultStatusPath returns the status endpoint for a service type: game_service answers on /game/v1/status,
// every other type on /user/v1/status.
func DefaultStatusPath(service ServiceType) string {
	if service == ServiceGame {
		return "/game/v1/status"
	}
	return "/user/v1/status"
}

// ForwardRequest is one logical request handed to the dispatcher. PathSuffix is appended to the chosen
// instance base URL; RawQuery, when set, is forwarded verbatim.
type ForwardRequest struct {
	Service    ServiceType
	Method     string
	PathSuffix string
	RawQuery   string
	Header     http.Header
	Body       []byte
}

// BackendResponse is what a backend instance answered: status, headers and the full body.
type BackendResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// RateDecision is the outcome of one fixed-window check for a client identity.
// RetryAfter is the time left in the current window (zero when allowed).
type RateDecision struct {
	Allowed    bool
	Count      int
	Limit      int
	RetryAfter time.Duration
}

// StatusReport is the body of GET /gateway/status. FailedService is the first instance that did not answer 200.
type StatusReport struct {
	Message         string   `json:"message"`
	WorkingServices []string `json:"workingServices"`
	FailedService   string   `json:"failedService,omitempty"`
}
