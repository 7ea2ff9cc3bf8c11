package scenario

import (
	"net/http"
	"time"
)

// Config holds settings for running a scenario against a running gateway.
type Config struct {
	// GatewayURL is the gateway root, e.g. http://localhost:8080 (no trailing slash).
	GatewayURL string
	// StubHost is the host the gateway uses to reach stub backends started by the runner.
	StubHost string
	// StubBind is the interface stub backends listen on; empty means all interfaces.
	StubBind string
	// Retries is the gateway's per-instance attempt count (RETRY_COUNT).
	Retries int
	// RateLimit is the gateway's per-client request budget per window (RATE_LIMIT_COUNT).
	RateLimit int
	// HTTPClient is used for every call to the gateway. Nil means a client with a 10s timeout.
	HTTPClient *http.Client
}

func (c *Config) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 10 * time.Second}
}
