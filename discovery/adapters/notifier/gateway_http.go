package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/denis-svg/Crash-Game/discovery/domain"
	"github.com/denis-svg/Crash-Game/discovery/interfaces"
	"github.com/denis-svg/Crash-Game/discovery/service"

	"golang.org/x/time/rate"
)

// cachePath is the gateway's registry administration endpoint.
const cachePath = "/gateway/cache"

// cacheRequest is the body the gateway expects on POST and DELETE /gateway/cache.
type cacheRequest struct {
	ServiceURL  string `json:"serviceUrl"`
	ServiceType string `json:"serviceType"`
}

// GatewayHTTP creates an interfaces.GatewayNotifier that calls POST (register) or DELETE (deregister)
// baseURL/gateway/cache. limiter paces outgoing calls so a burst of registrations does not flood the gateway;
// nil disables pacing. Panics on empty baseURL or nil client.
//
// Called from cmd/main when GATEWAY_URL is set.
func GatewayHTTP(baseURL string, client *http.Client, limiter *rate.Limiter) interfaces.GatewayNotifier {
	return &gatewayHTTP{
		baseURL: strings.TrimRight(service.StrPanic(baseURL, "notifier.gateway_http.go: baseURL is required"), "/"),
		client:  service.NilPanic(client, "notifier.gateway_http.go: http client is required"),
		limiter: limiter,
	}
}

type gatewayHTTP struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// Notify waits for the limiter, then sends reg. Any status other than 200 is an error; the gateway answers
// 404 to a DELETE of an instance it does not hold.
func (g *gatewayHTTP) Notify(ctx context.Context, action domain.NotifyAction, reg domain.Registration) error {
	method := http.MethodPost
	switch action {
	case domain.ActionRegister:
	case domain.ActionDeregister:
		method = http.MethodDelete
	default:
		return fmt.Errorf("unknown notify action %q", action)
	}
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("notify %s %s: %w", action, reg.ServiceURL, err)
		}
	}
	body, err := json.Marshal(cacheRequest{ServiceURL: reg.ServiceURL, ServiceType: reg.ServiceType})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+cachePath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("notify %s %s: %w", action, reg.ServiceURL, err)
	}
	defer resp.Body.Close()
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("notify %s %s: gateway returned %d: %s", action, reg.ServiceURL, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}
