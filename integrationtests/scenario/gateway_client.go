package scenario

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	serviceAuth = "auth_service"
	serviceGame = "game_service"
)

// Response is what the gateway answered to one call.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       string
}

// StatusReport mirrors the body of GET /gateway/status.
type StatusReport struct {
	Message         string   `json:"message"`
	WorkingServices []string `json:"workingServices"`
	FailedService   string   `json:"failedService"`
}

// GatewayClient drives the gateway over HTTP: proxied routes plus the /gateway/cache admin API.
type GatewayClient struct {
	baseURL string
	client  *http.Client
}

func NewGatewayClient(cfg *Config) *GatewayClient {
	return &GatewayClient{baseURL: cfg.GatewayURL, client: cfg.httpClient()}
}

// Call sends method to path (relative to the gateway root, e.g. /gateway/game/v1/status).
func (g *GatewayClient) Call(ctx context.Context, method, path string, body []byte) (Response, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, rd)
	if err != nil {
		return Response{}, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}
	return Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: string(data)}, nil
}

// Expect calls path and fails with a *StatusError unless the gateway answers want.
func (g *GatewayClient) Expect(ctx context.Context, step, method, path string, want int) (Response, error) {
	resp, err := g.Call(ctx, method, path, nil)
	if err != nil {
		return Response{}, fmt.Errorf("%s: %w", step, err)
	}
	if resp.StatusCode != want {
		return resp, &StatusError{Step: step, Got: resp.StatusCode, Want: want, Body: resp.Body}
	}
	return resp, nil
}

// RegisterInstance adds url to serviceType through POST /gateway/cache.
func (g *GatewayClient) RegisterInstance(ctx context.Context, serviceType, url string) error {
	return g.cache(ctx, http.MethodPost, serviceType, url)
}

// DeregisterInstance removes url from serviceType through DELETE /gateway/cache.
func (g *GatewayClient) DeregisterInstance(ctx context.Context, serviceType, url string) error {
	return g.cache(ctx, http.MethodDelete, serviceType, url)
}

func (g *GatewayClient) cache(ctx context.Context, method, serviceType, url string) error {
	body, err := json.Marshal(map[string]string{"serviceType": serviceType, "serviceUrl": url})
	if err != nil {
		return err
	}
	resp, err := g.Call(ctx, method, "/gateway/cache", body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return &StatusError{Step: method + " /gateway/cache " + serviceType, Got: resp.StatusCode, Want: http.StatusOK, Body: resp.Body}
	}
	return nil
}

// Services returns the gateway registry through GET /gateway/cache.
func (g *GatewayClient) Services(ctx context.Context) (map[string][]string, error) {
	resp, err := g.Call(ctx, http.MethodGet, "/gateway/cache", nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Step: "GET /gateway/cache", Got: resp.StatusCode, Want: http.StatusOK, Body: resp.Body}
	}
	var out map[string][]string
	if err := json.Unmarshal([]byte(resp.Body), &out); err != nil {
		return nil, fmt.Errorf("decode cache: %w", err)
	}
	return out, nil
}

// Status calls GET /gateway/status and decodes the report whatever the status code.
func (g *GatewayClient) Status(ctx context.Context) (int, StatusReport, error) {
	resp, err := g.Call(ctx, http.MethodGet, "/gateway/status", nil)
	if err != nil {
		return 0, StatusReport{}, err
	}
	var report StatusReport
	if err := json.Unmarshal([]byte(resp.Body), &report); err != nil {
		return resp.StatusCode, StatusReport{}, fmt.Errorf("decode status (%d): %w", resp.StatusCode, err)
	}
	return resp.StatusCode, report, nil
}
