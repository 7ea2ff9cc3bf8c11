package adapters

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/denis-svg/Crash-Game/gateway/domain"
	"github.com/denis-svg/Crash-Game/gateway/helpers"
	"github.com/denis-svg/Crash-Game/gateway/interfaces"
)

// maxBackendBodyBytes caps how much of a backend answer is buffered.
const maxBackendBodyBytes = 8 << 20

// ErrBackendBodyTooLarge is returned by Send when a backend answer exceeds the buffer cap. The dispatcher
// treats it like any transport error.
var ErrBackendBodyTooLarge = errors.New("backend response body too large")

// NewBackendHTTPClient builds the shared outbound client. connectTimeout bounds the TCP dial;
// readTimeout bounds the wait for response headers once the request is written. The body read is bounded by
// the per-attempt context of the dispatcher.
//
// Called from cmd/main with CONNECT_TIMEOUT_MS and READ_TIMEOUT_MS.
func NewBackendHTTPClient(connectTimeout, readTimeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 30 * time.Second,
	}
	return &http.Client{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           dialer.DialContext,
			ResponseHeaderTimeout: readTimeout,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   32,
			IdleConnTimeout:       90 * time.Second,
		},
		// backend redirects are handed back to the caller untouched
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// BackendHTTP creates an interfaces.Sender performing one plain HTTP exchange per call. Panics on nil client.
//
// Returns: interfaces.Sender (*backendHTTP).
//
// Called from cmd/main; the same sender serves the dispatcher and the status reporter.
func BackendHTTP(client *http.Client) interfaces.Sender {
	return &backendHTTP{
		client:  helpers.NilPanic(client, "adapters.backend_http.go: http client is required"),
		maxBody: maxBackendBodyBytes,
	}
}

type backendHTTP struct {
	client  *http.Client
	maxBody int64
}

// Send performs req against instance + PathSuffix (+ "?" + RawQuery). The whole body is read before returning
// so a broken stream surfaces as a transport error the dispatcher can retry.
func (b *backendHTTP) Send(ctx context.Context, instance domain.InstanceURL, req domain.ForwardRequest) (domain.BackendResponse, error) {
	target := string(instance) + req.PathSuffix
	if req.RawQuery != "" {
		target += "?" + req.RawQuery
	}
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return domain.BackendResponse{}, fmt.Errorf("build request to %s: %w", instance, err)
	}
	if req.Header != nil {
		httpReq.Header = req.Header.Clone()
	}

	resp, err := b.client.Do(httpReq)
	if err != nil {
		return domain.BackendResponse{}, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, b.maxBody+1))
	if err != nil {
		return domain.BackendResponse{}, fmt.Errorf("read body from %s: %w", instance, err)
	}
	if int64(len(payload)) > b.maxBody {
		return domain.BackendResponse{}, fmt.Errorf("read body from %s: %w (limit %d bytes)", instance, ErrBackendBodyTooLarge, b.maxBody)
	}
	return domain.BackendResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       payload,
	}, nil
}
