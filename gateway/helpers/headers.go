package helpers

import (
	"context"
	"net"
	"net/http"
	"strings"
)

const (
	// HeaderAuthorization carries the opaque bearer credential; forwarded only on routes with ForwardAuth.
	HeaderAuthorization = "Authorization"
	// HeaderContentType is forwarded together with the body.
	HeaderContentType = "Content-Type"
	// HeaderForwardedFor lists the client address chain.
	HeaderForwardedFor = "X-Forwarded-For"
	// HeaderRetryAfter is set on 429 answers of the rate limiter, in whole seconds.
	HeaderRetryAfter = "Retry-After"
)

type clientIPKey struct{}

// GetHeaderValue returns the first value of header key. Key is canonicalized by http.Header.Get.
//
// Parameters: h — request headers (nil allowed — returns ("", false)); key — header name.
//
// Returns: (value, true) when there is a non-empty value; ("", false) when h is nil, key is missing or value is empty.
//
// Called from GetAuthToken, RouteHeaderFilter.Process and ClientIdentity.
func GetHeaderValue(h http.Header, key string) (string, bool) {
	if h == nil || key == "" {
		return "", false
	}
	v := h.Get(key)
	if v == "" {
		return "", false
	}
	return v, true
}

// GetAuthToken returns the Authorization value with surrounding spaces trimmed. The credential is opaque:
// the "Bearer " prefix, if any, is kept.
//
// Returns: (token, true) or ("", false) when missing, empty or whitespace-only.
func GetAuthToken(h http.Header) (string, bool) {
	v, ok := GetHeaderValue(h, HeaderAuthorization)
	if !ok {
		return "", false
	}
	token := strings.TrimSpace(v)
	if token == "" {
		return "", false
	}
	return token, true
}

// ClientIdentity returns the rate limiting identity of r: the host part of RemoteAddr, or the first
// X-Forwarded-For entry when trustForwarded is set and the header is present.
//
// Parameters: r — incoming request; trustForwarded — RATE_LIMIT_TRUST_FORWARDED (only safe behind a proxy that
// overwrites the header).
//
// Returns: identity string; RemoteAddr unchanged when it has no port.
//
// Called from handlers.GatewayServer (rate limit middleware and header forwarding).
func ClientIdentity(r *http.Request, trustForwarded bool) string {
	if trustForwarded {
		if xff, ok := GetHeaderValue(r.Header, HeaderForwardedFor); ok {
			first, _, _ := strings.Cut(xff, ",")
			if first = strings.TrimSpace(first); first != "" {
				return first
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// ContextWithClientIP stores the client address for ForwardedForProcessor.
func ContextWithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// ClientIPFromContext returns the address stored by ContextWithClientIP.
func ClientIPFromContext(ctx context.Context) (string, bool) {
	ip, ok := ctx.Value(clientIPKey{}).(string)
	return ip, ok && ip != ""
}
