package helpers

import (
	"context"
	"net/http"
	"testing"

	"github.com/denis-svg/Crash-Game/gateway/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteHeaderFilter_Process(t *testing.T) {
	in := http.Header{
		"Authorization":   {" Bearer t0k "},
		"Content-Type":    {"application/json"},
		"Accept":          {"application/json"},
		"Connection":      {"keep-alive"},
		"Cookie":          {"a=b"},
		"X-Forwarded-For": {"10.0.0.1"},
	}

	tests := []struct {
		name  string
		route domain.Route
		want  http.Header
	}{
		{
			name:  "auth_and_body",
			route: domain.Route{ForwardAuth: true, ForwardBody: true},
			want: http.Header{
				"Authorization":   {"Bearer t0k"},
				"Content-Type":    {"application/json"},
				"Accept":          {"application/json"},
				"X-Forwarded-For": {"10.0.0.1"},
			},
		},
		{
			name:  "body_only",
			route: domain.Route{ForwardBody: true},
			want: http.Header{
				"Content-Type":    {"application/json"},
				"Accept":          {"application/json"},
				"X-Forwarded-For": {"10.0.0.1"},
			},
		},
		{
			name:  "neither",
			route: domain.Route{},
			want: http.Header{
				"Accept":          {"application/json"},
				"X-Forwarded-For": {"10.0.0.1"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewRouteHeaderFilter().Process(context.Background(), in, tt.route)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRouteHeaderFilter_MissingAuthorization(t *testing.T) {
	out, err := NewRouteHeaderFilter().Process(context.Background(), http.Header{}, domain.Route{ForwardAuth: true})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRouteHeaderFilter_CustomPassthrough(t *testing.T) {
	in := http.Header{"Accept": {"text/plain"}, "Accept-Language": {"ro"}}
	out, err := NewRouteHeaderFilter("Accept-Language").Process(context.Background(), in, domain.Route{})
	require.NoError(t, err)
	assert.Equal(t, http.Header{"Accept-Language": {"ro"}}, out)
}

func TestForwardedForProcessor_Process(t *testing.T) {
	tests := []struct {
		name     string
		trust    bool
		incoming string
		clientIP string
		want     string
	}{
		{"untrusted_replaces_chain", false, "1.2.3.4", "10.0.0.9", "10.0.0.9"},
		{"trusted_appends", true, "1.2.3.4", "10.0.0.9", "1.2.3.4, 10.0.0.9"},
		{"trusted_without_incoming", true, "", "10.0.0.9", "10.0.0.9"},
		{"untrusted_without_client_ip_drops", false, "1.2.3.4", "", ""},
		{"trusted_without_client_ip_keeps", true, "1.2.3.4", "", "1.2.3.4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := http.Header{}
			if tt.incoming != "" {
				in.Set(HeaderForwardedFor, tt.incoming)
			}
			ctx := context.Background()
			if tt.clientIP != "" {
				ctx = ContextWithClientIP(ctx, tt.clientIP)
			}
			out, err := NewForwardedForProcessor(tt.trust).Process(ctx, in, domain.Route{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Get(HeaderForwardedFor))
			assert.Equal(t, tt.incoming, in.Get(HeaderForwardedFor), "input must not be mutated")
		})
	}
}
