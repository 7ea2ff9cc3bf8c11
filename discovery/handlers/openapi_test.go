package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidator(t *testing.T) {
	v, err := NewValidator(context.Background())
	require.NoError(t, err)
	require.NotNil(t, v)
}

func TestValidator_Middleware(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		path        string
		body        string
		wantNext    bool
		wantMessage string
	}{
		{
			name:     "valid_register",
			method:   http.MethodPost,
			path:     "/discovery/register",
			body:     `{"serviceType":"auth_service","serviceUrl":"http://auth:5000"}`,
			wantNext: true,
		},
		{
			name:        "register_missing_url",
			method:      http.MethodPost,
			path:        "/discovery/register",
			body:        `{"serviceType":"auth_service"}`,
			wantMessage: "serviceUrl",
		},
		{
			name:        "register_bad_scheme",
			method:      http.MethodPost,
			path:        "/discovery/register",
			body:        `{"serviceType":"auth_service","serviceUrl":"tcp://auth"}`,
			wantMessage: "regular expression",
		},
		{
			name:     "services",
			method:   http.MethodGet,
			path:     "/discovery/services",
			wantNext: true,
		},
		{
			name:     "unknown_path_passes_through",
			method:   http.MethodGet,
			path:     "/metrics",
			wantNext: true,
		},
		{
			name:     "raw_slashes_pass_through",
			method:   http.MethodDelete,
			path:     "/discovery/deregister/auth_service/http://auth:5000",
			wantNext: true,
		},
	}
	v, err := NewValidator(context.Background())
	require.NoError(t, err)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.body != "" {
				req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			}
			c := echo.New().NewContext(req, httptest.NewRecorder())
			called := false

			err := v.Middleware(func(echo.Context) error {
				called = true
				return nil
			})(c)

			assert.Equal(t, tt.wantNext, called)
			if tt.wantNext {
				require.NoError(t, err)
				return
			}
			var he *echo.HTTPError
			require.True(t, errors.As(err, &he))
			assert.Equal(t, http.StatusBadRequest, he.Code)
			assert.Contains(t, he.Message, tt.wantMessage)
			var reqErr *openapi3filter.RequestError
			assert.True(t, errors.As(he.Internal, &reqErr))
		})
	}
}
