package service

import (
	"context"
	"errors"
	"testing"

	"github.com/denis-svg/Crash-Game/gateway/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayError_Error(t *testing.T) {
	assert.Equal(t, "bad_parameter missing url", NewBadParameterError("missing url", nil).Error())
	assert.Equal(t, "entity_not_found gone: boom", NewEntityNotFoundError("gone", errors.New("boom")).Error())
}

func TestGatewayError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	assert.ErrorIs(t, NewGatewayError(ErrInternalServerError, "x", inner), inner)
}

func TestToGatewayError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantNil  bool
		wantCode string
		wantMsg  string
	}{
		{
			name:     "gateway_error_passes_through",
			err:      NewEntityNotFoundError("Service not found: http://x", nil),
			wantCode: ErrEntityNotFound,
			wantMsg:  "Service not found: http://x",
		},
		{
			name:     "no_instances",
			err:      &DispatchError{Service: domain.ServiceGame, Err: ErrNoInstancesAvailable},
			wantCode: ErrServiceUnavailable,
			wantMsg:  "No instances available for game_service",
		},
		{
			name:     "all_down",
			err:      &DispatchError{Service: domain.ServiceAuth, Attempts: 6, Err: ErrAllInstancesDown},
			wantCode: ErrServicesDown,
			wantMsg:  "All services are down",
		},
		{
			name:     "cancelled",
			err:      &DispatchError{Service: domain.ServiceAuth, Attempts: 1, Err: context.Canceled},
			wantCode: ErrGatewayTimeout,
		},
		{
			name:     "deadline",
			err:      &DispatchError{Service: domain.ServiceAuth, Err: context.DeadlineExceeded},
			wantCode: ErrGatewayTimeout,
		},
		{
			name:     "unknown_dispatch_cause",
			err:      &DispatchError{Service: domain.ServiceAuth, Err: errors.New("weird")},
			wantCode: ErrInternalServerError,
		},
		{
			name:    "plain_error",
			err:     errors.New("plain"),
			wantNil: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToGatewayError(tt.err)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCode, got.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, got.Message)
			}
			assert.True(t, IsGatewayError(tt.err, tt.wantCode))
		})
	}
}

func TestDispatchError_Error(t *testing.T) {
	err := &DispatchError{
		Service:  domain.ServiceAuth,
		Attempts: 3,
		Last:     &RetryableStatusError{Instance: "http://a", StatusCode: 502},
		Err:      ErrAllInstancesDown,
	}
	assert.Equal(t, "dispatch auth_service: all instances are down after 3 attempts, last: http://a answered 502", err.Error())
	assert.Equal(t, "dispatch game_service: no instances available after 0 attempts",
		(&DispatchError{Service: domain.ServiceGame, Err: ErrNoInstancesAvailable}).Error())
}
