package scenario

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{
		"all_instances_down",
		"failover",
		"no_instances_available",
		"no_retry_on_4xx",
		"rate_limit",
		"round_robin",
		"status_report",
	}, Names())
	assert.Len(t, All(), len(Names()))
}

func TestRun(t *testing.T) {
	t.Run("unknown", func(t *testing.T) {
		err := Run("does_not_exist", context.Background(), &Config{})
		var unknown *UnknownScenarioError
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, "does_not_exist", unknown.Name)
		assert.EqualError(t, err, "unknown scenario: does_not_exist")
	})

	t.Run("registered", func(t *testing.T) {
		want := errors.New("boom")
		Register("test_only", func(context.Context, *Config) error { return want })
		t.Cleanup(func() { delete(registry, "test_only") })

		assert.ErrorIs(t, Run("test_only", context.Background(), &Config{}), want)
	})
}

func TestStatusError(t *testing.T) {
	assert.EqualError(t, &StatusError{Step: "call 1", Got: 500, Want: 200}, "call 1: status=500, want 200")
	assert.EqualError(t, &StatusError{Step: "call 1", Got: 404, Want: 200, Body: "nope"}, "call 1: status=404, want 200 (body: nope)")
}
