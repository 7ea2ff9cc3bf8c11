package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/denis-svg/Crash-Game/gateway/helpers"
	"github.com/denis-svg/Crash-Game/gateway/interfaces/mock"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a TimeProviderMock whose time is moved by advance.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() (*fakeClock, *mock.TimeProviderMock) {
	c := &fakeClock{now: helpers.TestNow()}
	return c, &mock.TimeProviderMock{NowFunc: func() time.Time {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.now
	}}
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestNewFixedWindowLimiter_Panics(t *testing.T) {
	_, clock := newFakeClock()
	logger := log.NewNopLogger()

	tests := []struct {
		name   string
		msg    string
		create func()
	}{
		{"zero_limit", "service.rate_limiter.go: limit must be positive", func() { NewFixedWindowLimiter(0, time.Second, clock, logger) }},
		{"zero_window", "service.rate_limiter.go: window must be positive", func() { NewFixedWindowLimiter(5, 0, clock, logger) }},
		{"nil_clock", "service.rate_limiter.go: clock is required", func() { NewFixedWindowLimiter(5, time.Second, nil, logger) }},
		{"nil_logger", "service.rate_limiter.go: logger is required", func() { NewFixedWindowLimiter(5, time.Second, clock, nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.PanicsWithValue(t, tt.msg, tt.create)
		})
	}
}

func TestFixedWindowLimiter_Allow(t *testing.T) {
	c, clock := newFakeClock()
	l := NewFixedWindowLimiter(5, 10*time.Second, clock, log.NewNopLogger())

	for i := 1; i <= 5; i++ {
		assert.True(t, l.Allow("10.0.0.1"), "request %d", i)
		c.advance(time.Second)
	}
	assert.False(t, l.Allow("10.0.0.1"), "6th request in the window")
	assert.True(t, l.Allow("10.0.0.2"), "identities are independent")

	c.advance(5*time.Second + time.Millisecond)
	d := l.Decide("10.0.0.1")
	assert.True(t, d.Allowed, "new window after the period elapsed")
	assert.Equal(t, 1, d.Count)
}

func TestFixedWindowLimiter_Decide(t *testing.T) {
	c, clock := newFakeClock()
	l := NewFixedWindowLimiter(2, 10*time.Second, clock, log.NewNopLogger())

	d := l.Decide("client")
	assert.Equal(t, true, d.Allowed)
	assert.Equal(t, 1, d.Count)
	assert.Equal(t, 2, d.Limit)

	c.advance(3 * time.Second)
	d = l.Decide("client")
	assert.True(t, d.Allowed)
	assert.Equal(t, 2, d.Count)

	c.advance(time.Second)
	d = l.Decide("client")
	assert.False(t, d.Allowed)
	assert.Equal(t, 2, d.Count, "denied requests are not counted")
	assert.Equal(t, 6*time.Second, d.RetryAfter)

	c.advance(6 * time.Second)
	d = l.Decide("client")
	assert.False(t, d.Allowed, "exactly window after start is still the same window")
	assert.Equal(t, time.Duration(0), d.RetryAfter)
}

func TestFixedWindowLimiter_ConcurrentAllowNeverExceedsLimit(t *testing.T) {
	_, clock := newFakeClock()
	l := NewFixedWindowLimiter(5, 10*time.Second, clock, log.NewNopLogger())

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("burst") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 5, allowed)
}

func TestFixedWindowLimiter_Sweep(t *testing.T) {
	c, clock := newFakeClock()
	l := NewFixedWindowLimiter(5, 10*time.Second, clock, log.NewNopLogger())

	for i := 0; i < 10; i++ {
		l.Allow(fmt.Sprintf("old-%d", i))
	}
	c.advance(8 * time.Second)
	l.Allow("recent")
	require.Equal(t, 11, l.Len())

	c.advance(3 * time.Second)
	assert.Equal(t, 10, l.Sweep())
	assert.Equal(t, 1, l.Len())

	for i := 0; i < 4; i++ {
		require.True(t, l.Allow("recent"))
	}
	assert.False(t, l.Allow("recent"), "sweep keeps live windows intact")
}

func TestFixedWindowLimiter_StartJanitor(t *testing.T) {
	c, clock := newFakeClock()
	l := NewFixedWindowLimiter(5, 10*time.Second, clock, log.NewNopLogger())
	l.Allow("a")
	l.Allow("b")
	c.advance(11 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.StartJanitor(ctx, time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return l.Len() == 0 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop after cancel")
	}
}
