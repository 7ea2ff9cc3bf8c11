package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/denis-svg/Crash-Game/gateway/domain"
	"github.com/denis-svg/Crash-Game/gateway/interfaces"
	"github.com/denis-svg/Crash-Game/gateway/interfaces/mock"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errConnRefused = errors.New("dial tcp: connection refused")

// statusByInstance answers every Send with the configured status (or error) of the instance.
func statusByInstance(statuses map[domain.InstanceURL]int, failures map[domain.InstanceURL]error) func(context.Context, domain.InstanceURL, domain.ForwardRequest) (domain.BackendResponse, error) {
	return func(_ context.Context, instance domain.InstanceURL, _ domain.ForwardRequest) (domain.BackendResponse, error) {
		if err, ok := failures[instance]; ok {
			return domain.BackendResponse{}, err
		}
		return domain.BackendResponse{StatusCode: statuses[instance], Body: []byte(instance)}, nil
	}
}

func newTestDispatcher(t *testing.T, sender interfaces.Sender, instances ...domain.InstanceURL) interfaces.Dispatcher {
	t.Helper()
	r := NewRegistry(log.NewNopLogger())
	for _, u := range instances {
		r.Register(domain.ServiceAuth, u)
	}
	return NewDispatcher(NewRoundRobinSelector(r), r, sender, log.NewNopLogger(), 3, 0, 0)
}

func sentTo(calls []struct {
	Ctx      context.Context
	Instance domain.InstanceURL
	Req      domain.ForwardRequest
}) []domain.InstanceURL {
	out := make([]domain.InstanceURL, 0, len(calls))
	for _, c := range calls {
		out = append(out, c.Instance)
	}
	return out
}

func TestNewDispatcher_Panics(t *testing.T) {
	r := NewRegistry(log.NewNopLogger())
	sel := NewRoundRobinSelector(r)
	sender := &mock.SenderMock{}
	logger := log.NewNopLogger()

	tests := []struct {
		name   string
		msg    string
		create func()
	}{
		{"nil_selector", "service.dispatcher.go: selector is required", func() { NewDispatcher(nil, r, sender, logger, 3, 0, 0) }},
		{"nil_registry", "service.dispatcher.go: registry is required", func() { NewDispatcher(sel, nil, sender, logger, 3, 0, 0) }},
		{"nil_sender", "service.dispatcher.go: sender is required", func() { NewDispatcher(sel, r, nil, logger, 3, 0, 0) }},
		{"nil_logger", "service.dispatcher.go: logger is required", func() { NewDispatcher(sel, r, sender, nil, 3, 0, 0) }},
		{"zero_retries", "service.dispatcher.go: maxRetries must be positive", func() { NewDispatcher(sel, r, sender, logger, 0, 0, 0) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.PanicsWithValue(t, tt.msg, tt.create)
		})
	}
}

func TestDispatcher_Forward(t *testing.T) {
	const a, b, c = domain.InstanceURL("http://a"), domain.InstanceURL("http://b"), domain.InstanceURL("http://c")

	tests := []struct {
		name       string
		instances  []domain.InstanceURL
		statuses   map[domain.InstanceURL]int
		failures   map[domain.InstanceURL]error
		wantStatus int
		wantBody   string
		wantErr    error
		wantSent   []domain.InstanceURL
	}{
		{
			name:       "first_instance_succeeds",
			instances:  []domain.InstanceURL{a, b},
			statuses:   map[domain.InstanceURL]int{a: http.StatusOK, b: http.StatusOK},
			wantStatus: http.StatusOK,
			wantBody:   "http://a",
			wantSent:   []domain.InstanceURL{a},
		},
		{
			name:       "failover_after_retries_on_5xx",
			instances:  []domain.InstanceURL{a, b},
			statuses:   map[domain.InstanceURL]int{a: http.StatusInternalServerError, b: http.StatusOK},
			wantStatus: http.StatusOK,
			wantBody:   "http://b",
			wantSent:   []domain.InstanceURL{a, a, a, b},
		},
		{
			name:       "client_error_is_final",
			instances:  []domain.InstanceURL{a, b},
			statuses:   map[domain.InstanceURL]int{a: http.StatusNotFound, b: http.StatusOK},
			wantStatus: http.StatusNotFound,
			wantBody:   "http://a",
			wantSent:   []domain.InstanceURL{a},
		},
		{
			name:       "bad_request_is_final",
			instances:  []domain.InstanceURL{a},
			statuses:   map[domain.InstanceURL]int{a: http.StatusBadRequest},
			wantStatus: http.StatusBadRequest,
			wantBody:   "http://a",
			wantSent:   []domain.InstanceURL{a},
		},
		{
			name:       "request_timeout_is_retried",
			instances:  []domain.InstanceURL{a, b},
			statuses:   map[domain.InstanceURL]int{a: http.StatusRequestTimeout, b: http.StatusCreated},
			wantStatus: http.StatusCreated,
			wantBody:   "http://b",
			wantSent:   []domain.InstanceURL{a, a, a, b},
		},
		{
			name:       "transport_error_is_retried",
			instances:  []domain.InstanceURL{a, b},
			statuses:   map[domain.InstanceURL]int{b: http.StatusOK},
			failures:   map[domain.InstanceURL]error{a: errConnRefused},
			wantStatus: http.StatusOK,
			wantBody:   "http://b",
			wantSent:   []domain.InstanceURL{a, a, a, b},
		},
		{
			name:      "all_instances_down",
			instances: []domain.InstanceURL{a, b, c},
			statuses:  map[domain.InstanceURL]int{a: http.StatusBadGateway, b: http.StatusServiceUnavailable},
			failures:  map[domain.InstanceURL]error{c: errConnRefused},
			wantErr:   ErrAllInstancesDown,
			wantSent:  []domain.InstanceURL{a, a, a, b, b, b, c, c, c},
		},
		{
			name:     "no_instances",
			wantErr:  ErrNoInstancesAvailable,
			wantSent: []domain.InstanceURL{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &mock.SenderMock{SendFunc: statusByInstance(tt.statuses, tt.failures)}
			d := newTestDispatcher(t, sender, tt.instances...)

			resp, err := d.Forward(context.Background(), domain.ForwardRequest{Service: domain.ServiceAuth, Method: http.MethodGet, PathSuffix: "/user/v1/status"})

			assert.Equal(t, tt.wantSent, sentTo(sender.SendCalls()))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				var de *DispatchError
				require.ErrorAs(t, err, &de)
				assert.Equal(t, domain.ServiceAuth, de.Service)
				assert.Equal(t, len(tt.wantSent), de.Attempts)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantBody, string(resp.Body))
		})
	}
}

func TestDispatcher_Forward_SucceedsOnRetry(t *testing.T) {
	var n int
	sender := &mock.SenderMock{
		SendFunc: func(_ context.Context, _ domain.InstanceURL, _ domain.ForwardRequest) (domain.BackendResponse, error) {
			n++
			if n < 3 {
				return domain.BackendResponse{StatusCode: http.StatusInternalServerError}, nil
			}
			return domain.BackendResponse{StatusCode: http.StatusOK}, nil
		},
	}
	d := newTestDispatcher(t, sender, "http://a", "http://b")

	resp, err := d.Forward(context.Background(), domain.ForwardRequest{Service: domain.ServiceAuth, Method: http.MethodGet})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []domain.InstanceURL{"http://a", "http://a", "http://a"}, sentTo(sender.SendCalls()))
}

func TestDispatcher_Forward_StartsAtSelectorPick(t *testing.T) {
	sender := &mock.SenderMock{SendFunc: statusByInstance(map[domain.InstanceURL]int{
		"http://a": http.StatusInternalServerError,
		"http://b": http.StatusInternalServerError,
		"http://c": http.StatusOK,
	}, nil)}
	d := newTestDispatcher(t, sender, "http://a", "http://b", "http://c")

	_, _ = d.Forward(context.Background(), domain.ForwardRequest{Service: domain.ServiceAuth})
	first := len(sender.SendCalls())
	// second request: round robin starts at b, fails over to a (rest of snapshot), then c
	resp, err := d.Forward(context.Background(), domain.ForwardRequest{Service: domain.ServiceAuth})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	calls := sentTo(sender.SendCalls())[first:]
	assert.Equal(t, []domain.InstanceURL{
		"http://b", "http://b", "http://b",
		"http://a", "http://a", "http://a",
		"http://c",
	}, calls)
}

func TestDispatcher_Forward_PassesRequestThrough(t *testing.T) {
	sender := &mock.SenderMock{SendFunc: statusByInstance(map[domain.InstanceURL]int{"http://a": http.StatusOK}, nil)}
	d := newTestDispatcher(t, sender, "http://a")
	req := domain.ForwardRequest{
		Service:    domain.ServiceAuth,
		Method:     http.MethodPost,
		PathSuffix: "/user/v1/auth/login",
		Header:     http.Header{"Content-Type": {"application/json"}},
		Body:       []byte(`{"username":"u"}`),
	}

	_, err := d.Forward(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, sender.SendCalls(), 1)
	assert.Equal(t, req, sender.SendCalls()[0].Req)
}

func TestDispatcher_Forward_CancelledContext(t *testing.T) {
	t.Run("before_first_attempt", func(t *testing.T) {
		sender := &mock.SenderMock{}
		d := newTestDispatcher(t, sender, "http://a")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := d.Forward(ctx, domain.ForwardRequest{Service: domain.ServiceAuth})
		require.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, sender.SendCalls())
	})

	t.Run("during_attempt", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		sender := &mock.SenderMock{
			SendFunc: func(ctx context.Context, _ domain.InstanceURL, _ domain.ForwardRequest) (domain.BackendResponse, error) {
				cancel()
				<-ctx.Done()
				return domain.BackendResponse{}, ctx.Err()
			},
		}
		d := newTestDispatcher(t, sender, "http://a", "http://b")

		_, err := d.Forward(ctx, domain.ForwardRequest{Service: domain.ServiceAuth})
		require.ErrorIs(t, err, context.Canceled)
		assert.False(t, errors.Is(err, ErrAllInstancesDown))
		assert.Len(t, sender.SendCalls(), 1)
	})

	t.Run("during_backoff", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		sender := &mock.SenderMock{
			SendFunc: func(_ context.Context, _ domain.InstanceURL, _ domain.ForwardRequest) (domain.BackendResponse, error) {
				cancel()
				return domain.BackendResponse{StatusCode: http.StatusBadGateway}, nil
			},
		}
		r := NewRegistry(log.NewNopLogger())
		r.Register(domain.ServiceAuth, "http://a")
		d := NewDispatcher(NewRoundRobinSelector(r), r, sender, log.NewNopLogger(), 3, 0, time.Hour)

		_, err := d.Forward(ctx, domain.ForwardRequest{Service: domain.ServiceAuth})
		require.ErrorIs(t, err, context.Canceled)
		var de *DispatchError
		require.ErrorAs(t, err, &de)
		var rse *RetryableStatusError
		require.ErrorAs(t, de.Last, &rse)
		assert.Equal(t, http.StatusBadGateway, rse.StatusCode)
		assert.Len(t, sender.SendCalls(), 1)
	})
}

func TestDispatcher_Forward_AttemptTimeoutIsRetried(t *testing.T) {
	var mu sync.Mutex
	deadlines := 0
	sender := &mock.SenderMock{
		SendFunc: func(ctx context.Context, instance domain.InstanceURL, _ domain.ForwardRequest) (domain.BackendResponse, error) {
			if _, ok := ctx.Deadline(); ok {
				mu.Lock()
				deadlines++
				mu.Unlock()
			}
			if instance == "http://slow" {
				<-ctx.Done()
				return domain.BackendResponse{}, ctx.Err()
			}
			return domain.BackendResponse{StatusCode: http.StatusOK}, nil
		},
	}
	r := NewRegistry(log.NewNopLogger())
	r.Register(domain.ServiceGame, "http://slow")
	r.Register(domain.ServiceGame, "http://fast")
	d := NewDispatcher(NewRoundRobinSelector(r), r, sender, log.NewNopLogger(), 2, 10*time.Millisecond, 0)

	resp, err := d.Forward(context.Background(), domain.ForwardRequest{Service: domain.ServiceGame})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []domain.InstanceURL{"http://slow", "http://slow", "http://fast"}, sentTo(sender.SendCalls()))
	assert.Equal(t, 3, deadlines)
}

func TestDispatcher_Backoff(t *testing.T) {
	d := &dispatcher{retryBackoff: time.Millisecond}

	start := time.Now()
	require.NoError(t, d.backoff(context.Background(), 3))
	assert.GreaterOrEqual(t, time.Since(start), 4*time.Millisecond)

	d.retryBackoff = 0
	require.NoError(t, d.backoff(context.Background(), 1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, d.backoff(ctx, 1), context.Canceled)
}

func TestCandidateOrder(t *testing.T) {
	tests := []struct {
		name     string
		first    domain.InstanceURL
		snapshot []domain.InstanceURL
		want     []domain.InstanceURL
	}{
		{
			name:     "first_in_middle",
			first:    "b",
			snapshot: []domain.InstanceURL{"a", "b", "c"},
			want:     []domain.InstanceURL{"b", "a", "c"},
		},
		{
			name:     "duplicate_kept_once_more",
			first:    "a",
			snapshot: []domain.InstanceURL{"a", "b", "a"},
			want:     []domain.InstanceURL{"a", "b", "a"},
		},
		{
			name:     "first_missing_from_snapshot",
			first:    "x",
			snapshot: []domain.InstanceURL{"a"},
			want:     []domain.InstanceURL{"x", "a"},
		},
		{
			name:     "empty_snapshot",
			first:    "x",
			snapshot: nil,
			want:     []domain.InstanceURL{"x"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, candidateOrder(tt.first, tt.snapshot))
		})
	}
}

func TestClassify(t *testing.T) {
	live := context.Background()
	done, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name   string
		ctx    context.Context
		status int
		err    error
		want   attemptOutcome
	}{
		{"ok", live, http.StatusOK, nil, outcomeReturn},
		{"redirect", live, http.StatusFound, nil, outcomeReturn},
		{"unauthorized", live, http.StatusUnauthorized, nil, outcomeReturn},
		{"too_many_requests", live, http.StatusTooManyRequests, nil, outcomeReturn},
		{"request_timeout", live, http.StatusRequestTimeout, nil, outcomeRetry},
		{"internal", live, http.StatusInternalServerError, nil, outcomeRetry},
		{"gateway_timeout", live, http.StatusGatewayTimeout, nil, outcomeRetry},
		{"transport", live, 0, errConnRefused, outcomeRetry},
		{"attempt_deadline", live, 0, context.DeadlineExceeded, outcomeRetry},
		{"caller_gone", done, 0, context.Canceled, outcomeAbort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.ctx, "http://a", domain.BackendResponse{StatusCode: tt.status}, tt.err)
			assert.Equal(t, tt.want, got.outcome)
		})
	}
}

func TestDispatchState_String(t *testing.T) {
	assert.Equal(t, "selecting", stateSelecting.String())
	assert.Equal(t, "failover", stateFailover.String())
	assert.Equal(t, "exhausted", stateExhausted.String())
	assert.Equal(t, "unknown", dispatchState(42).String())
}
