package service

import (
	"context"
	"net/http"
	"time"

	"github.com/denis-svg/Crash-Game/gateway/domain"
	"github.com/denis-svg/Crash-Game/gateway/helpers"
	"github.com/denis-svg/Crash-Game/gateway/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// dispatchState is a step of the Forward control loop.
type dispatchState int

const (
	stateSelecting dispatchState = iota
	stateAttempting
	stateRetrying
	stateFailover
	stateReturning
	stateExhausted
)

func (s dispatchState) String() string {
	switch s {
	case stateSelecting:
		return "selecting"
	case stateAttempting:
		return "attempting"
	case stateRetrying:
		return "retrying"
	case stateFailover:
		return "failover"
	case stateReturning:
		return "returning"
	case stateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// attemptOutcome classifies a single attempt.
type attemptOutcome int

const (
	// outcomeReturn: hand the response to the caller (2xx/3xx, or 4xx other than 408).
	outcomeReturn attemptOutcome = iota
	// outcomeRetry: transport failure, 5xx or 408; counts against the candidate's retries.
	outcomeRetry
	// outcomeAbort: the caller's context is done; stop without further attempts.
	outcomeAbort
)

// attemptResult is what an attemptPolicy reports for one (candidate, attempt).
type attemptResult struct {
	outcome  attemptOutcome
	response domain.BackendResponse
	err      error
}

// attemptPolicy performs attempt number attempt (1-based) against candidate.
type attemptPolicy func(ctx context.Context, candidate domain.InstanceURL, attempt int) attemptResult

// dispatcher implements interfaces.Dispatcher. For every request it builds the candidate order
// (selector pick first, then the rest of the registry snapshot), gives each candidate up to maxRetries
// attempts and fails over on exhaustion. It never mutates the registry.
type dispatcher struct {
	selector       interfaces.Selector
	registry       interfaces.Registry
	sender         interfaces.Sender
	logger         log.Logger
	maxRetries     int
	attemptTimeout time.Duration
	retryBackoff   time.Duration
}

// NewDispatcher creates the failover dispatcher. Panics on nil dependencies or maxRetries < 1.
//
// Parameters: selector — picks the first candidate; registry — source of the remaining candidates; sender —
// performs one HTTP exchange; logger — attempts at debug, outcome at info/warn; maxRetries — attempts per
// candidate (RETRY_COUNT); attemptTimeout — upper bound of one attempt (connect + read timeout), 0 disables
// it; retryBackoff — base delay before the 2nd, 3rd... attempt on the same candidate, doubled each time,
// 0 retries immediately.
//
// Returns: interfaces.Dispatcher (*dispatcher).
//
// Called from cmd/main.
func NewDispatcher(
	selector interfaces.Selector,
	registry interfaces.Registry,
	sender interfaces.Sender,
	logger log.Logger,
	maxRetries int,
	attemptTimeout time.Duration,
	retryBackoff time.Duration,
) interfaces.Dispatcher {
	if maxRetries < 1 {
		panic("service.dispatcher.go: maxRetries must be positive")
	}
	return &dispatcher{
		selector:       helpers.NilPanic(selector, "service.dispatcher.go: selector is required"),
		registry:       helpers.NilPanic(registry, "service.dispatcher.go: registry is required"),
		sender:         helpers.NilPanic(sender, "service.dispatcher.go: sender is required"),
		logger:         log.With(helpers.NilPanic(logger, "service.dispatcher.go: logger is required"), "component", "dispatcher"),
		maxRetries:     maxRetries,
		attemptTimeout: attemptTimeout,
		retryBackoff:   retryBackoff,
	}
}

// Forward runs the dispatch state machine for req:
// selecting → attempting → (retrying → attempting)* → failover → ... → returning | exhausted.
//
// Returns: (response, nil) for the first returnable response; (zero, *DispatchError) wrapping
// ErrNoInstancesAvailable (no network call made), ErrAllInstancesDown, or ctx.Err() when the caller gave up.
//
// Called from handlers.GatewayServer for every proxied route.
func (d *dispatcher) Forward(ctx context.Context, req domain.ForwardRequest) (domain.BackendResponse, error) {
	var (
		state      = stateSelecting
		candidates []domain.InstanceURL
		current    int
		attempt    int
		total      int
		last       attemptResult
	)
	try := d.attemptPolicy(req)

	for {
		switch state {
		case stateSelecting:
			first, err := d.selector.Next(req.Service)
			if err != nil {
				level.Warn(d.logger).Log("msg", "no candidates", "service", req.Service, "err", err)
				return domain.BackendResponse{}, &DispatchError{Service: req.Service, Err: ErrNoInstancesAvailable}
			}
			candidates = candidateOrder(first, d.registry.Snapshot(req.Service))
			state = stateAttempting

		case stateAttempting:
			if err := ctx.Err(); err != nil {
				return domain.BackendResponse{}, d.aborted(req, total, last.err, err)
			}
			attempt++
			total++
			last = try(ctx, candidates[current], attempt)
			switch {
			case last.outcome == outcomeReturn:
				state = stateReturning
			case last.outcome == outcomeAbort:
				return domain.BackendResponse{}, d.aborted(req, total, last.err, ctx.Err())
			case attempt < d.maxRetries:
				state = stateRetrying
			default:
				state = stateFailover
			}

		case stateRetrying:
			if err := d.backoff(ctx, attempt); err != nil {
				return domain.BackendResponse{}, d.aborted(req, total, last.err, err)
			}
			state = stateAttempting

		case stateFailover:
			current++
			attempt = 0
			if current >= len(candidates) {
				state = stateExhausted
				continue
			}
			level.Info(d.logger).Log("msg", "failing over", "service", req.Service, "from", candidates[current-1], "to", candidates[current])
			state = stateAttempting

		case stateReturning:
			level.Info(d.logger).Log(
				"msg", "forwarded",
				"service", req.Service,
				"method", req.Method,
				"path", req.PathSuffix,
				"instance", candidates[current],
				"status", last.response.StatusCode,
				"attempts", total,
			)
			return last.response, nil

		case stateExhausted:
			level.Warn(d.logger).Log(
				"msg", "all instances down",
				"service", req.Service,
				"candidates", len(candidates),
				"attempts", total,
				"err", last.err,
			)
			return domain.BackendResponse{}, &DispatchError{Service: req.Service, Attempts: total, Last: last.err, Err: ErrAllInstancesDown}
		}
	}
}

// attemptPolicy returns the per-request attempt function: one Send bounded by attemptTimeout, classified by classify.
func (d *dispatcher) attemptPolicy(req domain.ForwardRequest) attemptPolicy {
	return func(ctx context.Context, candidate domain.InstanceURL, attempt int) attemptResult {
		attemptCtx := ctx
		if d.attemptTimeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, d.attemptTimeout)
			defer cancel()
		}
		resp, err := d.sender.Send(attemptCtx, candidate, req)
		result := classify(ctx, candidate, resp, err)
		level.Debug(d.logger).Log(
			"msg", "attempt",
			"service", req.Service,
			"instance", candidate,
			"attempt", attempt,
			"status", resp.StatusCode,
			"retry", result.outcome == outcomeRetry,
			"err", err,
		)
		return result
	}
}

// classify maps one Send result to an outcome. ctx is the caller's context (not the per-attempt one), so a
// per-attempt timeout is retryable while a cancelled caller aborts.
func classify(ctx context.Context, candidate domain.InstanceURL, resp domain.BackendResponse, err error) attemptResult {
	if err != nil {
		if ctx.Err() != nil {
			return attemptResult{outcome: outcomeAbort, err: err}
		}
		return attemptResult{outcome: outcomeRetry, err: err}
	}
	if isRetryableStatus(resp.StatusCode) {
		return attemptResult{
			outcome:  outcomeRetry,
			response: resp,
			err:      &RetryableStatusError{Instance: candidate, StatusCode: resp.StatusCode},
		}
	}
	return attemptResult{outcome: outcomeReturn, response: resp}
}

// isRetryableStatus reports 5xx and 408 Request Timeout. Every other 4xx is final.
func isRetryableStatus(code int) bool {
	return code >= http.StatusInternalServerError || code == http.StatusRequestTimeout
}

// candidateOrder puts first ahead of snapshot, dropping only the first occurrence of first from snapshot.
// Other duplicates and the stored order are kept.
func candidateOrder(first domain.InstanceURL, snapshot []domain.InstanceURL) []domain.InstanceURL {
	out := make([]domain.InstanceURL, 0, len(snapshot)+1)
	out = append(out, first)
	skipped := false
	for _, u := range snapshot {
		if !skipped && u == first {
			skipped = true
			continue
		}
		out = append(out, u)
	}
	return out
}

// backoff waits retryBackoff * 2^(attempt-1) or until ctx is done.
func (d *dispatcher) backoff(ctx context.Context, attempt int) error {
	if d.retryBackoff <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d.retryBackoff << (attempt - 1))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (d *dispatcher) aborted(req domain.ForwardRequest, attempts int, last, cause error) error {
	level.Info(d.logger).Log("msg", "dispatch aborted by caller", "service", req.Service, "attempts", attempts, "err", cause)
	return &DispatchError{Service: req.Service, Attempts: attempts, Last: last, Err: cause}
}
