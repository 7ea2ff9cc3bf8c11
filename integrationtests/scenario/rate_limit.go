package scenario

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const scenarioRateLimit = "rate_limit"

func init() {
	Register(scenarioRateLimit, runRateLimit)
}

// runRateLimit sends RateLimit+1 calls to the rate limited GET /gateway/user/v1/status. The window may
// already be partly used by an earlier run, so the check is: every 200 comes before the first 429, at least
// one 429 is seen, every 429 carries Retry-After, and only the admitted calls reached the backend.
func runRateLimit(ctx context.Context, cfg *Config) (err error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	f := newFixture(cfg)
	defer func() { err = f.finish(ctx, err) }()

	if err := f.isolate(ctx, serviceAuth); err != nil {
		return err
	}
	auth, err := f.stub(ctx, serviceAuth, "auth-1", http.StatusOK)
	if err != nil {
		return err
	}

	admitted, rejected := 0, 0
	for i := 1; i <= cfg.rateLimit()+1; i++ {
		resp, err := f.gw.Call(ctx, http.MethodGet, "/gateway/user/v1/status", nil)
		if err != nil {
			return err
		}
		switch resp.StatusCode {
		case http.StatusOK:
			if rejected > 0 {
				return fmt.Errorf("call %d: admitted after a rejection", i)
			}
			admitted++
		case http.StatusTooManyRequests:
			if resp.Header.Get("Retry-After") == "" {
				return fmt.Errorf("call %d: 429 without Retry-After", i)
			}
			if resp.Body != "" {
				return fmt.Errorf("call %d: 429 body=%q, want empty", i, resp.Body)
			}
			rejected++
		default:
			return &StatusError{Step: fmt.Sprintf("call %d", i), Got: resp.StatusCode, Want: http.StatusOK, Body: resp.Body}
		}
	}
	if rejected == 0 {
		return fmt.Errorf("no call rejected after %d requests", cfg.rateLimit()+1)
	}
	if admitted > cfg.rateLimit() {
		return fmt.Errorf("admitted=%d, want at most %d", admitted, cfg.rateLimit())
	}
	if auth.Hits() != admitted {
		return fmt.Errorf("backend hits=%d, want %d", auth.Hits(), admitted)
	}
	return nil
}
