package scenario

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const scenarioFailover = "failover"

func init() {
	Register(scenarioFailover, runFailover)
}

// runFailover registers one instance answering 500 and one healthy instance. Two calls start once on each
// instance; both must succeed from the healthy one, with the broken instance tried Retries times in total.
func runFailover(ctx context.Context, cfg *Config) (err error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	f := newFixture(cfg)
	defer func() { err = f.finish(ctx, err) }()

	if err := f.isolate(ctx, serviceGame); err != nil {
		return err
	}
	broken, err := f.stub(ctx, serviceGame, "game-broken", http.StatusInternalServerError)
	if err != nil {
		return err
	}
	healthy, err := f.stub(ctx, serviceGame, "game-healthy", http.StatusOK)
	if err != nil {
		return err
	}

	for i := 1; i <= 2; i++ {
		resp, err := f.gw.Expect(ctx, fmt.Sprintf("call %d", i), http.MethodGet, "/gateway/game/v1/lobby/7", http.StatusOK)
		if err != nil {
			return err
		}
		if resp.Body != healthy.Body() {
			return fmt.Errorf("call %d: body=%q, want %q", i, resp.Body, healthy.Body())
		}
	}
	if healthy.Hits() != 2 {
		return fmt.Errorf("%s: hits=%d, want 2", healthy.Name, healthy.Hits())
	}
	if broken.Hits() != cfg.retries() {
		return fmt.Errorf("%s: hits=%d, want %d", broken.Name, broken.Hits(), cfg.retries())
	}
	return nil
}
