package scenario

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const scenarioAllInstancesDown = "all_instances_down"

func init() {
	Register(scenarioAllInstancesDown, runAllInstancesDown)
}

// runAllInstancesDown registers two instances answering 503. The gateway must try each Retries times and
// answer 500.
func runAllInstancesDown(ctx context.Context, cfg *Config) (err error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	f := newFixture(cfg)
	defer func() { err = f.finish(ctx, err) }()

	if err := f.isolate(ctx, serviceGame); err != nil {
		return err
	}
	for _, name := range []string{"game-down-1", "game-down-2"} {
		if _, err := f.stub(ctx, serviceGame, name, http.StatusServiceUnavailable); err != nil {
			return err
		}
	}

	if _, err := f.gw.Expect(ctx, "get status", http.MethodGet, "/gateway/game/v1/status", http.StatusInternalServerError); err != nil {
		return err
	}
	for _, s := range f.stubs {
		if s.Hits() != cfg.retries() {
			return fmt.Errorf("%s: hits=%d, want %d", s.Name, s.Hits(), cfg.retries())
		}
	}
	return nil
}
