package scenario

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const scenarioNoRetryOn4xx = "no_retry_on_4xx"

func init() {
	Register(scenarioNoRetryOn4xx, runNoRetryOn4xx)
}

// runNoRetryOn4xx checks that a 404 from the backend is passed through as is after a single attempt.
func runNoRetryOn4xx(ctx context.Context, cfg *Config) (err error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	f := newFixture(cfg)
	defer func() { err = f.finish(ctx, err) }()

	if err := f.isolate(ctx, serviceGame); err != nil {
		return err
	}
	missing, err := f.stub(ctx, serviceGame, "game-404", http.StatusNotFound)
	if err != nil {
		return err
	}
	other, err := f.stub(ctx, serviceGame, "game-other", http.StatusNotFound)
	if err != nil {
		return err
	}

	resp, err := f.gw.Expect(ctx, "get lobby", http.MethodGet, "/gateway/game/v1/lobby/42", http.StatusNotFound)
	if err != nil {
		return err
	}
	if total := missing.Hits() + other.Hits(); total != 1 {
		return fmt.Errorf("backend attempts=%d, want 1", total)
	}
	served := missing
	if other.Hits() == 1 {
		served = other
	}
	if resp.Body != served.Body() {
		return fmt.Errorf("body=%q, want %q", resp.Body, served.Body())
	}
	if paths := served.Paths(); paths[0] != "/game/v1/lobby/42" {
		return fmt.Errorf("backend path=%q, want /game/v1/lobby/42", paths[0])
	}
	return nil
}
