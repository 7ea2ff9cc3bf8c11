package scenario

import (
	"context"
	"net/http"
	"time"
)

const scenarioNoInstancesAvailable = "no_instances_available"

func init() {
	Register(scenarioNoInstancesAvailable, runNoInstancesAvailable)
}

// runNoInstancesAvailable empties game_service and expects 503 without any backend call.
func runNoInstancesAvailable(ctx context.Context, cfg *Config) (err error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	f := newFixture(cfg)
	defer func() { err = f.finish(ctx, err) }()

	if err := f.isolate(ctx, serviceGame); err != nil {
		return err
	}
	_, err = f.gw.Expect(ctx, "get lobby", http.MethodGet, "/gateway/game/v1/lobby/1", http.StatusServiceUnavailable)
	return err
}
