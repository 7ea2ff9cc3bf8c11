package scenario

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"time"
)

const scenarioStatusReport = "status_report"

func init() {
	Register(scenarioStatusReport, runStatusReport)
}

// runStatusReport checks GET /gateway/status with healthy auth and game instances (200, both listed) and
// again after a failing game instance is added (500, the failing entry named). Service types other than
// auth and game are left alone and must be healthy.
func runStatusReport(ctx context.Context, cfg *Config) (err error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	f := newFixture(cfg)
	defer func() { err = f.finish(ctx, err) }()

	if err := f.isolate(ctx, serviceAuth, serviceGame); err != nil {
		return err
	}
	auth, err := f.stub(ctx, serviceAuth, "auth-up", http.StatusOK)
	if err != nil {
		return err
	}
	game, err := f.stub(ctx, serviceGame, "game-up", http.StatusOK)
	if err != nil {
		return err
	}

	code, report, err := f.gw.Status(ctx)
	if err != nil {
		return err
	}
	if code != http.StatusOK {
		return &StatusError{Step: "status all up", Got: code, Want: http.StatusOK, Body: report.FailedService}
	}
	for _, want := range []string{serviceAuth + ": " + auth.URL, serviceGame + ": " + game.URL} {
		if !slices.Contains(report.WorkingServices, want) {
			return fmt.Errorf("status all up: %q missing from %v", want, report.WorkingServices)
		}
	}
	if report.FailedService != "" {
		return fmt.Errorf("status all up: failedService=%q, want empty", report.FailedService)
	}

	down, err := f.stub(ctx, serviceGame, "game-down", http.StatusServiceUnavailable)
	if err != nil {
		return err
	}
	code, report, err = f.gw.Status(ctx)
	if err != nil {
		return err
	}
	if code != http.StatusInternalServerError {
		return &StatusError{Step: "status one down", Got: code, Want: http.StatusInternalServerError}
	}
	if want := serviceGame + ": " + down.URL; report.FailedService != want {
		return fmt.Errorf("status one down: failedService=%q, want %q", report.FailedService, want)
	}
	return nil
}
