package scenario

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const scenarioRoundRobin = "round_robin"

func init() {
	Register(scenarioRoundRobin, runRoundRobin)
}

// runRoundRobin registers three healthy game instances and checks that six calls to GET /gateway/game/v1/status
// reach each of them exactly twice, each response carrying the body of the instance that served it.
func runRoundRobin(ctx context.Context, cfg *Config) (err error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	f := newFixture(cfg)
	defer func() { err = f.finish(ctx, err) }()

	if err := f.isolate(ctx, serviceGame); err != nil {
		return err
	}
	const instances, rounds = 3, 2
	bodies := make(map[string]*StubBackend, instances)
	for i := 0; i < instances; i++ {
		s, err := f.stub(ctx, serviceGame, fmt.Sprintf("game-%d", i+1), http.StatusOK)
		if err != nil {
			return err
		}
		bodies[s.Body()] = s
	}

	var previous string
	for i := 0; i < instances*rounds; i++ {
		resp, err := f.gw.Expect(ctx, fmt.Sprintf("call %d", i+1), http.MethodGet, "/gateway/game/v1/status", http.StatusOK)
		if err != nil {
			return err
		}
		if _, ok := bodies[resp.Body]; !ok {
			return fmt.Errorf("call %d: body %q is not from a registered stub", i+1, resp.Body)
		}
		if resp.Body == previous {
			return fmt.Errorf("call %d: %q served twice in a row", i+1, resp.Body)
		}
		previous = resp.Body
	}
	for _, s := range f.stubs {
		if s.Hits() != rounds {
			return fmt.Errorf("%s: hits=%d, want %d", s.Name, s.Hits(), rounds)
		}
		for _, p := range s.Paths() {
			if p != "/game/v1/status" {
				return fmt.Errorf("%s: path=%q, want /game/v1/status", s.Name, p)
			}
		}
	}
	return nil
}
