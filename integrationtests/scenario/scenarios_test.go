package scenario_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/denis-svg/Crash-Game/gateway/adapters"
	"github.com/denis-svg/Crash-Game/gateway/domain"
	"github.com/denis-svg/Crash-Game/gateway/handlers"
	"github.com/denis-svg/Crash-Game/gateway/helpers"
	"github.com/denis-svg/Crash-Game/gateway/interfaces"
	"github.com/denis-svg/Crash-Game/gateway/service"
	"github.com/denis-svg/Crash-Game/integrationtests/scenario"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testRetries   = 3
	testRateLimit = 5
)

// startGateway runs the real gateway stack in process and returns its URL and registry.
func startGateway(t *testing.T) (string, interfaces.Registry) {
	t.Helper()
	logger := log.NewNopLogger()

	registry := service.NewRegistry(logger)
	sender := adapters.BackendHTTP(adapters.NewBackendHTTPClient(500*time.Millisecond, 5*time.Second))
	dispatcher := service.NewDispatcher(service.NewRoundRobinSelector(registry), registry, sender, logger, testRetries, 6*time.Second, 0)
	limiter := service.NewFixedWindowLimiter(testRateLimit, 10*time.Second, service.NewTimeProvider(time.Now), logger)

	gateway := handlers.NewGatewayServer(dispatcher,
		helpers.NewHeaderProcessorChain(helpers.NewForwardedForProcessor(false), helpers.NewRouteHeaderFilter()),
		domain.DefaultRoutes(), logger,
		handlers.WithRateLimit(handlers.RateLimit(limiter, nil, false, logger)),
	)
	admin := handlers.NewAdminServer(registry, service.NewStatusReporter(registry, sender, nil, logger), logger)

	doc, err := handlers.LoadAdminSpec(context.Background())
	require.NoError(t, err)
	validator, err := handlers.RequestValidator(doc)
	require.NoError(t, err)

	e := echo.New()
	service.RegisterErrorHandler(e, logger)
	handlers.RegisterHandlers(e, gateway, admin, validator)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv.URL, registry
}

func TestScenariosAgainstGateway(t *testing.T) {
	original := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(original.Close)

	for _, name := range scenario.Names() {
		t.Run(name, func(t *testing.T) {
			gatewayURL, registry := startGateway(t)
			registry.Register(domain.ServiceGame, domain.InstanceURL(original.URL))
			registry.Register(domain.ServiceAuth, domain.InstanceURL(original.URL))

			cfg := &scenario.Config{
				GatewayURL: gatewayURL,
				StubHost:   "127.0.0.1",
				StubBind:   "127.0.0.1",
				Retries:    testRetries,
				RateLimit:  testRateLimit,
			}
			require.NoError(t, scenario.Run(name, context.Background(), cfg))

			assert.Equal(t, []domain.InstanceURL{domain.InstanceURL(original.URL)}, registry.Snapshot(domain.ServiceGame))
			assert.Equal(t, []domain.InstanceURL{domain.InstanceURL(original.URL)}, registry.Snapshot(domain.ServiceAuth))
		})
	}
}

func TestScenarioFailsOnWrongRetryCount(t *testing.T) {
	gatewayURL, _ := startGateway(t)
	cfg := &scenario.Config{GatewayURL: gatewayURL, StubHost: "127.0.0.1", StubBind: "127.0.0.1", Retries: testRetries + 1}

	err := scenario.Run("all_instances_down", context.Background(), cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "hits=3, want 4")
}

func TestScenarioFailsWhenGatewayIsDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := scenario.Run("round_robin", context.Background(), &scenario.Config{GatewayURL: url, StubBind: "127.0.0.1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "isolate")
}
