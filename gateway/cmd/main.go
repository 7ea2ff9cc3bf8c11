package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/denis-svg/Crash-Game/gateway/adapters"
	"github.com/denis-svg/Crash-Game/gateway/handlers"
	"github.com/denis-svg/Crash-Game/gateway/helpers"
	"github.com/denis-svg/Crash-Game/gateway/interfaces"
	"github.com/denis-svg/Crash-Game/gateway/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	clientv3 "go.etcd.io/etcd/client/v3"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	shutdownTimeout  = 5 * time.Second
	bootstrapTimeout = 10 * time.Second
	statsTTL         = 24 * time.Hour
	statsPrefix      = "ratelimit"
)

func main() {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)

	cfg, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "failed to load configuration", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var observers []interfaces.RegistryObserver
	var healthSrv *health.Server
	if cfg.GRPCHealthPort != 0 {
		healthSrv = health.NewServer()
		observers = append(observers, adapters.NewHealthReporter(healthSrv))
	}
	registry := service.NewRegistry(logger, observers...)
	seedRegistry(registry, cfg, logger)

	if cfg.DiscoveryURL != "" {
		discoverer := adapters.DiscovererHTTP(cfg.DiscoveryURL, &http.Client{Timeout: bootstrapTimeout})
		bootstrapRegistry(ctx, discoverer, registry, logger)
	}

	if len(cfg.EtcdEndpoints) > 0 {
		etcdClient, err := clientv3.New(clientv3.Config{
			Endpoints:   cfg.EtcdEndpoints,
			DialTimeout: cfg.ConnectTimeout,
		})
		if err != nil {
			level.Error(logger).Log("msg", "etcd client", "err", err)
			os.Exit(1)
		}
		defer etcdClient.Close()
		source := adapters.NewEtcdSource(etcdClient, cfg.EtcdPrefix, registry, logger)
		go func() {
			if err := source.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				level.Error(logger).Log("msg", "etcd mirror stopped", "err", err)
			}
		}()
	}

	sender := adapters.BackendHTTP(adapters.NewBackendHTTPClient(cfg.ConnectTimeout, cfg.ReadTimeout))
	dispatcher := service.NewDispatcher(
		service.NewRoundRobinSelector(registry),
		registry,
		sender,
		logger,
		cfg.RetryCount,
		cfg.ConnectTimeout+cfg.ReadTimeout,
		cfg.RetryBackoff,
	)

	timeProvider := service.NewTimeProvider(func() time.Time { return time.Now().UTC() })
	limiter := service.NewFixedWindowLimiter(cfg.RateLimitCount, cfg.RateLimitWindow, timeProvider, logger)
	go limiter.StartJanitor(ctx, cfg.RateLimitSweep)

	var stats interfaces.RateLimitStats
	if cfg.RedisAddr != "" {
		redisClient, err := adapters.NewRedisUniversalClient(cfg.RedisAddr)
		if err != nil {
			level.Error(logger).Log("msg", "redis client", "err", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		stats = adapters.RedisRateLimitStats(redisClient, statsPrefix, statsTTL)
	}

	var admission []echo.MiddlewareFunc
	if cfg.GlobalRPS > 0 {
		admission = append(admission, handlers.GlobalRateLimit(rate.NewLimiter(rate.Limit(cfg.GlobalRPS), cfg.GlobalBurst)))
	}
	if cfg.MaxConcurrentRequests > 0 {
		admission = append(admission, handlers.ConcurrencyLimit(cfg.MaxConcurrentRequests))
	}

	headerChain := helpers.NewHeaderProcessorChain(
		helpers.NewForwardedForProcessor(cfg.RateLimitTrustForwarded),
		helpers.NewRouteHeaderFilter(),
	)
	gateway := handlers.NewGatewayServer(dispatcher, headerChain, cfg.Routes, logger,
		handlers.WithAdmission(admission...),
		handlers.WithRateLimit(handlers.RateLimit(limiter, stats, cfg.RateLimitTrustForwarded, logger)),
		handlers.WithTrustForwarded(cfg.RateLimitTrustForwarded),
	)
	admin := handlers.NewAdminServer(registry, service.NewStatusReporter(registry, sender, cfg.StatusPaths(), logger), logger)

	adminSpec, err := handlers.LoadAdminSpec(ctx)
	if err != nil {
		level.Error(logger).Log("msg", "load admin openapi", "err", err)
		os.Exit(1)
	}
	validator, err := handlers.RequestValidator(adminSpec)
	if err != nil {
		level.Error(logger).Log("msg", "admin request validator", "err", err)
		os.Exit(1)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	service.RegisterErrorHandler(e, logger)
	handlers.RegisterHandlers(e, gateway, admin, validator)

	errCh := make(chan error, 2)
	go func() {
		level.Info(logger).Log("msg", "starting crash-game gateway", "port", cfg.HTTPPort, "routes", len(cfg.Routes))
		if err := e.Start(":" + strconv.Itoa(cfg.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var grpcSrv *grpc.Server
	if healthSrv != nil {
		lis, err := net.Listen("tcp", ":"+strconv.Itoa(cfg.GRPCHealthPort))
		if err != nil {
			level.Error(logger).Log("msg", "listen", "port", cfg.GRPCHealthPort, "err", err)
			os.Exit(1)
		}
		grpcSrv = grpc.NewServer()
		healthpb.RegisterHealthServer(grpcSrv, healthSrv)
		go func() {
			level.Info(logger).Log("msg", "starting grpc health", "port", cfg.GRPCHealthPort)
			if err := grpcSrv.Serve(lis); err != nil {
				errCh <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		level.Info(logger).Log("msg", "shutting down")
	case err := <-errCh:
		level.Error(logger).Log("msg", "serve", "err", err)
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if healthSrv != nil {
		healthSrv.Shutdown()
	}
	if err := e.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "http shutdown", "err", err)
	}
	if grpcSrv != nil {
		stopped := make(chan struct{})
		go func() {
			grpcSrv.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-shutdownCtx.Done():
			grpcSrv.Stop()
		}
	}
}

// seedRegistry registers the static instances of every configured service type, types in map order and
// instances in file order.
func seedRegistry(registry interfaces.Registry, cfg *Config, logger log.Logger) {
	for t, svc := range cfg.Services {
		for _, u := range svc.Instances {
			registry.Register(t, u)
		}
		if len(svc.Instances) > 0 {
			level.Info(logger).Log("msg", "seeded instances", "service", t, "count", len(svc.Instances))
		}
	}
}

// bootstrapRegistry copies every registration known to the discovery service into registry. A failure is
// logged and ignored: the gateway starts with whatever it already has and waits for cache updates.
func bootstrapRegistry(ctx context.Context, discoverer interfaces.Discoverer, registry interfaces.Registry, logger log.Logger) {
	ctx, cancel := context.WithTimeout(ctx, bootstrapTimeout)
	defer cancel()
	services, err := discoverer.GetServices(ctx)
	if err != nil {
		level.Warn(logger).Log("msg", "registry bootstrap failed", "err", err)
		return
	}
	total := 0
	for t, urls := range services {
		for _, u := range urls {
			registry.Register(t, u)
			total++
		}
	}
	level.Info(logger).Log("msg", "registry bootstrapped", "services", len(services), "instances", total)
}
