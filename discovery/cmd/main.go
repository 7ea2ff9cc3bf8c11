package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/denis-svg/Crash-Game/discovery/adapters/etcdstore"
	"github.com/denis-svg/Crash-Game/discovery/adapters/memory"
	"github.com/denis-svg/Crash-Game/discovery/adapters/myredis"
	"github.com/denis-svg/Crash-Game/discovery/adapters/notifier"
	"github.com/denis-svg/Crash-Game/discovery/handlers"
	"github.com/denis-svg/Crash-Game/discovery/interfaces"
	"github.com/denis-svg/Crash-Game/discovery/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	clientv3 "go.etcd.io/etcd/client/v3"
	"golang.org/x/time/rate"
)

func main() {
	// Initialize logger
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	level.Info(logger).Log("msg", "Starting discovery service")

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load configuration", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"service_port_http", config.HTTPPort,
		"store_backend", config.StoreBackend,
		"gateway_url", config.GatewayURL,
	)

	var store interfaces.Store
	switch config.StoreBackend {
	case BackendRedis:
		redisClient, err := myredis.NewRedisUniversalClient(config.Redis.Addr)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create Redis client", "err", err)
			os.Exit(1)
		}
		defer redisClient.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = redisClient.Ping(ctx).Err()
		cancel()
		if err != nil {
			level.Error(logger).Log("msg", "Failed to connect to Redis", "err", err)
			os.Exit(1)
		}
		level.Info(logger).Log("msg", "Connected to Redis")
		store = myredis.NewStore(redisClient, "")
	case BackendEtcd:
		etcdClient, err := clientv3.New(clientv3.Config{
			Endpoints:   config.EtcdEndpoints,
			DialTimeout: 5 * time.Second,
		})
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create etcd client", "err", err)
			os.Exit(1)
		}
		defer etcdClient.Close()
		level.Info(logger).Log("msg", "Using etcd store", "endpoints", fmt.Sprint(config.EtcdEndpoints), "prefix", config.EtcdPrefix)
		store = etcdstore.NewStore(etcdClient, config.EtcdPrefix)
	default:
		store = memory.NewStore()
	}

	var gatewayNotifier interfaces.GatewayNotifier
	if config.GatewayURL != "" {
		var limiter *rate.Limiter
		if config.NotifyRPS > 0 {
			limiter = rate.NewLimiter(rate.Limit(config.NotifyRPS), int(config.NotifyRPS)+1)
		}
		gatewayNotifier = notifier.GatewayHTTP(config.GatewayURL, &http.Client{Timeout: config.NotifyTimeout}, limiter)
	} else {
		level.Warn(logger).Log("msg", "GATEWAY_URL is empty, gateway notifications are off")
	}

	validator, err := handlers.NewValidator(context.Background())
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load OpenAPI document", "err", err)
		os.Exit(1)
	}

	// Create HTTP server (Echo)
	var e *echo.Echo
	{
		e = echo.New()
		e.HideBanner = true
		service.RegisterErrorHandler(e, logger)
		handlers.RegisterHandlers(e, handlers.NewHTTPServer(store, gatewayNotifier, config.NotifyTimeout, logger), validator.Middleware)
	}

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		addr := fmt.Sprintf(":%d", config.HTTPPort)
		level.Info(logger).Log("msg", "Starting HTTP server", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			level.Error(logger).Log("msg", "HTTP server error", "err", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	level.Info(logger).Log("msg", "Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "Error during server shutdown", "err", err)
	}

	level.Info(logger).Log("msg", "Server stopped")
}
