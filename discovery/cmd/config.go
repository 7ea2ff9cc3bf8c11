package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/denis-svg/Crash-Game/discovery/adapters/myredis"
)

const (
	envHTTPPort        = "SERVICE_PORT_HTTP"
	envStoreBackend    = "STORE_BACKEND"
	envRedisAddr       = "REDIS_ADDR"
	envEtcdEndpoints   = "ETCD_ENDPOINTS"
	envEtcdPrefix      = "ETCD_PREFIX"
	envGatewayURL      = "GATEWAY_URL"
	envNotifyTimeoutMs = "NOTIFY_TIMEOUT_MS"
	envNotifyRPS       = "NOTIFY_RPS"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendEtcd   = "etcd"
)

type DiscoveryConfig struct {
	HTTPPort      int
	StoreBackend  string
	Redis         myredis.RedisConfig
	EtcdEndpoints []string
	EtcdPrefix    string
	GatewayURL    string
	NotifyTimeout time.Duration
	NotifyRPS     float64
}

// LoadConfig loads configuration from environment variables.
// SERVICE_PORT_HTTP is required; REDIS_ADDR is required for the redis backend and ETCD_ENDPOINTS for etcd.
func LoadConfig() (*DiscoveryConfig, error) {
	httpPortStr := strings.TrimSpace(os.Getenv(envHTTPPort))
	if httpPortStr == "" {
		return nil, fmt.Errorf("%s is required", envHTTPPort)
	}
	httpPort, err := strconv.Atoi(httpPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", envHTTPPort, err)
	}
	if httpPort <= 0 || httpPort > 65535 {
		return nil, fmt.Errorf("%s must be 1-65535, got %d", envHTTPPort, httpPort)
	}

	cfg := &DiscoveryConfig{
		HTTPPort:      httpPort,
		StoreBackend:  strings.ToLower(strings.TrimSpace(os.Getenv(envStoreBackend))),
		Redis:         myredis.RedisConfig{Addr: strings.TrimSpace(os.Getenv(envRedisAddr))},
		EtcdPrefix:    strings.TrimSpace(os.Getenv(envEtcdPrefix)),
		GatewayURL:    strings.TrimRight(strings.TrimSpace(os.Getenv(envGatewayURL)), "/"),
		NotifyTimeout: 2 * time.Second,
		NotifyRPS:     50,
	}
	if cfg.StoreBackend == "" {
		cfg.StoreBackend = BackendMemory
	}
	if cfg.EtcdPrefix == "" {
		cfg.EtcdPrefix = "/crash-game/services"
	}
	for _, ep := range strings.Split(os.Getenv(envEtcdEndpoints), ",") {
		if ep = strings.TrimSpace(ep); ep != "" {
			cfg.EtcdEndpoints = append(cfg.EtcdEndpoints, ep)
		}
	}

	switch cfg.StoreBackend {
	case BackendMemory:
	case BackendRedis:
		if cfg.Redis.Addr == "" {
			return nil, fmt.Errorf("%s is required when %s=%s", envRedisAddr, envStoreBackend, BackendRedis)
		}
	case BackendEtcd:
		if len(cfg.EtcdEndpoints) == 0 {
			return nil, fmt.Errorf("%s is required when %s=%s", envEtcdEndpoints, envStoreBackend, BackendEtcd)
		}
	default:
		return nil, fmt.Errorf("%s must be one of %s|%s|%s, got %q", envStoreBackend, BackendMemory, BackendRedis, BackendEtcd, cfg.StoreBackend)
	}

	if raw := strings.TrimSpace(os.Getenv(envNotifyTimeoutMs)); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms <= 0 {
			return nil, fmt.Errorf("%s must be a positive integer, got %q", envNotifyTimeoutMs, raw)
		}
		cfg.NotifyTimeout = time.Duration(ms) * time.Millisecond
	}
	if raw := strings.TrimSpace(os.Getenv(envNotifyRPS)); raw != "" {
		rps, err := strconv.ParseFloat(raw, 64)
		if err != nil || rps < 0 {
			return nil, fmt.Errorf("%s must be a non-negative number, got %q", envNotifyRPS, raw)
		}
		cfg.NotifyRPS = rps
	}
	return cfg, nil
}
