package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/denis-svg/Crash-Game/gateway/domain"

	"gopkg.in/yaml.v3"
)

// Env variable names.
const (
	envHTTPPort           = "SERVICE_PORT_HTTP"
	envConfigPath         = "CONFIG_PATH"
	envConnectTimeoutMs   = "CONNECT_TIMEOUT_MS"
	envReadTimeoutMs      = "READ_TIMEOUT_MS"
	envRetryCount         = "RETRY_COUNT"
	envRetryBackoffMs     = "RETRY_BACKOFF_MS"
	envRateLimitCount     = "RATE_LIMIT_COUNT"
	envRateLimitWindowMs  = "RATE_LIMIT_WINDOW_MS"
	envRateLimitSweepMs   = "RATE_LIMIT_SWEEP_MS"
	envRateLimitTrustXFF  = "RATE_LIMIT_TRUST_FORWARDED"
	envMaxConcurrent      = "MAX_CONCURRENT_REQUESTS"
	envGlobalRPS          = "GLOBAL_RPS"
	envGlobalBurst        = "GLOBAL_BURST"
	envRedisAddr          = "REDIS_ADDR"
	envDiscoveryURL       = "DISCOVERY_URL"
	envEtcdEndpoints      = "ETCD_ENDPOINTS"
	envEtcdPrefix         = "ETCD_PREFIX"
	envGRPCHealthPort     = "GRPC_HEALTH_PORT"
	defaultEtcdPrefix     = "/crash-game/services"
	defaultConnectTimeout = 500
	defaultReadTimeout    = 5000
	defaultRetryCount     = 3
	defaultRateLimitCount = 5
	defaultRateWindow     = 10000
)

// Config holds the gateway configuration loaded by LoadConfig from environment variables and the optional
// YAML file at CONFIG_PATH.
type Config struct {
	HTTPPort       int
	Routes         []domain.Route
	Services       map[domain.ServiceType]domain.ServiceConfig
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	RetryCount     int
	RetryBackoff   time.Duration

	RateLimitCount          int
	RateLimitWindow         time.Duration
	RateLimitSweep          time.Duration
	RateLimitTrustForwarded bool

	MaxConcurrentRequests int
	GlobalRPS             float64
	GlobalBurst           int

	RedisAddr      string
	DiscoveryURL   string
	EtcdEndpoints  []string
	EtcdPrefix     string
	GRPCHealthPort int
}

// StatusPaths returns the status path of every configured service type.
func (c *Config) StatusPaths() map[domain.ServiceType]string {
	out := make(map[domain.ServiceType]string, len(c.Services))
	for t, s := range c.Services {
		out[t] = s.StatusPath
	}
	return out
}

// yamlConfig is the root struct for YAML unmarshalling.
type yamlConfig struct {
	Routes   []yamlRoute            `yaml:"routes"`
	Services map[string]yamlService `yaml:"services"`
}

type yamlRoute struct {
	Method      string `yaml:"method"`
	Path        string `yaml:"path"`
	Service     string `yaml:"service"`
	ForwardAuth bool   `yaml:"forward_auth"`
	ForwardBody bool   `yaml:"forward_body"`
	RateLimited bool   `yaml:"rate_limited"`
}

// yamlService is one service type: status_path for GET /gateway/status and a static instance seed.
type yamlService struct {
	StatusPath string   `yaml:"status_path"`
	Instances  []string `yaml:"instances"`
}

// loadYAMLConfig reads the YAML file at path and unmarshals it into yamlConfig.
//
// Called only from LoadConfig, with the absolute CONFIG_PATH.
func loadYAMLConfig(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out yamlConfig
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoadConfig builds the gateway config. SERVICE_PORT_HTTP is required; every other variable has a default.
// Without CONFIG_PATH the built-in route table and the two built-in service types are used. With it, a
// non-empty routes list replaces the built-in table and services entries are merged over the built-ins.
//
// Returns: (*Config, nil) on success; (nil, error) on an invalid variable, a YAML load or parse error, an
// invalid route table (*domain.RouteConfigError inside) or a route referring to an unknown service type.
//
// Called only from main at startup.
func LoadConfig() (*Config, error) {
	port, err := portFromEnv(envHTTPPort, true)
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		HTTPPort:   port,
		Routes:     domain.DefaultRoutes(),
		Services:   defaultServices(),
		EtcdPrefix: defaultEtcdPrefix,
	}

	if configPath := strings.TrimSpace(os.Getenv(envConfigPath)); configPath != "" {
		if !filepath.IsAbs(configPath) {
			abs, absErr := filepath.Abs(configPath)
			if absErr != nil {
				return nil, absErr
			}
			configPath = abs
		}
		raw, err := loadYAMLConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", configPath, err)
		}
		if err := applyYAML(cfg, raw); err != nil {
			return nil, fmt.Errorf("config %s: %w", configPath, err)
		}
	}
	if err := domain.ValidateRouteConfig(cfg.Routes); err != nil {
		return nil, err
	}
	for i, r := range cfg.Routes {
		if _, ok := cfg.Services[r.Service]; !ok {
			return nil, fmt.Errorf("route[%d] %s %s: unknown service %q", i, r.Method, r.Path, r.Service)
		}
	}

	ms := func(env string, def int, allowZero bool) (time.Duration, error) {
		v, err := intFromEnv(env, def, allowZero)
		return time.Duration(v) * time.Millisecond, err
	}
	if cfg.ConnectTimeout, err = ms(envConnectTimeoutMs, defaultConnectTimeout, false); err != nil {
		return nil, err
	}
	if cfg.ReadTimeout, err = ms(envReadTimeoutMs, defaultReadTimeout, false); err != nil {
		return nil, err
	}
	if cfg.RetryCount, err = intFromEnv(envRetryCount, defaultRetryCount, false); err != nil {
		return nil, err
	}
	if cfg.RetryBackoff, err = ms(envRetryBackoffMs, 0, true); err != nil {
		return nil, err
	}
	if cfg.RateLimitCount, err = intFromEnv(envRateLimitCount, defaultRateLimitCount, false); err != nil {
		return nil, err
	}
	if cfg.RateLimitWindow, err = ms(envRateLimitWindowMs, defaultRateWindow, false); err != nil {
		return nil, err
	}
	if cfg.RateLimitSweep, err = ms(envRateLimitSweepMs, int(cfg.RateLimitWindow/time.Millisecond), false); err != nil {
		return nil, err
	}
	if cfg.RateLimitTrustForwarded, err = boolFromEnv(envRateLimitTrustXFF); err != nil {
		return nil, err
	}
	if cfg.MaxConcurrentRequests, err = intFromEnv(envMaxConcurrent, 0, true); err != nil {
		return nil, err
	}
	if raw := strings.TrimSpace(os.Getenv(envGlobalRPS)); raw != "" {
		rps, err := strconv.ParseFloat(raw, 64)
		if err != nil || rps < 0 {
			return nil, fmt.Errorf("%s must be a non-negative number, got %q", envGlobalRPS, raw)
		}
		cfg.GlobalRPS = rps
	}
	if cfg.GlobalBurst, err = intFromEnv(envGlobalBurst, 0, true); err != nil {
		return nil, err
	}
	if cfg.GlobalRPS > 0 && cfg.GlobalBurst == 0 {
		cfg.GlobalBurst = int(cfg.GlobalRPS) + 1
	}

	cfg.RedisAddr = strings.TrimSpace(os.Getenv(envRedisAddr))
	cfg.DiscoveryURL = strings.TrimRight(strings.TrimSpace(os.Getenv(envDiscoveryURL)), "/")
	for _, ep := range strings.Split(os.Getenv(envEtcdEndpoints), ",") {
		if ep = strings.TrimSpace(ep); ep != "" {
			cfg.EtcdEndpoints = append(cfg.EtcdEndpoints, ep)
		}
	}
	if prefix := strings.TrimSpace(os.Getenv(envEtcdPrefix)); prefix != "" {
		cfg.EtcdPrefix = prefix
	}
	if cfg.GRPCHealthPort, err = portFromEnv(envGRPCHealthPort, false); err != nil {
		return nil, err
	}
	if cfg.GRPCHealthPort != 0 && cfg.GRPCHealthPort == cfg.HTTPPort {
		return nil, fmt.Errorf("%s must differ from %s", envGRPCHealthPort, envHTTPPort)
	}
	return cfg, nil
}

func defaultServices() map[domain.ServiceType]domain.ServiceConfig {
	return map[domain.ServiceType]domain.ServiceConfig{
		domain.ServiceAuth: {StatusPath: domain.DefaultStatusPath(domain.ServiceAuth)},
		domain.ServiceGame: {StatusPath: domain.DefaultStatusPath(domain.ServiceGame)},
	}
}

// applyYAML merges raw into cfg. Route methods are upper-cased; service names and instance URLs are trimmed.
func applyYAML(cfg *Config, raw *yamlConfig) error {
	names := make([]string, 0, len(raw.Services))
	for name := range raw.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		svc := raw.Services[name]
		t := domain.ServiceType(strings.TrimSpace(name))
		if t == "" {
			return fmt.Errorf("services: name must be non-empty")
		}
		statusPath := strings.TrimSpace(svc.StatusPath)
		if statusPath == "" {
			statusPath = domain.DefaultStatusPath(t)
		}
		if !strings.HasPrefix(statusPath, "/") {
			return fmt.Errorf("services.%s: status_path must start with /", t)
		}
		instances := make([]domain.InstanceURL, 0, len(svc.Instances))
		for _, inst := range svc.Instances {
			u := strings.TrimRight(strings.TrimSpace(inst), "/")
			if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
				return fmt.Errorf("services.%s: instance %q must be an http(s) URL", t, inst)
			}
			instances = append(instances, domain.InstanceURL(u))
		}
		cfg.Services[t] = domain.ServiceConfig{StatusPath: statusPath, Instances: instances}
	}

	if len(raw.Routes) == 0 {
		return nil
	}
	routes := make([]domain.Route, 0, len(raw.Routes))
	for _, r := range raw.Routes {
		method := strings.ToUpper(strings.TrimSpace(r.Method))
		if method == "" {
			method = http.MethodGet
		}
		routes = append(routes, domain.Route{
			Method:      method,
			Path:        strings.TrimSpace(r.Path),
			Service:     domain.ServiceType(strings.TrimSpace(r.Service)),
			ForwardAuth: r.ForwardAuth,
			ForwardBody: r.ForwardBody,
			RateLimited: r.RateLimited,
		})
	}
	cfg.Routes = routes
	return nil
}

// intFromEnv parses env as an int, returning def when unset. Zero is accepted only with allowZero.
func intFromEnv(env string, def int, allowZero bool) (int, error) {
	raw := strings.TrimSpace(os.Getenv(env))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 || (v == 0 && !allowZero) {
		if allowZero {
			return 0, fmt.Errorf("%s must be a non-negative integer, got %q", env, raw)
		}
		return 0, fmt.Errorf("%s must be a positive integer, got %q", env, raw)
	}
	return v, nil
}

func boolFromEnv(env string) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(env))
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", env, raw)
	}
	return v, nil
}

// portFromEnv returns 0 for an unset optional port.
func portFromEnv(env string, required bool) (int, error) {
	raw := strings.TrimSpace(os.Getenv(env))
	if raw == "" {
		if required {
			return 0, fmt.Errorf("%s must be a valid port (1-65535)", env)
		}
		return 0, nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid port (1-65535)", env)
	}
	if port <= 0 || port > 65535 {
		return 0, fmt.Errorf("%s must be 1-65535, got %d", env, port)
	}
	return port, nil
}
