// Package handlers contains http handlers for the discovery service.
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/denis-svg/Crash-Game/discovery/domain"
	"github.com/denis-svg/Crash-Game/discovery/interfaces"
	"github.com/denis-svg/Crash-Game/discovery/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// HTTPServer implements ServerInterface.
type HTTPServer struct {
	store         interfaces.Store
	notifier      interfaces.GatewayNotifier
	notifyTimeout time.Duration
	logger        log.Logger
}

// NewHTTPServer creates a new HTTPServer. notifier may be nil, which turns gateway notifications off.
// notifyTimeout bounds one notification; 0 leaves it to the notifier's client.
func NewHTTPServer(store interfaces.Store, notifier interfaces.GatewayNotifier, notifyTimeout time.Duration, logger log.Logger) *HTTPServer {
	return &HTTPServer{
		store:         service.NilPanic(store, "handlers.http.go: store is required"),
		notifier:      notifier,
		notifyTimeout: notifyTimeout,
		logger:        log.With(service.NilPanic(logger, "handlers.http.go: logger is required"), "component", "http_server"),
	}
}

// RegisterService (POST /discovery/register) stores the registration and tells the gateway.
// Returns 200 "Service registered: <url>", 400 on a bad body, 500 on a store error.
func (h *HTTPServer) RegisterService(ectx echo.Context) error {
	var req RegisterRequest
	if err := ectx.Bind(&req); err != nil {
		return service.NewBadParameterError("invalid request body", err)
	}
	reg, err := fromRegisterRequest(req)
	if err != nil {
		return fmt.Errorf("registerService failed to convert request, err: %w", err)
	}

	ctx := ectx.Request().Context()
	if err := h.store.Register(ctx, reg); err != nil {
		return fmt.Errorf("registerService failed to store registration, err: %w", err)
	}
	level.Info(h.logger).Log("msg", "service registered", "service", reg.ServiceType, "url", reg.ServiceURL)
	h.notify(ctx, domain.ActionRegister, reg)

	return ectx.String(http.StatusOK, "Service registered: "+reg.ServiceURL)
}

// DeregisterService (DELETE /discovery/deregister/{serviceType}/{serviceUrl}) removes every matching entry.
// The gateway is told only when the service type is known. Answers 200 either way.
func (h *HTTPServer) DeregisterService(ectx echo.Context, serviceType string, serviceURL string) error {
	reg, err := fromDeregisterParams(serviceType, serviceURL)
	if err != nil {
		return fmt.Errorf("deregisterService failed to convert params, err: %w", err)
	}

	ctx := ectx.Request().Context()
	known, err := h.store.Deregister(ctx, reg)
	if err != nil {
		return fmt.Errorf("deregisterService failed to delete registration, err: %w", err)
	}
	if known {
		level.Info(h.logger).Log("msg", "service deregistered", "service", reg.ServiceType, "url", reg.ServiceURL)
		h.notify(ctx, domain.ActionDeregister, reg)
	}

	return ectx.String(http.StatusOK, "Service deregistered: "+reg.ServiceURL)
}

// GetServices (GET /discovery/services) returns every service type with its urls.
func (h *HTTPServer) GetServices(ectx echo.Context) error {
	services, err := h.store.Services(ectx.Request().Context())
	if err != nil {
		return fmt.Errorf("getServices failed to list registrations, err: %w", err)
	}
	return ectx.JSON(http.StatusOK, toServicesResponse(services))
}

// notify is best-effort: a failure is logged and never reaches the client. It is detached from the request
// context so a client that disconnects right after the answer does not cancel the notification.
func (h *HTTPServer) notify(ctx context.Context, action domain.NotifyAction, reg domain.Registration) {
	if h.notifier == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	if h.notifyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.notifyTimeout)
		defer cancel()
	}
	if err := h.notifier.Notify(ctx, action, reg); err != nil {
		level.Warn(h.logger).Log("msg", "failed to notify gateway", "action", action, "service", reg.ServiceType, "url", reg.ServiceURL, "err", err)
	}
}
