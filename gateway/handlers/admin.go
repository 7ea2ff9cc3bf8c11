package handlers

import (
	"net/http"
	"strings"

	"github.com/denis-svg/Crash-Game/gateway/domain"
	"github.com/denis-svg/Crash-Game/gateway/helpers"
	"github.com/denis-svg/Crash-Game/gateway/interfaces"
	"github.com/denis-svg/Crash-Game/gateway/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// CacheRequest is the body of POST and DELETE /gateway/cache, as sent by the discovery service.
type CacheRequest struct {
	ServiceType string `json:"serviceType"`
	ServiceURL  string `json:"serviceUrl"`
}

// AdminServer serves the registry administration endpoints and the aggregate status.
type AdminServer struct {
	registry interfaces.Registry
	status   interfaces.StatusChecker
	logger   log.Logger
}

// NewAdminServer creates a new AdminServer.
func NewAdminServer(registry interfaces.Registry, status interfaces.StatusChecker, logger log.Logger) *AdminServer {
	return &AdminServer{
		registry: helpers.NilPanic(registry, "handlers.admin.go: registry is required"),
		status:   helpers.NilPanic(status, "handlers.admin.go: status checker is required"),
		logger:   log.With(helpers.NilPanic(logger, "handlers.admin.go: logger is required"), "component", "admin_server"),
	}
}

// RegisterCache (POST /gateway/cache) appends the instance to its service type.
func (h *AdminServer) RegisterCache(ectx echo.Context) error {
	req, err := bindCacheRequest(ectx)
	if err != nil {
		return err
	}
	h.registry.Register(domain.ServiceType(req.ServiceType), domain.InstanceURL(req.ServiceURL))
	return ectx.String(http.StatusOK, "Service cache updated: "+req.ServiceURL)
}

// DeregisterCache (DELETE /gateway/cache) removes the first matching instance. Returns 404 when nothing matched.
func (h *AdminServer) DeregisterCache(ectx echo.Context) error {
	req, err := bindCacheRequest(ectx)
	if err != nil {
		return err
	}
	if !h.registry.Deregister(domain.ServiceType(req.ServiceType), domain.InstanceURL(req.ServiceURL)) {
		return service.NewEntityNotFoundError("Service not found: "+req.ServiceURL, nil)
	}
	return ectx.String(http.StatusOK, "Service deregistered: "+req.ServiceURL)
}

// ListCache (GET /gateway/cache) returns every service type with its instances in registry order.
func (h *AdminServer) ListCache(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, h.registry.Services())
}

// Status (GET /gateway/status) pings every instance; 200 when all are up, 500 otherwise.
func (h *AdminServer) Status(ectx echo.Context) error {
	report, ok := h.status.Check(ectx.Request().Context())
	if !ok {
		level.Warn(h.logger).Log("msg", "status check failed", "failed_service", report.FailedService)
		return ectx.JSON(http.StatusInternalServerError, report)
	}
	return ectx.JSON(http.StatusOK, report)
}

func bindCacheRequest(ectx echo.Context) (CacheRequest, error) {
	var req CacheRequest
	if err := ectx.Bind(&req); err != nil {
		return CacheRequest{}, service.NewBadParameterError("invalid request body", err)
	}
	req.ServiceType = strings.TrimSpace(req.ServiceType)
	req.ServiceURL = strings.TrimSpace(req.ServiceURL)
	if req.ServiceType == "" || req.ServiceURL == "" {
		return CacheRequest{}, service.NewBadParameterError("serviceType and serviceUrl are required", nil)
	}
	return req, nil
}
