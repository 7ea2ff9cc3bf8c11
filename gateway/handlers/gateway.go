// Package handlers contains the echo handlers of the gateway: proxied routes, the admin cache API and the
// aggregate status.
package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/denis-svg/Crash-Game/gateway/domain"
	"github.com/denis-svg/Crash-Game/gateway/helpers"
	"github.com/denis-svg/Crash-Game/gateway/interfaces"
	"github.com/denis-svg/Crash-Game/gateway/service"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// BasePath prefixes every gateway route. The path suffix sent to a backend is the request path without it.
const BasePath = "/gateway"

// maxRequestBody caps forwarded request bodies; larger ones are answered 413 and never reach a backend.
const maxRequestBody = "1M"

// GatewayServer serves the route table by handing each request to the dispatcher.
type GatewayServer struct {
	dispatcher     interfaces.Dispatcher
	headers        interfaces.HeaderProcessor
	routes         []domain.Route
	admission      []echo.MiddlewareFunc
	rateLimit      echo.MiddlewareFunc
	trustForwarded bool
	logger         log.Logger
}

// GatewayOption configures optional parts of GatewayServer.
type GatewayOption func(*GatewayServer)

// WithAdmission adds middleware run ahead of every proxied route (global token bucket, in-flight cap).
func WithAdmission(mws ...echo.MiddlewareFunc) GatewayOption {
	return func(s *GatewayServer) {
		s.admission = append(s.admission, mws...)
	}
}

// WithRateLimit sets the per-client middleware applied to routes with RateLimited set.
func WithRateLimit(mw echo.MiddlewareFunc) GatewayOption {
	return func(s *GatewayServer) {
		s.rateLimit = mw
	}
}

// WithTrustForwarded makes the client address come from X-Forwarded-For when present.
func WithTrustForwarded(trust bool) GatewayOption {
	return func(s *GatewayServer) {
		s.trustForwarded = trust
	}
}

// NewGatewayServer creates the proxy handlers. Panics on nil dispatcher, header processor or logger.
func NewGatewayServer(dispatcher interfaces.Dispatcher, headers interfaces.HeaderProcessor, routes []domain.Route, logger log.Logger, opts ...GatewayOption) *GatewayServer {
	s := &GatewayServer{
		dispatcher: helpers.NilPanic(dispatcher, "handlers.gateway.go: dispatcher is required"),
		headers:    helpers.NilPanic(headers, "handlers.gateway.go: header processor is required"),
		routes:     routes,
		logger:     log.With(helpers.NilPanic(logger, "handlers.gateway.go: logger is required"), "component", "gateway_server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register mounts every route of the table on g.
func (s *GatewayServer) Register(g *echo.Group) {
	for _, route := range s.routes {
		mws := make([]echo.MiddlewareFunc, 0, len(s.admission)+2)
		mws = append(mws, s.admission...)
		if route.RateLimited && s.rateLimit != nil {
			mws = append(mws, s.rateLimit)
		}
		if route.ForwardBody {
			mws = append(mws, middleware.BodyLimit(maxRequestBody))
		}
		g.Add(route.Method, route.Path, s.proxy(route), mws...)
	}
}

func (s *GatewayServer) proxy(route domain.Route) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		ctx := helpers.ContextWithClientIP(req.Context(), helpers.ClientIdentity(req, s.trustForwarded))

		var body []byte
		if route.ForwardBody && req.Body != nil {
			b, err := io.ReadAll(req.Body)
			if err != nil {
				var he *echo.HTTPError
				if errors.As(err, &he) {
					return he
				}
				return service.NewBadParameterError("can't read request body", err)
			}
			body = b
		}

		headers, err := s.headers.Process(ctx, req.Header, route)
		if err != nil {
			return err
		}

		resp, err := s.dispatcher.Forward(ctx, domain.ForwardRequest{
			Service:    route.Service,
			Method:     route.Method,
			PathSuffix: strings.TrimPrefix(req.URL.EscapedPath(), BasePath),
			RawQuery:   req.URL.RawQuery,
			Header:     headers,
			Body:       body,
		})
		if err != nil {
			return fmt.Errorf("forward %s %s: %w", route.Method, route.Path, err)
		}
		return writeBackendResponse(c, resp)
	}
}

// writeBackendResponse copies status, Content-Type and body of a backend answer to the client.
func writeBackendResponse(c echo.Context, resp domain.BackendResponse) error {
	if ct := resp.Header.Get(echo.HeaderContentType); ct != "" {
		return c.Blob(resp.StatusCode, ct, resp.Body)
	}
	c.Response().WriteHeader(resp.StatusCode)
	if len(resp.Body) == 0 || c.Request().Method == http.MethodHead {
		return nil
	}
	_, err := c.Response().Write(resp.Body)
	return err
}

// RegisterHandlers mounts the admin API and the route table under BasePath. adminMiddleware (the OpenAPI
// request validator) only wraps the admin endpoints.
func RegisterHandlers(e *echo.Echo, gateway *GatewayServer, admin *AdminServer, adminMiddleware ...echo.MiddlewareFunc) {
	g := e.Group(BasePath)
	g.POST("/cache", admin.RegisterCache, adminMiddleware...)
	g.DELETE("/cache", admin.DeregisterCache, adminMiddleware...)
	g.GET("/cache", admin.ListCache, adminMiddleware...)
	g.GET("/status", admin.Status, adminMiddleware...)
	gateway.Register(g)
}
