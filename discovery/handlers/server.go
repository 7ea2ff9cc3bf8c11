package handlers

import (
	"github.com/labstack/echo/v4"
)

// BasePath prefixes every discovery route.
const BasePath = "/discovery"

// ServerInterface lists the discovery API operations.
type ServerInterface interface {
	// RegisterService (POST /discovery/register)
	RegisterService(ctx echo.Context) error
	// DeregisterService (DELETE /discovery/deregister/{serviceType}/{serviceUrl})
	DeregisterService(ctx echo.Context, serviceType string, serviceURL string) error
	// GetServices (GET /discovery/services)
	GetServices(ctx echo.Context) error
}

// ServerInterfaceWrapper extracts path parameters before calling the ServerInterface method.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) RegisterService(ctx echo.Context) error {
	return w.Handler.RegisterService(ctx)
}

// DeregisterService reads serviceType and the rest of the path as serviceUrl, so both an escaped url
// (http%3A%2F%2Fauth%3A5000) and a raw one (http://auth:5000) reach the handler.
func (w *ServerInterfaceWrapper) DeregisterService(ctx echo.Context) error {
	serviceType, err := pathParam(ctx.Param("serviceType"))
	if err != nil {
		return err
	}
	serviceURL, err := pathParam(ctx.Param("*"))
	if err != nil {
		return err
	}
	return w.Handler.DeregisterService(ctx, serviceType, serviceURL)
}

func (w *ServerInterfaceWrapper) GetServices(ctx echo.Context) error {
	return w.Handler.GetServices(ctx)
}

// RegisterHandlers adds each server route to the EchoRouter. mws wrap every route (the OpenAPI validator).
func RegisterHandlers(router *echo.Echo, si ServerInterface, mws ...echo.MiddlewareFunc) {
	wrapper := ServerInterfaceWrapper{Handler: si}
	g := router.Group(BasePath)
	g.POST("/register", wrapper.RegisterService, mws...)
	g.DELETE("/deregister/:serviceType/*", wrapper.DeregisterService, mws...)
	g.GET("/services", wrapper.GetServices, mws...)
}
