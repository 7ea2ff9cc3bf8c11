package handlers

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
)

//go:embed openapi.yaml
var discoveryOpenAPI []byte

// Validator checks discovery requests against the embedded OpenAPI document.
type Validator struct {
	router  routers.Router
	options *openapi3filter.Options
}

// NewValidator loads and validates the embedded document and builds its router.
//
// Called from cmd/main; its Middleware is passed to RegisterHandlers.
func NewValidator(ctx context.Context) (*Validator, error) {
	doc, err := openapi3.NewLoader().LoadFromData(discoveryOpenAPI)
	if err != nil {
		return nil, fmt.Errorf("can't load discovery openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid discovery openapi document: %w", err)
	}
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("can't build openapi router: %w", err)
	}
	return &Validator{
		router: router,
		options: &openapi3filter.Options{
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
			MultiError:         true,
		},
	}, nil
}

// Middleware validates every request the document describes. A deregister url with raw slashes matches no
// document path; it is left to the handler's own checks.
func (v *Validator) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		route, pathParams, err := v.router.FindRoute(req)
		if errors.Is(err, routers.ErrPathNotFound) || errors.Is(err, routers.ErrMethodNotAllowed) {
			return next(c)
		}
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
		}
		err = openapi3filter.ValidateRequest(req.Context(), &openapi3filter.RequestValidationInput{
			Request:    req,
			PathParams: pathParams,
			Route:      route,
			Options:    v.options,
		})
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, describe(err)).SetInternal(firstRequestError(err))
		}
		return next(c)
	}
}

// describe joins the reasons of a MultiError into one line.
func describe(err error) string {
	var multi openapi3.MultiError
	if !errors.As(err, &multi) {
		return reason(err)
	}
	parts := make([]string, 0, len(multi))
	for _, e := range multi {
		parts = append(parts, reason(e))
	}
	return strings.Join(parts, "; ")
}

// reason prefers the schema violation ("property \"serviceUrl\" is missing") over the generic request reason.
func reason(err error) string {
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) && schemaErr.Reason != "" {
		return schemaErr.Reason
	}
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) && reqErr.Reason != "" {
		return reqErr.Reason
	}
	return err.Error()
}

// firstRequestError digs the first *openapi3filter.RequestError out of err so the error handler maps it to
// bad_parameter.
func firstRequestError(err error) error {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, e := range multi {
			var reqErr *openapi3filter.RequestError
			if errors.As(e, &reqErr) {
				return reqErr
			}
		}
	}
	return err
}
