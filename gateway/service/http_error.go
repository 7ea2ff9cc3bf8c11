package service

import (
	"errors"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// RegisterErrorHandler installs the gateway error handler on e.
func RegisterErrorHandler(e *echo.Echo, logger log.Logger) {
	e.HTTPErrorHandler = NewHTTPErrorHandler(NewErrorCodeToStatusCodeMaps(), logger).Handler
}

// NewErrorCodeToStatusCodeMaps creates an error code to http status mapping.
func NewErrorCodeToStatusCodeMaps() map[string]int {
	return map[string]int{
		ErrBadParameter:        http.StatusBadRequest,
		ErrEntityNotFound:      http.StatusNotFound,
		ErrInternalServerError: http.StatusInternalServerError,
		ErrServiceUnavailable:  http.StatusServiceUnavailable,
		ErrServicesDown:        http.StatusInternalServerError,
		ErrGatewayTimeout:      http.StatusGatewayTimeout,
		ErrOverloaded:          http.StatusServiceUnavailable,
	}
}

// HTTPErrorHandler writes GatewayError responses for errors returned by echo handlers.
type HTTPErrorHandler struct {
	errorCodeToHTTPStatusCodeMap map[string]int
	logger                       log.Logger
}

// NewHTTPErrorHandler creates a new instance of the HTTPErrorHandler.
func NewHTTPErrorHandler(errorCodeToStatusCodeMaps map[string]int, logger log.Logger) *HTTPErrorHandler {
	return &HTTPErrorHandler{
		errorCodeToHTTPStatusCodeMap: errorCodeToStatusCodeMaps,
		logger:                       log.With(logger, "component", "http_error_handler"),
	}
}

func (h *HTTPErrorHandler) getStatusCode(errorCode string) int {
	if status, ok := h.errorCodeToHTTPStatusCodeMap[errorCode]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Handler handles error returned by echo handlers. Echo errors keep their status; an openapi3filter.RequestError
// inside one becomes bad_parameter. Dispatch errors are translated by ToGatewayError.
func (h *HTTPErrorHandler) Handler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var statusCode int
	var gwErr *GatewayError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code := ErrInternalServerError
		if he.Code < http.StatusInternalServerError {
			code = ErrBadParameter
		}
		if he.Code == http.StatusNotFound || he.Code == http.StatusMethodNotAllowed {
			code = ErrEntityNotFound
		}
		var requestError *openapi3filter.RequestError
		if errors.As(he.Internal, &requestError) {
			code = ErrBadParameter
		}
		m, ok := he.Message.(string)
		if !ok {
			m = http.StatusText(he.Code)
		}
		gwErr = NewGatewayError(code, m, err)
		statusCode = he.Code
	} else {
		gwErr = ToGatewayError(err)
		if gwErr == nil {
			gwErr = NewGatewayError(ErrInternalServerError, "an internal server error has occurred", err)
		}
		statusCode = h.getStatusCode(gwErr.Code)
	}

	lvl := level.Warn
	if statusCode >= http.StatusInternalServerError {
		lvl = level.Error
	}
	lvl(h.logger).Log(
		"msg", "HTTP request error",
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
		"status", statusCode,
		"err", err,
	)

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(statusCode)
		return
	}
	_ = c.JSON(statusCode, ErrResponse{Error: gwErr})
}

// ErrResponse from server.
type ErrResponse struct {
	Error *GatewayError `json:"error,omitempty"`
}
