package handlers

import (
	"errors"
	"net/http"

	"github.com/alimgiray/gscope-analytics/internal/middleware"
	"github.com/alimgiray/gscope-analytics/internal/services"
	"github.com/alimgiray/gscope-analytics/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Error codes returned in the "code" field of error responses
const (
	CodeInvalidRequest      = "invalid_request"
	CodeInvalidDateFormat   = "invalid_date_format"
	CodeInvalidMetricType   = "invalid_metric_type"
	CodeUpstreamTimeout     = "upstream_timeout"
	CodeUpstreamTransport   = "upstream_transport_error"
	CodeUpstreamDataShape   = "upstream_data_shape_error"
	CodeInternalServerError = "internal_error"
)

// ErrInvalidRequest marks query parameters that failed binding
var ErrInvalidRequest = errors.New("invalid request")

// classifyError maps an error to its HTTP status and code. Anything not
// listed is a server error.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, CodeInvalidRequest
	case errors.Is(err, services.ErrInvalidDateFormat):
		return http.StatusBadRequest, CodeInvalidDateFormat
	case errors.Is(err, services.ErrInvalidMetricType):
		return http.StatusBadRequest, CodeInvalidMetricType
	case errors.Is(err, services.ErrUpstreamTimeout):
		return http.StatusGatewayTimeout, CodeUpstreamTimeout
	case errors.Is(err, services.ErrUpstreamTransport):
		return http.StatusBadGateway, CodeUpstreamTransport
	case errors.Is(err, services.ErrUpstreamDataShape):
		return http.StatusBadGateway, CodeUpstreamDataShape
	default:
		return http.StatusInternalServerError, CodeInternalServerError
	}
}

// respondError writes {"error": message, "code": code} with the mapped status
func respondError(c *gin.Context, err error) {
	status, code := classifyError(err)

	entry := logger.WithError(err).WithFields(logrus.Fields{
		"request_id": middleware.GetRequestID(c),
		"code":       code,
		"status":     status,
	})
	if status >= http.StatusInternalServerError {
		entry.Error("Analytics request failed")
	} else {
		entry.Warn("Analytics request rejected")
	}

	c.AbortWithStatusJSON(status, gin.H{
		"error": err.Error(),
		"code":  code,
	})
}
