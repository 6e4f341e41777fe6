package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/amirhossein-jamali/headshot-service/internal/domain/error"
	coreport "github.com/amirhossein-jamali/headshot-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/api/dto"
)

// httpStatus maps domain errors to HTTP status codes
func httpStatus(err error) int {
	switch {
	case errors.Is(err, errs.ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrAuthorization):
		return http.StatusForbidden
	case errs.IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrPaymentRequired):
		return http.StatusPaymentRequired
	case errors.Is(err, errs.ErrInvalidGenerationID),
		errors.Is(err, errs.ErrInvalidOptions),
		errors.Is(err, errs.ErrInvalidRequest),
		errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrRetryLimit):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrExternalService):
		return http.StatusBadGateway
	case errors.Is(err, errs.ErrDatabaseConnection), errors.Is(err, errs.ErrConnection):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error response for err. Server errors are logged
// and their details are not exposed.
func respondError(c *gin.Context, logger coreport.Logger, operation string, err error) {
	status := httpStatus(err)
	message := err.Error()

	if status >= http.StatusInternalServerError {
		fields := map[string]any{
			"operation": operation,
			"path":      c.Request.URL.Path,
			"error":     err.Error(),
		}
		if lf, ok := err.(interface{ LogFields() map[string]any }); ok {
			for k, v := range lf.LogFields() {
				fields[k] = v
			}
		}
		logger.Error("Request failed", fields)
		message = http.StatusText(status)
	}

	_ = c.Error(err)
	c.JSON(status, dto.NewErrorResponse(err, message))
}
