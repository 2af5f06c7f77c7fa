package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/outdoor-rental/internal/apperrors"
	"github.com/iliyamo/outdoor-rental/internal/logging"
)

// statusOf maps an error kind to its HTTP status.
func statusOf(t apperrors.ErrorType) int {
	switch t {
	case apperrors.ErrorTypeValidation:
		return http.StatusBadRequest
	case apperrors.ErrorTypeNotFound:
		return http.StatusNotFound
	case apperrors.ErrorTypeConflict:
		return http.StatusConflict
	case apperrors.ErrorTypeUnauthorized:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// respondError writes err as {"error": message[, "details": ...]}. Errors
// without a kind are logged and answered with a generic 500.
func respondError(c echo.Context, err error) error {
	var ae *apperrors.AppError
	if !errors.As(err, &ae) {
		logging.FromContext(c.Request().Context()).Error().Err(err).Msg("unclassified error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	status := statusOf(ae.Type)
	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request().Context()).Error().Err(err).Msg(ae.Message)
	}
	body := echo.Map{"error": ae.Message}
	if ae.Details != nil {
		body["details"] = ae.Details
	}
	return c.JSON(status, body)
}

// HTTPErrorHandler is installed as echo's error handler so errors returned
// from handlers and middleware share one JSON shape.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg, ok := he.Message.(string)
		if !ok {
			msg = http.StatusText(he.Code)
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(he.Code)
			return
		}
		_ = c.JSON(he.Code, echo.Map{"error": msg})
		return
	}
	_ = respondError(c, err)
}
