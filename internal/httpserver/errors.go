package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"shopper/internal/apperr"
	"shopper/internal/logging"
)

// httpError maps service errors to HTTP statuses. Anything outside the
// taxonomy is an opaque storage failure; its detail goes to the log, not the
// client.
func httpError(c echo.Context, err error) *echo.HTTPError {
	switch {
	case errors.Is(err, apperr.ErrInvalidArgument):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrUnauthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, apperr.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, apperr.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		logging.FromContext(c.Request().Context()).Error("storage_failure", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
