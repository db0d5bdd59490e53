package handlers

import (
	"errors"
	"net/http"

	"github.com/linkup-app/feed-engine/internal/engine"
	"github.com/linkup-app/feed-engine/internal/middleware"
	"github.com/linkup-app/feed-engine/internal/models"
	"github.com/labstack/echo/v4"
)

// getActor returns the acting user stored by the auth middleware, or nil.
func getActor(c echo.Context) *models.UserCompact {
	actor, _ := c.Get(middleware.ActorKey).(*models.UserCompact)
	return actor
}

// engineError maps an engine failure to an HTTP error. Engine failures are
// result values, never faults; every one of them leaves the session usable.
func engineError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, engine.ErrNotAuthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, engine.ErrEmptyComment):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, engine.ErrToggleInFlight):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
