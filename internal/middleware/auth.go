package middleware

import (
	"net/http"
	"strings"

	"github.com/linkup-app/feed-engine/internal/auth"
	"github.com/labstack/echo/v4"
)

// ActorKey is the echo context key the resolved acting user is stored under.
const ActorKey = "actor"

// AuthMiddleware creates an Echo middleware that resolves the acting user
// from a Bearer ID token and stores it in the request context.
func AuthMiddleware(provider auth.Provider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is missing")
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header must be in Bearer format")
			}

			actor, err := provider.ActorFromToken(c.Request().Context(), tokenParts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			c.Set(ActorKey, actor)
			return next(c)
		}
	}
}
