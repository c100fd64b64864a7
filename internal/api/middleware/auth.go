package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/taskhub/internal/core/domain"
	"github.com/99minutos/taskhub/internal/core/ports"
)

// actorKey is the echo context key holding the resolved *domain.User.
const actorKey = "actor"

// Auth resolves the bearer token into the acting user and stores it in the
// echo context. Resolution failures are passed to the error handler as-is.
func Auth(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			actor, err := sessions.Resolve(c.Request().Context(), strings.TrimSpace(parts[1]))
			if err != nil {
				return err
			}

			SetActor(c, actor)
			return next(c)
		}
	}
}

// SetActor stores the acting user in c.
func SetActor(c echo.Context, actor *domain.User) {
	c.Set(actorKey, actor)
}

// Actor returns the user stored by Auth, if any.
func Actor(c echo.Context) (*domain.User, bool) {
	actor, ok := c.Get(actorKey).(*domain.User)
	return actor, ok && actor != nil
}
