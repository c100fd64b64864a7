package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/taskhub/internal/api/middleware"
	"github.com/99minutos/taskhub/internal/core/domain"
)

// actorFrom returns the user resolved by the Auth middleware. A missing
// actor means the route was mounted without Auth and is rejected with 401.
func actorFrom(c echo.Context) (*domain.User, error) {
	actor, ok := middleware.Actor(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return actor, nil
}
