package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/taskhub/internal/core/ports"
)

// AdminHandler serves the admin-only routes. RBAC gates the group.
type AdminHandler struct {
	users ports.UserService
}

func NewAdminHandler(users ports.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

// AssignManager handles PUT /admin/assign-manager.
//
// @Summary      Assign a manager
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      assignManagerRequest  true  "Assignment"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /admin/assign-manager [put]
func (h *AdminHandler) AssignManager(c echo.Context) error {
	var req assignManagerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.users.AssignManager(c.Request().Context(), req.UserUsername, req.ManagerUsername); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{
		Message: "Manager " + req.ManagerUsername + " assigned to " + req.UserUsername,
	})
}
