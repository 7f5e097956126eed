package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

// AdminHandler serves admin-only user queries.
type AdminHandler struct {
	users ports.UserRepository
}

func NewAdminHandler(users ports.UserRepository) *AdminHandler {
	return &AdminHandler{users: users}
}

// ListUsers returns the contact projection of every user holding a role.
//
// @Summary      List users by role
// @Tags         admin
// @Produce      json
// @Param        role  query     string  true  "Role to filter by"
// @Success      200   {array}   domain.UserContact
// @Failure      400   {object}  map[string]string
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	role := c.QueryParam("role")
	if !domain.ValidRole(role) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown role")
	}

	contacts, err := h.users.FindByRole(c.Request().Context(), role)
	if err != nil {
		return err
	}
	if contacts == nil {
		contacts = []domain.UserContact{}
	}

	return c.JSON(http.StatusOK, contacts)
}
