package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard-api/internal/api/middleware"
	"github.com/taskboard/taskboard-api/internal/core/domain"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

// UserHandler serves the caller's own profile updates and notification
// queries. The target user is always the authenticated principal; there is
// no cross-user access on these routes.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type updateEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type updatePasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

// UpdateEmail changes the caller's email address.
//
// @Summary      Update own email
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      updateEmailRequest  true  "New email address"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /users/me/email [patch]
func (h *UserHandler) UpdateEmail(c echo.Context) error {
	var req updateEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	principal := middleware.Principal(c)
	user, err := h.userService.UpdateEmail(c.Request().Context(), principal.UserID, req.Email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// UpdatePassword changes the caller's password.
//
// @Summary      Update own password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      updatePasswordRequest  true  "New password"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /users/me/password [patch]
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	principal := middleware.Principal(c)
	user, err := h.userService.UpdatePassword(c.Request().Context(), principal.UserID, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// Notifications lists the caller's stored notifications, newest first.
//
// @Summary      List own notifications
// @Tags         notifications
// @Produce      json
// @Success      200  {array}  domain.Notification
// @Router       /users/me/notifications [get]
func (h *UserHandler) Notifications(c echo.Context) error {
	principal := middleware.Principal(c)
	notifications, err := h.userService.Notifications(c.Request().Context(), principal.UserID)
	if err != nil {
		return err
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}

	return c.JSON(http.StatusOK, notifications)
}

// Notification fetches one notification and marks it read.
//
// @Summary      Read one notification
// @Tags         notifications
// @Produce      json
// @Param        id   path      string  true  "Notification ID"
// @Success      200  {object}  domain.Notification
// @Failure      404  {object}  map[string]string
// @Router       /users/me/notifications/{id} [get]
func (h *UserHandler) Notification(c echo.Context) error {
	principal := middleware.Principal(c)
	notification, err := h.userService.Notification(c.Request().Context(), principal.UserID, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, notification)
}
