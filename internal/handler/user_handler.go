package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"nutritrack/internal/auth"
	"nutritrack/internal/service"
)

// UserHandler serves the signed in user's profile.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Me godoc
// @Summary Get the current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Envelope{data=model.PublicUser}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	user, err := h.svc.GetCurrentUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", user.Public())
}

// UpdateProfile godoc
// @Summary Update profile fields of the current user
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.ProfileUpdate true "Fields to change"
// @Success 200 {object} Envelope{data=model.PublicUser}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/update-profile [patch]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	var req service.ProfileUpdate
	if err := c.Bind(&req); err != nil {
		return errBadBody
	}

	user, err := h.svc.UpdateProfile(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Profile updated successfully", user.Public())
}
