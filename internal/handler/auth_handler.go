package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"nutritrack/internal/auth"
	"nutritrack/internal/metrics"
	"nutritrack/internal/model"
	"nutritrack/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginResponse is the data of a successful login.
type LoginResponse struct {
	Token string            `json:"token"`
	User  *model.PublicUser `json:"user"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept mpfd
// @Produce json
// @Param firstName formData string true "First name"
// @Param lastName formData string true "Last name"
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Param phone formData string false "Phone"
// @Param bio formData string false "Bio"
// @Param position formData string false "Position"
// @Param profileImage formData file false "Profile image (jpeg, png, webp; max 2MB)"
// @Success 201 {object} Envelope{data=model.PublicUser}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req service.RegisterInput
	if err := c.Bind(&req); err != nil {
		return errBadBody
	}

	image, err := c.FormFile("profileImage")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
			return errBadBody
		}
		image = nil
	}

	user, err := h.authService.Register(c.Request().Context(), req, image)
	metrics.RecordAuth("register", err == nil)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "User registered successfully", user.Public())
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.LoginInput true "Login credentials"
// @Success 200 {object} Envelope{data=LoginResponse}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req service.LoginInput
	if err := c.Bind(&req); err != nil {
		return errBadBody
	}

	token, user, err := h.authService.Login(c.Request().Context(), req)
	metrics.RecordAuth("login", err == nil)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Login successful", LoginResponse{Token: token, User: user.Public()})
}

// Logout godoc
// @Summary Logout and revoke the current token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Envelope
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), auth.ClaimsFrom(c)); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Logged out successfully", nil)
}
