package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// APIVersion is reported by the index route.
const APIVersion = "1.0.0"

// HealthResponse is the liveness body.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Health godoc
// @Summary Liveness probe
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "OK", Message: "Server is running"})
}

// Index godoc
// @Summary List the available endpoints
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func Index(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "API is running",
		"version": APIVersion,
		"endpoints": map[string]interface{}{
			"auth": map[string]string{
				"register":      "POST /api/auth/register",
				"login":         "POST /api/auth/login",
				"logout":        "POST /api/auth/logout",
				"profile":       "GET /api/auth/me",
				"updateProfile": "PATCH /api/auth/update-profile",
			},
			"meals": map[string]string{
				"createMeal":  "POST /api/meals",
				"getAllMeals": "GET /api/meals/all",
				"getMealById": "GET /api/meals/:id",
				"updateMeal":  "PUT /api/meals/:id",
				"deleteMeal":  "DELETE /api/meals/:id",
				"summary":     "GET /api/meals/summary?year=YYYY",
			},
		},
	})
}
