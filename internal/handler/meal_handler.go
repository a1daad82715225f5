package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"nutritrack/internal/auth"
	apperr "nutritrack/internal/errors"
	"nutritrack/internal/service"
)

// MealHandler handles meal endpoints. All routes sit behind the bearer guard.
type MealHandler struct {
	mealService service.MealService
}

// NewMealHandler creates a new meal handler.
func NewMealHandler(mealService service.MealService) *MealHandler {
	return &MealHandler{mealService: mealService}
}

// Create godoc
// @Summary Log a meal
// @Tags meals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.MealInput true "Meal"
// @Success 201 {object} Envelope{data=model.Meal}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /meals [post]
func (h *MealHandler) Create(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	var req service.MealInput
	if err := c.Bind(&req); err != nil {
		return errBadBody
	}

	meal, err := h.mealService.CreateMeal(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Meal created", meal)
}

// List godoc
// @Summary List the caller's meals, newest first
// @Tags meals
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Envelope{data=[]model.Meal}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /meals/all [get]
func (h *MealHandler) List(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	meals, err := h.mealService.ListMeals(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", meals)
}

// Get godoc
// @Summary Get one of the caller's meals
// @Tags meals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Meal ID"
// @Success 200 {object} Envelope{data=model.Meal}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /meals/{id} [get]
func (h *MealHandler) Get(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	meal, err := h.mealService.GetMeal(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", meal)
}

// Update godoc
// @Summary Change fields of one of the caller's meals
// @Tags meals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Meal ID"
// @Param request body service.MealUpdate true "Fields to change"
// @Success 200 {object} Envelope{data=model.Meal}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /meals/{id} [put]
func (h *MealHandler) Update(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	var req service.MealUpdate
	if err := c.Bind(&req); err != nil {
		return errBadBody
	}

	meal, err := h.mealService.UpdateMeal(c.Request().Context(), userID, c.Param("id"), req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Meal updated", meal)
}

// Delete godoc
// @Summary Delete one of the caller's meals
// @Tags meals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Meal ID"
// @Success 200 {object} Envelope
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /meals/{id} [delete]
func (h *MealHandler) Delete(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	if err := h.mealService.DeleteMeal(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Meal deleted", nil)
}

// Summary godoc
// @Summary Monthly totals of the caller's meals for one year
// @Tags meals
// @Produce json
// @Security BearerAuth
// @Param year query int false "Calendar year, defaults to the current one"
// @Success 200 {object} Envelope{data=model.MealSummary}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /meals/summary [get]
func (h *MealHandler) Summary(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	year := time.Now().UTC().Year()
	if raw := c.QueryParam("year"); raw != "" {
		year, err = strconv.Atoi(raw)
		if err != nil {
			return apperr.NewValidationError(apperr.FieldError{Field: "year", Message: "Year must be a number"})
		}
	}

	summary, err := h.mealService.Summary(c.Request().Context(), userID, year)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", summary)
}
