package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	apperr "nutritrack/internal/errors"
	"nutritrack/internal/model"
	"nutritrack/internal/repository"
	"nutritrack/internal/validation"
)

// MealService manages the caller's meal log. Every operation is scoped to
// ownerID; meals of other users behave as if they did not exist.
type MealService interface {
	CreateMeal(ctx context.Context, ownerID string, in MealInput) (*model.Meal, error)
	ListMeals(ctx context.Context, ownerID string) ([]model.Meal, error)
	GetMeal(ctx context.Context, ownerID, id string) (*model.Meal, error)
	UpdateMeal(ctx context.Context, ownerID, id string, in MealUpdate) (*model.Meal, error)
	DeleteMeal(ctx context.Context, ownerID, id string) error
	Summary(ctx context.Context, ownerID string, year int) (*model.MealSummary, error)
}

type mealService struct {
	repo      repository.MealRepository
	validator Validator
}

// NewMealService creates a new meal service.
func NewMealService(repo repository.MealRepository, validator Validator) MealService {
	return &mealService{repo: repo, validator: validator}
}

func (s *mealService) CreateMeal(ctx context.Context, ownerID string, in MealInput) (*model.Meal, error) {
	in.normalize()
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	calories, err := parseCalories(in.Calories)
	if err != nil {
		return nil, err
	}
	date, err := validation.ParseDate(in.Date)
	if err != nil {
		return nil, invalidField("date", "Valid date is required")
	}

	meal := &model.Meal{
		ID:          model.NewID(),
		UserID:      ownerID,
		Name:        in.Name,
		Type:        in.Type,
		Ingredients: in.Ingredients,
		Calories:    calories,
		Protein:     macroOrDefault(in.Protein),
		Carbs:       macroOrDefault(in.Carbs),
		Fats:        macroOrDefault(in.Fats),
		Notes:       in.Notes,
		Date:        date.UTC(),
	}
	if err := s.repo.Create(ctx, meal); err != nil {
		return nil, fmt.Errorf("create meal: %w", err)
	}
	return meal, nil
}

// ListMeals returns the owner's meals, newest date first.
func (s *mealService) ListMeals(ctx context.Context, ownerID string) ([]model.Meal, error) {
	meals, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	if meals == nil {
		meals = []model.Meal{}
	}
	return meals, nil
}

func (s *mealService) GetMeal(ctx context.Context, ownerID, id string) (*model.Meal, error) {
	meal, err := s.repo.FindByIDForOwner(ctx, ownerID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.ErrMealNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find meal: %w", err)
	}
	return meal, nil
}

// UpdateMeal applies the supplied fields to an owned meal.
func (s *mealService) UpdateMeal(ctx context.Context, ownerID, id string, in MealUpdate) (*model.Meal, error) {
	in.normalize()
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	meal, err := s.GetMeal(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		meal.Name = *in.Name
	}
	if in.Type != nil {
		meal.Type = *in.Type
	}
	if in.Ingredients != nil {
		meal.Ingredients = *in.Ingredients
	}
	if in.Calories != nil {
		calories, err := parseCalories(*in.Calories)
		if err != nil {
			return nil, err
		}
		meal.Calories = calories
	}
	if in.Protein != nil {
		meal.Protein = macroOrDefault(*in.Protein)
	}
	if in.Carbs != nil {
		meal.Carbs = macroOrDefault(*in.Carbs)
	}
	if in.Fats != nil {
		meal.Fats = macroOrDefault(*in.Fats)
	}
	if in.Notes != nil {
		meal.Notes = *in.Notes
	}
	if in.Date != nil {
		date, err := validation.ParseDate(*in.Date)
		if err != nil {
			return nil, invalidField("date", "Valid date is required")
		}
		meal.Date = date.UTC()
	}

	if err := s.repo.Update(ctx, meal); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.ErrMealNotFound
		}
		return nil, fmt.Errorf("update meal: %w", err)
	}
	return meal, nil
}

func (s *mealService) DeleteMeal(ctx context.Context, ownerID, id string) error {
	err := s.repo.DeleteForOwner(ctx, ownerID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.ErrMealNotFound
	}
	if err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	return nil
}

// Summary aggregates the owner's meals of one calendar year (UTC).
func (s *mealService) Summary(ctx context.Context, ownerID string, year int) (*model.MealSummary, error) {
	if year < 1 || year > 9999 {
		return nil, invalidField("year", "Year must be between 1 and 9999")
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	meals, err := s.repo.ListByOwnerBetween(ctx, ownerID, from, from.AddDate(1, 0, 0))
	if err != nil {
		return nil, fmt.Errorf("list meals for summary: %w", err)
	}
	return model.Summarize(year, meals), nil
}

func parseCalories(n Number) (float64, error) {
	v, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return 0, invalidField("calories", "Calories must be a number")
	}
	return v, nil
}

func invalidField(field, message string) error {
	return apperr.NewValidationError(apperr.FieldError{Field: field, Message: message})
}
