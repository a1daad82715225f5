package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "nutritrack/internal/errors"
	"nutritrack/internal/model"
	"nutritrack/internal/validation"
)

func validMeal() MealInput {
	return MealInput{
		Name:        "Oatmeal",
		Type:        model.MealBreakfast,
		Ingredients: "oats, milk, honey",
		Calories:    "350",
		Date:        "2025-03-14",
	}
}

func newTestMealService() (MealService, *memoryMealRepository) {
	repo := newMemoryMealRepository()
	return NewMealService(repo, validation.New()), repo
}

func ptr[T any](v T) *T {
	return &v
}

func TestMealService_CreateMeal(t *testing.T) {
	svc, repo := newTestMealService()

	meal, err := svc.CreateMeal(context.Background(), "u1", validMeal())
	require.NoError(t, err)

	assert.NotEmpty(t, meal.ID)
	assert.Equal(t, "u1", meal.UserID)
	assert.Equal(t, 350.0, meal.Calories)
	assert.Equal(t, model.DefaultMacro, meal.Protein)
	assert.Equal(t, model.DefaultMacro, meal.Carbs)
	assert.Equal(t, model.DefaultMacro, meal.Fats)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), meal.Date)
	assert.Len(t, repo.meals, 1)
}

func TestMealService_CreateMeal_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*MealInput)
		field  string
	}{
		{"type not in enum", func(in *MealInput) { in.Type = "Brunch" }, "type"},
		{"calories not numeric", func(in *MealInput) { in.Calories = "abc" }, "calories"},
		{"missing name", func(in *MealInput) { in.Name = "  " }, "name"},
		{"missing ingredients", func(in *MealInput) { in.Ingredients = "" }, "ingredients"},
		{"invalid date", func(in *MealInput) { in.Date = "2025-13-40" }, "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestMealService()
			in := validMeal()
			tt.modify(&in)

			meal, err := svc.CreateMeal(context.Background(), "u1", in)

			var verr *apperr.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Nil(t, meal)
			assert.Equal(t, tt.field, verr.Fields[0].Field)
			assert.Empty(t, repo.meals, "nothing is persisted")
		})
	}
}

func TestMealInput_CaloriesFromJSON(t *testing.T) {
	tests := []struct {
		body    string
		wantErr bool
	}{
		{`{"calories": 450}`, false},
		{`{"calories": 450.5}`, false},
		{`{"calories": "450"}`, false},
		{`{"calories": "abc"}`, true},
		{`{"calories": true}`, true},
		{`{"calories": null}`, true},
	}

	svc, _ := newTestMealService()
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			in := validMeal()
			require.NoError(t, json.Unmarshal([]byte(tt.body), &in))

			_, err := svc.CreateMeal(context.Background(), "u1", in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMealService_ListMeals_IsolatesOwners(t *testing.T) {
	svc, _ := newTestMealService()
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		owner := "alice"
		if i%2 == 1 {
			owner = "bob"
		}
		in := validMeal()
		in.Name = fmt.Sprintf("meal %d", i)
		in.Date = fmt.Sprintf("2025-03-%02d", i+1)
		_, err := svc.CreateMeal(ctx, owner, in)
		require.NoError(t, err)
	}

	meals, err := svc.ListMeals(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, meals, 5)
	for i, m := range meals {
		assert.Equal(t, "alice", m.UserID)
		if i > 0 {
			assert.False(t, m.Date.After(meals[i-1].Date), "newest first")
		}
	}

	empty, err := svc.ListMeals(ctx, "carol")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestMealService_GetMeal(t *testing.T) {
	svc, _ := newTestMealService()
	ctx := context.Background()

	created, err := svc.CreateMeal(ctx, "alice", validMeal())
	require.NoError(t, err)

	got, err := svc.GetMeal(ctx, "alice", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)

	_, err = svc.GetMeal(ctx, "alice", "does-not-exist")
	assert.ErrorIs(t, err, apperr.ErrMealNotFound)

	_, err = svc.GetMeal(ctx, "bob", created.ID)
	assert.ErrorIs(t, err, apperr.ErrMealNotFound, "foreign meals are hidden")
}

func TestMealService_UpdateMeal_RoundTrip(t *testing.T) {
	svc, _ := newTestMealService()
	ctx := context.Background()

	created, err := svc.CreateMeal(ctx, "alice", validMeal())
	require.NoError(t, err)

	_, err = svc.UpdateMeal(ctx, "alice", created.ID, MealUpdate{Name: ptr("Overnight oats")})
	require.NoError(t, err)

	got, err := svc.GetMeal(ctx, "alice", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Overnight oats", got.Name)
	assert.Equal(t, created.Calories, got.Calories)
	assert.Equal(t, created.Type, got.Type)
}

func TestMealService_UpdateMeal_Errors(t *testing.T) {
	svc, _ := newTestMealService()
	ctx := context.Background()

	created, err := svc.CreateMeal(ctx, "alice", validMeal())
	require.NoError(t, err)

	tests := []struct {
		name    string
		owner   string
		id      string
		update  MealUpdate
		wantErr error
	}{
		{"missing meal", "alice", "nope", MealUpdate{Name: ptr("x")}, apperr.ErrMealNotFound},
		{"foreign meal", "bob", created.ID, MealUpdate{Name: ptr("x")}, apperr.ErrMealNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateMeal(ctx, tt.owner, tt.id, tt.update)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	invalid := []struct {
		name   string
		update MealUpdate
	}{
		{"bad type", MealUpdate{Type: ptr(model.MealType("Brunch"))}},
		{"bad calories", MealUpdate{Calories: ptr(Number("abc"))}},
		{"empty name", MealUpdate{Name: ptr("  ")}},
		{"bad date", MealUpdate{Date: ptr("someday")}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateMeal(ctx, "alice", created.ID, tt.update)
			var verr *apperr.ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}

	got, err := svc.GetMeal(ctx, "alice", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name, "failed updates change nothing")
}

func TestMealService_DeleteMeal_Twice(t *testing.T) {
	svc, _ := newTestMealService()
	ctx := context.Background()

	created, err := svc.CreateMeal(ctx, "alice", validMeal())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteMeal(ctx, "bob", created.ID), apperr.ErrMealNotFound)
	require.NoError(t, svc.DeleteMeal(ctx, "alice", created.ID))
	assert.ErrorIs(t, svc.DeleteMeal(ctx, "alice", created.ID), apperr.ErrMealNotFound)
}

func TestMealService_Summary(t *testing.T) {
	svc, _ := newTestMealService()
	ctx := context.Background()

	for _, in := range []MealInput{
		{Name: "a", Type: model.MealLunch, Ingredients: "x", Calories: "500", Date: "2025-01-10"},
		{Name: "b", Type: model.MealDinner, Ingredients: "x", Calories: "700", Date: "2025-01-20"},
		{Name: "c", Type: model.MealSnack, Ingredients: "x", Calories: "100", Date: "2025-06-01"},
		{Name: "d", Type: model.MealSnack, Ingredients: "x", Calories: "900", Date: "2024-12-31"},
	} {
		_, err := svc.CreateMeal(ctx, "alice", in)
		require.NoError(t, err)
	}

	sum, err := svc.Summary(ctx, "alice", 2025)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.TotalMeals)
	assert.Equal(t, 1300.0, sum.TotalCalories)
	assert.Equal(t, 433.0, sum.AverageCalories)
	assert.Equal(t, 2, sum.Months[0].Meals)
	assert.Equal(t, 1, sum.Months[0].ByType[model.MealLunch])
	assert.Equal(t, 1, sum.Months[5].ByType[model.MealSnack])

	_, err = svc.Summary(ctx, "alice", 0)
	var verr *apperr.ValidationError
	assert.ErrorAs(t, err, &verr)
}
