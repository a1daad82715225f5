package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"nutritrack/internal/model"
)

// MealRepository defines meal persistence operations. Every lookup is scoped
// to the owning user.
type MealRepository interface {
	Create(ctx context.Context, meal *model.Meal) error
	FindByIDForOwner(ctx context.Context, ownerID, id string) (*model.Meal, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Meal, error)
	ListByOwnerBetween(ctx context.Context, ownerID string, from, to time.Time) ([]model.Meal, error)
	Update(ctx context.Context, meal *model.Meal) error
	DeleteForOwner(ctx context.Context, ownerID, id string) error
}

// mealColumns are the columns rewritten on update.
var mealColumns = []string{
	"name", "type", "ingredients", "calories", "protein", "carbs", "fats", "notes", "date", "updated_at",
}

type mealRepository struct {
	db *gorm.DB
}

// NewMealRepository creates a new meal repository.
func NewMealRepository(db *gorm.DB) MealRepository {
	return &mealRepository{db: db}
}

// Create creates a new meal.
func (r *mealRepository) Create(ctx context.Context, meal *model.Meal) error {
	return translate(r.db.WithContext(ctx).Create(meal).Error)
}

// FindByIDForOwner finds a meal by ID owned by ownerID.
func (r *mealRepository) FindByIDForOwner(ctx context.Context, ownerID, id string) (*model.Meal, error) {
	var meal model.Meal
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&meal).Error; err != nil {
		return nil, translate(err)
	}
	return &meal, nil
}

// ListByOwner lists the owner's meals, newest date first.
func (r *mealRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Meal, error) {
	meals := []model.Meal{}
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("date DESC").
		Find(&meals).Error; err != nil {
		return nil, translate(err)
	}
	return meals, nil
}

// ListByOwnerBetween lists the owner's meals dated in [from, to).
func (r *mealRepository) ListByOwnerBetween(ctx context.Context, ownerID string, from, to time.Time) ([]model.Meal, error) {
	meals := []model.Meal{}
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", ownerID, from, to).
		Order("date DESC").
		Find(&meals).Error; err != nil {
		return nil, translate(err)
	}
	return meals, nil
}

// Update rewrites the mutable columns of an existing meal.
func (r *mealRepository) Update(ctx context.Context, meal *model.Meal) error {
	return translate(r.db.WithContext(ctx).
		Model(meal).
		Where("user_id = ?", meal.UserID).
		Select(mealColumns).
		Updates(meal).Error)
}

// DeleteForOwner deletes a meal owned by ownerID.
func (r *mealRepository) DeleteForOwner(ctx context.Context, ownerID, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&model.Meal{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
