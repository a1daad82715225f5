package model

import (
	"time"

	"gorm.io/gorm"
)

// MealType classifies a meal within the day.
type MealType string

const (
	MealBreakfast MealType = "Breakfast"
	MealLunch     MealType = "Lunch"
	MealDinner    MealType = "Dinner"
	MealSnack     MealType = "Snack"
)

// MealTypes lists the accepted meal types in display order.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

// Valid reports whether t is one of MealTypes.
func (t MealType) Valid() bool {
	for _, mt := range MealTypes {
		if t == mt {
			return true
		}
	}
	return false
}

// DefaultMacro is stored for protein, carbs and fats when none is given.
const DefaultMacro = "0g"

// Meal is a single logged meal owned by one user.
type Meal struct {
	ID          string    `json:"id" bson:"_id" gorm:"type:char(36);primaryKey"`
	UserID      string    `json:"userId" bson:"userId" gorm:"type:char(36);not null;index"`
	Name        string    `json:"name" bson:"name" gorm:"size:255;not null"`
	Type        MealType  `json:"type" bson:"type" gorm:"type:varchar(20);not null"`
	Ingredients string    `json:"ingredients" bson:"ingredients" gorm:"type:text;not null"`
	Calories    float64   `json:"calories" bson:"calories" gorm:"not null"`
	Protein     string    `json:"protein" bson:"protein" gorm:"size:20;not null;default:'0g'"`
	Carbs       string    `json:"carbs" bson:"carbs" gorm:"size:20;not null;default:'0g'"`
	Fats        string    `json:"fats" bson:"fats" gorm:"size:20;not null;default:'0g'"`
	Notes       string    `json:"notes,omitempty" bson:"notes,omitempty" gorm:"type:text"`
	Date        time.Time `json:"date" bson:"date" gorm:"not null;index"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// BeforeCreate sets the ID before creating the record.
func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = NewID()
	}
	return nil
}
