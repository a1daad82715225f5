package service

import (
	"bytes"
	"encoding/json"
	"strings"

	"nutritrack/internal/model"
)

// Validator checks tagged input structs.
type Validator interface {
	Struct(i interface{}) error
}

// Number holds a calorie value as submitted. It accepts both JSON numbers and
// numeric strings so the numeric rule can report bad input instead of the
// decoder.
type Number string

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*n = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = Number(strings.TrimSpace(s))
	default:
		*n = Number(b)
	}
	return nil
}

// RegisterInput is the registration form.
type RegisterInput struct {
	FirstName string `json:"firstName" form:"firstName" validate:"required,min=2,max=30"`
	LastName  string `json:"lastName" form:"lastName" validate:"required,min=2,max=30"`
	Email     string `json:"email" form:"email" validate:"required,email"`
	Password  string `json:"password" form:"password" validate:"required,min=6,strongpassword"`
	Phone     string `json:"phone" form:"phone" validate:"omitempty,phone"`
	Bio       string `json:"bio" form:"bio" validate:"max=500"`
	Position  string `json:"position" form:"position" validate:"max=100"`
}

func (in *RegisterInput) normalize() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = normalizeEmail(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Bio = strings.TrimSpace(in.Bio)
	in.Position = strings.TrimSpace(in.Position)
}

// LoginInput is the login payload.
type LoginInput struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// ProfileUpdate carries the profile fields a client chose to change. Nil
// fields are left untouched.
type ProfileUpdate struct {
	FirstName *string        `json:"firstName" validate:"omitnil,min=2,max=30"`
	LastName  *string        `json:"lastName" validate:"omitnil,min=2,max=30"`
	Phone     *string        `json:"phone" validate:"omitnil,phone"`
	Bio       *string        `json:"bio" validate:"omitnil,max=500"`
	Position  *string        `json:"position" validate:"omitnil,max=100"`
	Address   *AddressUpdate `json:"address"`
}

// AddressUpdate is the address part of a ProfileUpdate.
type AddressUpdate struct {
	Country    *string `json:"country" validate:"omitnil,max=50"`
	City       *string `json:"city" validate:"omitnil,max=50"`
	State      *string `json:"state" validate:"omitnil,max=50"`
	PostalCode *string `json:"postalCode" validate:"omitnil,max=20"`
	TaxID      *string `json:"taxId" validate:"omitnil,max=50"`
}

// changes trims the supplied fields and lists them by profile field.
func (in *ProfileUpdate) changes() model.ProfileChanges {
	out := model.ProfileChanges{}
	put := func(field model.ProfileField, v *string) {
		if v != nil {
			*v = strings.TrimSpace(*v)
			out[field] = *v
		}
	}
	put(model.FieldFirstName, in.FirstName)
	put(model.FieldLastName, in.LastName)
	put(model.FieldPhone, in.Phone)
	put(model.FieldBio, in.Bio)
	put(model.FieldPosition, in.Position)
	if a := in.Address; a != nil {
		put(model.FieldCountry, a.Country)
		put(model.FieldCity, a.City)
		put(model.FieldState, a.State)
		put(model.FieldPostalCode, a.PostalCode)
		put(model.FieldTaxID, a.TaxID)
	}
	return out
}

// MealInput is the payload for a new meal.
type MealInput struct {
	Name        string         `json:"name" validate:"required"`
	Type        model.MealType `json:"type" validate:"required,mealtype"`
	Ingredients string         `json:"ingredients" validate:"required"`
	Calories    Number         `json:"calories" validate:"required,numeric"`
	Protein     string         `json:"protein" validate:"max=20"`
	Carbs       string         `json:"carbs" validate:"max=20"`
	Fats        string         `json:"fats" validate:"max=20"`
	Notes       string         `json:"notes" validate:"max=1000"`
	Date        string         `json:"date" validate:"required,isodate"`
}

func (in *MealInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Type = model.MealType(strings.TrimSpace(string(in.Type)))
	in.Ingredients = strings.TrimSpace(in.Ingredients)
	in.Protein = strings.TrimSpace(in.Protein)
	in.Carbs = strings.TrimSpace(in.Carbs)
	in.Fats = strings.TrimSpace(in.Fats)
	in.Notes = strings.TrimSpace(in.Notes)
	in.Date = strings.TrimSpace(in.Date)
}

// MealUpdate carries the meal fields a client chose to change. Nil fields are
// left untouched; supplied fields follow the MealInput rules.
type MealUpdate struct {
	Name        *string         `json:"name" validate:"omitnil,min=1"`
	Type        *model.MealType `json:"type" validate:"omitnil,mealtype"`
	Ingredients *string         `json:"ingredients" validate:"omitnil,min=1"`
	Calories    *Number         `json:"calories" validate:"omitnil,numeric"`
	Protein     *string         `json:"protein" validate:"omitnil,max=20"`
	Carbs       *string         `json:"carbs" validate:"omitnil,max=20"`
	Fats        *string         `json:"fats" validate:"omitnil,max=20"`
	Notes       *string         `json:"notes" validate:"omitnil,max=1000"`
	Date        *string         `json:"date" validate:"omitnil,isodate"`
}

func (in *MealUpdate) normalize() {
	for _, p := range []*string{in.Name, in.Ingredients, in.Protein, in.Carbs, in.Fats, in.Notes, in.Date} {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
	if in.Type != nil {
		*in.Type = model.MealType(strings.TrimSpace(string(*in.Type)))
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func macroOrDefault(v string) string {
	if v == "" {
		return model.DefaultMacro
	}
	return v
}
