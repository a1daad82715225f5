package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	apperr "nutritrack/internal/errors"
	"nutritrack/internal/model"
)

var phoneRegex = regexp.MustCompile(`^[+]?[1-9]\d{0,15}$`)

// dateLayouts are tried in order when parsing meal dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// labels are the human names used in generic messages.
var labels = map[string]string{
	"firstName":   "First name",
	"lastName":    "Last name",
	"email":       "Email",
	"password":    "Password",
	"phone":       "Phone",
	"bio":         "Bio",
	"position":    "Position",
	"country":     "Country name",
	"city":        "City name",
	"state":       "State name",
	"postalCode":  "Postal code",
	"taxId":       "Tax ID",
	"name":        "Meal name",
	"type":        "Meal type",
	"ingredients": "Ingredients",
	"calories":    "Calories",
	"protein":     "Protein",
	"carbs":       "Carbs",
	"fats":        "Fats",
	"notes":       "Notes",
	"date":        "Date",
}

// messages overrides the generic text for a field and tag pair.
var messages = map[string]string{
	"firstName.min":           "First name must be between 2 and 30 characters",
	"firstName.max":           "First name must be between 2 and 30 characters",
	"lastName.min":            "Last name must be between 2 and 30 characters",
	"lastName.max":            "Last name must be between 2 and 30 characters",
	"email.email":             "Please enter a valid email",
	"email.required":          "Please enter a valid email",
	"password.required":       "Password is required",
	"password.min":            "Password must be at least 6 characters",
	"password.strongpassword": "Password must contain at least one uppercase letter, one lowercase letter, and one number",
	"phone.phone":             "Please enter a valid phone number",
	"name.required":           "Meal name is required",
	"name.min":                "Meal name is required",
	"type.required":           "Invalid meal type",
	"type.mealtype":           "Invalid meal type",
	"ingredients.required":    "Ingredients are required",
	"ingredients.min":         "Ingredients are required",
	"calories.required":       "Calories must be a number",
	"calories.numeric":        "Calories must be a number",
	"date.required":           "Valid date is required",
	"date.isodate":            "Valid date is required",
}

// Validator checks tagged input structs and reports field errors keyed by
// their JSON name.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator with the custom rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("strongpassword", strongPassword)
	_ = v.RegisterValidation("phone", phone)
	_ = v.RegisterValidation("mealtype", mealType)
	_ = v.RegisterValidation("isodate", isoDate)

	return &Validator{v: v}
}

// Struct validates i and returns an *errors.ValidationError listing every
// failed rule, or nil.
func (cv *Validator) Struct(i interface{}) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate %T: %w", i, err)
	}

	fields := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperr.FieldError{
			Field:   fieldPath(fe),
			Message: message(fe),
		})
	}
	return apperr.NewValidationError(fields...)
}

// Validate implements echo.Validator interface.
func (cv *Validator) Validate(i interface{}) error {
	return cv.Struct(i)
}

// ParseDate parses the date formats accepted by the isodate rule.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// fieldPath drops the struct name from the namespace, so nested fields come
// out as "address.city".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}

	label, ok := labels[fe.Field()]
	if !ok {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", label, fe.Param())
	case "numeric":
		return label + " must be a number"
	default:
		return label + " is invalid"
	}
}

// strongPassword requires an ASCII lowercase letter, uppercase letter and digit.
// Other characters are allowed but do not count.
func strongPassword(fl validator.FieldLevel) bool {
	var lower, upper, digit bool
	for _, r := range fl.Field().String() {
		switch {
		case 'a' <= r && r <= 'z':
			lower = true
		case 'A' <= r && r <= 'Z':
			upper = true
		case '0' <= r && r <= '9':
			digit = true
		}
	}
	return lower && upper && digit
}

// phone accepts an empty value so a profile update can clear the number.
func phone(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || phoneRegex.MatchString(s)
}

func mealType(fl validator.FieldLevel) bool {
	return model.MealType(fl.Field().String()).Valid()
}

func isoDate(fl validator.FieldLevel) bool {
	_, err := ParseDate(fl.Field().String())
	return err == nil
}
