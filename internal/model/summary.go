package model

import "math"

// MonthSummary aggregates one calendar month of meals.
type MonthSummary struct {
	Month    int              `json:"month"`
	Meals    int              `json:"meals"`
	Calories float64          `json:"calories"`
	ByType   map[MealType]int `json:"byType"`
}

// MealSummary aggregates a year of meals month by month.
type MealSummary struct {
	Year            int            `json:"year"`
	Months          []MonthSummary `json:"months"`
	TotalMeals      int            `json:"totalMeals"`
	TotalCalories   float64        `json:"totalCalories"`
	AverageCalories float64        `json:"averageCaloriesPerMeal"`
}

// Summarize buckets meals by month of their date (UTC). Meals outside year
// are ignored.
func Summarize(year int, meals []Meal) *MealSummary {
	s := &MealSummary{Year: year, Months: make([]MonthSummary, 12)}
	for i := range s.Months {
		s.Months[i] = MonthSummary{Month: i + 1, ByType: make(map[MealType]int, len(MealTypes))}
		for _, t := range MealTypes {
			s.Months[i].ByType[t] = 0
		}
	}

	for _, m := range meals {
		d := m.Date.UTC()
		if d.Year() != year {
			continue
		}
		month := &s.Months[d.Month()-1]
		month.Meals++
		month.Calories += m.Calories
		if m.Type.Valid() {
			month.ByType[m.Type]++
		}
		s.TotalMeals++
		s.TotalCalories += m.Calories
	}

	if s.TotalMeals > 0 {
		s.AverageCalories = math.Round(s.TotalCalories / float64(s.TotalMeals))
	}
	return s
}
