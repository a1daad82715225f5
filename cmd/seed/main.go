package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"nutritrack/internal/config"
	"nutritrack/internal/db"
	apperr "nutritrack/internal/errors"
	"nutritrack/internal/logging"
	"nutritrack/internal/model"
	"nutritrack/internal/service"
	"nutritrack/internal/validation"
)

//go:embed seed.yaml
var defaultFixture []byte

// Fixture is the seed file layout.
type Fixture struct {
	Users []SeedUser `yaml:"users"`
}

// SeedUser is one account and the meals logged for it.
type SeedUser struct {
	FirstName string     `yaml:"firstName"`
	LastName  string     `yaml:"lastName"`
	Email     string     `yaml:"email"`
	Password  string     `yaml:"password"`
	Phone     string     `yaml:"phone"`
	Bio       string     `yaml:"bio"`
	Position  string     `yaml:"position"`
	Meals     []SeedMeal `yaml:"meals"`
}

// SeedMeal is a meal entry of a SeedUser.
type SeedMeal struct {
	Name        string  `yaml:"name"`
	Type        string  `yaml:"type"`
	Ingredients string  `yaml:"ingredients"`
	Calories    float64 `yaml:"calories"`
	Protein     string  `yaml:"protein"`
	Carbs       string  `yaml:"carbs"`
	Fats        string  `yaml:"fats"`
	Notes       string  `yaml:"notes"`
	Date        string  `yaml:"date"`
}

type result struct {
	users, skipped, meals int
}

func main() {
	file := flag.String("file", "", "YAML fixture to load (defaults to the embedded one)")
	flag.Parse()

	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel, cfg.IsProduction())
	logger.Info().Msg("Starting seed script...")

	fixture, err := loadFixture(*file)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load fixture")
	}

	ctx := context.Background()
	store, err := db.OpenStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer store.Close(ctx)
	logger.Info().Str("driver", cfg.StoreDriver).Msg("Connected to database")

	validator := validation.New()
	// Seeded users never upload images and never log out.
	authService := service.NewAuthService(store.Users, nil, nil, nil, validator)
	mealService := service.NewMealService(store.Meals, validator)

	res, err := seed(ctx, logger, authService, mealService, fixture)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to seed")
	}

	logger.Info().
		Int("users_created", res.users).
		Int("users_skipped", res.skipped).
		Int("meals_created", res.meals).
		Msg("Seed completed successfully!")
}

func loadFixture(path string) (*Fixture, error) {
	data := defaultFixture
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return &f, nil
}

// seed registers every fixture user and logs their meals. Users whose email
// is already registered are skipped together with their meals.
func seed(ctx context.Context, logger zerolog.Logger, auth service.AuthService, meals service.MealService, f *Fixture) (result, error) {
	var res result
	for _, u := range f.Users {
		user, err := auth.Register(ctx, service.RegisterInput{
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			Password:  u.Password,
			Phone:     u.Phone,
			Bio:       u.Bio,
			Position:  u.Position,
		}, nil)
		if errors.Is(err, apperr.ErrUserAlreadyExists) {
			logger.Info().Str("email", u.Email).Msg("User exists, skipping")
			res.skipped++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("register %s: %w", u.Email, err)
		}
		res.users++

		for _, m := range u.Meals {
			if _, err := meals.CreateMeal(ctx, user.ID, mealInput(m)); err != nil {
				return res, fmt.Errorf("meal %q for %s: %w", m.Name, u.Email, err)
			}
			res.meals++
		}
	}
	return res, nil
}

func mealInput(m SeedMeal) service.MealInput {
	return service.MealInput{
		Name:        m.Name,
		Type:        model.MealType(m.Type),
		Ingredients: m.Ingredients,
		Calories:    service.Number(strconv.FormatFloat(m.Calories, 'f', -1, 64)),
		Protein:     m.Protein,
		Carbs:       m.Carbs,
		Fats:        m.Fats,
		Notes:       m.Notes,
		Date:        m.Date,
	}
}
