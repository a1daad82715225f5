package db

import (
	"context"
	"fmt"

	"nutritrack/internal/config"
	"nutritrack/internal/repository"
)

// Store bundles the repositories of one backend.
type Store struct {
	Users repository.UserRepository
	Meals repository.MealRepository
	close func(context.Context) error
}

// Close releases the underlying connection.
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// OpenStore connects the backend selected by cfg.StoreDriver and prepares
// its schema.
func OpenStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.StoreDriver {
	case DriverMongo:
		client, err := NewMongo(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		database := client.Database(cfg.MongoDatabase)
		if err := repository.EnsureUserIndexes(ctx, database); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		if err := repository.EnsureMealIndexes(ctx, database); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &Store{
			Users: repository.NewMongoUserRepository(database),
			Meals: repository.NewMongoMealRepository(database),
			close: client.Disconnect,
		}, nil

	case DriverMySQL, DriverPostgres:
		gormDB, err := OpenSQL(cfg.StoreDriver, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := Migrate(gormDB); err != nil {
			return nil, err
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return nil, fmt.Errorf("sql handle: %w", err)
		}
		return &Store{
			Users: repository.NewUserRepository(gormDB),
			Meals: repository.NewMealRepository(gormDB),
			close: func(context.Context) error { return sqlDB.Close() },
		}, nil

	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}
