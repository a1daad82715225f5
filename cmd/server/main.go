package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"nutritrack/docs" // swagger docs
	"nutritrack/internal/auth"
	"nutritrack/internal/cache"
	"nutritrack/internal/config"
	"nutritrack/internal/db"
	"nutritrack/internal/handler"
	"nutritrack/internal/logging"
	"nutritrack/internal/router"
	"nutritrack/internal/service"
	"nutritrack/internal/storage"
	"nutritrack/internal/upload"
	"nutritrack/internal/validation"
)

// @title NutriTrack API
// @version 1.0
// @description Meal logging API with JWT authentication, profile management and yearly summaries.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel, cfg.IsProduction())

	ctx := context.Background()

	store, err := db.OpenStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("database init")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(ctx); err != nil {
		logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, logout revocation disabled until it recovers")
	}

	objects, err := storage.New(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.UploadBackend).Msg("upload storage init")
	}

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)
	tokenStore := auth.NewTokenStore(cacheClient)
	validator := validation.New()

	// Initialize services
	authService := service.NewAuthService(store.Users, jwtService, tokenStore, upload.New(objects), validator)
	userService := service.NewUserService(store.Users, validator)
	mealService := service.NewMealService(store.Meals, validator)

	e := echo.New()
	router.Register(e, cfg, logger, validator, auth.Middleware(jwtService, tokenStore), router.Handlers{
		Auth: handler.NewAuthHandler(authService),
		User: handler.NewUserHandler(userService),
		Meal: handler.NewMealHandler(mealService),
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	go func() {
		addr := ":" + cfg.ServerPort
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server start")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown")
	}
	if err := store.Close(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("database close")
	}
	if err := cacheClient.Close(); err != nil {
		logger.Error().Err(err).Msg("redis close")
	}
}
