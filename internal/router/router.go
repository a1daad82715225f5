package router

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"nutritrack/internal/config"
	apperr "nutritrack/internal/errors"
	"nutritrack/internal/handler"
	"nutritrack/internal/logging"
	"nutritrack/internal/metrics"
)

const uploadsPath = "/uploads"

// Handlers groups the HTTP handlers mounted by Register.
type Handlers struct {
	Auth *handler.AuthHandler
	User *handler.UserHandler
	Meal *handler.MealHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	logger zerolog.Logger,
	validator echo.Validator,
	guard echo.MiddlewareFunc,
	h Handlers,
) {
	e.HideBanner = true
	e.Validator = validator
	e.HTTPErrorHandler = ErrorHandler(cfg.IsProduction(), logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(logging.RequestLogger(logger))
	e.Use(middleware.Secure())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(rateLimiter(cfg))
	e.Use(middleware.BodyLimit("10M"))
	e.Use(metrics.Middleware())

	if cfg.UploadBackend == "" || cfg.UploadBackend == "local" {
		e.Static(uploadsPath, cfg.UploadDir)
	}

	e.GET("/health", handler.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	api.GET("", handler.Index)

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	// Guard is attached per route so unknown paths stay 404.
	api.POST("/auth/logout", h.Auth.Logout, guard)
	api.GET("/auth/me", h.User.Me, guard)
	api.PATCH("/auth/update-profile", h.User.UpdateProfile, guard)

	meals := api.Group("/meals")
	meals.POST("", h.Meal.Create, guard)
	meals.GET("/all", h.Meal.List, guard)
	meals.GET("/summary", h.Meal.Summary, guard)
	meals.GET("/:id", h.Meal.Get, guard)
	meals.PUT("/:id", h.Meal.Update, guard)
	meals.DELETE("/:id", h.Meal.Delete, guard)
	// Without a deeper route a trailing :id also matches ids containing "/".
	meals.RouteNotFound("/:id/*", routeNotFound)
}

func routeNotFound(echo.Context) error {
	return echo.ErrNotFound
}

// rateLimiter allows cfg.RateLimit requests per client IP in each window.
func rateLimiter(cfg *config.Config) echo.MiddlewareFunc {
	limit := rate.Limit(float64(cfg.RateLimit) / cfg.RateWindow.Seconds())
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, uploadsPath+"/")
		},
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      limit,
			Burst:     cfg.RateLimit,
			ExpiresIn: cfg.RateWindow,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return apperr.NewHTTPError(http.StatusForbidden, "Unable to identify client", "FORBIDDEN")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return apperr.NewHTTPError(http.StatusTooManyRequests, "Too many requests, please try again later.", "RATE_LIMITED")
		},
	})
}

// ErrorHandler renders every failure as the error envelope. Internal detail
// is only attached outside production.
func ErrorHandler(production bool, logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		httpErr := toHTTPError(err)
		resp := httpErr.ToErrorResponse()
		if httpErr.StatusCode >= http.StatusInternalServerError {
			logger.Error().Err(err).
				Str("method", c.Request().Method).
				Str("uri", c.Request().RequestURI).
				Msg("request failed")
			if !production {
				resp.Error = err.Error()
			}
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(httpErr.StatusCode)
		} else {
			writeErr = c.JSON(httpErr.StatusCode, resp)
		}
		if writeErr != nil {
			logger.Error().Err(writeErr).Msg("write error response")
		}
	}
}

func toHTTPError(err error) *apperr.HTTPError {
	var httpErr *apperr.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		switch echoErr.Code {
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			return apperr.NewHTTPError(http.StatusNotFound, "Route not found", "NOT_FOUND")
		case http.StatusRequestEntityTooLarge:
			return apperr.NewHTTPError(echoErr.Code, "Request body too large", "PAYLOAD_TOO_LARGE")
		}
		if echoErr.Code < http.StatusInternalServerError {
			return apperr.NewHTTPError(echoErr.Code, fmt.Sprint(echoErr.Message), http.StatusText(echoErr.Code))
		}
	}

	return apperr.MapErrorToHTTP(err)
}
