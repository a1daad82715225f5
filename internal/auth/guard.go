package auth

import (
	"errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	apperr "nutritrack/internal/errors"
)

// ContextKey is where the guard stores the verified *Claims.
const ContextKey = "auth.claims"

// Middleware returns the bearer guard for protected routes. It verifies the
// token, rejects revoked tokens and stores the claims on the context.
func Middleware(jwtService *JWTService, store TokenStoreInterface) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  ContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				return nil, err
			}
			if store != nil {
				revoked, err := store.IsRevoked(c.Request().Context(), claims.ID)
				if err != nil {
					log.Warn().Err(err).Msg("revocation lookup failed")
				}
				if revoked {
					return nil, apperr.ErrTokenRevoked
				}
			}
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var extractErr *echojwt.TokenExtractionError
			if errors.As(err, &extractErr) || errors.Is(err, echojwt.ErrJWTMissing) {
				return apperr.ErrMissingToken
			}
			if errors.Is(err, apperr.ErrTokenRevoked) {
				return apperr.ErrTokenRevoked
			}
			return apperr.ErrUnauthorized
		},
	})
}

// ClaimsFrom returns the claims stored by the guard, or nil on public routes.
func ClaimsFrom(c echo.Context) *Claims {
	claims, _ := c.Get(ContextKey).(*Claims)
	return claims
}

// UserID returns the authenticated caller's ID.
func UserID(c echo.Context) (string, error) {
	claims := ClaimsFrom(c)
	if claims == nil || claims.UserID == "" {
		return "", apperr.ErrUnauthorized
	}
	return claims.UserID, nil
}
