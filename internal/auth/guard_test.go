package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "nutritrack/internal/errors"
)

func guarded(t *testing.T, svc *JWTService, store TokenStoreInterface, header string) (string, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	h := Middleware(svc, store)(func(c echo.Context) error {
		id, err := UserID(c)
		if err != nil {
			return err
		}
		seen = id
		return c.NoContent(http.StatusOK)
	})
	err := h(c)
	return seen, err
}

func TestMiddleware(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)
	token, claims, err := svc.GenerateToken("user-1", "ada@example.com")
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		id, err := guarded(t, svc, NewTokenStore(newMemoryFlags()), "Bearer "+token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", id)
	})

	t.Run("missing header", func(t *testing.T) {
		_, err := guarded(t, svc, nil, "")
		assert.ErrorIs(t, err, apperr.ErrMissingToken)
	})

	t.Run("bad token", func(t *testing.T) {
		_, err := guarded(t, svc, nil, "Bearer nope")
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	})

	t.Run("revoked token", func(t *testing.T) {
		store := NewTokenStore(newMemoryFlags())
		require.NoError(t, store.RevokeToken(context.Background(), claims.ID, time.Hour))

		_, err := guarded(t, svc, store, "Bearer "+token)
		assert.ErrorIs(t, err, apperr.ErrTokenRevoked)
	})
}

func TestUserID_NoClaims(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	_, err := UserID(c)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}
