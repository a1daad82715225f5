package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "nutritrack/internal/errors"
)

func render(t *testing.T, production bool, err error) (int, apperr.ErrorResponse) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/x", nil), rec)

	ErrorHandler(production, zerolog.Nop())(err, c)

	var body apperr.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"route not found", echo.ErrNotFound, http.StatusNotFound, "Route not found"},
		{"method not allowed", echo.ErrMethodNotAllowed, http.StatusNotFound, "Route not found"},
		{"body too large", echo.ErrStatusRequestEntityTooLarge, http.StatusRequestEntityTooLarge, "Request body too large"},
		{"domain error", apperr.ErrMealNotFound, http.StatusNotFound, "Meal not found"},
		{"wrapped domain error", errors.Join(errors.New("ctx"), apperr.ErrInvalidCredentials), http.StatusUnauthorized, "Invalid email or password"},
		{"http error", apperr.NewHTTPError(http.StatusTooManyRequests, "slow down", "RATE_LIMITED"), http.StatusTooManyRequests, "slow down"},
		{"unknown", errors.New("dial tcp: connection refused"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := render(t, true, tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantMessage, body.Message)
		})
	}
}

func TestErrorHandler_DetailOnlyOutsideProduction(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.5:3306: connection refused")

	_, prod := render(t, true, cause)
	assert.Empty(t, prod.Error)

	_, dev := render(t, false, cause)
	assert.Equal(t, cause.Error(), dev.Error)
}

func TestErrorHandler_ValidationFields(t *testing.T) {
	err := apperr.NewValidationError(apperr.FieldError{Field: "type", Message: "Invalid meal type"})

	status, body := render(t, true, err)
	assert.Equal(t, http.StatusBadRequest, status)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "type", body.Errors[0].Field)
}
