package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUserAlreadyExists is returned when the email is already registered.
	ErrUserAlreadyExists = errors.New("user already exists with this email")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrMissingToken is returned when a protected route is called without a bearer token.
	ErrMissingToken = errors.New("not authorized, no token")
	// ErrUnauthorized is returned when a bearer token is invalid or expired.
	ErrUnauthorized = errors.New("not authorized, token failed")
	// ErrTokenRevoked is returned when a bearer token was logged out.
	ErrTokenRevoked = errors.New("not authorized, token revoked")
	// ErrUserNotFound is returned when the user id does not resolve.
	ErrUserNotFound = errors.New("user not found")
	// ErrMealNotFound is returned when the meal id does not resolve for the caller.
	ErrMealNotFound = errors.New("meal not found")
	// ErrUploadTooLarge is returned when an uploaded file exceeds the size limit.
	ErrUploadTooLarge = errors.New("file too large, maximum size is 2MB")
	// ErrUploadType is returned when an uploaded file is not an accepted image.
	ErrUploadType = errors.New("only image files are allowed")
)

// FieldError describes one failed field rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field rule that failed for one input.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError builds a ValidationError from field errors.
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ErrorResponse is the failure envelope returned to clients.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Code    string       `json:"code,omitempty"`
	Error   string       `json:"error,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Fields     []FieldError
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Success: false,
		Message: e.Message,
		Code:    e.Code,
		Errors:  e.Fields,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unknown is a
// server side failure and gets a generic message.
func MapErrorToHTTP(err error) *HTTPError {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		httpErr := NewHTTPError(http.StatusBadRequest, "Validation failed", "VALIDATION_ERROR")
		httpErr.Fields = verr.Fields
		return httpErr
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, "User already exists with this email", "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, "Invalid email or password", "INVALID_CREDENTIALS")
	case errors.Is(err, ErrMissingToken):
		return NewHTTPError(http.StatusUnauthorized, "Not authorized, no token", "UNAUTHORIZED")
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrTokenRevoked):
		return NewHTTPError(http.StatusUnauthorized, "Not authorized, token failed", "UNAUTHORIZED")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, "User not found", "USER_NOT_FOUND")
	case errors.Is(err, ErrMealNotFound):
		return NewHTTPError(http.StatusNotFound, "Meal not found", "MEAL_NOT_FOUND")
	case errors.Is(err, ErrUploadTooLarge):
		return NewHTTPError(http.StatusBadRequest, "File too large, maximum size is 2MB", "UPLOAD_TOO_LARGE")
	case errors.Is(err, ErrUploadType):
		return NewHTTPError(http.StatusBadRequest, "Only image files are allowed!", "UPLOAD_INVALID_TYPE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR")
	}
}
