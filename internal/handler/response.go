package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperr "nutritrack/internal/errors"
)

// Envelope is the success body shared by every endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// errBadBody is returned when a request body cannot be decoded.
var errBadBody = apperr.NewHTTPError(http.StatusBadRequest, "Invalid request body", "BAD_REQUEST")
