package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"orproxy/domain"
)

// errorJSON writes the structured error body used on every failure path.
func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, domain.ErrorResponse{
		Error:  message,
		Status: "error",
		Code:   status,
	})
}

// CustomValidator adapts go-playground/validator to echo's Validator
// interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates the request validator used by the server.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements echo.Validator.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// HTTPErrorHandler normalizes echo-level failures (unknown routes, method
// errors) into the structured error body.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Internal server error occurred"

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(status)
		}
	}

	if jsonErr := errorJSON(c, status, message); jsonErr != nil {
		log.Error().Err(jsonErr).Msg("Failed to write error response")
	}
}
