package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// envelope mirrors the handler package's uniform response wrapper
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// unauthorizedError rejects the request with the standard error envelope
func unauthorizedError(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, envelope{
		Status:  "ERROR",
		Message: message,
	})
}

// tooManyRequestsError rejects a rate-limited request
func tooManyRequestsError(c echo.Context, message string) error {
	return c.JSON(http.StatusTooManyRequests, envelope{
		Status:  "ERROR",
		Message: message,
	})
}
