package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the uniform response wrapper: every payload travels under
// "data" with status "OK", every failure carries a "message" with status
// "ERROR".
type Envelope struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

const (
	statusOK    = "OK"
	statusError = "ERROR"
)

func respondOK(c echo.Context, code int, data interface{}) error {
	return c.JSON(code, Envelope{Status: statusOK, Data: data})
}

func respondError(c echo.Context, code int, message string) error {
	return c.JSON(code, Envelope{Status: statusError, Message: message})
}

// respondEmptyResult reports a valid request that matched nothing. It is an
// expected outcome, so the HTTP status stays 200 while the envelope says
// ERROR.
func respondEmptyResult(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, Envelope{Status: statusError, Message: message})
}

func unauthorizedError(c echo.Context) error {
	return respondError(c, http.StatusUnauthorized, "authentication required")
}
