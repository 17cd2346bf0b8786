package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/finacals/finacals-backend/internal/middleware"
)

// AuthHandler exposes the caller's resolved identity
type AuthHandler struct{}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return unauthorizedError(c)
	}
	return respondOK(c, http.StatusOK, identity)
}

// Logout handles POST /api/v1/auth/logout. Sessions are carried by the login
// token, so there is nothing to revoke server-side; the client discards it.
func (h *AuthHandler) Logout(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return unauthorizedError(c)
	}
	log.Info().Str("owner", identity.Email).Msg("User logged out")
	return respondOK(c, http.StatusOK, map[string]string{"message": "logged out"})
}
