package middleware

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/finacals/finacals-backend/internal/domain"
)

// IdentityClaims contains the identity claims minted by the provider at login
type IdentityClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Validate implements validator.CustomClaims. A token without a verified
// email cannot act as an owner.
func (c IdentityClaims) Validate(ctx context.Context) error {
	if c.Email == "" {
		return errors.New("email claim is required")
	}
	return nil
}

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// IdentityKey is the context key for the resolved caller identity
const IdentityKey contextKey = "identity"

// AuthMiddleware validates login tokens and resolves the caller identity.
// The provider exchange happens once at login; here only the cached JWKS is
// consulted, never the provider itself.
type AuthMiddleware struct {
	validator *validator.Validator
}

// NewAuthMiddleware creates a new AuthMiddleware for the given OIDC issuer
func NewAuthMiddleware(authDomain, audience string) (*AuthMiddleware, error) {
	issuerURL, err := url.Parse("https://" + authDomain + "/")
	if err != nil {
		return nil, err
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{audience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &IdentityClaims{}
		}),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, err
	}

	return &AuthMiddleware{validator: jwtValidator}, nil
}

// Authenticate returns an Echo middleware that gates every data route: a
// request without a valid session token is rejected before any downstream
// component runs.
func (m *AuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return unauthorizedError(c, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return unauthorizedError(c, "invalid authorization header format")
			}

			claims, err := m.validator.ValidateToken(c.Request().Context(), parts[1])
			if err != nil {
				log.Debug().Err(err).Msg("Token validation failed")
				return unauthorizedError(c, "invalid token")
			}

			validatedClaims, ok := claims.(*validator.ValidatedClaims)
			if !ok {
				return unauthorizedError(c, "invalid claims")
			}

			identityClaims, ok := validatedClaims.CustomClaims.(*IdentityClaims)
			if !ok || identityClaims.Email == "" {
				return unauthorizedError(c, "token has no verified email")
			}

			identity := &domain.Identity{
				Email:   identityClaims.Email,
				Name:    identityClaims.Name,
				Picture: identityClaims.Picture,
			}

			ctx := context.WithValue(c.Request().Context(), IdentityKey, identity)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// GetIdentity extracts the caller identity from the context. It returns nil
// when the request did not pass through Authenticate.
func GetIdentity(c echo.Context) *domain.Identity {
	if identity, ok := c.Request().Context().Value(IdentityKey).(*domain.Identity); ok {
		return identity
	}
	return nil
}
