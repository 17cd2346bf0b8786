package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/finacals/finacals-backend/internal/domain"
	"github.com/finacals/finacals-backend/internal/middleware"
)

// setupIdentityContext injects a resolved identity the way the auth
// middleware does after validating a token.
func setupIdentityContext(c echo.Context, email, name string) {
	identity := &domain.Identity{Email: email, Name: name}
	ctx := context.WithValue(c.Request().Context(), middleware.IdentityKey, identity)
	c.SetRequest(c.Request().WithContext(ctx))
}

func TestMe_ReturnsIdentity(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupIdentityContext(c, "test@example.com", "Test User")

	if err := handler.Me(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response struct {
		Status string          `json:"status"`
		Data   domain.Identity `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Status != "OK" {
		t.Errorf("Expected status OK, got %s", response.Status)
	}
	if response.Data.Email != "test@example.com" {
		t.Errorf("Expected email test@example.com, got %s", response.Data.Email)
	}
	if response.Data.Name != "Test User" {
		t.Errorf("Expected name 'Test User', got %s", response.Data.Name)
	}
}

func TestMe_Unauthenticated(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Me(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestLogout(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupIdentityContext(c, "test@example.com", "Test User")

	if err := handler.Logout(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Status != "OK" {
		t.Errorf("Expected status OK, got %s", response.Status)
	}
}
