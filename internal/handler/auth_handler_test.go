package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/folioworks/folio-backend/internal/middleware"
	"github.com/folioworks/folio-backend/internal/service"
	"github.com/folioworks/folio-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// setupAuthContext injects validated claims the way the auth middleware would
func setupAuthContext(c echo.Context, auth0ID string, email, name, picture string) {
	setupAuthContextWithUser(c, auth0ID, email, name, picture, uuid.Nil)
}

// setupAuthContextWithUser additionally injects the resolved user ID
func setupAuthContextWithUser(c echo.Context, auth0ID string, email, name, picture string, userID uuid.UUID) {
	customClaims := &middleware.CustomClaims{
		Email:   email,
		Name:    name,
		Picture: picture,
	}
	claims := &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{
			Subject: auth0ID,
		},
		CustomClaims: customClaims,
	}
	ctx := context.WithValue(c.Request().Context(), middleware.ClaimsKey, claims)
	ctx = context.WithValue(ctx, middleware.Auth0IDKey, auth0ID)
	if userID != uuid.Nil {
		ctx = context.WithValue(ctx, middleware.UserIDKey, userID)
	}
	c.SetRequest(c.Request().WithContext(ctx))
}

func TestCallback_CreatesUser(t *testing.T) {
	e := echo.New()
	userRepo := testutil.NewMockUserRepository()
	handler := NewAuthHandler(service.NewAuthService(userRepo))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/callback", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, "auth0|abc123", "pm@example.com", "Project Manager", "")

	if err := handler.Callback(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Email != "pm@example.com" {
		t.Errorf("Expected email pm@example.com, got %s", response.Email)
	}
	if response.ID == "" {
		t.Error("Expected assigned user ID")
	}

	// Same subject again returns the existing user.
	req2 := httptest.NewRequest(http.MethodPost, "/api/v1/auth/callback", nil)
	rec2 := httptest.NewRecorder()
	c2 := e.NewContext(req2, rec2)
	setupAuthContext(c2, "auth0|abc123", "pm@example.com", "Project Manager", "")

	if err := handler.Callback(c2); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	var second UserResponse
	if err := json.Unmarshal(rec2.Body.Bytes(), &second); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if second.ID != response.ID {
		t.Error("Expected the same user on repeat callback")
	}
}

func TestCallback_MissingEmail(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler(service.NewAuthService(testutil.NewMockUserRepository()))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/callback", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, "auth0|abc123", "", "", "")

	if err := handler.Callback(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCallback_NoAuthContext(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler(service.NewAuthService(testutil.NewMockUserRepository()))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/callback", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Callback(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestMe_UnknownUser(t *testing.T) {
	e := echo.New()
	handler := NewAuthHandler(service.NewAuthService(testutil.NewMockUserRepository()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, "auth0|stranger", "x@example.com", "", "")

	if err := handler.Me(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
