package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testSecret = "dev-secret-change-in-production-32bytes"

func TestRequireRole_NoCookie_Returns401(t *testing.T) {
	secret := SessionSecretBytes(testSecret)
	mw := RequireRole(secret, "admin")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called")
	})

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole_InvalidToken_Returns401(t *testing.T) {
	secret := SessionSecretBytes(testSecret)
	mw := RequireRole(secret, "admin")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called")
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName(), Value: "invalid.token"})
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole_ExpiredToken_Returns401(t *testing.T) {
	secret := SessionSecretBytes(testSecret)
	token := CreateSessionToken(Session{UserID: "user-123", Role: "admin", ExpiresAt: time.Now().Add(-time.Minute)}, secret)
	mw := RequireRole(secret, "admin")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called")
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName(), Value: token})
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if body := rec.Body.String(); body == "" {
		t.Error("expected error body")
	}
}

func TestRequireRole_WrongRole_Returns403(t *testing.T) {
	secret := SessionSecretBytes(testSecret)
	token := CreateSessionToken(Session{UserID: "user-123", Role: "viewer", ExpiresAt: time.Now().Add(time.Hour)}, secret)
	mw := RequireRole(secret, "admin")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called")
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName(), Value: token})
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

func TestRequireRole_ValidToken_CallsNextWithUserID(t *testing.T) {
	secret := SessionSecretBytes(testSecret)
	token := CreateSessionToken(Session{UserID: "user-123", Role: "admin", ExpiresAt: time.Now().Add(time.Hour)}, secret)
	mw := RequireRole(secret, "admin")

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName(), Value: token})
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if gotUserID != "user-123" {
		t.Errorf("expected userID=user-123, got %q", gotUserID)
	}
}
