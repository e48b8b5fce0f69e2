package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sessiontoken "github.com/sneakerscr/storefront-backend/pkg/auth/session"
	"github.com/sneakerscr/storefront-backend/pkg/config"
)

func sessionTestConfig() config.SessionConfig {
	return config.SessionConfig{
		Secret:     "middleware-secret",
		Issuer:     "sneakerscr-storefront",
		TTLMinutes: 30,
	}
}

func TestSessionMiddlewareAttachesSessionID(t *testing.T) {
	cfg := sessionTestConfig()
	token, sessionID, err := sessiontoken.Mint(cfg, time.Now())
	if err != nil {
		t.Fatalf("mint session token: %v", err)
	}

	var got string
	handler := Session(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SessionIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got != sessionID {
		t.Fatalf("expected session id %q in context, got %q", sessionID, got)
	}
}

func TestSessionMiddlewareRejectsMissingToken(t *testing.T) {
	handler := Session(sessionTestConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestSessionMiddlewareRejectsForgedToken(t *testing.T) {
	cfg := sessionTestConfig()
	forged := cfg
	forged.Secret = "other-secret"
	token, _, err := sessiontoken.Mint(forged, time.Now())
	if err != nil {
		t.Fatalf("mint session token: %v", err)
	}

	handler := Session(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
