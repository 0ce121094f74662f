package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/mkelsey/dreamcoach/internal/app/system/auth"
)

func newManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager("test-key-0123456789", "dreamcoach-test", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	return sm
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireSignedIn_NoSession(t *testing.T) {
	sm := newManager(t)
	rec := httptest.NewRecorder()
	sm.RequireSignedIn(okHandler()).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(rec.Body.String(), `"failed":true`) {
		t.Errorf("expected failure envelope, got %s", rec.Body.String())
	}
}

func TestRequireSignedIn_WithUser(t *testing.T) {
	sm := newManager(t)
	req := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &auth.SessionUser{ID: "abc", Role: "member"})
	rec := httptest.NewRecorder()
	sm.RequireSignedIn(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRequireRole(t *testing.T) {
	sm := newManager(t)
	mw := sm.RequireRole("admin", "coach")

	tests := []struct {
		role string
		want int
	}{
		{"admin", http.StatusOK},
		{"coach", http.StatusOK},
		{"Coach", http.StatusOK}, // role match is case-insensitive
		{"member", http.StatusForbidden},
	}
	for _, tt := range tests {
		req := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &auth.SessionUser{ID: "abc", Role: tt.role})
		rec := httptest.NewRecorder()
		mw(okHandler()).ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Errorf("role %q: got %d, want %d", tt.role, rec.Code, tt.want)
		}
	}

	// No session at all.
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no session: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
