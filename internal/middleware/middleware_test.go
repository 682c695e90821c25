package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/civicsense/backend/internal/gate"
	"github.com/civicsense/backend/internal/models"
	"github.com/civicsense/backend/internal/session"
)

func gateWith(t *testing.T, sess *models.Session) *gate.Gate {
	t.Helper()
	store := &session.MemStore{}
	if sess != nil {
		if err := store.Save(*sess); err != nil {
			t.Fatalf("seed session: %v", err)
		}
	}
	return gate.New(nil, store, nil)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireRole_Anonymous(t *testing.T) {
	g := gateWith(t, nil)
	h := RequireRole(g, models.RoleMunicipal)(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reports/cleanup", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole_WrongRole(t *testing.T) {
	g := gateWith(t, &models.Session{Role: models.RoleUser, Email: "u@example.com", Token: "t"})
	h := RequireRole(g, models.RoleMunicipal)(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reports/cleanup", nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireRole_Allowed(t *testing.T) {
	g := gateWith(t, &models.Session{Role: models.RoleMunicipal, Email: "m@example.com", Token: "t"})
	h := RequireRole(g, models.RoleMunicipal)(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reports/cleanup", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCORS_Preflight(t *testing.T) {
	h := CORS(okHandler())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/reports", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight: expected 204, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS origin header")
	}
}

func TestCORS_PassesThrough(t *testing.T) {
	h := CORS(okHandler())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
