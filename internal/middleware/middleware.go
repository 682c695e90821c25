// Package middleware provides the HTTP middleware for the Civic-Sense
// facade: permissive CORS for the SPA shell, and the role guard that keeps
// submission and management routes behind the access gate.
package middleware

import (
	"net/http"

	"github.com/civicsense/backend/internal/gate"
	"github.com/civicsense/backend/internal/models"
)

// CORS adds permissive CORS headers so the shell can call the facade from a
// different origin during development. The OPTIONS preflight is answered
// with 204 so the real request is allowed to proceed.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole only lets requests through while the gate holds an
// authenticated session with the given role. Unlike guarded navigation —
// which switches the tab and opens the sign-in prompt — hitting an API route
// without the role is a hard 401/403.
//
// The check reads the gate's state rather than verifying a token: sessions
// issued by the remote authority carry tokens this process cannot verify
// locally, and the gate is the single holder of "who is signed in here".
func RequireRole(g *gate.Gate, role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := g.Current()
			if !state.Authenticated {
				http.Error(w, `{"error":"sign in required"}`, http.StatusUnauthorized)
				return
			}
			if state.Session.Role != role {
				http.Error(w, `{"error":"forbidden"}`, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
