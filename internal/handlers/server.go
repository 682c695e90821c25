// Package handlers contains the HTTP facade the SPA shell talks to. The
// files are split by domain (reports, auth/navigation) and share this
// package so they can use each other's helpers without exporting them.
//
// The central type is Server: it holds the engine and the access gate, the
// two shared dependencies every handler needs. Keeping them on a struct
// instead of package globals lets every test build its own isolated Server.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/civicsense/backend/internal/gate"
	"github.com/civicsense/backend/internal/reports"
)

// Server holds shared dependencies for all handlers.
type Server struct {
	Engine *reports.Engine
	Gate   *gate.Gate
	// RetentionDays is the default cleanup window when a request does not
	// carry one.
	RetentionDays int
	Log           *slog.Logger
}

// respond writes v as JSON with the given HTTP status code. Content-Type
// must be set before WriteHeader — headers are flushed by the latter.
func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Ignoring the encode error: if the client disconnected mid-write there
	// is nothing useful left to do.
	_ = json.NewEncoder(w).Encode(body)
}

// respondError sends a JSON object with a single "error" key.
func respondError(w http.ResponseWriter, status int, msg string) {
	respond(w, status, map[string]string{"error": msg})
}

// decode reads and parses a JSON request body into v.
func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
