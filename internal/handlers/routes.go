package handlers

import (
	"net/http"

	"github.com/civicsense/backend/internal/middleware"
	"github.com/civicsense/backend/internal/models"
)

// Routes wires every handler into a ServeMux and wraps it with CORS. The
// submission route is citizen-guarded and the management routes are
// municipal-guarded; everything else is public.
func (s *Server) Routes() http.Handler {
	citizen := middleware.RequireRole(s.Gate, models.RoleUser)
	municipal := middleware.RequireRole(s.Gate, models.RoleMunicipal)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/reports", s.ListReports)
	mux.Handle("POST /api/reports", citizen(http.HandlerFunc(s.SubmitReport)))
	mux.Handle("PATCH /api/reports/{id}/status", municipal(http.HandlerFunc(s.UpdateReportStatus)))
	mux.Handle("DELETE /api/reports/{id}", municipal(http.HandlerFunc(s.DeleteReport)))
	mux.Handle("POST /api/reports/cleanup", municipal(http.HandlerFunc(s.CleanupResolved)))
	mux.HandleFunc("GET /api/leaderboard", s.GetLeaderboard)

	mux.HandleFunc("POST /api/auth/register", s.Register)
	mux.HandleFunc("POST /api/auth/login", s.Login)
	mux.HandleFunc("POST /api/auth/logout", s.Logout)
	mux.HandleFunc("GET /api/auth/me", s.Me)
	mux.HandleFunc("POST /api/navigate", s.Navigate)

	return middleware.CORS(mux)
}
