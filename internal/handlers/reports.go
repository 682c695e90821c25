package handlers

import (
	"errors"
	"net/http"

	"github.com/civicsense/backend/internal/models"
	"github.com/civicsense/backend/internal/reports"
)

// topN is the leaderboard display truncation.
const topN = 10

// ListReports handles GET /api/reports. Public: the feed is visible to
// anonymous visitors.
func (s *Server) ListReports(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, s.Engine.List())
}

// SubmitReport handles POST /api/reports (citizen only; enforced by
// middleware). Transport failures against the authority never surface here —
// the coordinator falls back and the citizen always gets a usable report.
func (s *Server) SubmitReport(w http.ResponseWriter, r *http.Request) {
	var input models.NewReport
	if err := decode(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	created, err := s.Engine.Submit(r.Context(), input, s.Gate.Session())
	if err != nil {
		if errors.Is(err, reports.ErrEmptyDescription) {
			respondError(w, http.StatusBadRequest, "description is required")
			return
		}
		respondError(w, http.StatusInternalServerError, "could not submit report")
		return
	}

	respond(w, http.StatusCreated, created)
}

// UpdateReportStatus handles PATCH /api/reports/{id}/status (municipal only).
func (s *Server) UpdateReportStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req models.StatusUpdateRequest
	if err := decode(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	err := s.Engine.ChangeStatus(r.Context(), s.Gate.Session(), id, req.Status)
	switch {
	case err == nil:
		respond(w, http.StatusOK, map[string]string{"id": id, "status": string(req.Status)})
	case errors.Is(err, reports.ErrNotFound):
		respondError(w, http.StatusNotFound, "report not found")
	case errors.Is(err, reports.ErrBadTransition):
		respondError(w, http.StatusConflict, "status transition not allowed")
	case errors.Is(err, reports.ErrNotAllowed):
		respondError(w, http.StatusForbidden, "forbidden")
	default:
		// Authority refused or unreachable; the local copy is unmodified.
		respondError(w, http.StatusBadGateway, "authority did not confirm the update")
	}
}

// DeleteReport handles DELETE /api/reports/{id} (municipal only). Deleting a
// report that is not in the collection succeeds — there is nothing to lose.
func (s *Server) DeleteReport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	err := s.Engine.Remove(r.Context(), s.Gate.Session(), id)
	switch {
	case err == nil:
		respond(w, http.StatusOK, map[string]string{"id": id})
	case errors.Is(err, reports.ErrNotAllowed):
		respondError(w, http.StatusForbidden, "forbidden")
	default:
		respondError(w, http.StatusBadGateway, "authority did not confirm the deletion")
	}
}

// CleanupResolved handles POST /api/reports/cleanup (municipal only). The
// body may carry {"days": N}; anything missing or non-positive uses the
// server's configured retention window.
func (s *Server) CleanupResolved(w http.ResponseWriter, r *http.Request) {
	var req models.CleanupRequest
	_ = decode(r, &req) // an empty body means "use the default"
	days := req.Days
	if days <= 0 {
		days = s.RetentionDays
	}

	removed := s.Engine.Sweep(days)
	respond(w, http.StatusOK, map[string]int{"removed": removed, "days": days})
}

// GetLeaderboard handles GET /api/leaderboard. Public. The ranking is
// recomputed from the current collection on every request.
func (s *Server) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, s.Engine.Leaderboard(topN))
}
