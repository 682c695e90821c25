package reports

import (
	"context"
	"strings"

	"github.com/civicsense/backend/internal/classify"
	"github.com/civicsense/backend/internal/models"
	"github.com/google/uuid"
)

// Submit runs the dual-path submission protocol and prepends the resulting
// report to the working collection.
//
// Path 1 — remote: when an authority is configured and the session carries a
// token, the raw input is sent to the authority. A successful, well-formed
// response is accepted verbatim: its id, category, status and point award
// are the source of truth and the local classifier is NOT re-run on it.
//
// Path 2 — local fallback: on any failure of path 1 (no authority, transport
// error, negative acknowledgment) the report is synthesized locally with a
// random id, the classifier's verdict as its status, the classifier's point
// award, and a timestamp taken at the moment of synthesis. The fallback
// resolves straight to the verdict — no Submitted placeholder — so the feed
// stays informative even with no backend at all.
//
// Exactly one path runs per call, and both yield reports that downstream
// consumers cannot tell apart. The only error Submit can return is
// ErrEmptyDescription, raised before either path produces a side effect.
func (e *Engine) Submit(ctx context.Context, input models.NewReport, sess *models.Session) (models.Report, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	input.Location.Address = strings.TrimSpace(input.Location.Address)
	if input.Description == "" {
		return models.Report{}, ErrEmptyDescription
	}

	if e.remote != nil && sess != nil && sess.Token != "" {
		created, err := e.remote.CreateReport(ctx, sess.Token, sess.Email, input)
		if err == nil {
			e.prepend(created)
			e.log.Debug("submit: accepted by authority", "id", created.ID, "status", created.Status)
			return created, nil
		}
		e.log.Warn("submit: authority unavailable, falling back to local triage", "error", err)
	}

	report := e.synthesize(input)
	e.prepend(report)
	e.log.Debug("submit: synthesized locally",
		"id", report.ID, "category", report.Category,
		"status", report.Status, "points", report.PointsAwarded)
	return report, nil
}

// synthesize builds the local-path report from raw input. Pure apart from
// the id and clock reads; the classifier decides everything else.
func (e *Engine) synthesize(input models.NewReport) models.Report {
	name := input.Name
	if name == "" {
		name = models.DefaultContributor
	}

	category := input.Category
	if category == "" || !models.ValidCategory(category) {
		category = classify.Categorize(input.Description)
	}

	verdict, points, _ := classify.Score(input.Description)

	return models.Report{
		ID:            uuid.NewString(),
		Name:          name,
		Description:   input.Description,
		Category:      category,
		Location:      input.Location,
		ImageURL:      input.ImageURL,
		Status:        verdict,
		PointsAwarded: points,
		Timestamp:     e.nowMillis(),
	}
}
