// Package reports is the report triage and reconciliation engine: the
// in-memory working collection of reports, the remote-first submission
// coordinator, the status lifecycle guard, the leaderboard aggregation and
// the retention sweeper.
//
// The engine owns no durable storage. When a remote authority is configured
// it is the source of truth; when it is unreachable (or not configured at
// all) the engine degrades to a local, in-memory approximation that behaves
// identically to downstream consumers.
package reports

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/civicsense/backend/internal/models"
)

var (
	// ErrEmptyDescription is the only error Submit can return; it is raised
	// before any side effect.
	ErrEmptyDescription = errors.New("description is required")
	// ErrNotFound marks a status change against an id missing from the
	// working collection. Removal of a missing id is deliberately a no-op.
	ErrNotFound = errors.New("report not found")
	// ErrBadTransition marks a status change the lifecycle does not allow.
	ErrBadTransition = errors.New("status transition not allowed")
	// ErrNotAllowed marks a management action attempted without the
	// municipal role.
	ErrNotAllowed = errors.New("management action requires a municipal session")
)

// Authority is the contract of the external reports service as the engine
// sees it. Any error from any method is treated as unavailability; the
// engine never distinguishes failure modes beyond "did not succeed".
type Authority interface {
	CreateReport(ctx context.Context, token, email string, input models.NewReport) (models.Report, error)
	ListReports(ctx context.Context) ([]models.Report, error)
	UpdateStatus(ctx context.Context, token, id string, status models.Status) error
	DeleteReport(ctx context.Context, token, id string) error
}

// Engine holds the working collection and coordinates every mutation of it.
//
// The original design is single-threaded and event-driven; HTTP handlers in
// Go are not, so the collection is guarded by a mutex. Mutations are
// append-on-success and filter-on-removal only — a reader always sees a
// consistent snapshot and no report is ever overwritten by a competing
// submission's completion.
type Engine struct {
	mu      sync.Mutex
	items   []models.Report
	remote  Authority // nil when no authority is configured
	log     *slog.Logger
	nowFunc func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the engine's clock. Used by tests to pin sweep cutoffs
// and synthesized timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.nowFunc = now }
}

// New creates an engine. remote may be nil, which puts every operation on
// the local path.
func New(remote Authority, log *slog.Logger, opts ...Option) *Engine {
	if log == nil {
		log = slog.Default()
	}
	e := &Engine{
		remote:  remote,
		log:     log,
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// List returns a snapshot of the working collection, most recent first.
func (e *Engine) List() []models.Report {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.Report, len(e.items))
	copy(out, e.items)
	return out
}

// Len returns the current size of the working collection.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.items)
}

// Refresh replaces the working collection with the authority's list. With no
// authority configured, or on transport failure, the collection is left
// untouched — the feed keeps showing whatever the engine already holds.
func (e *Engine) Refresh(ctx context.Context) error {
	if e.remote == nil {
		return nil
	}
	fetched, err := e.remote.ListReports(ctx)
	if err != nil {
		e.log.Warn("refresh: authority unreachable, keeping local collection", "error", err)
		return err
	}
	e.mu.Lock()
	e.items = fetched
	e.mu.Unlock()
	e.log.Debug("refresh: collection replaced from authority", "count", len(fetched))
	return nil
}

// prepend inserts r at the head of the collection (most-recent-first feed).
// Each accepted report is prepended independently, so overlapping
// submissions may interleave completions in either order without loss.
func (e *Engine) prepend(r models.Report) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.items = append([]models.Report{r}, e.items...)
}

func (e *Engine) nowMillis() int64 {
	return e.nowFunc().UnixMilli()
}

// managementSession reports whether sess may drive post-creation transitions.
func managementSession(sess *models.Session) bool {
	return sess != nil && sess.Role == models.RoleMunicipal
}
