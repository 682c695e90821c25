package reports

import (
	"context"

	"github.com/civicsense/backend/internal/models"
)

// ChangeStatus drives a post-creation lifecycle transition.
//
// With an authority configured the PATCH goes out first and the local copy
// is only touched after an affirmative acknowledgment — optimistic mutation
// without rollback, so a failed call leaves the collection exactly as it
// was. With no authority the in-memory reducer applies the change directly.
func (e *Engine) ChangeStatus(ctx context.Context, sess *models.Session, id string, next models.Status) error {
	if !managementSession(sess) {
		return ErrNotAllowed
	}
	if !models.ValidStatus(next) {
		return ErrBadTransition
	}

	current, ok := e.statusOf(id)
	if !ok {
		return ErrNotFound
	}
	if !CanTransition(current, next) {
		return ErrBadTransition
	}

	if e.remote != nil {
		if err := e.remote.UpdateStatus(ctx, sess.Token, id, next); err != nil {
			e.log.Warn("change status: authority refused or unreachable, local copy unmodified",
				"id", id, "error", err)
			return err
		}
	}

	e.mu.Lock()
	for i := range e.items {
		if e.items[i].ID == id {
			e.items[i].Status = next
			break
		}
	}
	e.mu.Unlock()
	e.log.Debug("change status: committed", "id", id, "from", current, "to", next)
	return nil
}

// Remove deletes a report from the working collection. Removing an id that
// is not present is a no-op, not an error. With an authority configured the
// DELETE must be acknowledged before the local copy is dropped.
func (e *Engine) Remove(ctx context.Context, sess *models.Session, id string) error {
	if !managementSession(sess) {
		return ErrNotAllowed
	}

	if e.remote != nil {
		if err := e.remote.DeleteReport(ctx, sess.Token, id); err != nil {
			e.log.Warn("remove: authority refused or unreachable, local copy unmodified",
				"id", id, "error", err)
			return err
		}
	}

	e.mu.Lock()
	kept := e.items[:0]
	for _, r := range e.items {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	e.items = kept
	e.mu.Unlock()
	return nil
}

func (e *Engine) statusOf(id string) (models.Status, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, r := range e.items {
		if r.ID == id {
			return r.Status, true
		}
	}
	return "", false
}
