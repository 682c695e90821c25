package reports

import (
	"github.com/civicsense/backend/internal/models"
)

// DefaultRetentionDays is the sweep window when the caller does not supply
// one.
const DefaultRetentionDays = 7

const millisPerDay = 24 * 60 * 60 * 1000

// Sweep removes Resolved reports strictly older than maxAgeDays from the
// working collection and returns how many were removed.
//
// The cutoff is exclusive: a report whose timestamp equals now−maxAgeDays
// exactly is retained; one millisecond older is removed. Reports in any
// other status are never swept, regardless of age. Sweep is management
// triggered, synchronous and idempotent — rerunning it against its own
// output with the same clock removes nothing.
func (e *Engine) Sweep(maxAgeDays int) int {
	if maxAgeDays <= 0 {
		maxAgeDays = DefaultRetentionDays
	}
	cutoff := e.nowMillis() - int64(maxAgeDays)*millisPerDay

	e.mu.Lock()
	defer e.mu.Unlock()
	kept := e.items[:0]
	removed := 0
	for _, r := range e.items {
		if r.Status == models.StatusResolved && r.Timestamp < cutoff {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	e.items = kept
	if removed > 0 {
		e.log.Debug("sweep: removed aged-out resolved reports", "removed", removed, "max_age_days", maxAgeDays)
	}
	return removed
}
