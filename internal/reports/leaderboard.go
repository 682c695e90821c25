package reports

import (
	"sort"

	"github.com/civicsense/backend/internal/models"
)

// Aggregate derives one leaderboard entry per distinct contributor name in
// the given collection. Pure and total: it is recomputed from the full
// collection on every call rather than maintained incrementally, so deleting
// or sweeping reports can never leave the ranking drifted from its source.
//
// Grouping is by exact string match on the raw name — "Jane" and "jane " are
// distinct contributors. That mirrors the observed product behavior and is a
// known limitation, not a bug to fix here. Blank names coalesce to the
// default placeholder.
//
// Output is sorted by name so equal inputs produce equal outputs regardless
// of collection order. Ranking by points is a display concern — see Top.
func Aggregate(items []models.Report) []models.LeaderboardEntry {
	byName := make(map[string]*models.LeaderboardEntry)
	for _, r := range items {
		name := r.Name
		if name == "" {
			name = models.DefaultContributor
		}
		entry, ok := byName[name]
		if !ok {
			entry = &models.LeaderboardEntry{Name: name}
			byName[name] = entry
		}
		entry.Points += r.PointsAwarded
		entry.Reports++
	}

	out := make([]models.LeaderboardEntry, 0, len(byName))
	for _, entry := range byName {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Top sorts entries by descending points and truncates to at most n. This is
// the display layer on top of Aggregate, kept out of the aggregation
// contract itself. The input slice is not modified.
func Top(entries []models.LeaderboardEntry, n int) []models.LeaderboardEntry {
	ranked := make([]models.LeaderboardEntry, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Points > ranked[j].Points })
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Leaderboard is the engine-level convenience: aggregate the current
// collection and return the ranked top n.
func (e *Engine) Leaderboard(n int) []models.LeaderboardEntry {
	return Top(Aggregate(e.List()), n)
}
