package reports

import "github.com/civicsense/backend/internal/models"

// transitions is the full lifecycle table. Submitted is the placeholder
// state an authority may hold a report in before scoring; the classifier (or
// the authority) moves it to one of the three verdict states automatically.
// Everything after that is an authenticated management action. Resolved and
// Rejected are terminal — no transition leaves them.
var transitions = map[models.Status][]models.Status{
	models.StatusSubmitted: {models.StatusInReview, models.StatusValidated, models.StatusRejected},
	models.StatusInReview:  {models.StatusValidated, models.StatusResolved, models.StatusRejected},
	models.StatusValidated: {models.StatusResolved, models.StatusRejected},
	models.StatusResolved:  {},
	models.StatusRejected:  {},
}

// CanTransition reports whether a report may move from one status to another.
func CanTransition(from, to models.Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition is defined out of s.
func Terminal(s models.Status) bool {
	return len(transitions[s]) == 0
}
