// Package classify implements the heuristic triage rules applied to a new
// report's description: a category detector and a fraud/risk scorer.
//
// Both are pure, deterministic, case-insensitive substring matchers and are
// deliberately separate functions — the submission form previews the category
// live as the citizen types, long before a verdict is assigned. Neither
// function can fail: unmatched text falls through to the defaults.
package classify

import (
	"strings"

	"github.com/civicsense/backend/internal/models"
)

// Point awards by triage outcome. Set once at creation and never recomputed.
const (
	PointsHighRisk = 20
	PointsStandard = 10
	PointsFraud    = -25
)

// fraudTerms mark a report as a likely prank or test submission. Fraud takes
// precedence over every other signal: a description containing both a fraud
// term and a high-risk term is still rejected.
var fraudTerms = []string{"prank", "lol", "fake", "just testing"}

// highRiskTerms escalate a report straight to Validated. "electri" is a
// prefix on purpose — it matches electric, electrical, electricity.
var highRiskTerms = []string{"flood", "bridge", "collapse", "electri", "fire", "gas", "sinkhole"}

// categoryRules are evaluated in order; the first group with a matching term
// wins. No group maps to Illegal Dumping — dump-like text lands in Waste
// Accumulation, and Illegal Dumping is only ever chosen manually.
var categoryRules = []struct {
	category models.Category
	terms    []string
}{
	{models.CategoryPothole, []string{"pothole", "road", "asphalt", "hole"}},
	{models.CategoryFlooding, []string{"flood", "waterlogging", "inundat"}},
	{models.CategoryWaste, []string{"waste", "garbage", "trash", "litter", "dump"}},
	{models.CategoryStreetlight, []string{"light", "streetlight", "lamp", "bulb"}},
	{models.CategoryDrain, []string{"drain", "sewer", "blocked"}},
}

// Result is the full triage decision for one description.
type Result struct {
	Category models.Category
	Tier     models.RiskTier
	Verdict  models.Status
	Points   int
}

// Categorize assigns a category to the description. Unmatched text returns
// CategoryOther.
func Categorize(description string) models.Category {
	d := strings.ToLower(description)
	for _, rule := range categoryRules {
		if containsAny(d, rule.terms) {
			return rule.category
		}
	}
	return models.CategoryOther
}

// Score assigns the validity verdict, point award and risk tier.
//
// Precedence is load-bearing: fraud first, then high-risk, then the default.
// The returned verdict becomes the report's initial status on the local path.
func Score(description string) (verdict models.Status, points int, tier models.RiskTier) {
	d := strings.ToLower(description)
	switch {
	case containsAny(d, fraudTerms):
		return models.StatusRejected, PointsFraud, models.RiskFraudulent
	case containsAny(d, highRiskTerms):
		return models.StatusValidated, PointsHighRisk, models.RiskHigh
	default:
		return models.StatusInReview, PointsStandard, models.RiskStandard
	}
}

// Classify combines Categorize and Score into one triage decision.
func Classify(description string) Result {
	verdict, points, tier := Score(description)
	return Result{
		Category: Categorize(description),
		Tier:     tier,
		Verdict:  verdict,
		Points:   points,
	}
}

func containsAny(haystack string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(haystack, t) {
			return true
		}
	}
	return false
}
