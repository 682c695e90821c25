package models

// Role defines the type of authenticated account.
type Role string

const (
	RoleUser      Role = "user"
	RoleMunicipal Role = "municipal"
)

// Category is the closed set of issue categories.
// IllegalDumping is selectable by a contributor but is never produced by the
// auto-detect heuristic, which routes dump-like text to WasteAccumulation.
type Category string

const (
	CategoryPothole     Category = "Pothole"
	CategoryFlooding    Category = "Flooding"
	CategoryWaste       Category = "Waste Accumulation"
	CategoryStreetlight Category = "Streetlight Outage"
	CategoryDumping     Category = "Illegal Dumping"
	CategoryDrain       Category = "Blocked Drain"
	CategoryOther       Category = "Other"
)

// Categories lists every valid category, in display order.
var Categories = []Category{
	CategoryPothole,
	CategoryFlooding,
	CategoryWaste,
	CategoryStreetlight,
	CategoryDumping,
	CategoryDrain,
	CategoryOther,
}

// ValidCategory reports whether c is a member of the closed enumeration.
func ValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Status represents the lifecycle state of a report.
// StatusSubmitted is a pre-classification placeholder used only for reports
// an authority accepts before scoring them; locally synthesized reports are
// created directly at the classifier's verdict.
type Status string

const (
	StatusSubmitted Status = "Submitted"
	StatusInReview  Status = "In Review"
	StatusValidated Status = "Validated"
	StatusResolved  Status = "Resolved"
	StatusRejected  Status = "Rejected"
)

// ValidStatus reports whether s is a member of the status enumeration.
func ValidStatus(s Status) bool {
	switch s {
	case StatusSubmitted, StatusInReview, StatusValidated, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// RiskTier is the triage tier assigned alongside a verdict.
type RiskTier string

const (
	RiskFraudulent RiskTier = "fraudulent"
	RiskHigh       RiskTier = "high"
	RiskStandard   RiskTier = "standard"
)

// DefaultContributor is the placeholder name used when a report is submitted
// without one. Leaderboard grouping coalesces blank names to this value.
const DefaultContributor = "Citizen"

// Location is an optional structured coordinate. Lat and Lng are nullable
// independently; a report may carry only a free-text address, or nothing.
type Location struct {
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
	Address string   `json:"address,omitempty"`
}

// Report is one citizen-submitted issue record.
//
// PointsAwarded and the initial Status are set together at creation time, by
// either the remote authority or the local classifier, and are never
// recomputed afterward — later status transitions are management workflow and
// do not touch the points ledger.
type Report struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Category      Category `json:"category"`
	Location      Location `json:"location"`
	ImageURL      string   `json:"imageUrl,omitempty"`
	Status        Status   `json:"status"`
	PointsAwarded int      `json:"pointsAwarded"`
	// Timestamp is the creation instant in epoch milliseconds.
	Timestamp int64 `json:"timestamp"`
}

// Session is the authenticated state the engine consumes. The engine never
// inspects Token beyond presence; it is an opaque credential minted by the
// remote authority or, offline, by the local issuer.
type Session struct {
	Role  Role   `json:"role"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Token string `json:"token,omitempty"`
}

// LeaderboardEntry is one derived row of the contributor ranking. It is
// recomputed from the report collection on every read, never stored.
type LeaderboardEntry struct {
	Name    string `json:"name"`
	Points  int    `json:"points"`
	Reports int    `json:"reports"`
}

// ---- Request / Response DTOs ----

// NewReport is the raw submission input. Category may be blank, meaning the
// classifier's auto-detected category is used.
type NewReport struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Location    Location `json:"location"`
	ImageURL    string   `json:"imageUrl,omitempty"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

type StatusUpdateRequest struct {
	Status Status `json:"status"`
}

type CleanupRequest struct {
	Days int `json:"days"`
}

type NavigateRequest struct {
	Destination string `json:"destination"`
}

type NavigateResponse struct {
	Active     string `json:"active"`
	PromptOpen bool   `json:"prompt_open"`
	PromptMode Role   `json:"prompt_mode,omitempty"`
}
