package scoring

// Tier is the qualitative classification of a result.
type Tier string

const (
	TierCritical        Tier = "critical"
	TierHealthy         Tier = "healthy"
	TierWorkNeeded      Tier = "work-needed"
	TierSeriousConcerns Tier = "serious-concerns"
	TierDanger          Tier = "danger"
)

// Recommendation is the fixed guidance attached to a tier.
type Recommendation struct {
	Type    Tier   `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

var recommendations = map[Tier]Recommendation{
	TierCritical: {
		Type:    TierCritical,
		Title:   "Immediate Attention Required",
		Message: "Your relationship has critical issues that require immediate attention or intervention.",
	},
	TierHealthy: {
		Type:    TierHealthy,
		Title:   "Healthy Relationship",
		Message: "Your relationship shows strong signs of health and resilience.",
	},
	TierWorkNeeded: {
		Type:    TierWorkNeeded,
		Title:   "Work Needed",
		Message: "Your relationship has potential but needs attention in several areas.",
	},
	TierSeriousConcerns: {
		Type:    TierSeriousConcerns,
		Title:   "Serious Concerns",
		Message: "There are serious concerns about the health of your relationship.",
	},
	TierDanger: {
		Type:    TierDanger,
		Title:   "Relationship in Danger",
		Message: "Your relationship shows multiple signs of being unhealthy or unsustainable.",
	},
}

// RecommendationFor returns the fixed recommendation for a tier.
func RecommendationFor(t Tier) (Recommendation, bool) {
	r, ok := recommendations[t]
	return r, ok
}

// tierFor classifies an unrounded percentage.
func tierFor(pct float64) Tier {
	switch {
	case pct >= 80:
		return TierHealthy
	case pct >= 60:
		return TierWorkNeeded
	case pct >= 40:
		return TierSeriousConcerns
	default:
		return TierDanger
	}
}

// Band is the colour band used when listing past results.
type Band string

const (
	BandExcellent Band = "excellent"
	BandGood      Band = "good"
	BandAverage   Band = "average"
	BandNeedsWork Band = "needs-work"
)

// BandFor returns the display band for a rounded percentage.
func BandFor(percentage int) Band {
	switch {
	case percentage >= 80:
		return BandExcellent
	case percentage >= 60:
		return BandGood
	case percentage >= 40:
		return BandAverage
	default:
		return BandNeedsWork
	}
}
