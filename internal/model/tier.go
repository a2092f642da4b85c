package model

// Tier is one of the four ordered risk classes a score falls into.
type Tier string

const (
	TierLow        Tier = "low"
	TierMediumLow  Tier = "medium_low"
	TierMediumHigh Tier = "medium_high"
	TierHigh       Tier = "high"
)

// AllTiers lists the tiers in ascending risk order.
var AllTiers = []Tier{TierLow, TierMediumLow, TierMediumHigh, TierHigh}

// Label returns the clinician-facing name for the tier.
func (t Tier) Label() string {
	switch t {
	case TierLow:
		return "Low"
	case TierMediumLow:
		return "Medium-Low"
	case TierMediumHigh:
		return "Medium-High"
	case TierHigh:
		return "High"
	}
	return string(t)
}

// Thresholds are the three quartile cut points partitioning the score line
// into the four tiers. Loaded once at startup and immutable thereafter.
type Thresholds struct {
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Source string  `json:"source"` // "fixed" or "reference"
}
