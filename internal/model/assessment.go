package model

import "time"

// Contribution is one feature's share of the explanation for a score.
type Contribution struct {
	Feature string  `json:"feature"`
	Label   string  `json:"label"`
	Value   float64 `json:"value"` // the input value the model saw
	Shap    float64 `json:"shap"`  // margin-space attribution
}

// Assessment is the full result of scoring one patient: the score itself, its
// risk tier, and the per-feature attribution that explains it. Contributions
// are sorted by absolute attribution, largest first.
type Assessment struct {
	Score         float64        `json:"score"`
	Tier          Tier           `json:"tier"`
	TierLabel     string         `json:"tier_label"`
	BaseValue     float64        `json:"base_value"` // expected margin over the training cohort
	Contributions []Contribution `json:"contributions"`
	Warnings      []string       `json:"warnings,omitempty"`
	SchemaVersion string         `json:"schema_version"`
	Thresholds    Thresholds     `json:"thresholds"`
	Elapsed       time.Duration  `json:"-"`
}
