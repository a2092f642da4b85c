// Package risk maps ML-CDS scores to risk tiers and derives the quartile
// thresholds that partition the score line.
package risk

import "github.com/auxcardio/mlcds/internal/model"

// DefaultThresholds are the score quartiles of the derivation cohort, as
// published with the model. Used when no reference cohort file is configured.
var DefaultThresholds = model.Thresholds{
	Q1:     0.5557,
	Median: 0.9485,
	Q3:     1.7101,
	Source: "fixed",
}

// Classify maps a score to one of the four tiers. Upper bounds are inclusive
// to the lower tier: a score exactly on a cut point takes the lower-risk
// class. Total over all finite scores.
func Classify(score float64, th model.Thresholds) model.Tier {
	switch {
	case score <= th.Q1:
		return model.TierLow
	case score <= th.Median:
		return model.TierMediumLow
	case score <= th.Q3:
		return model.TierMediumHigh
	default:
		return model.TierHigh
	}
}

// TierRange describes one tier's score interval for legend rendering.
type TierRange struct {
	Tier  model.Tier `json:"tier"`
	Label string     `json:"label"`
	Min   *float64   `json:"min,omitempty"` // exclusive; nil for the lowest tier
	Max   *float64   `json:"max,omitempty"` // inclusive; nil for the highest tier
}

// Legend returns the four tier intervals implied by th, in ascending order.
func Legend(th model.Thresholds) []TierRange {
	q1, med, q3 := th.Q1, th.Median, th.Q3
	return []TierRange{
		{Tier: model.TierLow, Label: model.TierLow.Label(), Max: &q1},
		{Tier: model.TierMediumLow, Label: model.TierMediumLow.Label(), Min: &q1, Max: &med},
		{Tier: model.TierMediumHigh, Label: model.TierMediumHigh.Label(), Min: &med, Max: &q3},
		{Tier: model.TierHigh, Label: model.TierHigh.Label(), Min: &q3},
	}
}
