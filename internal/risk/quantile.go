package risk

import (
	"fmt"
	"math"
	"sort"

	"github.com/auxcardio/mlcds/internal/model"
)

// Quantiles computes the 25th/50th/75th percentile thresholds from a cohort's
// scores using linear interpolation between closest ranks, matching how the
// published cut points were derived. Non-finite scores are rejected.
func Quantiles(scores []float64) (model.Thresholds, error) {
	if len(scores) == 0 {
		return model.Thresholds{}, fmt.Errorf("empty score cohort")
	}
	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	for _, s := range sorted {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return model.Thresholds{}, fmt.Errorf("non-finite score %v in cohort", s)
		}
	}
	sort.Float64s(sorted)

	return model.Thresholds{
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.50),
		Q3:     quantile(sorted, 0.75),
		Source: "reference",
	}, nil
}

// quantile interpolates linearly on a sorted slice.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
