package risk

import (
	"math"
	"testing"
)

func TestQuantiles_LinearInterpolation(t *testing.T) {
	th, err := Quantiles([]float64{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("Quantiles: %v", err)
	}
	if math.Abs(th.Q1-1.75) > 1e-12 {
		t.Errorf("Q1 = %v, want 1.75", th.Q1)
	}
	if math.Abs(th.Median-2.5) > 1e-12 {
		t.Errorf("Median = %v, want 2.5", th.Median)
	}
	if math.Abs(th.Q3-3.25) > 1e-12 {
		t.Errorf("Q3 = %v, want 3.25", th.Q3)
	}
	if th.Source != "reference" {
		t.Errorf("source = %q, want reference", th.Source)
	}
}

func TestQuantiles_UnsortedInputUntouched(t *testing.T) {
	scores := []float64{4, 1, 3, 2}
	th, err := Quantiles(scores)
	if err != nil {
		t.Fatalf("Quantiles: %v", err)
	}
	if th.Median != 2.5 {
		t.Errorf("Median = %v, want 2.5", th.Median)
	}
	// Input slice must not be reordered.
	if scores[0] != 4 || scores[3] != 2 {
		t.Errorf("input mutated: %v", scores)
	}
}

func TestQuantiles_OddCount(t *testing.T) {
	th, err := Quantiles([]float64{0.2, 0.9, 1.6})
	if err != nil {
		t.Fatalf("Quantiles: %v", err)
	}
	if th.Median != 0.9 {
		t.Errorf("Median = %v, want 0.9", th.Median)
	}
	if math.Abs(th.Q1-0.55) > 1e-12 {
		t.Errorf("Q1 = %v, want 0.55", th.Q1)
	}
}

func TestQuantiles_SingleScore(t *testing.T) {
	th, err := Quantiles([]float64{1.2})
	if err != nil {
		t.Fatalf("Quantiles: %v", err)
	}
	if th.Q1 != 1.2 || th.Median != 1.2 || th.Q3 != 1.2 {
		t.Errorf("degenerate cohort should collapse thresholds: %+v", th)
	}
}

func TestQuantiles_Empty(t *testing.T) {
	if _, err := Quantiles(nil); err == nil {
		t.Fatal("expected error for empty cohort")
	}
}

func TestQuantiles_NonFinite(t *testing.T) {
	if _, err := Quantiles([]float64{1, math.NaN()}); err == nil {
		t.Fatal("expected error for NaN score")
	}
	if _, err := Quantiles([]float64{1, math.Inf(1)}); err == nil {
		t.Fatal("expected error for infinite score")
	}
}
