// Package shap computes exact per-feature attributions for a loaded booster
// using the tree-path-dependent TreeSHAP recurrence. Attributions are in
// margin space: for any row, the contributions plus the expected value sum to
// the booster's margin prediction.
package shap

import (
	"fmt"

	"github.com/auxcardio/mlcds/internal/xgboost"
)

// TreeExplainer explains predictions of a single booster. It must be built
// from the same booster instance used for scoring so the two cannot drift.
// Immutable after construction; safe for concurrent use.
type TreeExplainer struct {
	booster  *xgboost.Booster
	expected float64
}

// NewTreeExplainer precomputes the expected margin (the cover-weighted mean
// prediction over the training cohort) and returns an explainer bound to b.
func NewTreeExplainer(b *xgboost.Booster) *TreeExplainer {
	expected := b.BaseScore()
	for _, t := range b.Trees() {
		expected += treeMean(&t, 0)
	}
	return &TreeExplainer{booster: b, expected: expected}
}

// ExpectedValue returns the baseline the attributions are measured against.
func (e *TreeExplainer) ExpectedValue() float64 { return e.expected }

// Shap returns one margin-space contribution per feature plus the expected
// value. The same feature vector passed to Predict must be passed here.
func (e *TreeExplainer) Shap(features []float64) ([]float64, float64, error) {
	if len(features) != e.booster.NumFeatures() {
		return nil, 0, fmt.Errorf("feature vector has %d values, model expects %d",
			len(features), e.booster.NumFeatures())
	}
	phi := make([]float64, len(features))
	trees := e.booster.Trees()
	for i := range trees {
		treeShap(&trees[i], features, phi)
	}
	return phi, e.expected, nil
}

// treeMean is the cover-weighted mean leaf value of the subtree at node i.
func treeMean(t *xgboost.Tree, i int32) float64 {
	n := &t.Nodes[i]
	if n.IsLeaf() {
		return n.LeafValue()
	}
	l, r := &t.Nodes[n.Left], &t.Nodes[n.Right]
	return (l.Cover*treeMean(t, n.Left) + r.Cover*treeMean(t, n.Right)) / n.Cover
}
