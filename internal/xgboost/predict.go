package xgboost

import (
	"fmt"
	"math"
)

// Predict runs a single-row forward pass: every tree is walked to a leaf, leaf
// values are summed with the margin intercept, and the objective's inverse
// link is applied. Missing values (NaN) follow each node's default branch.
func (b *Booster) Predict(features []float64) (float64, error) {
	if len(features) != b.numFeatures {
		return 0, fmt.Errorf("feature vector has %d values, model expects %d", len(features), b.numFeatures)
	}
	margin := b.baseScore
	for i := range b.trees {
		margin += b.trees[i].walk(features)
	}
	return b.transform(margin), nil
}

// PredictMargin is Predict without the objective transform. The explainer
// operates in this space: SHAP contributions plus the expected value sum to
// the margin prediction.
func (b *Booster) PredictMargin(features []float64) (float64, error) {
	if len(features) != b.numFeatures {
		return 0, fmt.Errorf("feature vector has %d values, model expects %d", len(features), b.numFeatures)
	}
	margin := b.baseScore
	for i := range b.trees {
		margin += b.trees[i].walk(features)
	}
	return margin, nil
}

// walk descends from the root to a leaf for one row.
func (t *Tree) walk(features []float64) float64 {
	i := int32(0)
	for {
		n := &t.Nodes[i]
		if n.IsLeaf() {
			return n.LeafValue()
		}
		v := features[n.SplitIndex]
		switch {
		case math.IsNaN(v):
			if n.DefaultLeft {
				i = n.Left
			} else {
				i = n.Right
			}
		case v < n.SplitCond:
			i = n.Left
		default:
			i = n.Right
		}
	}
}

// transform applies the objective's inverse link to a margin value.
func (b *Booster) transform(margin float64) float64 {
	switch b.objective {
	case "binary:logistic", "reg:logistic":
		return sigmoid(margin)
	case "count:poisson", "reg:gamma", "reg:tweedie", "survival:cox":
		return math.Exp(margin)
	default:
		return margin
	}
}

// marginIntercept converts the stored base_score into margin space, mirroring
// the upstream ProbToMargin step applied at model load.
func marginIntercept(objective string, base float64) float64 {
	switch objective {
	case "binary:logistic", "reg:logistic":
		return math.Log(base / (1 - base))
	case "count:poisson", "reg:gamma", "reg:tweedie", "survival:cox":
		return math.Log(base)
	default:
		return base
	}
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
