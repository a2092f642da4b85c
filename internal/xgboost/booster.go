// Package xgboost loads a serialized XGBoost JSON booster and runs single-row
// inference over it. The artifact is trained and exported elsewhere; this
// package only consumes the documented save format and is read-only after Load.
package xgboost

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Node is one decision or leaf node of a regression tree.
type Node struct {
	Left        int32   // -1 for leaves
	Right       int32
	SplitIndex  int     // feature index tested at this node
	SplitCond   float64 // threshold; holds the leaf value for leaves
	DefaultLeft bool    // branch taken for missing (NaN) values
	Cover       float64 // sum of hessians of training rows through this node
}

// IsLeaf reports whether the node is terminal.
func (n *Node) IsLeaf() bool { return n.Left < 0 }

// LeafValue returns the node's output value; only meaningful for leaves.
func (n *Node) LeafValue() float64 { return n.SplitCond }

// Tree is one member of the boosted ensemble.
type Tree struct {
	Nodes []Node
}

// Booster is a loaded tree ensemble. Immutable after Load; safe for
// concurrent use.
type Booster struct {
	featureNames []string
	trees        []Tree
	objective    string
	baseScore    float64 // intercept in margin space
	numFeatures  int
}

// On-disk layout of the XGBoost JSON save format (the subset this package
// consumes). Numeric model params are serialized as strings upstream.
type boosterJSON struct {
	Version []int       `json:"version"`
	Learner learnerJSON `json:"learner"`
}

type learnerJSON struct {
	FeatureNames    []string      `json:"feature_names"`
	GradientBooster gbtreeJSON    `json:"gradient_booster"`
	ModelParam      modelParam    `json:"learner_model_param"`
	Objective       objectiveJSON `json:"objective"`
}

type modelParam struct {
	BaseScore  string `json:"base_score"`
	NumFeature string `json:"num_feature"`
}

type objectiveJSON struct {
	Name string `json:"name"`
}

type gbtreeJSON struct {
	Model gbtreeModel `json:"model"`
}

type gbtreeModel struct {
	Trees []treeJSON `json:"trees"`
}

type treeJSON struct {
	LeftChildren    []int32   `json:"left_children"`
	RightChildren   []int32   `json:"right_children"`
	SplitIndices    []uint32  `json:"split_indices"`
	SplitConditions []float64 `json:"split_conditions"`
	DefaultLeft     []int     `json:"default_left"`
	SumHessian      []float64 `json:"sum_hessian"`
}

// Load reads and validates a serialized booster from path. Any structural
// problem is a load error; there is no retry, callers treat it as fatal for
// the scoring path.
func Load(path string) (*Booster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}
	return Parse(data)
}

// Parse decodes a serialized booster from raw JSON bytes.
func Parse(data []byte) (*Booster, error) {
	var raw boosterJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse model artifact: %w", err)
	}

	if len(raw.Learner.FeatureNames) == 0 {
		return nil, fmt.Errorf("model artifact declares no feature names")
	}
	if len(raw.Learner.GradientBooster.Model.Trees) == 0 {
		return nil, fmt.Errorf("model artifact contains no trees")
	}

	numFeatures := len(raw.Learner.FeatureNames)
	if raw.Learner.ModelParam.NumFeature != "" {
		n, err := strconv.Atoi(raw.Learner.ModelParam.NumFeature)
		if err != nil {
			return nil, fmt.Errorf("parse num_feature %q: %w", raw.Learner.ModelParam.NumFeature, err)
		}
		if n != numFeatures {
			return nil, fmt.Errorf("num_feature %d disagrees with %d declared feature names", n, numFeatures)
		}
	}

	baseScore := 0.5
	if raw.Learner.ModelParam.BaseScore != "" {
		v, err := strconv.ParseFloat(raw.Learner.ModelParam.BaseScore, 64)
		if err != nil {
			return nil, fmt.Errorf("parse base_score %q: %w", raw.Learner.ModelParam.BaseScore, err)
		}
		baseScore = v
	}

	objective := raw.Learner.Objective.Name

	b := &Booster{
		featureNames: raw.Learner.FeatureNames,
		objective:    objective,
		baseScore:    marginIntercept(objective, baseScore),
		numFeatures:  numFeatures,
		trees:        make([]Tree, 0, len(raw.Learner.GradientBooster.Model.Trees)),
	}

	for ti, tj := range raw.Learner.GradientBooster.Model.Trees {
		tree, err := buildTree(tj, numFeatures)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", ti, err)
		}
		b.trees = append(b.trees, tree)
	}

	return b, nil
}

func buildTree(tj treeJSON, numFeatures int) (Tree, error) {
	n := len(tj.LeftChildren)
	if n == 0 {
		return Tree{}, fmt.Errorf("empty tree")
	}
	for name, l := range map[string]int{
		"right_children":   len(tj.RightChildren),
		"split_indices":    len(tj.SplitIndices),
		"split_conditions": len(tj.SplitConditions),
		"default_left":     len(tj.DefaultLeft),
		"sum_hessian":      len(tj.SumHessian),
	} {
		if l != n {
			return Tree{}, fmt.Errorf("%s has %d entries, expected %d", name, l, n)
		}
	}

	nodes := make([]Node, n)
	for i := 0; i < n; i++ {
		left, right := tj.LeftChildren[i], tj.RightChildren[i]
		if left >= int32(n) || right >= int32(n) {
			return Tree{}, fmt.Errorf("node %d: child index out of range", i)
		}
		if left >= 0 && int(tj.SplitIndices[i]) >= numFeatures {
			return Tree{}, fmt.Errorf("node %d: split index %d out of range", i, tj.SplitIndices[i])
		}
		nodes[i] = Node{
			Left:        left,
			Right:       right,
			SplitIndex:  int(tj.SplitIndices[i]),
			SplitCond:   tj.SplitConditions[i],
			DefaultLeft: tj.DefaultLeft[i] != 0,
			Cover:       tj.SumHessian[i],
		}
	}
	return Tree{Nodes: nodes}, nil
}

// FeatureNames returns the ordered feature list the model was trained with.
// Callers must not mutate the returned slice.
func (b *Booster) FeatureNames() []string { return b.featureNames }

// NumFeatures returns the expected feature vector length.
func (b *Booster) NumFeatures() int { return b.numFeatures }

// NumTrees returns the ensemble size.
func (b *Booster) NumTrees() int { return len(b.trees) }

// Objective returns the training objective recorded in the artifact.
func (b *Booster) Objective() string { return b.objective }

// Trees exposes the ensemble for the explainer, which walks the same nodes
// the predictor does. Callers must not mutate.
func (b *Booster) Trees() []Tree { return b.trees }

// BaseScore returns the model intercept in margin space.
func (b *Booster) BaseScore() float64 { return b.baseScore }
