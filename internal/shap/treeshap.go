package shap

import (
	"math"

	"github.com/auxcardio/mlcds/internal/xgboost"
)

// pathElem is one entry of the unique feature path maintained by the TreeSHAP
// recursion: the fraction of "background" (zero) and "observed" (one) subsets
// that flow down this path, and the permutation weight accumulated so far.
type pathElem struct {
	feature int
	zero    float64
	one     float64
	pweight float64
}

// treeShap accumulates one tree's contributions for row x into phi.
func treeShap(t *xgboost.Tree, x []float64, phi []float64) {
	recurse(t, x, phi, 0, nil, 1, 1, -1)
}

func recurse(t *xgboost.Tree, x []float64, phi []float64, node int32, parent []pathElem, pz, po float64, pf int) {
	path := extendPath(parent, pz, po, pf)
	n := &t.Nodes[node]

	if n.IsLeaf() {
		for i := 1; i < len(path); i++ {
			w := unwoundPathSum(path, i)
			phi[path[i].feature] += w * (path[i].one - path[i].zero) * n.LeafValue()
		}
		return
	}

	hot, cold := branches(n, x)

	// If this feature already appears on the path, its previous fractions are
	// folded into the new ones and the stale entry is unwound.
	iz, io := 1.0, 1.0
	if k := findFeature(path, n.SplitIndex); k >= 0 {
		iz, io = path[k].zero, path[k].one
		path = unwindPath(path, k)
	}

	recurse(t, x, phi, hot, path, iz*t.Nodes[hot].Cover/n.Cover, io, n.SplitIndex)
	recurse(t, x, phi, cold, path, iz*t.Nodes[cold].Cover/n.Cover, 0, n.SplitIndex)
}

// branches returns (hot, cold): the child x descends into and the other one.
// Missing values follow the node's default branch, as in prediction.
func branches(n *xgboost.Node, x []float64) (int32, int32) {
	v := x[n.SplitIndex]
	switch {
	case math.IsNaN(v):
		if n.DefaultLeft {
			return n.Left, n.Right
		}
		return n.Right, n.Left
	case v < n.SplitCond:
		return n.Left, n.Right
	default:
		return n.Right, n.Left
	}
}

func findFeature(path []pathElem, feature int) int {
	// Element 0 is the root sentinel (feature -1), never a real split.
	for i := 1; i < len(path); i++ {
		if path[i].feature == feature {
			return i
		}
	}
	return -1
}

// extendPath returns a copy of path with one more element, updating the
// permutation weights for all subset sizes.
func extendPath(path []pathElem, pz, po float64, pf int) []pathElem {
	l := len(path)
	out := make([]pathElem, l+1)
	copy(out, path)
	w := 0.0
	if l == 0 {
		w = 1.0
	}
	out[l] = pathElem{feature: pf, zero: pz, one: po, pweight: w}
	for i := l - 1; i >= 0; i-- {
		out[i+1].pweight += po * out[i].pweight * float64(i+1) / float64(l+1)
		out[i].pweight = pz * out[i].pweight * float64(l-i) / float64(l+1)
	}
	return out
}

// unwindPath returns a copy of path with element k removed and the
// permutation weights restored to their pre-extend values.
func unwindPath(path []pathElem, k int) []pathElem {
	l := len(path) - 1
	one, zero := path[k].one, path[k].zero

	weights := make([]float64, l)
	nextOne := path[l].pweight
	for i := l - 1; i >= 0; i-- {
		if one != 0 {
			tmp := nextOne * float64(l+1) / (float64(i+1) * one)
			weights[i] = tmp
			nextOne = path[i].pweight - tmp*zero*float64(l-i)/float64(l+1)
		} else {
			weights[i] = path[i].pweight * float64(l+1) / (zero * float64(l-i))
		}
	}

	out := make([]pathElem, l)
	for i := 0; i < l; i++ {
		src := i
		if i >= k {
			src = i + 1
		}
		out[i] = pathElem{
			feature: path[src].feature,
			zero:    path[src].zero,
			one:     path[src].one,
			pweight: weights[i],
		}
	}
	return out
}

// unwoundPathSum is the total permutation weight the path would have if
// element k were removed, without actually removing it.
func unwoundPathSum(path []pathElem, k int) float64 {
	l := len(path) - 1
	one, zero := path[k].one, path[k].zero
	nextOne := path[l].pweight
	total := 0.0
	for i := l - 1; i >= 0; i-- {
		if one != 0 {
			tmp := nextOne * float64(l+1) / (float64(i+1) * one)
			total += tmp
			nextOne = path[i].pweight - tmp*zero*float64(l-i)/float64(l+1)
		} else if zero != 0 {
			total += path[i].pweight * float64(l+1) / (zero * float64(l-i))
		}
	}
	return total
}
