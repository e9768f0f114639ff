package ml

import (
	"errors"
	"math/rand"
	"sort"
)

// RegressionTree is a CART-style regression tree splitting on variance
// reduction. Leaves predict the mean target of their training samples.
type RegressionTree struct {
	// Hyperparameters / options
	MaxDepth        int // maximum depth (root depth = 0). 0 => no limit
	MinSamplesSplit int // minimum samples to attempt a split
	MinSamplesLeaf  int // minimum samples required in each leaf
	MaxFeatures     int // 0 => consider all features at every split
	RandomState     int64

	Root *TreeNode
}

// TreeNode holds one node of a fitted tree. Fields are exported so the gob
// encoder can persist the whole structure.
type TreeNode struct {
	Leaf      bool
	Feature   int
	Threshold float64 // x <= Threshold goes left
	Left      *TreeNode
	Right     *TreeNode
	Value     float64 // leaf prediction: mean target
	N         int
}

// TreeOption is functional config for RegressionTree.
type TreeOption func(*RegressionTree)

func WithMaxDepth(d int) TreeOption        { return func(t *RegressionTree) { t.MaxDepth = d } }
func WithMinSamplesSplit(n int) TreeOption { return func(t *RegressionTree) { t.MinSamplesSplit = n } }
func WithMinSamplesLeaf(n int) TreeOption  { return func(t *RegressionTree) { t.MinSamplesLeaf = n } }
func WithMaxFeatures(k int) TreeOption     { return func(t *RegressionTree) { t.MaxFeatures = k } }
func WithTreeRandomState(seed int64) TreeOption {
	return func(t *RegressionTree) { t.RandomState = seed }
}

// NewRegressionTree returns a tree with sensible defaults.
func NewRegressionTree(opts ...TreeOption) *RegressionTree {
	t := &RegressionTree{
		MaxDepth:        0,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		MaxFeatures:     0,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Fit trains the tree on the samples selected by idx. Index-based sampling
// lets the forest bootstrap without copying the data.
func (t *RegressionTree) Fit(X [][]float64, y []float64, idx []int) error {
	if len(X) == 0 {
		return errors.New("tree: empty X")
	}
	if len(y) != len(X) {
		return errors.New("tree: X and y length mismatch")
	}
	if len(idx) == 0 {
		idx = make([]int, len(X))
		for i := range idx {
			idx[i] = i
		}
	}
	p := len(X[0])
	rnd := rand.New(rand.NewSource(t.RandomState))
	t.Root = t.buildNode(X, y, idx, 0, p, rnd)
	return nil
}

// PredictRow walks the tree for a single feature vector.
func (t *RegressionTree) PredictRow(x []float64) float64 {
	node := t.Root
	if node == nil {
		return 0
	}
	for !node.Leaf {
		if x[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Value
}

// splitCandidate is the best split found for one feature.
type splitCandidate struct {
	gain      float64
	feature   int
	threshold float64
}

func (t *RegressionTree) buildNode(X [][]float64, y []float64, idx []int, depth, p int, rnd *rand.Rand) *TreeNode {
	node := &TreeNode{N: len(idx)}

	sum, sqSum := 0.0, 0.0
	for _, ii := range idx {
		sum += y[ii]
		sqSum += y[ii] * y[ii]
	}
	n := float64(len(idx))
	node.Value = sum / n
	parentSSE := sqSum - sum*sum/n

	if parentSSE <= 0 || len(idx) < t.MinSamplesSplit {
		node.Leaf = true
		return node
	}
	if t.MaxDepth > 0 && depth >= t.MaxDepth {
		node.Leaf = true
		return node
	}

	// Determine features to try. Subsampling shuffles then truncates, like
	// the forest's per-tree bootstrap this stays on the node's own rand.
	featIndices := make([]int, p)
	for j := 0; j < p; j++ {
		featIndices[j] = j
	}
	if t.MaxFeatures > 0 && t.MaxFeatures < p {
		for i := 0; i < p; i++ {
			j := i + rnd.Intn(p-i)
			featIndices[i], featIndices[j] = featIndices[j], featIndices[i]
		}
		featIndices = featIndices[:t.MaxFeatures]
		sort.Ints(featIndices)
	}

	best := splitCandidate{feature: -1}
	pairs := make([]pair, 0, len(idx))
	for _, f := range featIndices {
		pairs = pairs[:0]
		for _, ii := range idx {
			pairs = append(pairs, pair{X[ii][f], ii})
		}
		cand := bestSplitForFeature(pairs, y, f, parentSSE, t.MinSamplesLeaf)
		if cand.feature != -1 && cand.gain > best.gain {
			best = cand
		}
	}

	if best.feature == -1 || best.gain <= 0 {
		node.Leaf = true
		return node
	}

	leftIdx := make([]int, 0, len(idx))
	rightIdx := make([]int, 0, len(idx))
	for _, ii := range idx {
		if X[ii][best.feature] <= best.threshold {
			leftIdx = append(leftIdx, ii)
		} else {
			rightIdx = append(rightIdx, ii)
		}
	}

	node.Feature = best.feature
	node.Threshold = best.threshold
	node.Left = t.buildNode(X, y, leftIdx, depth+1, p, rnd)
	node.Right = t.buildNode(X, y, rightIdx, depth+1, p, rnd)
	return node
}

// pair is a feature value together with its original sample index.
type pair struct {
	v float64
	i int
}

// bestSplitForFeature scans sorted values with running sums, trying the
// midpoint between every pair of distinct adjacent values.
func bestSplitForFeature(pairs []pair, y []float64, f int, parentSSE float64, minLeaf int) splitCandidate {
	result := splitCandidate{feature: -1}
	sort.Slice(pairs, func(a, b int) bool { return pairs[a].v < pairs[b].v })

	n := len(pairs)
	totalSum, totalSq := 0.0, 0.0
	for _, pv := range pairs {
		totalSum += y[pv.i]
		totalSq += y[pv.i] * y[pv.i]
	}

	leftSum, leftSq := 0.0, 0.0
	for s := 1; s < n; s++ {
		yi := y[pairs[s-1].i]
		leftSum += yi
		leftSq += yi * yi
		if pairs[s].v == pairs[s-1].v {
			continue
		}
		nL, nR := s, n-s
		if nL < minLeaf || nR < minLeaf {
			continue
		}
		rightSum := totalSum - leftSum
		rightSq := totalSq - leftSq
		sseL := leftSq - leftSum*leftSum/float64(nL)
		sseR := rightSq - rightSum*rightSum/float64(nR)
		gain := parentSSE - (sseL + sseR)
		if gain > result.gain {
			result = splitCandidate{
				gain:      gain,
				feature:   f,
				threshold: (pairs[s-1].v + pairs[s].v) / 2,
			}
		}
	}
	return result
}
