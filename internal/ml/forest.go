package ml

import (
	"errors"
	"math/rand"
	"sync"
)

// RandomForestRegressor averages an ensemble of regression trees fitted on
// bootstrap samples. With a fixed RandomState the fit is fully
// deterministic: each tree derives its own seed from the base seed and its
// position in the ensemble.
type RandomForestRegressor struct {
	// Hyperparameters / options
	NEstimators     int
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
	MaxFeatures     int
	Bootstrap       bool
	RandomState     int64

	Trees []*RegressionTree
}

// ForestOption is functional config for RandomForestRegressor.
type ForestOption func(*RandomForestRegressor)

func WithNEstimators(n int) ForestOption {
	return func(rf *RandomForestRegressor) { rf.NEstimators = n }
}
func WithBootstrap(b bool) ForestOption {
	return func(rf *RandomForestRegressor) { rf.Bootstrap = b }
}
func WithRandomState(seed int64) ForestOption {
	return func(rf *RandomForestRegressor) { rf.RandomState = seed }
}
func WithForestMaxDepth(d int) ForestOption {
	return func(rf *RandomForestRegressor) { rf.MaxDepth = d }
}
func WithForestMaxFeatures(k int) ForestOption {
	return func(rf *RandomForestRegressor) { rf.MaxFeatures = k }
}

// NewRandomForestRegressor initializes the forest with sensible defaults.
func NewRandomForestRegressor(opts ...ForestOption) *RandomForestRegressor {
	rf := &RandomForestRegressor{
		NEstimators:     100,
		MaxDepth:        0,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
		MaxFeatures:     0,
		Bootstrap:       true,
	}
	for _, o := range opts {
		o(rf)
	}
	return rf
}

// Fit trains one tree per goroutine. Bootstrap sampling is index-based so
// the feature matrix is shared, not copied.
func (rf *RandomForestRegressor) Fit(X [][]float64, y []float64) error {
	if len(X) == 0 {
		return errors.New("randomforest: empty X")
	}
	n := len(X)
	if len(y) != n {
		return errors.New("randomforest: X and y length mismatch")
	}
	if rf.NEstimators <= 0 {
		return errors.New("randomforest: NEstimators must be positive")
	}

	rf.Trees = make([]*RegressionTree, rf.NEstimators)
	var wg sync.WaitGroup
	errCh := make(chan error, rf.NEstimators)

	for i := 0; i < rf.NEstimators; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			// A fresh rand source per goroutine avoids contention and keeps
			// every tree reproducible in isolation.
			treeRand := rand.New(rand.NewSource(rf.RandomState + int64(idx)))

			sampleIndices := make([]int, n)
			for j := 0; j < n; j++ {
				if rf.Bootstrap {
					sampleIndices[j] = treeRand.Intn(n)
				} else {
					sampleIndices[j] = j
				}
			}

			tree := NewRegressionTree(
				WithMaxDepth(rf.MaxDepth),
				WithMinSamplesSplit(rf.MinSamplesSplit),
				WithMinSamplesLeaf(rf.MinSamplesLeaf),
				WithMaxFeatures(rf.MaxFeatures),
				WithTreeRandomState(rf.RandomState+int64(idx)),
			)
			if err := tree.Fit(X, y, sampleIndices); err != nil {
				errCh <- err
				return
			}
			rf.Trees[idx] = tree
		}(i)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			return err
		}
	}
	return nil
}

// PredictRow returns the ensemble mean for a single feature vector.
func (rf *RandomForestRegressor) PredictRow(x []float64) (float64, error) {
	if len(rf.Trees) == 0 {
		return 0, errors.New("randomforest: not fitted")
	}
	sum := 0.0
	for _, tree := range rf.Trees {
		sum += tree.PredictRow(x)
	}
	return sum / float64(len(rf.Trees)), nil
}

// Predict returns the ensemble mean for every row of X.
func (rf *RandomForestRegressor) Predict(X [][]float64) ([]float64, error) {
	out := make([]float64, len(X))
	for i := range X {
		v, err := rf.PredictRow(X[i])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
