package ml

import "math/rand"

// SplitIndices shuffles 0..n-1 with the given seed and splits the
// permutation into a test part of size n*testRatio and a train part holding
// the rest. The same seed always yields the same split.
func SplitIndices(n int, testRatio float64, seed int64) (trainIdx, testIdx []int) {
	rnd := rand.New(rand.NewSource(seed))
	indices := rnd.Perm(n)
	nTest := int(float64(n) * testRatio)
	for i, idx := range indices {
		if i < nTest {
			testIdx = append(testIdx, idx)
		} else {
			trainIdx = append(trainIdx, idx)
		}
	}
	return trainIdx, testIdx
}
