package ml

import (
	"reflect"
	"testing"
)

func TestSplitIndices(t *testing.T) {
	train, test := SplitIndices(10, 0.2, 42)

	if len(test) != 2 {
		t.Errorf("test split size = %d, want 2", len(test))
	}
	if len(train) != 8 {
		t.Errorf("train split size = %d, want 8", len(train))
	}

	seen := make(map[int]bool, 10)
	for _, i := range append(append([]int(nil), train...), test...) {
		if seen[i] {
			t.Fatalf("index %d appears twice", i)
		}
		seen[i] = true
	}
	if len(seen) != 10 {
		t.Errorf("split covers %d indices, want 10", len(seen))
	}
}

func TestSplitIndicesDeterministic(t *testing.T) {
	train1, test1 := SplitIndices(100, 0.2, 42)
	train2, test2 := SplitIndices(100, 0.2, 42)

	if !reflect.DeepEqual(train1, train2) || !reflect.DeepEqual(test1, test2) {
		t.Error("same seed produced different splits")
	}

	_, otherTest := SplitIndices(100, 0.2, 7)
	if reflect.DeepEqual(test1, otherTest) {
		t.Error("different seeds produced identical test splits")
	}
}
