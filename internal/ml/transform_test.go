package ml

import (
	"bytes"
	"encoding/gob"
	"math"
	"reflect"
	"sync"
	"testing"
)

func TestMedianImputerFillsNaN(t *testing.T) {
	X := [][]float64{
		{1, math.NaN()},
		{3, 10},
		{math.NaN(), 20},
		{5, 30},
	}

	var imp MedianImputer
	if err := imp.Fit(X); err != nil {
		t.Fatalf("Fit returned error: %v", err)
	}
	if imp.Medians[0] != 3 {
		t.Errorf("median of column 0 = %v, want 3", imp.Medians[0])
	}
	if imp.Medians[1] != 20 {
		t.Errorf("median of column 1 = %v, want 20", imp.Medians[1])
	}

	out := imp.Transform(X)
	if out[0][1] != 20 {
		t.Errorf("NaN in column 1 imputed to %v, want 20", out[0][1])
	}
	if out[2][0] != 3 {
		t.Errorf("NaN in column 0 imputed to %v, want 3", out[2][0])
	}
	// Transform must not mutate its input.
	if !math.IsNaN(X[0][1]) {
		t.Error("Transform mutated the input matrix")
	}
}

func TestStandardScaler(t *testing.T) {
	X := [][]float64{
		{2, 7},
		{4, 7},
		{6, 7},
	}

	var sc StandardScaler
	if err := sc.Fit(X); err != nil {
		t.Fatalf("Fit returned error: %v", err)
	}

	out := sc.Transform(X)
	if math.Abs(out[0][0]+out[2][0]) > 1e-12 {
		t.Errorf("scaled column 0 not symmetric around zero: %v and %v", out[0][0], out[2][0])
	}
	if out[1][0] != 0 {
		t.Errorf("mean value should scale to 0, got %v", out[1][0])
	}
	// A constant column scales to zero instead of dividing by zero.
	for i := range out {
		if out[i][1] != 0 {
			t.Errorf("constant column row %d scaled to %v, want 0", i, out[i][1])
		}
	}
}

func TestMostFrequentImputer(t *testing.T) {
	cols := [][]string{
		{"Richmond", "", "Fitzroy", "Richmond"},
		{"h", "u", "", "u"},
	}

	var imp MostFrequentImputer
	if err := imp.Fit(cols); err != nil {
		t.Fatalf("Fit returned error: %v", err)
	}
	if imp.Values[0] != "Richmond" {
		t.Errorf("most frequent of column 0 = %q, want Richmond", imp.Values[0])
	}
	if imp.Values[1] != "u" {
		t.Errorf("most frequent of column 1 = %q, want u", imp.Values[1])
	}

	out := imp.Transform(cols)
	if out[0][1] != "Richmond" {
		t.Errorf("missing value imputed to %q, want Richmond", out[0][1])
	}
	if out[1][2] != "u" {
		t.Errorf("missing value imputed to %q, want u", out[1][2])
	}
}

func TestMostFrequentImputerTieBreaksOnFirstSeen(t *testing.T) {
	cols := [][]string{{"u", "h", "h", "u"}}

	var imp MostFrequentImputer
	if err := imp.Fit(cols); err != nil {
		t.Fatalf("Fit returned error: %v", err)
	}
	if imp.Values[0] != "u" {
		t.Errorf("tie broke to %q, want first-seen u", imp.Values[0])
	}
}

func TestOneHotEncoder(t *testing.T) {
	cols := [][]string{
		{"Richmond", "Fitzroy", "Richmond"},
		{"h", "u", "t"},
	}

	var enc OneHotEncoder
	if err := enc.Fit(cols); err != nil {
		t.Fatalf("Fit returned error: %v", err)
	}
	if got, want := enc.Width(), 5; got != want {
		t.Fatalf("Width() = %d, want %d", got, want)
	}

	got := enc.Encode(nil, []string{"Fitzroy", "t"})
	want := []float64{0, 1, 0, 0, 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Encode(Fitzroy, t) = %v, want %v", got, want)
	}
}

func TestOneHotEncoderUnknownCategoryEncodesAsZeros(t *testing.T) {
	cols := [][]string{{"h", "u"}}

	var enc OneHotEncoder
	if err := enc.Fit(cols); err != nil {
		t.Fatalf("Fit returned error: %v", err)
	}

	got := enc.Encode(nil, []string{"castle"})
	want := []float64{0, 0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Encode(castle) = %v, want %v", got, want)
	}
}

func TestOneHotEncoderConcurrentUseAfterDecode(t *testing.T) {
	cols := [][]string{{"h", "u", "t"}}

	var enc OneHotEncoder
	if err := enc.Fit(cols); err != nil {
		t.Fatalf("Fit returned error: %v", err)
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&enc); err != nil {
		t.Fatalf("gob encode returned error: %v", err)
	}
	var decoded OneHotEncoder
	if err := gob.NewDecoder(&buf).Decode(&decoded); err != nil {
		t.Fatalf("gob decode returned error: %v", err)
	}
	decoded.Rehydrate()

	// After rehydration Encode performs no writes, so concurrent encoders
	// must agree and stay race-free.
	want := []float64{0, 1, 0}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := decoded.Encode(nil, []string{"u"}); !reflect.DeepEqual(got, want) {
				t.Errorf("concurrent Encode = %v, want %v", got, want)
			}
		}()
	}
	wg.Wait()
}

func TestMedianIgnoreNaN(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want float64
	}{
		{"odd count", []float64{5, 1, 3}, 3},
		{"even count", []float64{1, 2, 3, 4}, 2.5},
		{"with NaN", []float64{math.NaN(), 10, math.NaN(), 20}, 15},
		{"all NaN", []float64{math.NaN()}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := medianIgnoreNaN(tt.in); got != tt.want {
				t.Errorf("medianIgnoreNaN(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
