package ml

import (
	"math"
	"testing"
)

func TestMetrics(t *testing.T) {
	yTrue := []float64{3, -0.5, 2, 7}
	yPred := []float64{2.5, 0, 2, 8}

	if got, want := MSE(yTrue, yPred), 0.375; math.Abs(got-want) > 1e-12 {
		t.Errorf("MSE = %v, want %v", got, want)
	}
	if got, want := RMSE(yTrue, yPred), math.Sqrt(0.375); math.Abs(got-want) > 1e-12 {
		t.Errorf("RMSE = %v, want %v", got, want)
	}
	if got, want := MAE(yTrue, yPred), 0.5; math.Abs(got-want) > 1e-12 {
		t.Errorf("MAE = %v, want %v", got, want)
	}
	if got, want := R2(yTrue, yPred), 0.9486081370449679; math.Abs(got-want) > 1e-9 {
		t.Errorf("R2 = %v, want %v", got, want)
	}
}

func TestR2PerfectAndConstant(t *testing.T) {
	y := []float64{1, 2, 3}
	if got := R2(y, y); got != 1 {
		t.Errorf("R2 of perfect prediction = %v, want 1", got)
	}
	if got := R2([]float64{5, 5, 5}, []float64{5, 5, 5}); got != 0 {
		t.Errorf("R2 of constant target = %v, want 0", got)
	}
}
