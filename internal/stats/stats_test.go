package stats

import (
	"math"
	"testing"
)

func TestMeanMedian(t *testing.T) {
	xs := []float64{4, 1, 3, 2}
	if m := Mean(xs); m != 2.5 {
		t.Errorf("mean: expected 2.5, got %v", m)
	}
	if m := Median(xs); m != 2.5 {
		t.Errorf("median (even): expected 2.5, got %v", m)
	}
	if m := Median([]float64{5, 1, 3}); m != 3 {
		t.Errorf("median (odd): expected 3, got %v", m)
	}
}

func TestStdSample(t *testing.T) {
	// Sample std of {2,4,4,4,5,5,7,9} with n-1 denominator.
	xs := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	got := Std(xs)
	want := math.Sqrt(32.0 / 7.0)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("std: expected %v, got %v", want, got)
	}
	if !math.IsNaN(Std([]float64{1})) {
		t.Error("std of a single value should be NaN")
	}
}

func TestMinMax(t *testing.T) {
	xs := []float64{3, -1, 7, 2}
	if m := Min(xs); m != -1 {
		t.Errorf("min: expected -1, got %v", m)
	}
	if m := Max(xs); m != 7 {
		t.Errorf("max: expected 7, got %v", m)
	}
}

func TestQuantileInterpolation(t *testing.T) {
	xs := []float64{1, 2, 3, 4}
	tests := []struct {
		q    float64
		want float64
	}{
		{0, 1},
		{0.25, 1.75},
		{0.5, 2.5},
		{0.75, 3.25},
		{1, 4},
	}
	for _, tt := range tests {
		if got := Quantile(xs, tt.q); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("quantile(%.2f): expected %v, got %v", tt.q, tt.want, got)
		}
	}
	if got := Quantile([]float64{42}, 0.75); got != 42 {
		t.Errorf("quantile of singleton: expected 42, got %v", got)
	}
}

func TestEmptyInputsAreNaN(t *testing.T) {
	var empty []float64
	for name, got := range map[string]float64{
		"mean":     Mean(empty),
		"median":   Median(empty),
		"std":      Std(empty),
		"min":      Min(empty),
		"max":      Max(empty),
		"quantile": Quantile(empty, 0.5),
	} {
		if !math.IsNaN(got) {
			t.Errorf("%s of empty input: expected NaN, got %v", name, got)
		}
	}
	if !math.IsNaN(Quantile([]float64{1}, 1.5)) {
		t.Error("quantile outside [0,1] should be NaN")
	}
}
