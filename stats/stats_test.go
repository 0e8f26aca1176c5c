package stats

import (
	"math"
	"testing"
)

const epsilon = 1e-10

func TestMean(t *testing.T) {
	tests := []struct {
		name    string
		xs      []float64
		want    float64
		wantErr bool
	}{
		{name: "simple", xs: []float64{1, 2, 3, 4, 5}, want: 3},
		{name: "single value", xs: []float64{7.5}, want: 7.5},
		{name: "negative values", xs: []float64{-2, 0, 2}, want: 0},
		{name: "empty", xs: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Mean(tt.xs)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Mean() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.want) > epsilon {
				t.Errorf("Mean() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name    string
		xs      []float64
		want    float64
		wantErr bool
	}{
		{name: "odd length", xs: []float64{3, 1, 2}, want: 2},
		{name: "even length averages middle pair", xs: []float64{4, 1, 3, 2}, want: 2.5},
		{name: "unsorted input left unchanged", xs: []float64{9, 1, 5}, want: 5},
		{name: "empty", xs: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := append([]float64{}, tt.xs...)
			got, err := Median(tt.xs)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Median() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if math.Abs(got-tt.want) > epsilon {
				t.Errorf("Median() = %v, want %v", got, tt.want)
			}
			for i := range input {
				if input[i] != tt.xs[i] {
					t.Fatal("Median() mutated its input")
				}
			}
		})
	}
}

func TestStdDevPopulation(t *testing.T) {
	// Population std of [2, 4, 4, 4, 5, 5, 7, 9] is exactly 2.
	got, err := StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if err != nil {
		t.Fatalf("StdDev() error = %v", err)
	}
	if math.Abs(got-2.0) > epsilon {
		t.Errorf("StdDev() = %v, want 2.0", got)
	}

	if _, err := StdDev(nil); err == nil {
		t.Error("StdDev() should fail on empty input")
	}
}

func TestCorrelation(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}

	t.Run("perfect positive", func(t *testing.T) {
		ys := []float64{2, 4, 6, 8, 10}
		got, err := Correlation(xs, ys)
		if err != nil {
			t.Fatalf("Correlation() error = %v", err)
		}
		if math.Abs(got-1.0) > epsilon {
			t.Errorf("Correlation() = %v, want 1.0", got)
		}
	})

	t.Run("perfect negative", func(t *testing.T) {
		ys := []float64{10, 8, 6, 4, 2}
		got, err := Correlation(xs, ys)
		if err != nil {
			t.Fatalf("Correlation() error = %v", err)
		}
		if math.Abs(got+1.0) > epsilon {
			t.Errorf("Correlation() = %v, want -1.0", got)
		}
	})

	t.Run("mismatched lengths", func(t *testing.T) {
		if _, err := Correlation(xs, []float64{1, 2}); err == nil {
			t.Error("Correlation() should fail on mismatched lengths")
		}
	})

	t.Run("empty", func(t *testing.T) {
		if _, err := Correlation(nil, nil); err == nil {
			t.Error("Correlation() should fail on empty input")
		}
	})
}

func TestDescribe(t *testing.T) {
	summary, err := Describe([]float64{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}

	if math.Abs(summary.Mean-3) > epsilon {
		t.Errorf("Mean = %v, want 3", summary.Mean)
	}
	if math.Abs(summary.Median-3) > epsilon {
		t.Errorf("Median = %v, want 3", summary.Median)
	}
	if math.Abs(summary.StdDev-math.Sqrt(2)) > epsilon {
		t.Errorf("StdDev = %v, want sqrt(2)", summary.StdDev)
	}
}
