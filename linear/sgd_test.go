package linear

import (
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"

	hfErrors "github.com/housefit/housefit/pkg/errors"
)

// silenceWarnings suppresses convergence warnings for the duration of a test.
func silenceWarnings(t *testing.T) {
	t.Helper()
	hfErrors.SetWarningHandler(func(error) {})
	t.Cleanup(func() { hfErrors.SetWarningHandler(nil) })
}

func TestSGDRegressorBasicFit(t *testing.T) {
	silenceWarnings(t)

	// y = 2x + 1
	X := mat.NewDense(100, 1, nil)
	y := mat.NewDense(100, 1, nil)
	for i := 0; i < 100; i++ {
		x := float64(i) / 10.0
		X.Set(i, 0, x)
		y.Set(i, 0, 2*x+1)
	}

	sgd := NewSGDRegressor(
		WithLearningRateSchedule("constant"),
		WithEta0(0.01),
		WithMaxIter(200),
		WithRandomState(42),
	)

	if err := sgd.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if !sgd.IsFitted() {
		t.Error("model should be fitted after Fit()")
	}

	coef := sgd.Coef()
	if math.Abs(coef[0]-2.0) > 0.1 {
		t.Errorf("coefficient = %f, want ~2.0", coef[0])
	}
	if math.Abs(sgd.Intercept()-1.0) > 0.1 {
		t.Errorf("intercept = %f, want ~1.0", sgd.Intercept())
	}
}

func TestSGDRegressorReproducible(t *testing.T) {
	silenceWarnings(t)

	X := mat.NewDense(50, 1, nil)
	y := mat.NewDense(50, 1, nil)
	for i := 0; i < 50; i++ {
		x := float64(i) / 5.0
		X.Set(i, 0, x)
		y.Set(i, 0, 3*x+2)
	}

	fit := func() ([]float64, float64) {
		sgd := NewSGDRegressor(
			WithMaxIter(50),
			WithRandomState(42),
		)
		if err := sgd.Fit(X, y); err != nil {
			t.Fatalf("Fit failed: %v", err)
		}
		return sgd.Coef(), sgd.Intercept()
	}

	coef1, intercept1 := fit()
	coef2, intercept2 := fit()

	if coef1[0] != coef2[0] || intercept1 != intercept2 {
		t.Errorf("same seed must give identical fits: (%v, %v) vs (%v, %v)",
			coef1[0], intercept1, coef2[0], intercept2)
	}
}

func TestSGDRegressorExternalRNG(t *testing.T) {
	silenceWarnings(t)

	X := mat.NewDense(30, 1, nil)
	y := mat.NewDense(30, 1, nil)
	for i := 0; i < 30; i++ {
		x := float64(i) / 3.0
		X.Set(i, 0, x)
		y.Set(i, 0, x+0.5)
	}

	fitWith := func(rng *rand.Rand) []float64 {
		sgd := NewSGDRegressor(WithRNG(rng), WithMaxIter(40))
		if err := sgd.Fit(X, y); err != nil {
			t.Fatalf("Fit failed: %v", err)
		}
		return sgd.Coef()
	}

	coef1 := fitWith(rand.New(rand.NewPCG(7, 7)))
	coef2 := fitWith(rand.New(rand.NewPCG(7, 7)))
	if coef1[0] != coef2[0] {
		t.Error("generators in identical states must give identical fits")
	}
}

func TestSGDRegressorLossDecreases(t *testing.T) {
	silenceWarnings(t)

	X := mat.NewDense(80, 1, nil)
	y := mat.NewDense(80, 1, nil)
	for i := 0; i < 80; i++ {
		x := float64(i) / 8.0
		X.Set(i, 0, x)
		y.Set(i, 0, 2.5*x-1)
	}

	sgd := NewSGDRegressor(
		WithMaxIter(100),
		WithRandomState(0),
	)
	if err := sgd.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	history := sgd.LossHistory()
	if len(history) == 0 {
		t.Fatal("loss history should not be empty")
	}
	if len(history) != sgd.NIterations() {
		t.Errorf("loss history length %d != iterations %d", len(history), sgd.NIterations())
	}
	if history[len(history)-1] >= history[0] {
		t.Errorf("final loss %v should be below initial loss %v",
			history[len(history)-1], history[0])
	}
}

func TestSGDRegressorConvergenceWarning(t *testing.T) {
	var warned error
	hfErrors.SetWarningHandler(func(w error) { warned = w })
	t.Cleanup(func() { hfErrors.SetWarningHandler(nil) })

	X := mat.NewDense(20, 1, nil)
	y := mat.NewDense(20, 1, nil)
	for i := 0; i < 20; i++ {
		X.Set(i, 0, float64(i))
		y.Set(i, 0, float64(2*i))
	}

	// An impossible tolerance with a tiny iteration cap cannot converge.
	sgd := NewSGDRegressor(
		WithMaxIter(3),
		WithTol(0),
		WithRandomState(1),
	)
	if err := sgd.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if sgd.Converged() {
		t.Error("model should not report convergence")
	}
	var convergence *hfErrors.ConvergenceWarning
	if warned == nil || !hfErrors.As(warned, &convergence) {
		t.Errorf("expected a ConvergenceWarning, got %v", warned)
	}
}

func TestSGDRegressorValidation(t *testing.T) {
	silenceWarnings(t)

	t.Run("empty data", func(t *testing.T) {
		sgd := NewSGDRegressor(WithRandomState(1))
		if err := sgd.Fit(&mat.Dense{}, &mat.Dense{}); err == nil {
			t.Error("Fit should fail on empty data")
		}
	})

	t.Run("row mismatch", func(t *testing.T) {
		sgd := NewSGDRegressor(WithRandomState(1))
		X := mat.NewDense(3, 1, []float64{1, 2, 3})
		y := mat.NewDense(2, 1, []float64{1, 2})
		if err := sgd.Fit(X, y); err == nil {
			t.Error("Fit should fail on mismatched rows")
		}
	})

	t.Run("predict before fit", func(t *testing.T) {
		sgd := NewSGDRegressor(WithRandomState(1))
		if _, err := sgd.Predict(mat.NewDense(1, 1, []float64{1})); err == nil {
			t.Error("Predict should fail before Fit")
		}
	})

	t.Run("predict feature mismatch", func(t *testing.T) {
		sgd := NewSGDRegressor(WithRandomState(1), WithMaxIter(5))
		X := mat.NewDense(10, 1, nil)
		y := mat.NewDense(10, 1, nil)
		for i := 0; i < 10; i++ {
			X.Set(i, 0, float64(i))
			y.Set(i, 0, float64(i))
		}
		if err := sgd.Fit(X, y); err != nil {
			t.Fatalf("Fit failed: %v", err)
		}
		if _, err := sgd.Predict(mat.NewDense(1, 2, []float64{1, 2})); err == nil {
			t.Error("Predict should fail on wrong feature count")
		}
	})
}
