package errors

import (
	"strings"
	"testing"
)

func TestNotFittedError(t *testing.T) {
	err := NewNotFittedError("LinearRegression", "Predict")

	var notFitted *NotFittedError
	if !As(err, &notFitted) {
		t.Fatal("error should be a NotFittedError")
	}
	if notFitted.ModelName != "LinearRegression" || notFitted.Method != "Predict" {
		t.Errorf("unexpected fields: %+v", notFitted)
	}
	if !strings.Contains(err.Error(), "not fitted") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestDimensionError(t *testing.T) {
	err := NewDimensionError("Fit", 5, 3, 0)

	var dim *DimensionError
	if !As(err, &dim) {
		t.Fatal("error should be a DimensionError")
	}
	if dim.Expected != 5 || dim.Got != 3 {
		t.Errorf("unexpected fields: %+v", dim)
	}
	if !strings.Contains(err.Error(), "rows") {
		t.Errorf("axis 0 should report rows: %v", err)
	}
}

func TestModelErrorWrapsSentinel(t *testing.T) {
	err := NewModelError("LinearRegression.Fit", "rank-deficient design matrix", ErrSingularMatrix)

	if !Is(err, ErrSingularMatrix) {
		t.Error("ModelError should unwrap to ErrSingularMatrix")
	}
	if !strings.Contains(err.Error(), "rank-deficient") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestConvergenceWarningHandler(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) { captured = w })
	t.Cleanup(func() { SetWarningHandler(func(error) {}) })

	Warn(NewConvergenceWarning("SGDRegressor", 1000, ""))

	var warning *ConvergenceWarning
	if captured == nil || !As(captured, &warning) {
		t.Fatalf("expected ConvergenceWarning, got %v", captured)
	}
	if warning.Iterations != 1000 {
		t.Errorf("iterations = %d, want 1000", warning.Iterations)
	}
}

func TestRecoverConvertsPanic(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err, "test.Op")
		panic("numeric blow-up")
	}

	err := fn()
	if err == nil {
		t.Fatal("Recover should convert the panic to an error")
	}
	var panicErr *PanicError
	if !As(err, &panicErr) {
		t.Fatalf("expected PanicError, got %T", err)
	}
	if panicErr.Operation != "test.Op" {
		t.Errorf("operation = %q, want test.Op", panicErr.Operation)
	}
}

func TestCheckScalar(t *testing.T) {
	if err := CheckScalar("loss", 1.5, 0); err != nil {
		t.Errorf("finite value should pass: %v", err)
	}

	nan := 0.0
	nan /= nan // quiet NaN without importing math
	if err := CheckScalar("loss", nan, 3); err == nil {
		t.Error("NaN should fail the stability check")
	}
}

func TestClipGradient(t *testing.T) {
	clipped := ClipGradient([]float64{30, 40}, 10)
	// Norm 50 clipped to 10 scales by 0.2.
	if clipped[0] != 6 || clipped[1] != 8 {
		t.Errorf("clipped = %v, want [6 8]", clipped)
	}

	small := []float64{1, 2}
	if got := ClipGradient(small, 10); &got[0] != &small[0] {
		t.Error("gradient within bounds should be returned unchanged")
	}
}
