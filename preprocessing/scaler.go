// Package preprocessing provides feature scaling for the iterative
// regressor. Standardizing the training features keeps a fixed initial
// learning rate well-conditioned regardless of each column's natural scale.
package preprocessing

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/housefit/housefit/core/model"
	hfErrors "github.com/housefit/housefit/pkg/errors"
)

// StandardScaler standardizes features by removing the mean and scaling to
// unit variance. Statistics are computed by Fit on the training split only
// and reused for every later Transform, so test rows and query points are
// scaled consistently with the data the model trained on.
type StandardScaler struct {
	State *model.StateManager

	// Mean holds the per-feature means seen during Fit.
	Mean []float64

	// Scale holds the per-feature standard deviations seen during Fit.
	// A zero-variance feature gets scale 1 so transforming it yields 0
	// rather than a division by zero.
	Scale []float64

	NFeatures int
}

// NewStandardScaler creates an unfitted StandardScaler.
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{
		State: model.NewStateManager(),
	}
}

// Fit computes per-feature mean and standard deviation from X.
func (s *StandardScaler) Fit(X mat.Matrix) (err error) {
	defer hfErrors.Recover(&err, "StandardScaler.Fit")

	r, c := X.Dims()
	if r == 0 || c == 0 {
		return hfErrors.NewModelError("StandardScaler.Fit", "empty data", hfErrors.ErrEmptyData)
	}

	s.NFeatures = c
	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)

	for j := 0; j < c; j++ {
		var sum float64
		for i := 0; i < r; i++ {
			sum += X.At(i, j)
		}
		s.Mean[j] = sum / float64(r)
	}

	for j := 0; j < c; j++ {
		var ss float64
		for i := 0; i < r; i++ {
			d := X.At(i, j) - s.Mean[j]
			ss += d * d
		}
		std := math.Sqrt(ss / float64(r))
		if std == 0 {
			std = 1
		}
		s.Scale[j] = std
	}

	s.State.SetFitted()
	s.State.SetDimensions(c, r)
	return nil
}

// Transform standardizes X using the fitted statistics.
func (s *StandardScaler) Transform(X mat.Matrix) (*mat.Dense, error) {
	if err := s.State.RequireFitted("StandardScaler", "Transform"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, hfErrors.NewDimensionError("StandardScaler.Transform", s.NFeatures, c, 1)
	}

	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, (X.At(i, j)-s.Mean[j])/s.Scale[j])
		}
	}
	return out, nil
}

// FitTransform fits the scaler on X and returns the standardized X.
func (s *StandardScaler) FitTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform maps standardized values back to the original scale.
func (s *StandardScaler) InverseTransform(X mat.Matrix) (*mat.Dense, error) {
	if err := s.State.RequireFitted("StandardScaler", "InverseTransform"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, hfErrors.NewDimensionError("StandardScaler.InverseTransform", s.NFeatures, c, 1)
	}

	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, X.At(i, j)*s.Scale[j]+s.Mean[j])
		}
	}
	return out, nil
}

// TransformOne standardizes a single sample given as a feature slice.
func (s *StandardScaler) TransformOne(x []float64) ([]float64, error) {
	if err := s.State.RequireFitted("StandardScaler", "TransformOne"); err != nil {
		return nil, err
	}
	if len(x) != s.NFeatures {
		return nil, hfErrors.NewDimensionError("StandardScaler.TransformOne", s.NFeatures, len(x), 1)
	}

	out := make([]float64, len(x))
	for j, v := range x {
		out[j] = (v - s.Mean[j]) / s.Scale[j]
	}
	return out, nil
}

// IsFitted returns whether the scaler has been fitted.
func (s *StandardScaler) IsFitted() bool {
	return s.State.IsFitted()
}
