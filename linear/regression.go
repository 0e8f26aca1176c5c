// Package linear implements the two linear regression fitting procedures the
// housing analysis compares:
//
//   - LinearRegression: exact ordinary least squares via QR decomposition
//   - SGDRegressor: iterative fitting by stochastic gradient descent
//
// Both models learn a coefficient vector and an intercept and predict with
// the same linear form, X·coef + intercept. LinearRegression is
// feature-count-agnostic: the single-feature and five-feature models of the
// analysis are the same type fitted on different matrices.
package linear

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/housefit/housefit/core/model"
	hfErrors "github.com/housefit/housefit/pkg/errors"
	"github.com/housefit/housefit/pkg/log"
)

// LinearRegression is an ordinary least squares model. The fit is an exact
// solve, not iterative: coefficients minimize total squared residual.
type LinearRegression struct {
	State     *model.StateManager // Fitted-state tracking, composed rather than embedded
	Weights   *mat.VecDense       // Model coefficients
	Intercept float64             // Model intercept
	NFeatures int                 // Number of features
	logger    log.Logger
}

// NewLinearRegression creates a new untrained ordinary least squares model.
// The model must be trained with Fit before making predictions.
func NewLinearRegression() *LinearRegression {
	lr := &LinearRegression{
		State: model.NewStateManager(),
	}

	lr.logger = log.GetLoggerWithName("linear").With(
		log.ModelNameKey, "LinearRegression",
		log.ComponentKey, "linear",
	)

	return lr
}

// Fit trains the model on X (n_samples × n_features) and y (n_samples × 1).
//
// An intercept column is appended to X and the least-squares system is
// solved through QR decomposition, which handles overdetermined systems
// without forming the normal equations. A rank-deficient design matrix
// cannot be solved exactly; it is reported as ErrSingularMatrix, an accepted
// limitation of the algorithm.
func (lr *LinearRegression) Fit(X, y mat.Matrix) (err error) {
	defer hfErrors.Recover(&err, "LinearRegression.Fit")

	startTime := time.Now()
	r, c := X.Dims()
	ry, cy := y.Dims()

	if lr.logger != nil {
		lr.logger.Info("Training started",
			log.OperationKey, log.OperationFit,
			log.PhaseKey, log.PhaseTraining,
			log.SamplesKey, r,
			log.FeaturesKey, c,
		)
	}

	if r == 0 || c == 0 {
		return hfErrors.NewModelError("LinearRegression.Fit", "empty data", hfErrors.ErrEmptyData)
	}
	if ry != r {
		return hfErrors.NewDimensionError("LinearRegression.Fit", r, ry, 0)
	}
	if cy != 1 {
		return hfErrors.NewValueError("LinearRegression.Fit", "y must be a column vector")
	}

	lr.NFeatures = c

	// Design matrix with intercept column: [1, X]
	Xb := mat.NewDense(r, c+1, nil)
	for i := 0; i < r; i++ {
		Xb.Set(i, 0, 1.0)
		for j := 0; j < c; j++ {
			Xb.Set(i, j+1, X.At(i, j))
		}
	}

	yDense := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		yDense.Set(i, 0, y.At(i, 0))
	}

	var qr mat.QR
	qr.Factorize(Xb)

	var solution mat.Dense
	if err := qr.SolveTo(&solution, false, yDense); err != nil {
		return hfErrors.NewModelError("LinearRegression.Fit", "rank-deficient design matrix", hfErrors.ErrSingularMatrix)
	}

	lr.Intercept = solution.At(0, 0)
	lr.Weights = mat.NewVecDense(c, nil)
	for i := 0; i < c; i++ {
		lr.Weights.SetVec(i, solution.At(i+1, 0))
	}

	lr.State.SetFitted()
	lr.State.SetDimensions(lr.NFeatures, r)

	if lr.logger != nil {
		lr.logger.Info("Training completed",
			log.OperationKey, log.OperationFit,
			log.PhaseKey, log.PhaseTraining,
			log.DurationMsKey, time.Since(startTime).Milliseconds(),
			log.SamplesKey, r,
			log.FeaturesKey, c,
		)
	}

	return nil
}

// Predict computes X·coef + intercept row-wise, returning an n×1 matrix.
func (lr *LinearRegression) Predict(X mat.Matrix) (_ mat.Matrix, err error) {
	defer hfErrors.Recover(&err, "LinearRegression.Predict")
	if err := lr.State.RequireFitted("LinearRegression", "Predict"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	if c != lr.NFeatures {
		return nil, hfErrors.NewDimensionError("LinearRegression.Predict", lr.NFeatures, c, 1)
	}

	if lr.logger != nil {
		lr.logger.Debug("Prediction started",
			log.OperationKey, log.OperationPredict,
			log.PhaseKey, log.PhaseInference,
			log.SamplesKey, r,
			log.FeaturesKey, c,
		)
	}

	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		pred := lr.Intercept
		for j := 0; j < c; j++ {
			pred += X.At(i, j) * lr.Weights.AtVec(j)
		}
		predictions.Set(i, 0, pred)
	}

	return predictions, nil
}

// PredictOne predicts a single sample given as a feature slice.
func (lr *LinearRegression) PredictOne(x []float64) (float64, error) {
	if err := lr.State.RequireFitted("LinearRegression", "PredictOne"); err != nil {
		return 0, err
	}
	if len(x) != lr.NFeatures {
		return 0, hfErrors.NewDimensionError("LinearRegression.PredictOne", lr.NFeatures, len(x), 1)
	}

	pred := lr.Intercept
	for j, v := range x {
		pred += v * lr.Weights.AtVec(j)
	}
	return pred, nil
}

// Coef returns a copy of the learned coefficients.
func (lr *LinearRegression) Coef() []float64 {
	if lr.Weights == nil {
		return nil
	}
	coef := make([]float64, lr.Weights.Len())
	for i := 0; i < lr.Weights.Len(); i++ {
		coef[i] = lr.Weights.AtVec(i)
	}
	return coef
}

// GetIntercept returns the learned intercept, or 0 before fitting.
func (lr *LinearRegression) GetIntercept() float64 {
	if !lr.State.IsFitted() {
		return 0
	}
	return lr.Intercept
}

// Score returns the coefficient of determination (R²) on X, y.
func (lr *LinearRegression) Score(X, y mat.Matrix) (_ float64, err error) {
	defer hfErrors.Recover(&err, "LinearRegression.Score")
	if err := lr.State.RequireFitted("LinearRegression", "Score"); err != nil {
		return 0, err
	}

	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	return rSquared(y, yPred, "LinearRegression.Score")
}

// IsFitted returns whether the model has been fitted.
func (lr *LinearRegression) IsFitted() bool {
	return lr.State.IsFitted()
}

// rSquared computes 1 - RSS/TSS for column-matrix truth and predictions.
// Shared by both regressors' Score methods.
func rSquared(y, yPred mat.Matrix, op string) (float64, error) {
	r, _ := y.Dims()

	var yMean float64
	for i := 0; i < r; i++ {
		yMean += y.At(i, 0)
	}
	yMean /= float64(r)

	var tss, rss float64
	for i := 0; i < r; i++ {
		yTrue := y.At(i, 0)
		yPredVal := yPred.At(i, 0)

		tss += (yTrue - yMean) * (yTrue - yMean)
		rss += (yTrue - yPredVal) * (yTrue - yPredVal)
	}

	if tss == 0 {
		return 0, hfErrors.NewValueError(op, "total sum of squares is zero (no variance in y)")
	}
	return 1 - rss/tss, nil
}
