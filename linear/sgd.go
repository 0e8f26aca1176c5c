package linear

import (
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/housefit/housefit/core/model"
	hfErrors "github.com/housefit/housefit/pkg/errors"
	"github.com/housefit/housefit/pkg/log"
)

// SGDRegressor fits a linear model by stochastic gradient descent with
// squared-error loss. Each epoch shuffles the training rows with the
// configured generator and applies one gradient step per row, so fitting is
// fully reproducible given a fixed seed or a generator in a known state.
//
// Learning-rate schedule: the default is "invscaling",
// eta = eta0 / (t+1)^powerT with powerT = 0.25, matching scikit-learn's
// SGDRegressor default. "constant" keeps eta0 throughout.
type SGDRegressor struct {
	state *model.StateManager

	// Hyperparameters
	penalty       string  // Regularization: "none" or "l2". The analysis runs with "none".
	alpha         float64 // Regularization strength, ignored for "none"
	fitIntercept  bool
	maxIter       int
	tol           float64
	shuffle       bool
	randomState   int64
	learningRate  string // "constant" or "invscaling"
	eta0          float64
	powerT        float64
	nIterNoChange int

	// Learned parameters
	coef      []float64
	intercept float64

	// Fitting state
	nIter       int
	t           int64 // total step count, drives the learning-rate schedule
	lossHistory []float64
	converged   bool

	rng       *rand.Rand
	nFeatures int
	logger    log.Logger
}

// NewSGDRegressor creates an SGDRegressor with the given options applied
// over scikit-learn-compatible defaults.
func NewSGDRegressor(options ...Option) *SGDRegressor {
	sgd := &SGDRegressor{
		state:         model.NewStateManager(),
		penalty:       "none",
		alpha:         0.0001,
		fitIntercept:  true,
		maxIter:       1000,
		tol:           1e-3,
		shuffle:       true,
		randomState:   -1,
		learningRate:  "invscaling",
		eta0:          0.01,
		powerT:        0.25,
		nIterNoChange: 5,
		lossHistory:   make([]float64, 0),
	}

	for _, opt := range options {
		opt(sgd)
	}

	if sgd.rng == nil {
		if sgd.randomState >= 0 {
			sgd.rng = rand.New(rand.NewPCG(uint64(sgd.randomState), uint64(sgd.randomState)))
		} else {
			now := uint64(time.Now().UnixNano())
			sgd.rng = rand.New(rand.NewPCG(now, now^0xdeadbeef))
		}
	}

	sgd.logger = log.GetLoggerWithName("linear").With(
		log.ModelNameKey, "SGDRegressor",
		log.ComponentKey, "linear",
	)

	return sgd
}

// Fit trains the model on X (n_samples × n_features) and y (n_samples × 1).
//
// Training stops when the spread of the last nIterNoChange epoch losses
// falls below tol, or at maxIter, whichever comes first. Reaching maxIter
// without converging raises a ConvergenceWarning through the warning
// handler; the fitted coefficients remain usable.
func (sgd *SGDRegressor) Fit(X, y mat.Matrix) (err error) {
	defer hfErrors.Recover(&err, "SGDRegressor.Fit")

	sgd.reset()

	rows, cols := X.Dims()
	ry, cy := y.Dims()
	if rows == 0 || cols == 0 {
		return hfErrors.NewModelError("SGDRegressor.Fit", "empty data", hfErrors.ErrEmptyData)
	}
	if ry != rows {
		return hfErrors.NewDimensionError("SGDRegressor.Fit", rows, ry, 0)
	}
	if cy != 1 {
		return hfErrors.NewValueError("SGDRegressor.Fit", "y must be a column vector")
	}

	startTime := time.Now()
	sgd.nFeatures = cols

	if sgd.logger != nil {
		sgd.logger.Info("Training started",
			log.OperationKey, log.OperationFit,
			log.PhaseKey, log.PhaseTraining,
			log.SamplesKey, rows,
			log.FeaturesKey, cols,
			log.SeedKey, sgd.randomState,
		)
	}

	// Xavier initialization
	sgd.coef = make([]float64, cols)
	scale := math.Sqrt(2.0 / float64(cols))
	for i := range sgd.coef {
		sgd.coef[i] = sgd.rng.NormFloat64() * scale
	}

	indices := make([]int, rows)
	for i := range indices {
		indices[i] = i
	}

	for iter := 0; iter < sgd.maxIter; iter++ {
		if sgd.shuffle {
			sgd.rng.Shuffle(len(indices), func(i, j int) {
				indices[i], indices[j] = indices[j], indices[i]
			})
		}

		epochLoss := 0.0
		for _, idx := range indices {
			xi := mat.Row(nil, idx, X)
			yi := y.At(idx, 0)
			epochLoss += sgd.updateWeights(xi, yi)
		}

		epochLoss /= float64(rows)
		sgd.lossHistory = append(sgd.lossHistory, epochLoss)
		sgd.nIter++

		if sgd.checkConvergence() {
			sgd.converged = true
			break
		}
	}

	if !sgd.converged {
		hfErrors.Warn(hfErrors.NewConvergenceWarning("SGDRegressor", sgd.nIter, "maximum number of iterations reached"))
	}

	sgd.state.SetFitted()
	sgd.state.SetDimensions(cols, rows)

	if sgd.logger != nil {
		sgd.logger.Info("Training completed",
			log.OperationKey, log.OperationFit,
			log.PhaseKey, log.PhaseTraining,
			log.DurationMsKey, time.Since(startTime).Milliseconds(),
			log.IterationKey, sgd.nIter,
			log.LossKey, sgd.lossHistory[len(sgd.lossHistory)-1],
		)
	}

	return nil
}

// updateWeights applies one gradient step for a single sample and returns
// the sample's squared-error loss.
func (sgd *SGDRegressor) updateWeights(x []float64, y float64) float64 {
	pred := sgd.intercept
	for i, xi := range x {
		pred += sgd.coef[i] * xi
	}

	if err := hfErrors.CheckScalar("prediction", pred, sgd.nIter); err != nil {
		hfErrors.Warn(err)
		// Back off the learning rate instead of propagating the blow-up.
		sgd.eta0 *= 0.1
		return 0
	}

	diff := pred - y
	loss := 0.5 * diff * diff
	dloss := diff

	lr := sgd.getLearningRate()
	sgd.t++

	gradients := make([]float64, len(x))
	for i, xi := range x {
		grad := dloss * xi
		if sgd.penalty == "l2" {
			grad += sgd.alpha * sgd.coef[i]
		}
		gradients[i] = grad
	}

	gradients = hfErrors.ClipGradient(gradients, 10.0)

	for i, grad := range gradients {
		sgd.coef[i] -= lr * grad
		if err := hfErrors.CheckScalar("weight_update", sgd.coef[i], sgd.nIter); err != nil {
			hfErrors.Warn(err)
			sgd.coef[i] += lr * grad // roll back the unstable step
		}
	}

	if sgd.fitIntercept {
		sgd.intercept -= lr * dloss
	}

	return loss
}

func (sgd *SGDRegressor) getLearningRate() float64 {
	switch sgd.learningRate {
	case "constant":
		return sgd.eta0
	case "invscaling":
		return sgd.eta0 / math.Pow(float64(sgd.t)+1, sgd.powerT)
	default:
		return sgd.eta0
	}
}

// checkConvergence reports whether the last nIterNoChange epoch losses moved
// by less than tol.
func (sgd *SGDRegressor) checkConvergence() bool {
	if len(sgd.lossHistory) < sgd.nIterNoChange+1 {
		return false
	}

	recent := sgd.lossHistory[len(sgd.lossHistory)-sgd.nIterNoChange:]
	maxLoss := recent[0]
	minLoss := recent[0]
	for _, loss := range recent {
		if loss > maxLoss {
			maxLoss = loss
		}
		if loss < minLoss {
			minLoss = loss
		}
	}

	return (maxLoss - minLoss) < sgd.tol
}

// Predict computes X·coef + intercept row-wise, returning an n×1 matrix.
func (sgd *SGDRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := sgd.state.RequireFitted("SGDRegressor", "Predict"); err != nil {
		return nil, err
	}

	rows, cols := X.Dims()
	if cols != sgd.nFeatures {
		return nil, hfErrors.NewDimensionError("SGDRegressor.Predict", sgd.nFeatures, cols, 1)
	}

	predictions := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		pred := sgd.intercept
		for j := 0; j < cols; j++ {
			pred += X.At(i, j) * sgd.coef[j]
		}
		predictions.Set(i, 0, pred)
	}

	return predictions, nil
}

// PredictOne predicts a single sample given as a feature slice.
func (sgd *SGDRegressor) PredictOne(x []float64) (float64, error) {
	if err := sgd.state.RequireFitted("SGDRegressor", "PredictOne"); err != nil {
		return 0, err
	}
	if len(x) != sgd.nFeatures {
		return 0, hfErrors.NewDimensionError("SGDRegressor.PredictOne", sgd.nFeatures, len(x), 1)
	}

	pred := sgd.intercept
	for i, xi := range x {
		pred += sgd.coef[i] * xi
	}
	return pred, nil
}

// Score returns the coefficient of determination (R²) on X, y.
func (sgd *SGDRegressor) Score(X, y mat.Matrix) (float64, error) {
	predictions, err := sgd.Predict(X)
	if err != nil {
		return 0, err
	}
	return rSquared(y, predictions, "SGDRegressor.Score")
}

// Coef returns a copy of the learned coefficients.
func (sgd *SGDRegressor) Coef() []float64 {
	coef := make([]float64, len(sgd.coef))
	copy(coef, sgd.coef)
	return coef
}

// Intercept returns the learned intercept.
func (sgd *SGDRegressor) Intercept() float64 {
	return sgd.intercept
}

// NIterations returns the number of epochs executed.
func (sgd *SGDRegressor) NIterations() int {
	return sgd.nIter
}

// Converged reports whether the tolerance criterion stopped training before
// the iteration cap.
func (sgd *SGDRegressor) Converged() bool {
	return sgd.converged
}

// LossHistory returns a copy of the per-epoch mean losses.
func (sgd *SGDRegressor) LossHistory() []float64 {
	history := make([]float64, len(sgd.lossHistory))
	copy(history, sgd.lossHistory)
	return history
}

// IsFitted returns whether the model has been fitted.
func (sgd *SGDRegressor) IsFitted() bool {
	return sgd.state.IsFitted()
}

func (sgd *SGDRegressor) reset() {
	sgd.coef = nil
	sgd.intercept = 0
	sgd.nIter = 0
	sgd.t = 0
	sgd.lossHistory = make([]float64, 0)
	sgd.converged = false
	sgd.state.Reset()
}
