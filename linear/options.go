package linear

import (
	"math/rand/v2"
)

// Option configures an SGDRegressor.
type Option func(*SGDRegressor)

// WithPenalty sets the regularization kind, "none" or "l2".
func WithPenalty(penalty string) Option {
	return func(sgd *SGDRegressor) {
		sgd.penalty = penalty
	}
}

// WithAlpha sets the regularization strength used by the "l2" penalty.
func WithAlpha(alpha float64) Option {
	return func(sgd *SGDRegressor) {
		sgd.alpha = alpha
	}
}

// WithLearningRateSchedule sets the schedule, "constant" or "invscaling".
func WithLearningRateSchedule(schedule string) Option {
	return func(sgd *SGDRegressor) {
		sgd.learningRate = schedule
	}
}

// WithEta0 sets the initial learning rate.
func WithEta0(eta0 float64) Option {
	return func(sgd *SGDRegressor) {
		sgd.eta0 = eta0
	}
}

// WithMaxIter sets the epoch cap.
func WithMaxIter(maxIter int) Option {
	return func(sgd *SGDRegressor) {
		sgd.maxIter = maxIter
	}
}

// WithTol sets the convergence tolerance on epoch-loss improvement.
func WithTol(tol float64) Option {
	return func(sgd *SGDRegressor) {
		sgd.tol = tol
	}
}

// WithNIterNoChange sets how many consecutive epochs the loss must hold
// steady within tol before training stops.
func WithNIterNoChange(n int) Option {
	return func(sgd *SGDRegressor) {
		sgd.nIterNoChange = n
	}
}

// WithFitIntercept controls whether the intercept is learned.
func WithFitIntercept(fit bool) Option {
	return func(sgd *SGDRegressor) {
		sgd.fitIntercept = fit
	}
}

// WithShuffle controls whether rows are reshuffled each epoch.
func WithShuffle(shuffle bool) Option {
	return func(sgd *SGDRegressor) {
		sgd.shuffle = shuffle
	}
}

// WithRandomState seeds a dedicated generator for initialization and
// shuffling. Ignored when WithRNG supplies a generator.
func WithRandomState(seed int64) Option {
	return func(sgd *SGDRegressor) {
		sgd.randomState = seed
		if seed >= 0 {
			sgd.rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
		}
	}
}

// WithRNG hands the regressor an externally owned generator. The analysis
// pipeline uses this to share one seeded generator between the splitter and
// the SGD shuffler, keeping the whole run reproducible from a single seed.
func WithRNG(rng *rand.Rand) Option {
	return func(sgd *SGDRegressor) {
		sgd.rng = rng
	}
}
