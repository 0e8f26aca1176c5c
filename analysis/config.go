// Package analysis orchestrates the housing-price study end to end: summary
// statistics, a deterministic train/test split, three linear models (exact
// single-feature, SGD single-feature, exact multi-feature), evaluation, and
// rendering of the text report and diagnostic plots.
//
// The pipeline is strictly sequential and owns a single seeded random
// generator, consumed first by the splitter and then by the SGD shuffler,
// so an entire run is reproducible from one seed.
package analysis

// Config holds the fixed parameters of one analysis run. There is no
// external configuration surface; the zero-argument DefaultConfig is what
// the command uses.
type Config struct {
	// Seed initializes the shared random generator.
	Seed int64

	// TestFraction is the held-out share of rows, in (0, 1).
	TestFraction float64

	// QueryIncome is the median-income query point for the single-feature
	// models, in units of $10,000 (8.0 means $80,000).
	QueryIncome float64

	// SGD hyperparameters. Regularization is disabled for the analysis;
	// the learning-rate schedule is the regressor's invscaling default.
	SGDEta0    float64
	SGDMaxIter int
	SGDTol     float64

	// Output image paths.
	ScatterPath       string
	FitComparisonPath string
}

// DefaultConfig returns the canonical analysis parameters.
func DefaultConfig() Config {
	return Config{
		Seed:              42,
		TestFraction:      0.2,
		QueryIncome:       8.0,
		SGDEta0:           0.01,
		SGDMaxIter:        1000,
		SGDTol:            1e-5,
		ScatterPath:       "housing_scatter.png",
		FitComparisonPath: "housing_fit.png",
	}
}
