package analysis

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/housefit/housefit/dataset"
	"github.com/housefit/housefit/linear"
	"github.com/housefit/housefit/metrics"
	hfErrors "github.com/housefit/housefit/pkg/errors"
	"github.com/housefit/housefit/pkg/log"
	"github.com/housefit/housefit/preprocessing"
	"github.com/housefit/housefit/stats"
)

// ModelEval holds the held-out evaluation of one fitted model.
type ModelEval struct {
	MSE float64
	R2  float64
}

// Result bundles the report with the fitted artifacts, keeping the models
// and split available to the plot renderers.
type Result struct {
	Report *Report

	TrainIndices []int
	TestIndices  []int

	OLS    *linear.LinearRegression
	SGD    *linear.SGDRegressor
	Scaler *preprocessing.StandardScaler
	Multi  *linear.LinearRegression

	ds *dataset.Dataset
}

// Run executes the analysis pipeline on the dataset. The stages run in a
// fixed order — statistics, split, exact single-feature fit, SGD fit,
// multi-feature fit, evaluation — and any stage failure aborts the run:
// this is a one-shot batch computation with no partial results.
func Run(ds *dataset.Dataset, cfg Config) (*Result, error) {
	logger := log.GetLoggerWithName("analysis")

	if ds == nil || ds.Len() == 0 {
		return nil, hfErrors.NewModelError("analysis.Run", "empty dataset", hfErrors.ErrEmptyData)
	}

	// The single generator shared by every randomized stage. Consumption
	// order (splitter, then SGD shuffling) must match the pipeline order.
	rng := rand.New(rand.NewPCG(uint64(cfg.Seed), uint64(cfg.Seed)))

	report := &Report{QueryIncome: cfg.QueryIncome}

	income, err := ds.Column(dataset.MedInc)
	if err != nil {
		return nil, err
	}
	value, err := ds.Column(dataset.TargetName)
	if err != nil {
		return nil, err
	}

	if report.Income, err = stats.Describe(income); err != nil {
		return nil, err
	}
	if report.HouseValue, err = stats.Describe(value); err != nil {
		return nil, err
	}
	if report.IncomeValueCorr, err = stats.Correlation(income, value); err != nil {
		return nil, err
	}

	trainIdx, testIdx, err := dataset.TrainTestSplit(ds.Len(), cfg.TestFraction, rng)
	if err != nil {
		return nil, err
	}
	logger.Info("Split dataset",
		log.SeedKey, cfg.Seed,
		log.SamplesKey, ds.Len(),
		"train_rows", len(trainIdx),
		"test_rows", len(testIdx),
	)

	XTrain, err := ds.Features(trainIdx, dataset.MedInc)
	if err != nil {
		return nil, err
	}
	XTest, err := ds.Features(testIdx, dataset.MedInc)
	if err != nil {
		return nil, err
	}
	yTrain, err := ds.Targets(trainIdx)
	if err != nil {
		return nil, err
	}
	yTest, err := ds.Targets(testIdx)
	if err != nil {
		return nil, err
	}

	// Model A: exact least squares on income alone.
	ols := linear.NewLinearRegression()
	if err := ols.Fit(XTrain, yTrain); err != nil {
		return nil, err
	}
	if report.OLS, err = evaluate(ols, XTest, yTest); err != nil {
		return nil, err
	}
	if report.OLSQueryPrediction, err = ols.PredictOne([]float64{cfg.QueryIncome}); err != nil {
		return nil, err
	}

	// Model B: SGD on the same feature, standardized with training-split
	// statistics so the fixed initial learning rate is well-conditioned.
	scaler := preprocessing.NewStandardScaler()
	XTrainScaled, err := scaler.FitTransform(XTrain)
	if err != nil {
		return nil, err
	}
	XTestScaled, err := scaler.Transform(XTest)
	if err != nil {
		return nil, err
	}

	sgd := linear.NewSGDRegressor(
		linear.WithRNG(rng),
		linear.WithEta0(cfg.SGDEta0),
		linear.WithMaxIter(cfg.SGDMaxIter),
		linear.WithTol(cfg.SGDTol),
	)
	if err := sgd.Fit(XTrainScaled, yTrain); err != nil {
		return nil, err
	}
	if report.SGD, err = evaluate(sgd, XTestScaled, yTest); err != nil {
		return nil, err
	}
	queryScaled, err := scaler.TransformOne([]float64{cfg.QueryIncome})
	if err != nil {
		return nil, err
	}
	if report.SGDQueryPrediction, err = sgd.PredictOne(queryScaled); err != nil {
		return nil, err
	}

	// Model C: exact least squares on the full feature set. Same algorithm
	// as Model A on a wider matrix.
	featureNames := ds.FeatureNames()
	XTrainAll, err := ds.Features(trainIdx, featureNames...)
	if err != nil {
		return nil, err
	}
	XTestAll, err := ds.Features(testIdx, featureNames...)
	if err != nil {
		return nil, err
	}

	multi := linear.NewLinearRegression()
	if err := multi.Fit(XTrainAll, yTrain); err != nil {
		return nil, err
	}
	if report.Multi, err = evaluate(multi, XTestAll, yTest); err != nil {
		return nil, err
	}

	if report.OLS.R2 != 0 {
		report.MultiImprovementPct = (report.Multi.R2 - report.OLS.R2) / math.Abs(report.OLS.R2) * 100
	}

	if report.Importance, err = RankFeatures(featureNames, multi.Coef()); err != nil {
		return nil, err
	}

	logger.Info("Analysis completed",
		log.R2ScoreKey, report.Multi.R2,
		log.MSEKey, report.Multi.MSE,
	)

	return &Result{
		Report:       report,
		TrainIndices: trainIdx,
		TestIndices:  testIdx,
		OLS:          ols,
		SGD:          sgd,
		Scaler:       scaler,
		Multi:        multi,
		ds:           ds,
	}, nil
}

// predictor is the shared prediction surface of both regressor types.
type predictor interface {
	Predict(X mat.Matrix) (mat.Matrix, error)
}

func evaluate(model predictor, X, y mat.Matrix) (ModelEval, error) {
	yPred, err := model.Predict(X)
	if err != nil {
		return ModelEval{}, err
	}
	mse, err := metrics.MSEMatrix(y, yPred)
	if err != nil {
		return ModelEval{}, err
	}
	r2, err := metrics.R2ScoreMatrix(y, yPred)
	if err != nil {
		return ModelEval{}, err
	}
	return ModelEval{MSE: mse, R2: r2}, nil
}
