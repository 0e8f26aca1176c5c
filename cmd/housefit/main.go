// Command housefit runs the housing-price analysis end to end: it loads the
// embedded dataset, fits the three regression models, writes the text
// report to stdout, and saves the two diagnostic plots. Any failure aborts
// the run with a non-zero exit status; a one-shot batch computation has no
// partial results worth keeping.
package main

import (
	"os"

	"github.com/housefit/housefit/analysis"
	"github.com/housefit/housefit/dataset"
	"github.com/housefit/housefit/pkg/log"
)

func main() {
	logger := log.GetLoggerWithName("housefit")

	ds, err := dataset.LoadCalifornia()
	if err != nil {
		logger.Error("Failed to load dataset", "error", err)
		os.Exit(1)
	}
	logger.Info("Dataset loaded", log.SamplesKey, ds.Len(), log.FeaturesKey, len(ds.FeatureNames()))

	cfg := analysis.DefaultConfig()
	result, err := analysis.Run(ds, cfg)
	if err != nil {
		logger.Error("Analysis failed", "error", err)
		os.Exit(1)
	}

	if err := result.Report.WriteText(os.Stdout); err != nil {
		logger.Error("Failed to write report", "error", err)
		os.Exit(1)
	}

	if err := result.SaveScatter(cfg.ScatterPath); err != nil {
		logger.Error("Failed to save scatter plot", "error", err, "path", cfg.ScatterPath)
		os.Exit(1)
	}
	if err := result.SaveFitComparison(cfg.FitComparisonPath); err != nil {
		logger.Error("Failed to save fit comparison plot", "error", err, "path", cfg.FitComparisonPath)
		os.Exit(1)
	}

	logger.Info("Plots saved", "scatter", cfg.ScatterPath, "fit_comparison", cfg.FitComparisonPath)
}
