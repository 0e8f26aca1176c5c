package analysis

import (
	"fmt"
	"io"

	"github.com/housefit/housefit/stats"
)

// Report holds every number the analysis prints: column statistics, the
// income/value correlation, per-model query predictions and held-out
// metrics, and the multi-feature coefficient ranking.
type Report struct {
	Income     stats.Summary
	HouseValue stats.Summary

	IncomeValueCorr float64

	QueryIncome        float64
	OLSQueryPrediction float64
	SGDQueryPrediction float64

	OLS   ModelEval
	SGD   ModelEval
	Multi ModelEval

	// MultiImprovementPct is the relative R² gain of the multi-feature
	// model over the single-feature exact fit, in percent.
	MultiImprovementPct float64

	Importance []FeatureImportance
}

// WriteText renders the human-readable report. House values are in units
// of $100,000 and incomes in units of $10,000, following the dataset's
// schema.
func (r *Report) WriteText(w io.Writer) error {
	write := func(format string, args ...interface{}) error {
		_, err := fmt.Fprintf(w, format, args...)
		return err
	}

	if err := write("Median income ($10k):    mean=%.4f  median=%.4f  std=%.4f\n",
		r.Income.Mean, r.Income.Median, r.Income.StdDev); err != nil {
		return err
	}
	if err := write("House value ($100k):     mean=%.4f  median=%.4f  std=%.4f\n",
		r.HouseValue.Mean, r.HouseValue.Median, r.HouseValue.StdDev); err != nil {
		return err
	}
	if err := write("Correlation(income, house value) = %.4f\n\n", r.IncomeValueCorr); err != nil {
		return err
	}

	if err := write("Predicted house value at income %.1f ($%.0f):\n",
		r.QueryIncome, r.QueryIncome*10000); err != nil {
		return err
	}
	if err := write("  closed-form: $%.0f\n", r.OLSQueryPrediction*100000); err != nil {
		return err
	}
	if err := write("  SGD:         $%.0f\n\n", r.SGDQueryPrediction*100000); err != nil {
		return err
	}

	if err := write("Model A (closed-form, income only):  MSE=%.4f  R²=%.4f\n",
		r.OLS.MSE, r.OLS.R2); err != nil {
		return err
	}
	if err := write("Model B (SGD, income only):          MSE=%.4f  R²=%.4f\n",
		r.SGD.MSE, r.SGD.R2); err != nil {
		return err
	}
	if err := write("Model C (closed-form, all features): MSE=%.4f  R²=%.4f  (%+.1f%% R² vs Model A)\n\n",
		r.Multi.MSE, r.Multi.R2, r.MultiImprovementPct); err != nil {
		return err
	}

	if err := write("Feature importance (|coefficient|, multi-feature model):\n"); err != nil {
		return err
	}
	for i, fi := range r.Importance {
		if err := write("  %d. %-10s %+.4f\n", i+1, fi.Feature, fi.Coefficient); err != nil {
			return err
		}
	}

	return nil
}
