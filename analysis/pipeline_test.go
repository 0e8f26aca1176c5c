package analysis

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/housefit/housefit/dataset"
	hfErrors "github.com/housefit/housefit/pkg/errors"
)

// silenceWarnings suppresses convergence warnings for the duration of a test.
func silenceWarnings(t *testing.T) {
	t.Helper()
	hfErrors.SetWarningHandler(func(error) {})
	t.Cleanup(func() { hfErrors.SetWarningHandler(nil) })
}

func runDefault(t *testing.T) *Result {
	t.Helper()
	ds, err := dataset.LoadCalifornia()
	require.NoError(t, err)

	res, err := Run(ds, DefaultConfig())
	require.NoError(t, err)
	return res
}

func TestRunReproducible(t *testing.T) {
	silenceWarnings(t)

	a := runDefault(t)
	b := runDefault(t)

	assert.Equal(t, a.TrainIndices, b.TrainIndices)
	assert.Equal(t, a.TestIndices, b.TestIndices)
	assert.Equal(t, a.Report.OLSQueryPrediction, b.Report.OLSQueryPrediction)
	assert.Equal(t, a.Report.SGDQueryPrediction, b.Report.SGDQueryPrediction)
	assert.Equal(t, a.Report.Multi.R2, b.Report.Multi.R2)
}

func TestRunReport(t *testing.T) {
	silenceWarnings(t)

	res := runDefault(t)
	r := res.Report

	assert.InDelta(t, 3.55, r.Income.Mean, 0.5)
	assert.Greater(t, r.IncomeValueCorr, 0.0, "income and house value correlate positively")

	// The full feature set explains at least as much held-out variance as
	// income alone.
	assert.GreaterOrEqual(t, r.Multi.R2, r.OLS.R2)

	assert.Greater(t, r.OLSQueryPrediction, 0.0)
	assert.Greater(t, r.SGDQueryPrediction, 0.0)

	ds, err := dataset.LoadCalifornia()
	require.NoError(t, err)
	require.Len(t, r.Importance, len(ds.FeatureNames()))
	for i := 1; i < len(r.Importance); i++ {
		assert.GreaterOrEqual(t,
			math.Abs(r.Importance[i-1].Coefficient),
			math.Abs(r.Importance[i].Coefficient),
			"importance must be sorted by descending magnitude")
	}
}

func TestRunSplitSizes(t *testing.T) {
	silenceWarnings(t)

	res := runDefault(t)
	total := len(res.TrainIndices) + len(res.TestIndices)
	assert.Equal(t, 160, total)
	assert.Equal(t, 32, len(res.TestIndices))
}

func TestWriteText(t *testing.T) {
	silenceWarnings(t)

	res := runDefault(t)

	var buf bytes.Buffer
	require.NoError(t, res.Report.WriteText(&buf))

	out := buf.String()
	assert.Contains(t, out, "Median income")
	assert.Contains(t, out, "Correlation(income, house value)")
	assert.Contains(t, out, "Model A (closed-form, income only)")
	assert.Contains(t, out, "Model B (SGD, income only)")
	assert.Contains(t, out, "Model C (closed-form, all features)")
	assert.Contains(t, out, "Feature importance")
}

func TestSavePlots(t *testing.T) {
	silenceWarnings(t)

	res := runDefault(t)
	dir := t.TempDir()

	scatter := filepath.Join(dir, "scatter.png")
	require.NoError(t, res.SaveScatter(scatter))
	info, err := os.Stat(scatter)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	fit := filepath.Join(dir, "fit.png")
	require.NoError(t, res.SaveFitComparison(fit))
	info, err = os.Stat(fit)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRunEmptyDataset(t *testing.T) {
	_, err := Run(nil, DefaultConfig())
	assert.True(t, hfErrors.Is(err, hfErrors.ErrEmptyData))
}
