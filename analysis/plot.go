package analysis

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/housefit/housefit/dataset"
	hfErrors "github.com/housefit/housefit/pkg/errors"
)

// SaveScatter renders the raw income vs house-value scatter plot to a
// raster image at path.
func (r *Result) SaveScatter(path string) error {
	income, err := r.ds.Column(dataset.MedInc)
	if err != nil {
		return err
	}
	value, err := r.ds.Column(dataset.TargetName)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = "California Housing: Median Income vs House Value"
	p.X.Label.Text = "Median income ($10k)"
	p.Y.Label.Text = "Median house value ($100k)"

	scatter, err := plotter.NewScatter(toXYs(income, value))
	if err != nil {
		return hfErrors.Wrap(err, "analysis: scatter plot")
	}
	scatter.GlyphStyle.Radius = vg.Points(2)
	p.Add(scatter)
	p.Legend.Add("observations", scatter)

	return p.Save(8*vg.Inch, 6*vg.Inch, path)
}

// SaveFitComparison renders the held-out test points with the prediction
// lines of the closed-form and SGD single-feature models overlaid. Each
// legend entry carries the model's held-out R².
func (r *Result) SaveFitComparison(path string) error {
	income, err := r.ds.Column(dataset.MedInc)
	if err != nil {
		return err
	}
	value, err := r.ds.Column(dataset.TargetName)
	if err != nil {
		return err
	}

	testIncome := make([]float64, len(r.TestIndices))
	testValue := make([]float64, len(r.TestIndices))
	for i, idx := range r.TestIndices {
		testIncome[i] = income[idx]
		testValue[i] = value[idx]
	}

	p := plot.New()
	p.Title.Text = "Held-out Fit: Closed-form vs SGD"
	p.X.Label.Text = "Median income ($10k)"
	p.Y.Label.Text = "Median house value ($100k)"

	scatter, err := plotter.NewScatter(toXYs(testIncome, testValue))
	if err != nil {
		return hfErrors.Wrap(err, "analysis: test scatter")
	}
	scatter.GlyphStyle.Radius = vg.Points(2)
	p.Add(scatter)
	p.Legend.Add("test points", scatter)

	minX := floats.Min(testIncome)
	maxX := floats.Max(testIncome)

	olsLine, err := predictionLine(minX, maxX, r.OLS.PredictOne)
	if err != nil {
		return err
	}
	olsLine.Color = color.RGBA{R: 204, G: 51, B: 51, A: 255}
	p.Add(olsLine)
	p.Legend.Add(fmt.Sprintf("closed-form (R²=%.3f)", r.Report.OLS.R2), olsLine)

	sgdLine, err := predictionLine(minX, maxX, func(x []float64) (float64, error) {
		scaled, err := r.Scaler.TransformOne(x)
		if err != nil {
			return 0, err
		}
		return r.SGD.PredictOne(scaled)
	})
	if err != nil {
		return err
	}
	sgdLine.Color = color.RGBA{B: 204, G: 102, A: 255}
	sgdLine.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(sgdLine)
	p.Legend.Add(fmt.Sprintf("SGD (R²=%.3f)", r.Report.SGD.R2), sgdLine)

	p.Legend.Top = true

	return p.Save(8*vg.Inch, 6*vg.Inch, path)
}

// predictionLine builds a two-point line by evaluating a single-feature
// model at the ends of the x range. Both models are linear, so two points
// render the prediction exactly.
func predictionLine(minX, maxX float64, predict func([]float64) (float64, error)) (*plotter.Line, error) {
	yMin, err := predict([]float64{minX})
	if err != nil {
		return nil, err
	}
	yMax, err := predict([]float64{maxX})
	if err != nil {
		return nil, err
	}

	pts := plotter.XYs{{X: minX, Y: yMin}, {X: maxX, Y: yMax}}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, hfErrors.Wrap(err, "analysis: prediction line")
	}
	return line, nil
}

func toXYs(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}
