// Package dataset supplies the fixed in-memory housing table the analysis
// pipeline runs on, together with the deterministic train/test splitter.
//
// The data is a sample of the California housing dataset embedded at build
// time: five numeric feature columns (median income, house age, average
// rooms, latitude, longitude) and one numeric target column (median house
// value, in units of $100,000). A Dataset is loaded once and is read-only
// afterwards; all accessors return copies.
package dataset

import (
	_ "embed"
	"encoding/csv"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/housefit/housefit/pkg/errors"
)

//go:embed california_sample.csv
var californiaCSV string

// Feature column names, in schema order.
const (
	MedInc    = "MedInc"
	HouseAge  = "HouseAge"
	AveRooms  = "AveRooms"
	Latitude  = "Latitude"
	Longitude = "Longitude"

	// TargetName is the target column, median house value in $100,000s.
	TargetName = "MedHouseVal"
)

var featureNames = []string{MedInc, HouseAge, AveRooms, Latitude, Longitude}

// Record is one housing observation. Immutable once loaded.
type Record struct {
	MedInc      float64
	HouseAge    float64
	AveRooms    float64
	Latitude    float64
	Longitude   float64
	MedHouseVal float64
}

// Dataset is an ordered, read-only sequence of Records.
type Dataset struct {
	records []Record
	columns map[string][]float64
}

// LoadCalifornia parses the embedded housing sample into a Dataset.
// Malformed embedded data is a build defect, so any parse failure is
// returned as an error for the caller to treat as fatal.
func LoadCalifornia() (*Dataset, error) {
	reader := csv.NewReader(strings.NewReader(californiaCSV))
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "dataset: failed to parse embedded housing sample")
	}
	if len(rows) < 2 {
		return nil, errors.NewValueError("LoadCalifornia", "embedded housing sample has no data rows")
	}

	header := rows[0]
	want := append(append([]string{}, featureNames...), TargetName)
	if len(header) != len(want) {
		return nil, errors.NewDimensionError("LoadCalifornia", len(want), len(header), 1)
	}
	for i, name := range want {
		if header[i] != name {
			return nil, errors.Newf("dataset: unexpected column %q at position %d, want %q", header[i], i, name)
		}
	}

	ds := &Dataset{
		records: make([]Record, 0, len(rows)-1),
		columns: make(map[string][]float64, len(want)),
	}
	for _, name := range want {
		ds.columns[name] = make([]float64, 0, len(rows)-1)
	}

	for i, row := range rows[1:] {
		vals := make([]float64, len(want))
		for j, field := range row {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "dataset: row %d column %q", i+1, want[j])
			}
			vals[j] = v
		}
		ds.records = append(ds.records, Record{
			MedInc:      vals[0],
			HouseAge:    vals[1],
			AveRooms:    vals[2],
			Latitude:    vals[3],
			Longitude:   vals[4],
			MedHouseVal: vals[5],
		})
		for j, name := range want {
			ds.columns[name] = append(ds.columns[name], vals[j])
		}
	}

	return ds, nil
}

// Len returns the number of records.
func (ds *Dataset) Len() int {
	return len(ds.records)
}

// FeatureNames returns the feature column names in schema order.
func (ds *Dataset) FeatureNames() []string {
	names := make([]string, len(featureNames))
	copy(names, featureNames)
	return names
}

// Column returns a copy of the named column (feature or target).
func (ds *Dataset) Column(name string) ([]float64, error) {
	col, ok := ds.columns[name]
	if !ok {
		return nil, errors.NewValueError("Dataset.Column", "unknown column "+name)
	}
	out := make([]float64, len(col))
	copy(out, col)
	return out, nil
}

// Features builds a feature matrix from the named columns, restricted to the
// given row indices. A nil indices slice selects every row.
func (ds *Dataset) Features(indices []int, names ...string) (*mat.Dense, error) {
	if len(names) == 0 {
		return nil, errors.NewValueError("Dataset.Features", "no feature columns requested")
	}
	cols := make([][]float64, len(names))
	for i, name := range names {
		col, ok := ds.columns[name]
		if !ok || name == TargetName {
			return nil, errors.NewValueError("Dataset.Features", "unknown feature column "+name)
		}
		cols[i] = col
	}

	if indices == nil {
		indices = allIndices(len(ds.records))
	}
	X := mat.NewDense(len(indices), len(names), nil)
	for i, idx := range indices {
		if idx < 0 || idx >= len(ds.records) {
			return nil, errors.Newf("dataset: row index %d out of range [0, %d)", idx, len(ds.records))
		}
		for j := range names {
			X.Set(i, j, cols[j][idx])
		}
	}
	return X, nil
}

// Targets builds the target vector restricted to the given row indices.
// A nil indices slice selects every row.
func (ds *Dataset) Targets(indices []int) (*mat.VecDense, error) {
	col := ds.columns[TargetName]
	if indices == nil {
		indices = allIndices(len(ds.records))
	}
	y := mat.NewVecDense(len(indices), nil)
	for i, idx := range indices {
		if idx < 0 || idx >= len(ds.records) {
			return nil, errors.Newf("dataset: row index %d out of range [0, %d)", idx, len(ds.records))
		}
		y.SetVec(i, col[idx])
	}
	return y, nil
}

func allIndices(n int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return indices
}
