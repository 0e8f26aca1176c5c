package analysis

import (
	"math"
	"sort"

	hfErrors "github.com/housefit/housefit/pkg/errors"
)

// FeatureImportance pairs a feature name with its fitted coefficient.
type FeatureImportance struct {
	Feature     string
	Coefficient float64
}

// RankFeatures orders features by descending absolute coefficient
// magnitude. The sort is stable, so equal magnitudes keep the original
// feature order.
func RankFeatures(names []string, coef []float64) ([]FeatureImportance, error) {
	if len(names) == 0 {
		return nil, hfErrors.NewValueError("RankFeatures", "no features")
	}
	if len(names) != len(coef) {
		return nil, hfErrors.NewDimensionError("RankFeatures", len(names), len(coef), 1)
	}

	ranked := make([]FeatureImportance, len(names))
	for i, name := range names {
		ranked[i] = FeatureImportance{Feature: name, Coefficient: coef[i]}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return math.Abs(ranked[i].Coefficient) > math.Abs(ranked[j].Coefficient)
	})

	return ranked, nil
}
