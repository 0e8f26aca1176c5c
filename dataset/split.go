package dataset

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/housefit/housefit/pkg/errors"
)

// TrainTestSplit partitions the row indices [0, n) into disjoint, exhaustive
// train and test subsets. The test set holds round(n * testFraction) rows.
//
// The generator is passed in explicitly rather than seeded here: the pipeline
// owns a single seeded generator shared by every randomized stage, so the
// whole run is reproducible as long as the stages consume it in a fixed
// order. Identical generator state yields identical partitions.
//
// Both returned index slices are sorted ascending, so downstream matrix
// construction preserves the dataset's row order within each subset.
func TrainTestSplit(n int, testFraction float64, rng *rand.Rand) (train, test []int, err error) {
	if n <= 0 {
		return nil, nil, errors.NewValueError("TrainTestSplit", "dataset has no rows")
	}
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, errors.Newf("housefit: TrainTestSplit: test fraction must be in (0, 1), got %g", testFraction)
	}
	if rng == nil {
		return nil, nil, errors.NewValueError("TrainTestSplit", "nil random generator")
	}

	nTest := int(math.Round(float64(n) * testFraction))
	if nTest == 0 {
		nTest = 1
	}
	if nTest == n {
		nTest = n - 1
	}

	perm := rng.Perm(n)
	test = append([]int{}, perm[:nTest]...)
	train = append([]int{}, perm[nTest:]...)
	sort.Ints(test)
	sort.Ints(train)

	return train, test, nil
}
