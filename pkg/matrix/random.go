package matrix

import (
	"math/rand/v2"

	"github.com/vnykmshr/matflow/pkg/common/validation"
)

// RandomBound is the exclusive upper bound of values produced by Random.
const RandomBound = 100

// Random returns a rows×cols matrix of values in [0, RandomBound) drawn from rng.
func Random(rng *rand.Rand, rows, cols int) (*Matrix, error) {
	if err := validation.ValidatePositive("matrix", "rows", rows); err != nil {
		return nil, err
	}
	if err := validation.ValidatePositive("matrix", "cols", cols); err != nil {
		return nil, err
	}

	data := make([]int, rows*cols)
	for i := range data {
		data[i] = rng.IntN(RandomBound)
	}
	return &Matrix{rows: rows, cols: cols, data: data}, nil
}
