package discretize

import (
	"errors"
	"fmt"
)

var (
	// ErrGridTooShort reports a grid with fewer than two points, on which
	// trapezoidal integration is undefined.
	ErrGridTooShort = errors.New("grid must have at least 2 points")

	// ErrShapeMismatch reports a density whose length disagrees with the
	// product of its grid lengths.
	ErrShapeMismatch = errors.New("density length must match grid lengths")

	// ErrSampleSize reports a negative sample size.
	ErrSampleSize = errors.New("sample size must be >= 0")
)

func validateAxes(density []float64, ns []int, grids ...[]float64) error {
	size := 1
	for k, grid := range grids {
		if ns[k] < 0 {
			return fmt.Errorf("%w: %d", ErrSampleSize, ns[k])
		}
		if len(grid) < 2 {
			return fmt.Errorf("%w: axis %d has %d", ErrGridTooShort, k, len(grid))
		}
		size *= len(grid)
	}
	if len(density) != size {
		return fmt.Errorf("%w: %d values for %d grid points", ErrShapeMismatch, len(density), size)
	}

	return nil
}
