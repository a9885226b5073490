package stats

import "errors"

var (
	// ErrDimensionality reports a statistic applied to a spectrum of the
	// wrong rank.
	ErrDimensionality = errors.New("statistic not defined for this spectrum rank")
)
