package sfs

import "errors"

var (
	// ErrShapeMismatch reports spectra whose shapes disagree.
	ErrShapeMismatch = errors.New("spectra must have the same shape")
)
