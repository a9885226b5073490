// Package testutil provides deterministic fixtures for spectrum tests:
// frequency grids, constant densities and small hand-built spectra.
package testutil

import "github.com/cwbudde/algo-popgen/sfs"

// UniformGrid returns n evenly spaced allele-frequency points spanning
// [0, 1] inclusive.
func UniformGrid(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) / float64(n-1)
	}
	out[n-1] = 1

	return out
}

// ConstantDensity returns a flat row-major tensor of the given value whose
// shape is the product of the grid lengths.
func ConstantDensity(value float64, lens ...int) []float64 {
	size := 1
	for _, l := range lens {
		size *= l
	}
	out := make([]float64, size)
	for i := range out {
		out[i] = value
	}

	return out
}

// Spectrum1D builds a one-dimensional spectrum from literal entries.
func Spectrum1D(values ...float64) *sfs.Spectrum {
	s := sfs.New(len(values))
	copy(s.Data(), values)

	return s
}

// Spectrum2D builds a two-dimensional spectrum from literal rows. All rows
// must have the same length.
func Spectrum2D(rows ...[]float64) *sfs.Spectrum {
	s := sfs.New(len(rows), len(rows[0]))
	data := s.Data()
	for i, row := range rows {
		copy(data[i*len(row):], row)
	}

	return s
}
