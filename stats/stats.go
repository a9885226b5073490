// Package stats computes population-genetic summary statistics from site
// frequency spectra: Watterson's theta, nucleotide diversity, Tajima's D,
// Wright's Fst and a resampling null model. Degenerate inputs (sample sizes
// of one, zero denominators, negative radicands) surface as NaN or Inf per
// floating-point semantics so callers can detect them downstream; only rank
// violations are reported as errors.
package stats

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-popgen/sfs"
)

// SegregatingSites returns the total site count of the spectrum with its
// corners masked. The all-ancestral and all-derived bins are not
// polymorphic, so they never count as segregating sites.
func SegregatingSites(s *sfs.Spectrum) float64 {
	return s.MaskCorners().Sum()
}

// WattersonTheta returns Watterson's estimator of the population mutation
// rate: the segregating-site count divided by the harmonic number of n-1.
// Only defined for one-dimensional spectra.
func WattersonTheta(s *sfs.Spectrum) (float64, error) {
	if s.Rank() != 1 {
		return 0, fmt.Errorf("%w: Watterson theta needs rank 1, got %d", ErrDimensionality, s.Rank())
	}

	n := s.Len() - 1
	segSites := SegregatingSites(s)

	var denom float64
	for i := 1; i < n; i++ {
		denom += 1 / float64(i)
	}

	return segSites / denom, nil
}

// Pi returns the estimated expected heterozygosity, assuming a randomly
// mating population. Only defined for one-dimensional spectra.
//
// Pi honors the spectrum's existing mask but does not mask the corners
// itself: the weight p*(1-p) is already zero at both corners, so they
// contribute nothing either way.
func Pi(s *sfs.Spectrum) (float64, error) {
	if s.Rank() != 1 {
		return 0, fmt.Errorf("%w: pi needs rank 1, got %d", ErrDimensionality, s.Rank())
	}

	n := float64(s.Len() - 1)

	var sum float64
	for i := 0; i < s.Len(); i++ {
		if s.Masked(i) {
			continue
		}
		p := float64(i) / n
		sum += s.AtFlat(i) * p * (1 - p)
	}

	return n / (n - 1) * 2 * sum, nil
}

// TajimaD returns Tajima's D, contrasting pi with Watterson's theta.
// Constants follow Gillespie, "Population Genetics: A Concise Guide" p. 45.
// Only defined for one-dimensional spectra. For n <= 1, or when the variance
// radicand goes negative, the result is NaN.
func TajimaD(s *sfs.Spectrum) (float64, error) {
	if s.Rank() != 1 {
		return 0, fmt.Errorf("%w: Tajima's D needs rank 1, got %d", ErrDimensionality, s.Rank())
	}

	segSites := SegregatingSites(s)
	n := float64(s.Len() - 1)

	pihat, _ := Pi(s)
	theta, _ := WattersonTheta(s)

	var a1, a2 float64
	for i := 1.0; i < n; i++ {
		a1 += 1 / i
		a2 += 1 / (i * i)
	}
	b1 := (n + 1) / (3 * (n - 1))
	b2 := 2 * (n*n + n + 3) / (9 * n * (n - 1))
	c1 := b1 - 1/a1
	c2 := b2 - (n+2)/(a1*n) + a2/(a1*a1)

	c := math.Sqrt(c1/a1*segSites + c2/(a1*a1+a2)*segSites*(segSites-1))

	return (pihat - theta) / c, nil
}
