package stats

import (
	"fmt"

	"github.com/cwbudde/algo-popgen/sfs"
)

// Fst returns Wright's Fst between the populations of the spectrum, by the
// method of Weir and Cockerham, Evolution 38:1358 (1984). The per-site
// estimator from the top of p. 1363 is combined across sites with the
// weighted average of their equation 10; the weighting by site counts is
// part of the estimator and is what makes low-count bins contribute little.
//
// The estimate assumes random mating, since a frequency spectrum carries no
// heterozygote counts. Works on spectra of any rank >= 2; the loop is
// rank-generic rather than specialized per rank. Masked entries contribute
// to neither sum. Degenerate spectra (a population with zero samples, all
// weight at an invariant corner) yield NaN or Inf rather than an error.
func Fst(s *sfs.Spectrum) (float64, error) {
	r := s.Rank()
	if r < 2 {
		return 0, fmt.Errorf("%w: Fst needs rank >= 2, got %d", ErrDimensionality, r)
	}

	// Sample-size quantities from p. 1360.
	ns := s.SampleSizes()
	var nsum, nsqsum float64
	for _, n := range ns {
		nsum += float64(n)
		nsqsum += float64(n) * float64(n)
	}
	nbar := nsum / float64(r)
	nc := (nsum - nsqsum/nsum) / float64(r-1)

	idx := make([]int, r)
	var asum, dsum float64
	for flat := 0; flat < s.Len(); flat++ {
		if s.Masked(flat) {
			continue
		}
		s.MultiIndex(flat, idx)

		// pbar is the frequency-weighted mean across populations; the
		// products nk * (ik/nk) collapse to the raw counts.
		var pbar float64
		for _, i := range idx {
			pbar += float64(i)
		}
		pbar /= nsum

		var s2 float64
		for k, i := range idx {
			pt := float64(i)/float64(ns[k]) - pbar
			s2 += float64(ns[k]) * pt * pt
		}
		s2 /= float64(r-1) * nbar

		// h solves W&C equation 3 for hbar with b = 0, which is why a
		// below differs from their equation 2.
		h := pbar*(1-pbar) - float64(r-1)/float64(r)*s2
		a := nbar / nc * (s2 - h/(2*nbar-1))
		d := 2 * nbar / (2*nbar - 1) * h

		sites := s.AtFlat(flat)
		asum += sites * a
		dsum += sites * d
	}

	return asum / (asum + dsum), nil
}
