package stats

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-popgen/sfs"
	"gonum.org/v1/gonum/stat/combin"
)

// RandomlyResampled2D pools the individuals of both populations and deals
// them back out at random, modeling the null hypothesis of no
// differentiation. Each pooled derived-count bin is redistributed across the
// (derived1, derived2) pairs summing to it with the exact hypergeometric
// probability
//
//	C(dt, d1) * C(at, a1) / C(n1+n2, n1)
//
// computed in log space for stability. Only defined for two-dimensional
// spectra. Masked entries contribute nothing to the pool; total site count
// is preserved up to rounding.
func RandomlyResampled2D(s *sfs.Spectrum) (*sfs.Spectrum, error) {
	if s.Rank() != 2 {
		return nil, fmt.Errorf("%w: resampling needs rank 2, got %d", ErrDimensionality, s.Rank())
	}

	shape := s.Shape()
	n1, n2 := shape[0]-1, shape[1]-1
	ntot := n1 + n2

	// Pooled one-dimensional spectrum keyed by total derived count.
	combined := make([]float64, ntot+1)
	for i := 0; i <= n1; i++ {
		for j := 0; j <= n2; j++ {
			flat := i*(n2+1) + j
			if s.Masked(flat) {
				continue
			}
			combined[i+j] += s.AtFlat(flat)
		}
	}

	logTotal := combin.LogGeneralizedBinomial(float64(ntot), float64(n1))

	out := sfs.New(shape...)
	res := out.Data()
	for d1 := 0; d1 <= n1; d1++ {
		for dt, sites := range combined {
			d2 := dt - d1
			if d2 < 0 || d2 > n2 {
				continue
			}
			at := ntot - dt
			a1 := n1 - d1

			prob := math.Exp(combin.LogGeneralizedBinomial(float64(dt), float64(d1)) +
				combin.LogGeneralizedBinomial(float64(at), float64(a1)) - logTotal)
			// Underflow can leave garbage; only positive probabilities
			// contribute.
			if prob > 0 {
				res[d1*(n2+1)+d2] += prob * sites
			}
		}
	}

	return out, nil
}
