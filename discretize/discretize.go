package discretize

import (
	"math"

	"github.com/cwbudde/algo-popgen/sfs"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat/combin"
)

// fillBinomialFactor writes C(n,i) * p^i * (1-p)^(n-i) over the grid into
// dst, which must have the grid's length.
func fillBinomialFactor(dst []float64, n, i int, grid []float64) {
	c := combin.GeneralizedBinomial(float64(n), float64(i))
	for j, p := range grid {
		dst[j] = c * math.Pow(p, float64(i)) * math.Pow(1-p, float64(n-i))
	}
}

// binomialFactors precomputes the factor vector for every i in 0..n. Each
// vector is reused across the other axes' sweeps, so the per-grid-point work
// happens n+1 times instead of once per output entry. The table lives only
// for the duration of one call.
func binomialFactors(n int, grid []float64) [][]float64 {
	factors := make([][]float64, n+1)
	for i := 0; i <= n; i++ {
		f := make([]float64, len(grid))
		fillBinomialFactor(f, n, i, grid)
		factors[i] = f
	}

	return factors
}

// FromPhi1D integrates the density phi, sampled on the grid xx, against the
// binomial sampling kernel for n haploid genomes. Entry i of the result is
// the expected number of sites with i derived alleles.
func FromPhi1D(n int, xx, phi []float64) (*sfs.Spectrum, error) {
	if err := validateAxes(phi, []int{n}, xx); err != nil {
		return nil, err
	}

	out := sfs.New(n + 1)
	factor := make([]float64, len(xx))
	integrand := make([]float64, len(xx))
	for i := 0; i <= n; i++ {
		fillBinomialFactor(factor, n, i, xx)
		vecmath.MulBlock(integrand, factor, phi)
		out.SetFlat(i, integrate.Trapezoidal(xx, integrand))
	}

	return out, nil
}

// FromPhi2D integrates a two-population density phi against the binomial
// sampling kernels for nx and ny haploid genomes. phi is row-major with
// shape (len(xx), len(yy)).
func FromPhi2D(nx, ny int, xx, yy, phi []float64) (*sfs.Spectrum, error) {
	if err := validateAxes(phi, []int{nx, ny}, xx, yy); err != nil {
		return nil, err
	}

	lx, ly := len(xx), len(yy)
	out := sfs.New(nx+1, ny+1)
	res := out.Data()

	factorsX := binomialFactors(nx, xx)

	factorY := make([]float64, ly)
	rowBuf := make([]float64, ly)
	overY := make([]float64, lx)
	colBuf := make([]float64, lx)

	for j := 0; j <= ny; j++ {
		fillBinomialFactor(factorY, ny, j, yy)
		for ix := 0; ix < lx; ix++ {
			vecmath.MulBlock(rowBuf, factorY, phi[ix*ly:(ix+1)*ly])
			overY[ix] = integrate.Trapezoidal(yy, rowBuf)
		}
		for i := 0; i <= nx; i++ {
			vecmath.MulBlock(colBuf, factorsX[i], overY)
			res[i*(ny+1)+j] = integrate.Trapezoidal(xx, colBuf)
		}
	}

	return out, nil
}

// FromPhi3D integrates a three-population density phi against the binomial
// sampling kernels for nx, ny and nz haploid genomes. phi is row-major with
// shape (len(xx), len(yy), len(zz)).
func FromPhi3D(nx, ny, nz int, xx, yy, zz, phi []float64) (*sfs.Spectrum, error) {
	if err := validateAxes(phi, []int{nx, ny, nz}, xx, yy, zz); err != nil {
		return nil, err
	}

	lx, ly, lz := len(xx), len(yy), len(zz)
	out := sfs.New(nx+1, ny+1, nz+1)
	res := out.Data()

	factorsX := binomialFactors(nx, xx)
	factorsY := binomialFactors(ny, yy)

	halfDX := make([]float64, lx-1)
	for t := range halfDX {
		halfDX[t] = (xx[t+1] - xx[t]) / 2
	}

	factorZ := make([]float64, lz)
	zBuf := make([]float64, lz)
	overZ := make([]float64, lx*ly)
	yBuf := make([]float64, ly)
	overY := make([]float64, lx)
	xBuf := make([]float64, lx)

	for k := 0; k <= nz; k++ {
		fillBinomialFactor(factorZ, nz, k, zz)
		for xy := 0; xy < lx*ly; xy++ {
			vecmath.MulBlock(zBuf, factorZ, phi[xy*lz:(xy+1)*lz])
			overZ[xy] = integrate.Trapezoidal(zz, zBuf)
		}
		for j := 0; j <= ny; j++ {
			for ix := 0; ix < lx; ix++ {
				vecmath.MulBlock(yBuf, factorsY[j], overZ[ix*ly:(ix+1)*ly])
				overY[ix] = integrate.Trapezoidal(yy, yBuf)
			}
			for i := 0; i <= nx; i++ {
				vecmath.MulBlock(xBuf, factorsX[i], overY)
				// Innermost axis: explicit half-step trapezoid. The general
				// routine is called (ny+1)*(nz+1) times here and its setup
				// cost dominates; the result is identical in exact
				// arithmetic.
				var sum float64
				for t := 0; t < lx-1; t++ {
					sum += halfDX[t] * (xBuf[t] + xBuf[t+1])
				}
				res[(i*(ny+1)+j)*(nz+1)+k] = sum
			}
		}
	}

	return out, nil
}
