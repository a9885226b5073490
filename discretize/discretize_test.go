package discretize

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-popgen/internal/testutil"
)

// nonuniformGrid is strictly increasing, spans [0,1] and has uneven spacing.
var nonuniformGrid = []float64{0, 0.05, 0.15, 0.2, 0.45, 0.5, 0.8, 0.9, 1}

func TestFromPhi1DConstantDensity(t *testing.T) {
	const k = 2.0
	xx := testutil.UniformGrid(21)
	phi := testutil.ConstantDensity(k, len(xx))

	out, err := FromPhi1D(4, xx, phi)
	if err != nil {
		t.Fatal(err)
	}

	// The binomial kernel partitions a constant density evenly: each of the
	// five bins integrates to k/5, up to quadrature error on 21 points.
	want := []float64{k / 5, k / 5, k / 5, k / 5, k / 5}
	testutil.RequireSliceNearlyEqual(t, out.Data(), want, 5e-3)

	// The kernels sum to one at every frequency, so the bins must sum to
	// the integral of the density itself to float accuracy.
	testutil.RequireNearlyEqual(t, out.Sum(), k, 1e-12)
}

func TestFromPhi1DSumMatchesDensityIntegralNonuniform(t *testing.T) {
	xx := nonuniformGrid
	phi := make([]float64, len(xx))
	for i, p := range xx {
		phi[i] = 1 + p*p
	}

	out, err := FromPhi1D(7, xx, phi)
	if err != nil {
		t.Fatal(err)
	}

	// Reference: trapezoid of phi over the same grid.
	var ref float64
	for i := 0; i < len(xx)-1; i++ {
		ref += (xx[i+1] - xx[i]) / 2 * (phi[i] + phi[i+1])
	}
	testutil.RequireNearlyEqual(t, out.Sum(), ref, 1e-12)
}

func TestFromPhi2DSumOverBins(t *testing.T) {
	const k = 3.0
	xx := testutil.UniformGrid(11)
	yy := nonuniformGrid
	phi := testutil.ConstantDensity(k, len(xx), len(yy))

	out, err := FromPhi2D(3, 5, xx, yy, phi)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Rank(); got != 2 {
		t.Fatalf("rank = %d, want 2", got)
	}
	testutil.RequireNearlyEqual(t, out.Sum(), k, 1e-12)
}

func TestFromPhi2DSeparableDensity(t *testing.T) {
	xx := testutil.UniformGrid(15)
	yy := testutil.UniformGrid(9)
	f := make([]float64, len(xx))
	g := make([]float64, len(yy))
	for i, p := range xx {
		f[i] = 1 + 2*p
	}
	for j, p := range yy {
		g[j] = 3 - p
	}
	phi := make([]float64, len(xx)*len(yy))
	for i := range xx {
		for j := range yy {
			phi[i*len(yy)+j] = f[i] * g[j]
		}
	}

	nx, ny := 4, 3
	out2, err := FromPhi2D(nx, ny, xx, yy, phi)
	if err != nil {
		t.Fatal(err)
	}
	outX, err := FromPhi1D(nx, xx, f)
	if err != nil {
		t.Fatal(err)
	}
	outY, err := FromPhi1D(ny, yy, g)
	if err != nil {
		t.Fatal(err)
	}

	// A product density factorizes the integral, so the 2-D spectrum is the
	// outer product of the 1-D spectra.
	for i := 0; i <= nx; i++ {
		for j := 0; j <= ny; j++ {
			want := outX.AtFlat(i) * outY.AtFlat(j)
			testutil.RequireNearlyEqual(t, out2.At(i, j), want, 1e-12)
		}
	}
}

func TestFromPhi3DSumOverBins(t *testing.T) {
	const k = 0.5
	xx := testutil.UniformGrid(9)
	yy := testutil.UniformGrid(7)
	zz := nonuniformGrid
	phi := testutil.ConstantDensity(k, len(xx), len(yy), len(zz))

	out, err := FromPhi3D(2, 3, 4, xx, yy, zz, phi)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Rank(); got != 3 {
		t.Fatalf("rank = %d, want 3", got)
	}
	testutil.RequireNearlyEqual(t, out.Sum(), k, 1e-12)
}

func TestFromPhi3DSeparableDensity(t *testing.T) {
	xx := testutil.UniformGrid(7)
	yy := testutil.UniformGrid(6)
	zz := testutil.UniformGrid(5)
	f := make([]float64, len(xx))
	g := make([]float64, len(yy))
	h := make([]float64, len(zz))
	for i, p := range xx {
		f[i] = 1 + p
	}
	for j, p := range yy {
		g[j] = 2 - p
	}
	for l, p := range zz {
		h[l] = 0.5 + p*p
	}
	phi := make([]float64, len(xx)*len(yy)*len(zz))
	for i := range xx {
		for j := range yy {
			for l := range zz {
				phi[(i*len(yy)+j)*len(zz)+l] = f[i] * g[j] * h[l]
			}
		}
	}

	nx, ny, nz := 3, 2, 2
	out3, err := FromPhi3D(nx, ny, nz, xx, yy, zz, phi)
	if err != nil {
		t.Fatal(err)
	}
	outX, _ := FromPhi1D(nx, xx, f)
	outY, _ := FromPhi1D(ny, yy, g)
	outZ, _ := FromPhi1D(nz, zz, h)

	// Also exercises the explicit half-step inner trapezoid against the
	// general quadrature used by the 1-D path.
	for i := 0; i <= nx; i++ {
		for j := 0; j <= ny; j++ {
			for l := 0; l <= nz; l++ {
				want := outX.AtFlat(i) * outY.AtFlat(j) * outZ.AtFlat(l)
				testutil.RequireNearlyEqual(t, out3.At(i, j, l), want, 1e-12)
			}
		}
	}
}

func TestFromPhiZeroSampleSize(t *testing.T) {
	xx := testutil.UniformGrid(5)
	phi := testutil.ConstantDensity(1, len(xx))

	out, err := FromPhi1D(0, xx, phi)
	if err != nil {
		t.Fatal(err)
	}
	if out.Len() != 1 {
		t.Fatalf("len = %d, want 1", out.Len())
	}
	// The single bin holds the whole density integral.
	testutil.RequireNearlyEqual(t, out.AtFlat(0), 1, 1e-12)
}

func TestValidationErrors(t *testing.T) {
	good := testutil.UniformGrid(5)
	phi := testutil.ConstantDensity(1, 5)

	if _, err := FromPhi1D(2, []float64{0.5}, []float64{1}); !errors.Is(err, ErrGridTooShort) {
		t.Fatalf("short grid: err = %v, want ErrGridTooShort", err)
	}
	if _, err := FromPhi1D(2, good, phi[:4]); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("length mismatch: err = %v, want ErrShapeMismatch", err)
	}
	if _, err := FromPhi1D(-1, good, phi); !errors.Is(err, ErrSampleSize) {
		t.Fatalf("negative n: err = %v, want ErrSampleSize", err)
	}

	yy := testutil.UniformGrid(4)
	if _, err := FromPhi2D(2, 2, good, yy, testutil.ConstantDensity(1, 5, 3)); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("2D mismatch: err = %v, want ErrShapeMismatch", err)
	}
	if _, err := FromPhi3D(1, 1, -2, good, yy, yy, testutil.ConstantDensity(1, 5, 4, 4)); !errors.Is(err, ErrSampleSize) {
		t.Fatalf("3D negative n: err = %v, want ErrSampleSize", err)
	}
}

func TestBinomialFactorsPartitionOfUnity(t *testing.T) {
	grid := nonuniformGrid
	factors := binomialFactors(6, grid)
	for j := range grid {
		var sum float64
		for _, f := range factors {
			sum += f[j]
		}
		if math.Abs(sum-1) > 1e-12 {
			t.Fatalf("factors at p=%v sum to %v, want 1", grid[j], sum)
		}
	}
}
