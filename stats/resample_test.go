package stats

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-popgen/internal/testutil"
	"github.com/cwbudde/algo-popgen/sfs"
)

func TestRandomlyResampled2DRequiresRankTwo(t *testing.T) {
	if _, err := RandomlyResampled2D(sfs.New(5)); !errors.Is(err, ErrDimensionality) {
		t.Fatalf("err = %v, want ErrDimensionality", err)
	}
	if _, err := RandomlyResampled2D(sfs.New(3, 3, 3)); !errors.Is(err, ErrDimensionality) {
		t.Fatalf("err = %v, want ErrDimensionality", err)
	}
}

func TestRandomlyResampled2DPreservesMass(t *testing.T) {
	s := testutil.Spectrum2D(
		[]float64{0, 3, 1, 0},
		[]float64{2, 5, 0, 1},
		[]float64{0, 1, 4, 2},
	)

	out, err := RandomlyResampled2D(s)
	if err != nil {
		t.Fatal(err)
	}
	// Resampling repartitions sites across bins; it neither creates nor
	// destroys them.
	testutil.RequireNearlyEqual(t, out.Sum(), s.Sum(), 1e-9)
}

func TestRandomlyResampled2DHypergeometric(t *testing.T) {
	// 100 sites, all fixed derived in pop 1 and absent in pop 2 (n1=n2=4).
	// Pooling gives 4 derived among 8; dealing them back follows the
	// hypergeometric law with C(8,4)=70 outcomes.
	s := sfs.New(5, 5)
	s.Set(100, 4, 0)

	out, err := RandomlyResampled2D(s)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireNearlyEqual(t, out.At(4, 0), 100.0/70, 1e-9)
	testutil.RequireNearlyEqual(t, out.At(2, 2), 100.0*36/70, 1e-9)
	testutil.RequireNearlyEqual(t, out.Sum(), 100, 1e-9)
}

func TestRandomlyResampled2DSymmetricForEqualSizes(t *testing.T) {
	s := testutil.Spectrum2D(
		[]float64{0, 2, 1},
		[]float64{4, 0, 3},
		[]float64{1, 6, 0},
	)

	out, err := RandomlyResampled2D(s)
	if err != nil {
		t.Fatal(err)
	}
	// With n1 = n2 the redistribution only depends on the pooled total, so
	// the output is symmetric even when the input is not.
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			testutil.RequireNearlyEqual(t, out.At(i, j), out.At(j, i), 1e-12)
		}
	}
}

func TestRandomlyResampled2DSkipsMaskedEntries(t *testing.T) {
	s := testutil.Spectrum2D(
		[]float64{50, 3, 0},
		[]float64{1, 2, 1},
		[]float64{0, 1, 40},
	)
	masked := s.MaskCorners()

	out, err := RandomlyResampled2D(masked)
	if err != nil {
		t.Fatal(err)
	}
	// The 90 masked monomorphic sites must not enter the pool.
	testutil.RequireNearlyEqual(t, out.Sum(), masked.Sum(), 1e-9)
}

func TestRandomlyResampledFlattensDifferentiation(t *testing.T) {
	s := sfs.New(5, 5)
	s.Set(200, 4, 0)
	s.Set(200, 0, 4)

	orig, err := Fst(s)
	if err != nil {
		t.Fatal(err)
	}
	resamp, err := RandomlyResampled2D(s)
	if err != nil {
		t.Fatal(err)
	}
	null, err := Fst(resamp)
	if err != nil {
		t.Fatal(err)
	}
	if null >= orig/2 {
		t.Fatalf("resampled Fst %v not well below original %v", null, orig)
	}
}
