package sfs

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// Spectrum is a site frequency spectrum: a dense row-major tensor with one
// axis per population and an optional companion mask. A nil mask means every
// entry participates in reductions.
type Spectrum struct {
	data    []float64
	mask    []bool
	shape   []int
	strides []int
}

// New returns a zero-filled spectrum with the given shape. For a population
// of n sampled genomes the corresponding axis has length n+1.
//
// New panics if no dimensions are given or any dimension is less than 1.
func New(shape ...int) *Spectrum {
	if len(shape) == 0 {
		panic("sfs: spectrum must have at least one dimension")
	}
	size := 1
	for _, d := range shape {
		if d < 1 {
			panic(fmt.Sprintf("sfs: non-positive dimension %d", d))
		}
		size *= d
	}

	s := &Spectrum{
		data:  make([]float64, size),
		shape: append([]int(nil), shape...),
	}
	s.strides = rowMajorStrides(s.shape)

	return s
}

// FromData wraps an existing row-major value slice in a spectrum. The slice
// is not copied. Returns ErrShapeMismatch if the slice length does not equal
// the product of the dimensions.
func FromData(data []float64, shape ...int) (*Spectrum, error) {
	if len(shape) == 0 {
		panic("sfs: spectrum must have at least one dimension")
	}
	size := 1
	for _, d := range shape {
		if d < 1 {
			panic(fmt.Sprintf("sfs: non-positive dimension %d", d))
		}
		size *= d
	}
	if len(data) != size {
		return nil, fmt.Errorf("%w: %d values for shape %v", ErrShapeMismatch, len(data), shape)
	}

	s := &Spectrum{
		data:  data,
		shape: append([]int(nil), shape...),
	}
	s.strides = rowMajorStrides(s.shape)

	return s, nil
}

func rowMajorStrides(shape []int) []int {
	strides := make([]int, len(shape))
	stride := 1
	for k := len(shape) - 1; k >= 0; k-- {
		strides[k] = stride
		stride *= shape[k]
	}

	return strides
}

// Rank returns the number of population axes.
func (s *Spectrum) Rank() int { return len(s.shape) }

// Len returns the total number of entries.
func (s *Spectrum) Len() int { return len(s.data) }

// Shape returns a copy of the per-axis lengths.
func (s *Spectrum) Shape() []int { return append([]int(nil), s.shape...) }

// SampleSizes returns the haploid sample size per population, i.e. the axis
// length minus one.
func (s *Spectrum) SampleSizes() []int {
	ns := make([]int, len(s.shape))
	for k, d := range s.shape {
		ns[k] = d - 1
	}

	return ns
}

// Data returns the backing row-major value slice. The slice is live: writes
// through it modify the spectrum.
func (s *Spectrum) Data() []float64 { return s.data }

func (s *Spectrum) flatIndex(idx []int) int {
	if len(idx) != len(s.shape) {
		panic(fmt.Sprintf("sfs: %d indices for rank %d", len(idx), len(s.shape)))
	}
	flat := 0
	for k, i := range idx {
		if i < 0 || i >= s.shape[k] {
			panic(fmt.Sprintf("sfs: index %d out of range on axis %d", i, k))
		}
		flat += i * s.strides[k]
	}

	return flat
}

// At returns the entry at the given multi-index.
func (s *Spectrum) At(idx ...int) float64 { return s.data[s.flatIndex(idx)] }

// Set stores v at the given multi-index.
func (s *Spectrum) Set(v float64, idx ...int) { s.data[s.flatIndex(idx)] = v }

// AtFlat returns the entry at flat row-major position i.
func (s *Spectrum) AtFlat(i int) float64 { return s.data[i] }

// SetFlat stores v at flat row-major position i.
func (s *Spectrum) SetFlat(i int, v float64) { s.data[i] = v }

// MultiIndex decomposes flat row-major position i into idx, which must have
// length Rank. The same slice can be reused across calls so rank-generic
// loops allocate nothing per entry.
func (s *Spectrum) MultiIndex(i int, idx []int) {
	if len(idx) != len(s.shape) {
		panic(fmt.Sprintf("sfs: %d indices for rank %d", len(idx), len(s.shape)))
	}
	for k := len(s.shape) - 1; k >= 0; k-- {
		idx[k] = i % s.shape[k]
		i /= s.shape[k]
	}
}

// HasMask reports whether any entry has ever been masked.
func (s *Spectrum) HasMask() bool { return s.mask != nil }

// Masked reports whether the entry at flat position i is excluded from
// reductions.
func (s *Spectrum) Masked(i int) bool { return s.mask != nil && s.mask[i] }

// MaskFlat excludes the entry at flat position i from all reductions.
// Masking is additive: there is no way to unmask an entry.
func (s *Spectrum) MaskFlat(i int) {
	s.ensureMask()
	s.mask[i] = true
}

func (s *Spectrum) ensureMask() {
	if s.mask == nil {
		s.mask = make([]bool, len(s.data))
	}
}

// Clone returns a deep copy sharing no storage with s.
func (s *Spectrum) Clone() *Spectrum {
	out := &Spectrum{
		data:    append([]float64(nil), s.data...),
		shape:   append([]int(nil), s.shape...),
		strides: append([]int(nil), s.strides...),
	}
	if s.mask != nil {
		out.mask = append([]bool(nil), s.mask...)
	}

	return out
}

// MaskCorners returns a copy of s with the all-ancestral entry (index all
// zeros) and the all-derived entry (index all nk) masked. These corners are
// not polymorphic sites and are conventionally excluded from summary
// statistics. Any existing mask is preserved; masking the corners twice is a
// no-op.
func (s *Spectrum) MaskCorners() *Spectrum {
	out := s.Clone()
	out.ensureMask()
	out.mask[0] = true
	out.mask[len(out.mask)-1] = true

	return out
}

// Sum returns the total over all unmasked entries.
func (s *Spectrum) Sum() float64 {
	if s.mask == nil {
		return floats.Sum(s.data)
	}

	var sum float64
	for i, v := range s.data {
		if !s.mask[i] {
			sum += v
		}
	}

	return sum
}

// Scale returns a new spectrum with every entry multiplied by c. The mask,
// if any, carries over unchanged.
func (s *Spectrum) Scale(c float64) *Spectrum {
	out := s.Clone()
	vecmath.ScaleBlock(out.data, s.data, c)

	return out
}

// SameShape reports whether s and t have identical shapes.
func (s *Spectrum) SameShape(t *Spectrum) bool {
	if len(s.shape) != len(t.shape) {
		return false
	}
	for k, d := range s.shape {
		if d != t.shape[k] {
			return false
		}
	}

	return true
}

// IntersectMasks returns copies of a and b that share the union of both
// masks, each keeping its own values. An entry masked in either input is
// masked in both outputs. Returns ErrShapeMismatch if the shapes disagree.
func IntersectMasks(a, b *Spectrum) (*Spectrum, *Spectrum, error) {
	if !a.SameShape(b) {
		return nil, nil, fmt.Errorf("%w: %v vs %v", ErrShapeMismatch, a.shape, b.shape)
	}

	ca, cb := a.Clone(), b.Clone()
	if a.mask == nil && b.mask == nil {
		return ca, cb, nil
	}

	ca.ensureMask()
	cb.ensureMask()
	for i := range ca.mask {
		union := ca.mask[i] || cb.mask[i]
		ca.mask[i] = union
		cb.mask[i] = union
	}

	return ca, cb, nil
}
