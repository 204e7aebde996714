// Package iterator implements the three concrete traversal orders over a
// layout.Layout's reachable storage positions: row-major, column-major,
// and the memory-non-strided fast path. Every iterator is finite,
// double-ended, cloneable, and splittable at a midpoint for parallel
// chunking; none of them hold a reference to storage — they only produce
// positions.
package iterator

import (
	"github.com/vynegra/tensorcore/errs"
	"github.com/vynegra/tensorcore/layout"
)

// PosIterator is the common contract satisfied by all three concrete
// iterators in this package.
type PosIterator interface {
	// Len is the total number of positions this iterator will ever yield
	// (the layout's size).
	Len() int
	// Remaining is how many positions are left to yield from either end.
	Remaining() int
	// Next yields the next position from the front, or ok=false once
	// exhausted.
	Next() (pos int, ok bool)
	// NextBack yields the next position from the back, or ok=false once
	// exhausted. The two ends never cross: Next and NextBack draw from a
	// shared remaining count.
	NextBack() (pos int, ok bool)
	// Clone returns an independent copy positioned identically to this
	// iterator.
	Clone() PosIterator
	// SplitAt divides the remaining (not yet yielded) positions into two
	// iterators of length mid and Remaining()-mid respectively, front to
	// back. Panics if mid is out of [0, Remaining()].
	SplitAt(mid int) (left, right PosIterator)
}

// strided is the shared odometer implementation behind RowMajor and
// ColMajor: it walks shape/stride reordered into traversal order (slowest
// axis first, fastest last) via incremental carry, so each Next/NextBack
// call is O(1) amortized.
type strided struct {
	extents []int // traversal order, slowest first, fastest last
	strides []int // matching order
	base    int   // layout offset; the position for the all-zero index

	frontIdx []int
	frontPos int
	backIdx  []int
	backPos  int

	total     int
	remaining int
}

func newStrided(l layout.Layout, axesSlowToFast []int) *strided {
	n := l.Rank()
	shape := l.Shape()
	stride := l.Stride()
	extents := make([]int, n)
	strides := make([]int, n)
	for i, axis := range axesSlowToFast {
		extents[i] = shape[axis]
		strides[i] = stride[axis]
	}
	s := &strided{
		extents: extents,
		strides: strides,
		base:    l.Offset(),
		total:   l.Size(),
	}
	s.remaining = s.total
	s.frontIdx = make([]int, n)
	s.frontPos = s.base
	s.backIdx = make([]int, n)
	backPos := s.base
	for i := range extents {
		if extents[i] > 0 {
			s.backIdx[i] = extents[i] - 1
			backPos += s.backIdx[i] * strides[i]
		}
	}
	s.backPos = backPos
	return s
}

func (s *strided) Len() int       { return s.total }
func (s *strided) Remaining() int { return s.remaining }

func (s *strided) Next() (int, bool) {
	if s.remaining <= 0 {
		return 0, false
	}
	pos := s.frontPos
	s.remaining--
	if s.remaining > 0 {
		incOdometer(s.frontIdx, s.extents, s.strides, &s.frontPos)
	}
	return pos, true
}

func (s *strided) NextBack() (int, bool) {
	if s.remaining <= 0 {
		return 0, false
	}
	pos := s.backPos
	s.remaining--
	if s.remaining > 0 {
		decOdometer(s.backIdx, s.extents, s.strides, &s.backPos)
	}
	return pos, true
}

// incOdometer advances idx (in traversal order, fastest = last) by one
// position, carrying into slower axes, and adjusts pos by the
// corresponding stride deltas.
func incOdometer(idx, extents, strides []int, pos *int) {
	for k := len(extents) - 1; k >= 0; k-- {
		idx[k]++
		*pos += strides[k]
		if idx[k] < extents[k] {
			return
		}
		*pos -= strides[k] * extents[k]
		idx[k] = 0
	}
}

func decOdometer(idx, extents, strides []int, pos *int) {
	for k := len(extents) - 1; k >= 0; k-- {
		idx[k]--
		*pos -= strides[k]
		if idx[k] >= 0 {
			return
		}
		*pos += strides[k] * extents[k]
		idx[k] = extents[k] - 1
	}
}

// linearOf converts a traversal-order index tuple to its 0-based linear
// count (mixed-radix over extents, fastest axis varying quickest).
func linearOf(idx, extents []int) int {
	n := 0
	for i := range idx {
		n = n*extents[i] + idx[i]
	}
	return n
}

// idxAt decodes a 0-based linear count back into a traversal-order index
// tuple and its storage position.
func idxAt(count int, extents, strides []int, base int) ([]int, int) {
	idx := make([]int, len(extents))
	pos := base
	rem := count
	for k := len(extents) - 1; k >= 0; k-- {
		if extents[k] == 0 {
			continue
		}
		v := rem % extents[k]
		rem /= extents[k]
		idx[k] = v
		pos += v * strides[k]
	}
	return idx, pos
}

func (s *strided) clone() *strided {
	cp := *s
	cp.extents = append([]int(nil), s.extents...)
	cp.strides = append([]int(nil), s.strides...)
	cp.frontIdx = append([]int(nil), s.frontIdx...)
	cp.backIdx = append([]int(nil), s.backIdx...)
	return &cp
}

// splitAt partitions the remaining range into [0,mid) and [mid,remaining)
// measured from the current front cursor, decoding fresh idx/pos for the
// two new boundary cursors.
func (s *strided) splitAt(mid int) (*strided, *strided) {
	if mid < 0 || mid > s.remaining {
		panic(errs.New(errs.InvalidLayout, "iterator split index %d out of range [0,%d]", mid, s.remaining))
	}
	frontCount := linearOf(s.frontIdx, s.extents)

	left := s.clone()
	left.remaining = mid
	if mid > 0 {
		idx, pos := idxAt(frontCount+mid-1, s.extents, s.strides, s.base)
		left.backIdx, left.backPos = idx, pos
	}

	right := s.clone()
	right.remaining = s.remaining - mid
	if right.remaining > 0 {
		idx, pos := idxAt(frontCount+mid, s.extents, s.strides, s.base)
		right.frontIdx, right.frontPos = idx, pos
	}
	return left, right
}
