package iterator

import (
	"github.com/vynegra/tensorcore/errs"
	"github.com/vynegra/tensorcore/layout"
)

// MemNonStridedIter yields [offset, offset+size) directly, in order. It is
// legal only when the source layout is memory-non-strided (layout.Layout's
// IsMemNonStrided predicate); NewMemNonStrided returns an error otherwise
// so callers can't silently get positions in the wrong order.
type MemNonStridedIter struct {
	offset    int
	total     int
	front     int // next position to yield from the front, relative to offset
	backExcl  int // one past the next position to yield from the back, relative to offset
	remaining int
}

// NewMemNonStrided builds a MemNonStridedIter over l, or returns an
// InvalidLayout error if l is not memory-non-strided.
func NewMemNonStrided(l layout.Layout) (*MemNonStridedIter, error) {
	if !l.IsMemNonStrided() {
		return nil, errs.New(errs.InvalidLayout, "layout is not memory-non-strided")
	}
	size := l.Size()
	return &MemNonStridedIter{
		offset:    l.Offset(),
		total:     size,
		front:     0,
		backExcl:  size,
		remaining: size,
	}, nil
}

func (it *MemNonStridedIter) Len() int       { return it.total }
func (it *MemNonStridedIter) Remaining() int { return it.remaining }

func (it *MemNonStridedIter) Next() (int, bool) {
	if it.remaining <= 0 {
		return 0, false
	}
	pos := it.offset + it.front
	it.front++
	it.remaining--
	return pos, true
}

func (it *MemNonStridedIter) NextBack() (int, bool) {
	if it.remaining <= 0 {
		return 0, false
	}
	it.backExcl--
	it.remaining--
	return it.offset + it.backExcl, true
}

func (it *MemNonStridedIter) Clone() PosIterator {
	cp := *it
	return &cp
}

func (it *MemNonStridedIter) SplitAt(mid int) (PosIterator, PosIterator) {
	if mid < 0 || mid > it.remaining {
		panic(errs.New(errs.InvalidLayout, "iterator split index %d out of range [0,%d]", mid, it.remaining))
	}
	left := &MemNonStridedIter{
		offset:    it.offset,
		total:     mid,
		front:     it.front,
		backExcl:  it.front + mid,
		remaining: mid,
	}
	right := &MemNonStridedIter{
		offset:    it.offset,
		total:     it.remaining - mid,
		front:     it.front + mid,
		backExcl:  it.backExcl,
		remaining: it.remaining - mid,
	}
	return left, right
}

var _ PosIterator = (*MemNonStridedIter)(nil)
