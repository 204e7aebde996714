package iterator

import "github.com/vynegra/tensorcore/layout"

// RowMajorIter walks a layout's positions with the right-most axis
// varying fastest.
type RowMajorIter struct{ s *strided }

// NewRowMajor builds a RowMajorIter over l.
func NewRowMajor(l layout.Layout) *RowMajorIter {
	n := l.Rank()
	axes := make([]int, n)
	for i := range axes {
		axes[i] = i // natural order: axis 0 slowest, axis n-1 fastest
	}
	return &RowMajorIter{s: newStrided(l, axes)}
}

func (it *RowMajorIter) Len() int               { return it.s.Len() }
func (it *RowMajorIter) Remaining() int         { return it.s.Remaining() }
func (it *RowMajorIter) Next() (int, bool)      { return it.s.Next() }
func (it *RowMajorIter) NextBack() (int, bool)  { return it.s.NextBack() }
func (it *RowMajorIter) Clone() PosIterator     { return &RowMajorIter{s: it.s.clone()} }
func (it *RowMajorIter) SplitAt(mid int) (PosIterator, PosIterator) {
	l, r := it.s.splitAt(mid)
	return &RowMajorIter{s: l}, &RowMajorIter{s: r}
}

var _ PosIterator = (*RowMajorIter)(nil)
