package iterator

import "github.com/vynegra/tensorcore/layout"

// ColMajorIter walks a layout's positions with the left-most axis varying
// fastest.
type ColMajorIter struct{ s *strided }

// NewColMajor builds a ColMajorIter over l.
func NewColMajor(l layout.Layout) *ColMajorIter {
	n := l.Rank()
	axes := make([]int, n)
	for i := range axes {
		axes[i] = n - 1 - i // reversed: axis n-1 slowest, axis 0 fastest
	}
	return &ColMajorIter{s: newStrided(l, axes)}
}

func (it *ColMajorIter) Len() int              { return it.s.Len() }
func (it *ColMajorIter) Remaining() int        { return it.s.Remaining() }
func (it *ColMajorIter) Next() (int, bool)     { return it.s.Next() }
func (it *ColMajorIter) NextBack() (int, bool) { return it.s.NextBack() }
func (it *ColMajorIter) Clone() PosIterator    { return &ColMajorIter{s: it.s.clone()} }
func (it *ColMajorIter) SplitAt(mid int) (PosIterator, PosIterator) {
	l, r := it.s.splitAt(mid)
	return &ColMajorIter{s: l}, &ColMajorIter{s: r}
}

var _ PosIterator = (*ColMajorIter)(nil)
