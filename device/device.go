// Package device implements the two reference backends (Serial,
// ThreadPool) plus the shared capability functions — creation,
// assignment, elementwise functional cores, reduction, and the CPU matmul
// primitive — that every backend realizes. Capabilities are free generic
// functions parameterized by storage.Numeric rather than generic
// interface methods (Go has none), each consulting the passed
// storage.Device's Threads() (via Parallelize) to pick a serial or
// chunked-parallel strategy.
package device

import (
	"github.com/vynegra/tensorcore/errs"
	"github.com/vynegra/tensorcore/iterator"
	"github.com/vynegra/tensorcore/layout"
)

// CheckBounds validates that every reachable position of l fits within a
// buffer of length storageLen, per the Layout invariant that
// offset+max_reachable_pos < storage.len().
func CheckBounds(l layout.Layout, storageLen int) error {
	lo, hi := l.BoundsIndex()
	if lo < 0 {
		return errs.New(errs.ValueOutOfRange, "layout reaches negative position %d", lo)
	}
	if hi > storageLen {
		return errs.New(errs.ValueOutOfRange, "layout reaches position %d, storage has length %d", hi-1, storageLen)
	}
	return nil
}

// rangeIterator builds the order-th iterator over l and slices it down to
// the half-open [start,end) sub-range via two SplitAt calls, so parallel
// chunks can each walk only their own slice of positions.
func rangeIterator(l layout.Layout, order iterator.Order, start, end int) (iterator.PosIterator, error) {
	it, err := iterator.New(l, order)
	if err != nil {
		return nil, err
	}
	_, tail := it.SplitAt(start)
	head, _ := tail.SplitAt(end - start)
	return head, nil
}
