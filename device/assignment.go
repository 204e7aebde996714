package device

import (
	"github.com/vynegra/tensorcore/errs"
	"github.com/vynegra/tensorcore/iterator"
	"github.com/vynegra/tensorcore/layout"
	"github.com/vynegra/tensorcore/storage"
)

// Assign copies src into dst position-for-position under the
// traversal-order selected for the pair, for same-shape src/dst (the
// common no-broadcast case). Both layouts must already address equal-size
// regions of their respective storages.
func Assign[T storage.Numeric](d storage.Device, dst storage.Storage[T], dstL layout.Layout, src storage.Storage[T], srcL layout.Layout) error {
	return BinaryCore(d, dst, dstL, dst, dstL, src, srcL, func(_, s T) T { return s })
}

// AssignArbitrary assigns src into dst always walking both sides in
// column-major order, regardless of either layout's preferred order. This
// is the literal, order-pinned assignment primitive used when dst and src
// may alias in ways that only a fixed, predictable traversal order makes
// safe (e.g. a strided view assigned from a broadcast of itself).
func AssignArbitrary[T storage.Numeric](d storage.Device, dst storage.Storage[T], dstL layout.Layout, src storage.Storage[T], srcL layout.Layout) error {
	if dstL.Size() != srcL.Size() {
		return errs.New(errs.InvalidLayout, "assign_arbitrary operand sizes differ: %d vs %d", dstL.Size(), srcL.Size())
	}
	if err := CheckBounds(dstL, len(dst.Data)); err != nil {
		return err
	}
	if err := CheckBounds(srcL, len(src.Data)); err != nil {
		return err
	}
	total := dstL.Size()
	return Parallelize(d, total, func(start, end, _ int) error {
		dIt, err := rangeIterator(dstL, iterator.ColMajorOrder, start, end)
		if err != nil {
			return err
		}
		sIt, err := rangeIterator(srcL, iterator.ColMajorOrder, start, end)
		if err != nil {
			return err
		}
		for {
			dp, ok := dIt.Next()
			if !ok {
				break
			}
			sp, _ := sIt.Next()
			dst.Data[dp] = src.Data[sp]
		}
		return nil
	})
}

// Fill sets every position dstL addresses in dst to v.
func Fill[T storage.Numeric](d storage.Device, dst storage.Storage[T], dstL layout.Layout, v T) error {
	if err := CheckBounds(dstL, len(dst.Data)); err != nil {
		return err
	}
	order := iterator.Select(dstL)
	total := dstL.Size()
	return Parallelize(d, total, func(start, end, _ int) error {
		it, err := rangeIterator(dstL, order, start, end)
		if err != nil {
			return err
		}
		for {
			p, ok := it.Next()
			if !ok {
				break
			}
			dst.Data[p] = v
		}
		return nil
	})
}
