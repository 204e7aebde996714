package device

import (
	"github.com/vynegra/tensorcore/errs"
	"github.com/vynegra/tensorcore/iterator"
	"github.com/vynegra/tensorcore/layout"
	"github.com/vynegra/tensorcore/storage"
)

// UnaryCore applies f(src[i]) -> dst[i] across dstL/srcL, which must
// already have equal size (broadcasting happens one layer up, in package
// elementwise). Dispatches serially or across d's thread pool per
// spec.md §4.5.
func UnaryCore[T storage.Numeric](d storage.Device, dst storage.Storage[T], dstL layout.Layout, src storage.Storage[T], srcL layout.Layout, f func(T) T) error {
	if dstL.Size() != srcL.Size() {
		return errs.New(errs.InvalidLayout, "unary op operand sizes differ: %d vs %d", dstL.Size(), srcL.Size())
	}
	if err := CheckBounds(dstL, len(dst.Data)); err != nil {
		return err
	}
	if err := CheckBounds(srcL, len(src.Data)); err != nil {
		return err
	}
	order := iterator.Select(dstL, srcL)
	total := dstL.Size()
	return Parallelize(d, total, func(start, end, _ int) error {
		dIt, err := rangeIterator(dstL, order, start, end)
		if err != nil {
			return err
		}
		sIt, err := rangeIterator(srcL, order, start, end)
		if err != nil {
			return err
		}
		for {
			dp, ok := dIt.Next()
			if !ok {
				break
			}
			sp, _ := sIt.Next()
			dst.Data[dp] = f(src.Data[sp])
		}
		return nil
	})
}

// BinaryCore applies f(a[i], b[i]) -> dst[i] across dstL/aL/bL.
func BinaryCore[T storage.Numeric](d storage.Device, dst storage.Storage[T], dstL layout.Layout, a storage.Storage[T], aL layout.Layout, b storage.Storage[T], bL layout.Layout, f func(T, T) T) error {
	if dstL.Size() != aL.Size() || dstL.Size() != bL.Size() {
		return errs.New(errs.InvalidLayout, "binary op operand sizes differ: dst=%d a=%d b=%d", dstL.Size(), aL.Size(), bL.Size())
	}
	if err := CheckBounds(dstL, len(dst.Data)); err != nil {
		return err
	}
	if err := CheckBounds(aL, len(a.Data)); err != nil {
		return err
	}
	if err := CheckBounds(bL, len(b.Data)); err != nil {
		return err
	}
	order := iterator.Select(dstL, aL, bL)
	total := dstL.Size()
	return Parallelize(d, total, func(start, end, _ int) error {
		dIt, err := rangeIterator(dstL, order, start, end)
		if err != nil {
			return err
		}
		aIt, err := rangeIterator(aL, order, start, end)
		if err != nil {
			return err
		}
		bIt, err := rangeIterator(bL, order, start, end)
		if err != nil {
			return err
		}
		for {
			dp, ok := dIt.Next()
			if !ok {
				break
			}
			ap, _ := aIt.Next()
			bp, _ := bIt.Next()
			dst.Data[dp] = f(a.Data[ap], b.Data[bp])
		}
		return nil
	})
}

// TernaryCore applies f(a[i], b[i], c[i]) -> dst[i] across four layouts —
// used e.g. for fused multiply-add or a where/select operation.
func TernaryCore[T storage.Numeric](d storage.Device, dst storage.Storage[T], dstL layout.Layout, a storage.Storage[T], aL layout.Layout, b storage.Storage[T], bL layout.Layout, c storage.Storage[T], cL layout.Layout, f func(T, T, T) T) error {
	if dstL.Size() != aL.Size() || dstL.Size() != bL.Size() || dstL.Size() != cL.Size() {
		return errs.New(errs.InvalidLayout, "ternary op operand sizes differ")
	}
	for _, l := range []struct {
		l layout.Layout
		n int
	}{{dstL, len(dst.Data)}, {aL, len(a.Data)}, {bL, len(b.Data)}, {cL, len(c.Data)}} {
		if err := CheckBounds(l.l, l.n); err != nil {
			return err
		}
	}
	order := iterator.Select(dstL, aL, bL, cL)
	total := dstL.Size()
	return Parallelize(d, total, func(start, end, _ int) error {
		dIt, err := rangeIterator(dstL, order, start, end)
		if err != nil {
			return err
		}
		aIt, err := rangeIterator(aL, order, start, end)
		if err != nil {
			return err
		}
		bIt, err := rangeIterator(bL, order, start, end)
		if err != nil {
			return err
		}
		cIt, err := rangeIterator(cL, order, start, end)
		if err != nil {
			return err
		}
		for {
			dp, ok := dIt.Next()
			if !ok {
				break
			}
			ap, _ := aIt.Next()
			bp, _ := bIt.Next()
			cp, _ := cIt.Next()
			dst.Data[dp] = f(a.Data[ap], b.Data[bp], c.Data[cp])
		}
		return nil
	})
}
