// Package compare implements tolerance-based comparisons between tensor
// buffers for tests: an AllClose in the style of NumPy's, written directly
// against storage.Storage/layout.Layout rather than pulled in from
// gorgonia.org/dawson, whose multi-argument tolerance API this module's
// author was not confident enough of to depend on sight-unseen (see
// DESIGN.md).
package compare

import (
	"github.com/vynegra/tensorcore/errs"
	"github.com/vynegra/tensorcore/layout"
	"github.com/vynegra/tensorcore/storage"
)

// DefaultAbsTol and DefaultRelTol match NumPy's np.allclose defaults.
const (
	DefaultAbsTol = 1e-8
	DefaultRelTol = 1e-5
)

// AllClose reports whether every corresponding element of a and b satisfies
// |a-b| <= atol + rtol*|b|. Sizes, ranks and shapes are checked before any
// element comparison: two differently-shaped operands yield an InvalidLayout
// error, however their elements might coincidentally compare.
func AllClose[T storage.RealFloat](a storage.Storage[T], aL layout.Layout, b storage.Storage[T], bL layout.Layout, atol, rtol T) (bool, error) {
	if aL.Size() != bL.Size() {
		return false, errs.New(errs.InvalidLayout, "allclose: operand sizes differ: %d vs %d", aL.Size(), bL.Size())
	}
	aShape, bShape := aL.Shape(), bL.Shape()
	if len(aShape) != len(bShape) {
		return false, errs.New(errs.InvalidLayout, "allclose: operand ranks differ: %d vs %d", len(aShape), len(bShape))
	}
	for i := range aShape {
		if aShape[i] != bShape[i] {
			return false, errs.New(errs.InvalidLayout, "allclose: operand shapes differ: %v vs %v", aShape, bShape)
		}
	}
	idxA := make([]int, aL.Rank())
	idxB := make([]int, bL.Rank())
	total := aL.Size()
	shape := aL.Shape()
	for lin := 0; lin < total; lin++ {
		rem := lin
		for k := len(shape) - 1; k >= 0; k-- {
			if shape[k] == 0 {
				idxA[k] = 0
				continue
			}
			idxA[k] = rem % shape[k]
			rem /= shape[k]
		}
		copy(idxB, idxA)
		av := a.Data[aL.Pos(idxA)]
		bv := b.Data[bL.Pos(idxB)]
		d := av - bv
		if d < 0 {
			d = -d
		}
		bound := atol + rtol*absT(bv)
		if d > bound {
			return false, nil
		}
	}
	return true, nil
}

func absT[T storage.RealFloat](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// DefaultAllClose compares with NumPy's default tolerances.
func DefaultAllClose[T storage.RealFloat](a storage.Storage[T], aL layout.Layout, b storage.Storage[T], bL layout.Layout) (bool, error) {
	return AllClose(a, aL, b, bL, T(DefaultAbsTol), T(DefaultRelTol))
}
