// Package layout implements the shape/stride/offset algebra at the heart
// of tensorcore: given an n-dimensional index, a Layout maps it to a
// position in a flat backing buffer, and every view-producing operation
// (transpose, slice, broadcast, reshape, ...) returns a new Layout without
// touching storage.
package layout

import (
	"sort"

	"github.com/vynegra/tensorcore/errs"
	"github.com/xtgo/set"
)

// Layout is (shape, stride, offset): pos(i) = offset + sum(stride[k]*i[k]).
// Strides count elements, not bytes, and may be negative or zero. A zero
// value Layout is the rank-0 scalar at offset 0.
type Layout struct {
	shape  []int
	stride []int
	offset int
}

// New validates and constructs a Layout. shape and stride must be the same
// length; offset must be non-negative.
func New(shape, stride []int, offset int) (Layout, error) {
	if len(shape) != len(stride) {
		return Layout{}, errs.New(errs.InvalidLayout, "shape has rank %d but stride has rank %d", len(shape), len(stride))
	}
	if offset < 0 {
		return Layout{}, errs.New(errs.InvalidLayout, "offset %d must be non-negative", offset)
	}
	for _, s := range shape {
		if s < 0 {
			return Layout{}, errs.New(errs.InvalidLayout, "shape extents must be non-negative, got %v", shape)
		}
	}
	return Layout{shape: copyInts(shape), stride: copyInts(stride), offset: offset}, nil
}

// Unchecked constructs a Layout without validating its invariants. It is
// the one escape hatch named in the design notes: callers that already
// know a layout is valid (e.g. wrapping RowMajorStrides' own output) can
// skip revalidation on the hot path. Misuse can violate every invariant
// this package otherwise guarantees.
func Unchecked(shape, stride []int, offset int) Layout {
	return Layout{shape: copyInts(shape), stride: copyInts(stride), offset: offset}
}

// RowMajor builds the canonical C-contiguous Layout for shape, offset 0.
func RowMajor(shape []int) Layout {
	return Unchecked(shape, RowMajorStrides(shape), 0)
}

// ColMajor builds the canonical F-contiguous Layout for shape, offset 0.
func ColMajor(shape []int) Layout {
	return Unchecked(shape, ColMajorStrides(shape), 0)
}

// Shape returns a copy of the layout's shape.
func (l Layout) Shape() []int { return copyInts(l.shape) }

// Stride returns a copy of the layout's stride.
func (l Layout) Stride() []int { return copyInts(l.stride) }

// Offset returns the layout's base offset into storage.
func (l Layout) Offset() int { return l.offset }

// Rank is the number of dimensions; 0 denotes a scalar.
func (l Layout) Rank() int { return len(l.shape) }

// Size is the total element count addressed by the layout (the product of
// its shape extents; 0 if any extent is 0).
func (l Layout) Size() int { return Size(l.shape) }

// Dim returns the extent of axis i.
func (l Layout) Dim(i int) int { return l.shape[i] }

// Pos computes the storage position for a full index tuple. Does not
// bounds-check idx against shape; callers iterating via an iterator get
// positions without calling this at all.
func (l Layout) Pos(idx []int) int {
	pos := l.offset
	for k, i := range idx {
		pos += l.stride[k] * i
	}
	return pos
}

// BoundsIndex returns [minReachable, maxReachable+1), the half-open range
// of storage positions this layout can address across every legal index
// tuple. Empty layouts (Size()==0) report [offset, offset).
func (l Layout) BoundsIndex() (minPos, maxPosExclusive int) {
	if l.Size() == 0 {
		return l.offset, l.offset
	}
	lo, hi := l.offset, l.offset
	for k, s := range l.shape {
		st := l.stride[k]
		if s == 0 {
			continue
		}
		last := (s - 1) * st
		if st >= 0 {
			hi += last
		} else {
			lo += last
		}
	}
	return lo, hi + 1
}

// Transpose permutes shape and stride by perm, a permutation of [0, rank).
func (l Layout) Transpose(perm []int) (Layout, error) {
	n := l.Rank()
	if len(perm) != n {
		return Layout{}, errs.New(errs.InvalidLayout, "transpose perm has length %d, want rank %d", len(perm), n)
	}
	if err := validatePermutation(perm, n); err != nil {
		return Layout{}, err
	}
	shape := make([]int, n)
	stride := make([]int, n)
	for newAxis, oldAxis := range perm {
		shape[newAxis] = l.shape[oldAxis]
		stride[newAxis] = l.stride[oldAxis]
	}
	return Unchecked(shape, stride, l.offset), nil
}

// validatePermutation confirms perm is exactly a permutation of [0, n)
// using github.com/xtgo/set's sorted-slice Uniq to detect duplicates in a
// single pass over a sorted copy.
func validatePermutation(perm []int, n int) error {
	sorted := copyInts(perm)
	sort.Ints(sorted)
	data := sort.IntSlice(sorted)
	uniqueLen := set.Uniq(data)
	if uniqueLen != n {
		return errs.New(errs.InvalidLayout, "transpose perm %v is not a permutation of [0,%d): duplicate axis", perm, n)
	}
	for i, v := range sorted[:uniqueLen] {
		if v != i {
			return errs.New(errs.InvalidLayout, "transpose perm %v is not a permutation of [0,%d)", perm, n)
		}
	}
	return nil
}

// ReverseAxes fully reverses axis order; equivalent to Transpose([n-1..0]).
func (l Layout) ReverseAxes() Layout {
	n := l.Rank()
	perm := make([]int, n)
	for i := range perm {
		perm[i] = n - 1 - i
	}
	out, _ := l.Transpose(perm) // a full reversal is always a valid permutation
	return out
}

// SwapAxes swaps shape[i]<->shape[j] and stride[i]<->stride[j].
func (l Layout) SwapAxes(i, j int) (Layout, error) {
	n := l.Rank()
	if i < 0 || i >= n || j < 0 || j >= n {
		return Layout{}, errs.New(errs.InvalidLayout, "swap_axes(%d,%d) out of range for rank %d", i, j, n)
	}
	shape := l.Shape()
	stride := l.Stride()
	shape[i], shape[j] = shape[j], shape[i]
	stride[i], stride[j] = stride[j], stride[i]
	return Unchecked(shape, stride, l.offset), nil
}

// ReshapeAssumeContig requires the layout be C- or F-contiguous and
// returns a new Layout of newShape with the matching contiguous stride.
// Fails if total size would change or the layout is neither C- nor
// F-contiguous.
func (l Layout) ReshapeAssumeContig(newShape []int) (Layout, error) {
	if Size(newShape) != l.Size() {
		return Layout{}, errs.New(errs.InvalidLayout, "reshape changes size: %d -> %d", l.Size(), Size(newShape))
	}
	switch {
	case l.IsCContiguous():
		return Unchecked(newShape, RowMajorStrides(newShape), l.offset), nil
	case l.IsFContiguous():
		return Unchecked(newShape, ColMajorStrides(newShape), l.offset), nil
	default:
		return Layout{}, errs.New(errs.InvalidLayout, "reshape_assume_contig requires a C- or F-contiguous layout")
	}
}

// ExpandDims inserts an extent-1 axis at position k with stride 0.
func (l Layout) ExpandDims(k int) (Layout, error) {
	n := l.Rank()
	if k < 0 || k > n {
		return Layout{}, errs.New(errs.InvalidLayout, "expand_dims(%d) out of range for rank %d", k, n)
	}
	shape := make([]int, 0, n+1)
	stride := make([]int, 0, n+1)
	shape = append(shape, l.shape[:k]...)
	shape = append(shape, 1)
	shape = append(shape, l.shape[k:]...)
	stride = append(stride, l.stride[:k]...)
	stride = append(stride, 0)
	stride = append(stride, l.stride[k:]...)
	return Unchecked(shape, stride, l.offset), nil
}

// Squeeze removes axis k, which must have extent 1.
func (l Layout) Squeeze(k int) (Layout, error) {
	n := l.Rank()
	if k < 0 || k >= n {
		return Layout{}, errs.New(errs.InvalidLayout, "squeeze(%d) out of range for rank %d", k, n)
	}
	if l.shape[k] != 1 {
		return Layout{}, errs.New(errs.InvalidLayout, "squeeze(%d): axis extent is %d, want 1", k, l.shape[k])
	}
	shape := make([]int, 0, n-1)
	stride := make([]int, 0, n-1)
	shape = append(shape, l.shape[:k]...)
	shape = append(shape, l.shape[k+1:]...)
	stride = append(stride, l.stride[:k]...)
	stride = append(stride, l.stride[k+1:]...)
	return Unchecked(shape, stride, l.offset), nil
}

// Slice applies a NumPy-style slice descriptor to one axis.
func (l Layout) Slice(axis int, s Slice) (Layout, error) {
	n := l.Rank()
	if axis < 0 || axis >= n {
		return Layout{}, errs.New(errs.InvalidLayout, "slice axis %d out of range for rank %d", axis, n)
	}
	start, _, step, extent, err := s.resolve(l.shape[axis])
	if err != nil {
		return Layout{}, err
	}
	shape := l.Shape()
	stride := l.Stride()
	offset := l.offset
	if extent > 0 {
		offset += start * l.stride[axis]
	}
	shape[axis] = extent
	stride[axis] = l.stride[axis] * step
	return Unchecked(shape, stride, offset), nil
}

// BroadcastTo extends this layout to newShape: trailing axes must match or
// be extent-1 (which receives stride 0); axes missing on this layout are
// prepended with extent newShape[i] and stride 0.
func (l Layout) BroadcastTo(newShape []int) (Layout, error) {
	oldN, newN := l.Rank(), len(newShape)
	if newN < oldN {
		return Layout{}, errs.New(errs.BroadcastIncompatible, "cannot broadcast rank %d to smaller rank %d", oldN, newN)
	}
	shape := make([]int, newN)
	stride := make([]int, newN)
	offsetShift := newN - oldN
	for i := 0; i < newN; i++ {
		shape[i] = newShape[i]
		if i < offsetShift {
			stride[i] = 0
			continue
		}
		oldAxis := i - offsetShift
		oldExtent := l.shape[oldAxis]
		switch {
		case oldExtent == newShape[i]:
			stride[i] = l.stride[oldAxis]
		case oldExtent == 1:
			stride[i] = 0
		default:
			return Layout{}, errs.New(errs.BroadcastIncompatible, "cannot broadcast extent %d to %d at axis %d", oldExtent, newShape[i], i)
		}
	}
	return Unchecked(shape, stride, l.offset), nil
}

// IntoDim validates that this layout has exactly rank n and returns it
// unchanged; it is the explicit, boundary-validating conversion from the
// dynamic-rank representation used throughout this package to a
// statically-known rank n (0..9 per the data model). Ranks are not
// represented by distinct Go types here — see DESIGN.md for the rationale
// — so this call is the entire contract: fail loudly rather than silently
// accept a mismatched rank.
func (l Layout) IntoDim(n int) (Layout, error) {
	if l.Rank() != n {
		return Layout{}, errs.New(errs.InvalidLayout, "into_dim(%d): layout has rank %d", n, l.Rank())
	}
	return l, nil
}

// IntoDyn is the identity conversion to dynamic rank (always succeeds,
// since this package's Layout is already rank-dynamic internally).
func (l Layout) IntoDyn() Layout { return l }

// Equal reports whether two layouts have identical shape, stride, and
// offset.
func (l Layout) Equal(o Layout) bool {
	return equalInts(l.shape, o.shape) && equalInts(l.stride, o.stride) && l.offset == o.offset
}
