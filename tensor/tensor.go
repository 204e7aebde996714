package tensor

import (
	"github.com/vynegra/tensorcore/device"
	"github.com/vynegra/tensorcore/layout"
	"github.com/vynegra/tensorcore/storage"
)

// Tensor pairs a DataHandle with the Layout describing how to read that
// handle's Storage as an n-dimensional array. View-producing Layout
// operations (Transpose, Slice, BroadcastTo, ...) never touch the handle;
// they return a new Layout that the caller re-wraps with Tensor.WithLayout,
// sharing the same handle (and, transitively, the same underlying Storage).
type Tensor[T storage.Numeric] struct {
	handle DataHandle[T]
	l      layout.Layout
}

// New builds an Owned Tensor directly from a Storage and Layout.
func New[T storage.Numeric](s storage.Storage[T], l layout.Layout) Tensor[T] {
	return Tensor[T]{handle: NewOwned(s), l: l}
}

// FromHandle builds a Tensor from an already-constructed DataHandle,
// e.g. one produced by a prior Tensor's Borrow/IntoCoW call.
func FromHandle[T storage.Numeric](h DataHandle[T], l layout.Layout) Tensor[T] {
	return Tensor[T]{handle: h, l: l}
}

// Layout returns the tensor's current Layout.
func (t Tensor[T]) Layout() layout.Layout { return t.l }

// WithLayout returns a Tensor sharing this one's handle under a new Layout
// (the result of a view-producing Layout operation on t.Layout()).
func (t Tensor[T]) WithLayout(l layout.Layout) Tensor[T] {
	return Tensor[T]{handle: t.handle, l: l}
}

// View returns the Storage and Layout for read access.
func (t Tensor[T]) View() (storage.Storage[T], layout.Layout) {
	return t.handle.View(), t.l
}

// ViewMut returns the Storage and Layout for write access, materializing a
// CoW handle's private copy on first use. t is updated in place to reflect
// the (possibly now-Owned) handle.
func (t *Tensor[T]) ViewMut() (storage.Storage[T], layout.Layout, error) {
	s, err := t.handle.ViewMut()
	if err != nil {
		return storage.Storage[T]{}, layout.Layout{}, err
	}
	return s, t.l, nil
}

// Borrow returns a new Tensor sharing this one's Storage as a read-only
// SharedBorrow, with the same Layout.
func (t Tensor[T]) Borrow() Tensor[T] {
	return Tensor[T]{handle: NewSharedBorrow(t.handle.View()), l: t.l}
}

// BorrowMut returns a new Tensor sharing this one's Storage as a mutable
// ExclusiveBorrow. The caller is responsible for ensuring t itself is not
// used concurrently with the result.
func (t Tensor[T]) BorrowMut() Tensor[T] {
	return Tensor[T]{handle: NewExclusiveBorrow(t.handle.View()), l: t.l}
}

// IntoOwnedKeepLayout returns a Tensor with an independently-owned copy of
// the data (cloning it unless this Tensor's handle is already Owned) and
// the same Layout.
func (t Tensor[T]) IntoOwnedKeepLayout() Tensor[T] {
	return Tensor[T]{handle: t.handle.IntoOwnedKeepLayout(), l: t.l}
}

// IntoCoW returns a Tensor sharing this one's Storage as copy-on-write: the
// result and t can both be read freely, and the first ViewMut on the result
// materializes an independent copy for the result only. t keeps its own
// handle kind, so writes through t are still seen by the result until the
// result has materialized.
func (t Tensor[T]) IntoCoW() Tensor[T] {
	return Tensor[T]{handle: t.handle.IntoCoW(), l: t.l}
}

// Zeros allocates a new Owned Tensor of the given shape on d, in row-major
// layout, filled with zeros.
func Zeros[T storage.Numeric](d storage.Device, shape []int) Tensor[T] {
	l := layout.RowMajor(shape)
	return New(device.Zeros[T](d, l.Size()), l)
}

// Ones allocates a new Owned Tensor of the given shape on d, in row-major
// layout, filled with ones.
func Ones[T storage.Numeric](d storage.Device, shape []int) Tensor[T] {
	l := layout.RowMajor(shape)
	return New(device.Ones[T](d, l.Size()), l)
}

// FromHostVec allocates a new Owned Tensor copying v, in row-major layout.
func FromHostVec[T storage.Numeric](d storage.Device, shape []int, v []T) Tensor[T] {
	l := layout.RowMajor(shape)
	return New(device.FromHostVec(d, v), l)
}
