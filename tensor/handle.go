// Package tensor implements the user-facing Tensor type: a Layout paired
// with a DataHandle that tracks how the tensor relates to its backing
// Storage — it owns it outright, borrows it (shared or exclusive), or
// holds a copy-on-write reference that only materializes an independent
// copy on first mutation. Grounded on rstsr's tensorbase.rs ownership
// states (see SPEC_FULL.md ADD-4), since the teacher engine's gorgonia
// tensor.Dense has no borrow/CoW distinction at all.
package tensor

import (
	"github.com/vynegra/tensorcore/errs"
	"github.com/vynegra/tensorcore/storage"
)

// HandleKind names a DataHandle's ownership relationship to its Storage.
type HandleKind int

const (
	// Owned means this handle's Storage is not shared with any other
	// handle; both read and write access are always safe.
	Owned HandleKind = iota
	// SharedBorrow views another handle's Storage for reads only; any
	// mutation attempt is an error (ViewMut returns AliasingViolation).
	SharedBorrow
	// ExclusiveBorrow views another handle's Storage with exclusive write
	// access: the caller has proven (out of band, by construction) that no
	// other handle observes the same Storage concurrently.
	ExclusiveBorrow
	// CoW views a shared Storage read-only until the first ViewMut, at
	// which point it clones the data, becomes Owned, and decouples from
	// the original source.
	CoW
)

func (k HandleKind) String() string {
	switch k {
	case Owned:
		return "Owned"
	case SharedBorrow:
		return "SharedBorrow"
	case ExclusiveBorrow:
		return "ExclusiveBorrow"
	case CoW:
		return "CoW"
	default:
		return "Unknown"
	}
}

// DataHandle wraps a Storage[T] with one of the four ownership states
// above.
type DataHandle[T storage.Numeric] struct {
	kind HandleKind
	data storage.Storage[T]
}

// NewOwned wraps s as an Owned handle.
func NewOwned[T storage.Numeric](s storage.Storage[T]) DataHandle[T] {
	return DataHandle[T]{kind: Owned, data: s}
}

// NewSharedBorrow wraps s as a read-only SharedBorrow handle.
func NewSharedBorrow[T storage.Numeric](s storage.Storage[T]) DataHandle[T] {
	return DataHandle[T]{kind: SharedBorrow, data: s}
}

// NewExclusiveBorrow wraps s as a mutable ExclusiveBorrow handle.
func NewExclusiveBorrow[T storage.Numeric](s storage.Storage[T]) DataHandle[T] {
	return DataHandle[T]{kind: ExclusiveBorrow, data: s}
}

// NewCoW wraps s as a CoW handle sharing s's backing data until mutated.
func NewCoW[T storage.Numeric](s storage.Storage[T]) DataHandle[T] {
	return DataHandle[T]{kind: CoW, data: s}
}

// Kind reports the handle's current ownership state.
func (h DataHandle[T]) Kind() HandleKind { return h.kind }

// View returns the Storage for read access; always legal regardless of
// kind.
func (h DataHandle[T]) View() storage.Storage[T] { return h.data }

// ViewMut returns the Storage for write access, materializing a fresh
// owned copy first if this handle is CoW. A SharedBorrow handle can never
// produce a mutable view: the caller asked to write through a reference it
// explicitly declared read-only.
func (h *DataHandle[T]) ViewMut() (storage.Storage[T], error) {
	switch h.kind {
	case Owned, ExclusiveBorrow:
		return h.data, nil
	case CoW:
		h.data = h.data.CloneData()
		h.kind = Owned
		return h.data, nil
	case SharedBorrow:
		return storage.Storage[T]{}, errs.New(errs.AliasingViolation, "cannot mutate through a shared borrow")
	default:
		return storage.Storage[T]{}, errs.New(errs.AliasingViolation, "unknown data handle kind %v", h.kind)
	}
}

// IntoOwnedKeepLayout returns an Owned handle. A non-Owned handle's data is
// cloned into fresh storage; an Owned handle is returned as-is, so the
// result shares its backing array with h.
func (h DataHandle[T]) IntoOwnedKeepLayout() DataHandle[T] {
	if h.kind == Owned {
		return h
	}
	return DataHandle[T]{kind: Owned, data: h.data.CloneData()}
}

// IntoCoW reinterprets this handle as CoW over its current data, without
// copying anything yet; the first ViewMut on the result materializes.
func (h DataHandle[T]) IntoCoW() DataHandle[T] {
	return DataHandle[T]{kind: CoW, data: h.data}
}
