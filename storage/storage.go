// Package storage defines the backend-parameterized flat memory region
// (Storage) and the abstract Device handle describing what capabilities a
// backend supports. The core never touches memory directly outside of
// this package's Storage.Data: every operation goes through a Device.
package storage

// Numeric is the full set of element types tensorcore operates over:
// a plain integer, the two IEEE float types, and their complex
// counterparts. Every creation, elementwise, and assignment primitive is
// generic over this constraint.
type Numeric interface {
	~int | ~float32 | ~float64 | ~complex64 | ~complex128
}

// Integer is the subset of Numeric that supports remainder and bitwise
// operators.
type Integer interface {
	~int
}

// Float is the subset of Numeric matmul requires on CPU backends: the two
// real floating types plus their complex counterparts.
type Float interface {
	~float32 | ~float64 | ~complex64 | ~complex128
}

// RealFloat is Float minus the complex types, i.e. where BLAS real
// routines (gonum's blas64/blas32) apply directly.
type RealFloat interface {
	~float32 | ~float64
}

// Device is the capability-bearing handle every Storage carries. It is
// deliberately small and non-generic (Go has no generic interface
// methods); the actual per-type capability set — creation, assignment,
// elementwise cores, reduction, matmul — is implemented as free generic
// functions in package device that consult a Device's Threads() to choose
// a serial or parallel execution strategy.
// This is the Go realization of the "tag-dispatched table" alternative
// named in the design notes for capability-set composition.
type Device interface {
	// Kind names the backend ("serial", "threadpool", "cuda") for
	// diagnostics and error messages.
	Kind() string
	// Threads is the configured worker count; 0 or 1 means serial
	// execution on the calling goroutine.
	Threads() int
	// SameDevice is a logical equality check: two thread-pool devices
	// with the same thread count compare equal regardless of identity.
	SameDevice(other Device) bool
}

// Storage is a backend-owned flat buffer of element type T plus the
// device that owns it. Length is len(Data); a Storage never outlives the
// slice header it wraps (copying the header does not copy the backing
// array — exactly the semantics tensor.DataHandle relies on for
// SharedBorrow/ExclusiveBorrow).
type Storage[T Numeric] struct {
	Data []T
	Dev  Device
}

// New wraps an existing backend-produced slice as a Storage bound to dev.
func New[T Numeric](data []T, dev Device) Storage[T] {
	return Storage[T]{Data: data, Dev: dev}
}

// Len is the element count of the backing buffer.
func (s Storage[T]) Len() int { return len(s.Data) }

// CloneData returns a Storage with a freshly allocated, independent copy
// of Data on the same device. Used by the CoW materialization path and by
// Tensor.IntoOwnedKeepLayout.
func (s Storage[T]) CloneData() Storage[T] {
	cp := make([]T, len(s.Data))
	copy(cp, s.Data)
	return Storage[T]{Data: cp, Dev: s.Dev}
}
