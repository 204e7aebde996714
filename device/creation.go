package device

import "github.com/vynegra/tensorcore/storage"

// Zeros allocates a length-n Storage of T with every element the zero
// value (Go's make already zero-fills, satisfying the additive identity
// requirement for every type in storage.Numeric).
func Zeros[T storage.Numeric](d storage.Device, n int) storage.Storage[T] {
	return storage.New(make([]T, n), d)
}

// Ones allocates a length-n Storage of T with every element the
// multiplicative identity.
func Ones[T storage.Numeric](d storage.Device, n int) storage.Storage[T] {
	data := make([]T, n)
	var one T = 1
	for i := range data {
		data[i] = one
	}
	return storage.New(data, d)
}

// Empty allocates a length-n Storage of T without any particular value
// guarantee beyond Go's own zero-initialization. Per spec.md §5, whatever
// an engine does with an Empty-backed Storage must write every reachable
// position before any user-visible read reaches it.
func Empty[T storage.Numeric](d storage.Device, n int) storage.Storage[T] {
	return storage.New(make([]T, n), d)
}

// ArangeInt allocates a length-n int Storage holding 0..n-1.
func ArangeInt(d storage.Device, n int) storage.Storage[int] {
	data := make([]int, n)
	for i := range data {
		data[i] = i
	}
	return storage.New(data, d)
}

// FromHostVec copies an externally-owned slice into a fresh, independently
// owned Storage.
func FromHostVec[T storage.Numeric](d storage.Device, v []T) storage.Storage[T] {
	cp := make([]T, len(v))
	copy(cp, v)
	return storage.New(cp, d)
}

// IntoHostVec copies s's backing buffer out to an independent slice the
// caller may retain past s's lifetime.
func IntoHostVec[T storage.Numeric](s storage.Storage[T]) []T {
	cp := make([]T, len(s.Data))
	copy(cp, s.Data)
	return cp
}
