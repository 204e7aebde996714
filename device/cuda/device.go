// Package cuda provides the GPU-resident backend. Its shape mirrors the
// teacher engine's darwin/non-darwin split: a small always-built Device
// type here, backed by a build-tag-selected implementation (device_cuda.go
// under the cuda tag, device_fallback.go otherwise) chosen the same way
// the teacher chose between its Metal-backed and StdEng-delegating
// MatMul/Sum.
package cuda

import "github.com/vynegra/tensorcore/storage"

// backend is the build-tag-selected half of Device; newBackend is defined
// once per build (device_cuda.go or device_fallback.go).
type backend interface {
	kind() string
}

// Device is a tensorcore backend bound to one CUDA device ordinal. With the
// cuda build tag NewDevice opens a CUDA context on that ordinal; Storage
// stays in host memory and package device's capability functions run on
// the CPU for this Device as for any other.
// Without the cuda build tag it behaves as a single-threaded CPU fallback
// identical in spirit to device.Serial, so code written against cuda.Device
// keeps compiling and running correctly on machines with no CUDA install.
type Device struct {
	ordinal int
	impl    backend
}

// NewDevice opens (or, on non-cuda builds, stubs) a context bound to the
// given device ordinal.
func NewDevice(ordinal int) (Device, error) {
	b, err := newBackend(ordinal)
	if err != nil {
		return Device{}, err
	}
	return Device{ordinal: ordinal, impl: b}, nil
}

func (d Device) Kind() string { return d.impl.kind() }

// Threads is always 1: parallelism on this backend comes from the device's
// own grid/block scheduling, not goroutine fan-out, so device.Parallelize
// always runs GPU-dispatching work as a single chunk.
func (d Device) Threads() int { return 1 }

// SameDevice compares ordinal and backend kind; a cuda build's Device and a
// non-cuda fallback Device never compare equal even with the same ordinal.
func (d Device) SameDevice(other storage.Device) bool {
	o, ok := other.(Device)
	return ok && o.ordinal == d.ordinal && o.Kind() == d.Kind()
}

var _ storage.Device = Device{}
