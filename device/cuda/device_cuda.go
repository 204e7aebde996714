//go:build cuda

package cuda

import (
	_ "go4.org/unsafe/assume-no-moving-gc" // CUDA pointers pin host-side slices; the Go GC must not relocate them mid-transfer.
	"gorgonia.org/cu"

	"github.com/vynegra/tensorcore/errs"
)

type cudaBackend struct {
	ctx cu.Context
}

func (c *cudaBackend) kind() string { return "cuda" }

// newBackend opens a primary CUDA context on the given device ordinal, the
// cuda-tag counterpart of the teacher's initMPSEngine/MPSEngineCreateContext
// Metal setup.
func newBackend(ordinal int) (backend, error) {
	devs, err := cu.NumDevices()
	if err != nil {
		return nil, errs.New(errs.BackendFailure, "cuda: could not query device count: %v", err)
	}
	if ordinal < 0 || ordinal >= devs {
		return nil, errs.New(errs.BackendFailure, "cuda: device ordinal %d out of range [0,%d)", ordinal, devs)
	}
	dev := cu.Device(ordinal)
	ctx, err := dev.MakeContext(cu.SchedAuto)
	if err != nil {
		return nil, errs.New(errs.BackendFailure, "cuda: could not create context on device %d: %v", ordinal, err)
	}
	return &cudaBackend{ctx: ctx}, nil
}
