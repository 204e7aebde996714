package device

import (
	"github.com/google/uuid"
	"github.com/vynegra/tensorcore/storage"
)

// Serial is the reference single-threaded CPU backend: every operation
// runs on the calling goroutine via plain for-loops over an iterator.
type Serial struct {
	id uuid.UUID
}

// NewSerial constructs a Serial device. The UUID is diagnostic-only (see
// SPEC_FULL.md ADD-3) and never consulted by SameDevice.
func NewSerial() Serial {
	return Serial{id: uuid.New()}
}

func (s Serial) Kind() string { return "serial" }

// Threads is always 1: Serial never parallelizes.
func (s Serial) Threads() int { return 1 }

// SameDevice is true for any other Serial device, regardless of identity.
func (s Serial) SameDevice(other storage.Device) bool {
	_, ok := other.(Serial)
	return ok
}

var _ storage.Device = Serial{}
