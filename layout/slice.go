package layout

import "github.com/vynegra/tensorcore/errs"

// Slice is a NumPy-style (start, stop, step) descriptor for a single axis.
// A nil field means "unspecified": Start defaults to the natural start of
// the traversal direction, Stop to the natural end, Step to 1. Negative
// indices resolve against the axis extent; Step may be negative but never
// zero.
type Slice struct {
	Start *int
	Stop  *int
	Step  *int
}

// S is a convenience constructor mirroring a[start:stop:step]. Pass nil for
// any unspecified bound, e.g. S(nil, nil, IntP(-1)) for a[::-1].
func S(start, stop, step *int) Slice { return Slice{Start: start, Stop: stop, Step: step} }

// IntP returns a pointer to v, for building Slice literals inline.
func IntP(v int) *int { return &v }

// resolve normalizes the slice against an axis of length n, returning the
// concrete (start, stop, step, extent) of the resulting axis. Follows the
// Python/NumPy slicing convention: negative indices count from the end,
// bounds clamp into [0, n] (or [-1, n-1] for reverse traversal), and the
// resulting extent is ceildiv(stop-start, |step|) clamped to >= 0.
func (s Slice) resolve(n int) (start, stop, step, extent int, err error) {
	step = 1
	if s.Step != nil {
		step = *s.Step
	}
	if step == 0 {
		return 0, 0, 0, 0, errs.New(errs.InvalidLayout, "slice step must not be zero")
	}

	if step > 0 {
		start = 0
		stop = n
	} else {
		start = n - 1
		stop = -1
	}

	lo, hi := boundsFor(step, n)
	if s.Start != nil {
		start = normalizeIndex(*s.Start, n)
		start = clamp(start, lo, hi)
	}
	if s.Stop != nil {
		stop = normalizeIndex(*s.Stop, n)
		stop = clamp(stop, lo, hi)
	}

	if step > 0 {
		if stop > start {
			extent = ceilDiv(stop-start, step)
		}
	} else {
		if start > stop {
			extent = ceilDiv(start-stop, -step)
		}
	}
	return start, stop, step, extent, nil
}

// boundsFor returns the (lo, hi) clamp range for a resolved start/stop
// value given the traversal direction: forward clamps into [0, n],
// backward clamps into [-1, n-1].
func boundsFor(step, n int) (lo, hi int) {
	if step > 0 {
		return 0, n
	}
	return -1, n - 1
}

func normalizeIndex(i, n int) int {
	if i < 0 {
		return i + n
	}
	return i
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
