package device

import (
	"github.com/chewxy/math32"
	"gorgonia.org/vecf32"
	"gorgonia.org/vecf64"

	"github.com/vynegra/tensorcore/layout"
	"github.com/vynegra/tensorcore/storage"
)

// contiguousRegion reports the flat [lo,hi) slice of a Storage's Data that
// l addresses, and whether l is eligible for the vecf64/vecf32 fast path:
// C-contiguous (so its reachable positions are exactly that slice, walked
// in the same order the BinaryCore fallback would use).
func contiguousRegion(l layout.Layout, dataLen int) (lo, hi int, ok bool) {
	if !l.IsCContiguous() {
		return 0, 0, false
	}
	lo, hi = l.BoundsIndex()
	return lo, hi, hi-lo == l.Size() || l.Size() == 0
}

// fastBinaryFloat64 takes the vecf64 in-place path when dst/a/b are all
// C-contiguous float64 storages of matching size: it copies a's region into
// dst's region, then applies op in place on dst against b's region,
// matching BinaryCore's f(a[i],b[i])->dst[i] semantics without mutating the
// original a or b buffers. Returns false (no-op) if the fast path does not
// apply, so the caller falls back to BinaryCore.
func fastBinaryFloat64(dst storage.Storage[float64], dstL layout.Layout, a storage.Storage[float64], aL layout.Layout, b storage.Storage[float64], bL layout.Layout, op func(a, b []float64) []float64) bool {
	dlo, dhi, dok := contiguousRegion(dstL, len(dst.Data))
	alo, ahi, aok := contiguousRegion(aL, len(a.Data))
	blo, bhi, bok := contiguousRegion(bL, len(b.Data))
	if !dok || !aok || !bok {
		return false
	}
	n := dhi - dlo
	if n != ahi-alo || n != bhi-blo {
		return false
	}
	if n == 0 {
		return true
	}
	copy(dst.Data[dlo:dhi], a.Data[alo:ahi])
	op(dst.Data[dlo:dhi], b.Data[blo:bhi])
	return true
}

func fastBinaryFloat32(dst storage.Storage[float32], dstL layout.Layout, a storage.Storage[float32], aL layout.Layout, b storage.Storage[float32], bL layout.Layout, op func(a, b []float32) []float32) bool {
	dlo, dhi, dok := contiguousRegion(dstL, len(dst.Data))
	alo, ahi, aok := contiguousRegion(aL, len(a.Data))
	blo, bhi, bok := contiguousRegion(bL, len(b.Data))
	if !dok || !aok || !bok {
		return false
	}
	n := dhi - dlo
	if n != ahi-alo || n != bhi-blo {
		return false
	}
	if n == 0 {
		return true
	}
	copy(dst.Data[dlo:dhi], a.Data[alo:ahi])
	op(dst.Data[dlo:dhi], b.Data[blo:bhi])
	return true
}

// binaryDispatch tries the vecf64/vecf32 contiguous fast path for float64
// and float32 element types (the two the gorgonia vector kernels cover),
// falling back to BinaryCore's generic strided walk for every other type
// and for any non-contiguous operand.
func binaryDispatch[T storage.Numeric](d storage.Device, dst storage.Storage[T], dstL layout.Layout, a storage.Storage[T], aL layout.Layout, b storage.Storage[T], bL layout.Layout, scalar func(T, T) T, f64 func([]float64, []float64) []float64, f32 func([]float32, []float32) []float32) error {
	if f64 != nil {
		if dd, dok := any(dst).(storage.Storage[float64]); dok {
			ad, aok := any(a).(storage.Storage[float64])
			bd, bok := any(b).(storage.Storage[float64])
			if aok && bok && fastBinaryFloat64(dd, dstL, ad, aL, bd, bL, f64) {
				return nil
			}
		}
	}
	if f32 != nil {
		if dd, dok := any(dst).(storage.Storage[float32]); dok {
			ad, aok := any(a).(storage.Storage[float32])
			bd, bok := any(b).(storage.Storage[float32])
			if aok && bok && fastBinaryFloat32(dd, dstL, ad, aL, bd, bL, f32) {
				return nil
			}
		}
	}
	return BinaryCore(d, dst, dstL, a, aL, b, bL, scalar)
}

// Add computes dst = a + b elementwise.
func Add[T storage.Numeric](d storage.Device, dst storage.Storage[T], dstL layout.Layout, a storage.Storage[T], aL layout.Layout, b storage.Storage[T], bL layout.Layout) error {
	return binaryDispatch(d, dst, dstL, a, aL, b, bL, func(x, y T) T { return x + y }, vecf64.Add, vecf32.Add)
}

// Sub computes dst = a - b elementwise.
func Sub[T storage.Numeric](d storage.Device, dst storage.Storage[T], dstL layout.Layout, a storage.Storage[T], aL layout.Layout, b storage.Storage[T], bL layout.Layout) error {
	return binaryDispatch(d, dst, dstL, a, aL, b, bL, func(x, y T) T { return x - y }, vecf64.Sub, vecf32.Sub)
}

// Mul computes dst = a * b elementwise.
func Mul[T storage.Numeric](d storage.Device, dst storage.Storage[T], dstL layout.Layout, a storage.Storage[T], aL layout.Layout, b storage.Storage[T], bL layout.Layout) error {
	return binaryDispatch(d, dst, dstL, a, aL, b, bL, func(x, y T) T { return x * y }, vecf64.Mul, vecf32.Mul)
}

// Div computes dst = a / b elementwise.
func Div[T storage.Numeric](d storage.Device, dst storage.Storage[T], dstL layout.Layout, a storage.Storage[T], aL layout.Layout, b storage.Storage[T], bL layout.Layout) error {
	return binaryDispatch(d, dst, dstL, a, aL, b, bL, func(x, y T) T { return x / y }, vecf64.Div, vecf32.Div)
}

// Rem computes dst = a % b elementwise. Integer-only: Numeric's float and
// complex members have no Go remainder operator.
func Rem[T storage.Integer](d storage.Device, dst storage.Storage[T], dstL layout.Layout, a storage.Storage[T], aL layout.Layout, b storage.Storage[T], bL layout.Layout) error {
	return BinaryCore(d, dst, dstL, a, aL, b, bL, func(x, y T) T { return x % y })
}

// And computes dst = a & b elementwise.
func And[T storage.Integer](d storage.Device, dst storage.Storage[T], dstL layout.Layout, a storage.Storage[T], aL layout.Layout, b storage.Storage[T], bL layout.Layout) error {
	return BinaryCore(d, dst, dstL, a, aL, b, bL, func(x, y T) T { return x & y })
}

// Or computes dst = a | b elementwise.
func Or[T storage.Integer](d storage.Device, dst storage.Storage[T], dstL layout.Layout, a storage.Storage[T], aL layout.Layout, b storage.Storage[T], bL layout.Layout) error {
	return BinaryCore(d, dst, dstL, a, aL, b, bL, func(x, y T) T { return x | y })
}

// Xor computes dst = a ^ b elementwise.
func Xor[T storage.Integer](d storage.Device, dst storage.Storage[T], dstL layout.Layout, a storage.Storage[T], aL layout.Layout, b storage.Storage[T], bL layout.Layout) error {
	return BinaryCore(d, dst, dstL, a, aL, b, bL, func(x, y T) T { return x ^ y })
}

// Neg computes dst = -src elementwise.
func Neg[T storage.Numeric](d storage.Device, dst storage.Storage[T], dstL layout.Layout, src storage.Storage[T], srcL layout.Layout) error {
	return UnaryCore(d, dst, dstL, src, srcL, func(x T) T { return -x })
}

// Abs computes dst = |src| elementwise, real floats only: Numeric's int and
// complex members either have no meaningful Abs here (int overflows at
// MinInt) or need cmplx.Abs's different return type, so this is
// RealFloat-only; complex magnitude is left to a future complex-specific
// primitive.
func Abs[T storage.RealFloat](d storage.Device, dst storage.Storage[T], dstL layout.Layout, src storage.Storage[T], srcL layout.Layout) error {
	if dd, dok := any(dst).(storage.Storage[float32]); dok {
		if sd, sok := any(src).(storage.Storage[float32]); sok {
			return UnaryCore(d, dd, dstL, sd, srcL, math32.Abs)
		}
	}
	return UnaryCore(d, dst, dstL, src, srcL, func(x T) T {
		if x < 0 {
			return -x
		}
		return x
	})
}

// Sqrt computes dst = sqrt(src) elementwise over real floats, using
// github.com/chewxy/math32's float32 sqrt so float32 tensors never pay for
// a round trip through float64.
func Sqrt[T storage.RealFloat](d storage.Device, dst storage.Storage[T], dstL layout.Layout, src storage.Storage[T], srcL layout.Layout) error {
	if dd, dok := any(dst).(storage.Storage[float32]); dok {
		if sd, sok := any(src).(storage.Storage[float32]); sok {
			return UnaryCore(d, dd, dstL, sd, srcL, math32.Sqrt)
		}
	}
	if dd, dok := any(dst).(storage.Storage[float64]); dok {
		if sd, sok := any(src).(storage.Storage[float64]); sok {
			return UnaryCore(d, dd, dstL, sd, srcL, sqrtFloat64)
		}
	}
	return nil
}

// Exp computes dst = exp(src) elementwise over real floats.
func Exp[T storage.RealFloat](d storage.Device, dst storage.Storage[T], dstL layout.Layout, src storage.Storage[T], srcL layout.Layout) error {
	if dd, dok := any(dst).(storage.Storage[float32]); dok {
		if sd, sok := any(src).(storage.Storage[float32]); sok {
			return UnaryCore(d, dd, dstL, sd, srcL, math32.Exp)
		}
	}
	if dd, dok := any(dst).(storage.Storage[float64]); dok {
		if sd, sok := any(src).(storage.Storage[float64]); sok {
			return UnaryCore(d, dd, dstL, sd, srcL, expFloat64)
		}
	}
	return nil
}

// Log computes dst = ln(src) elementwise over real floats.
func Log[T storage.RealFloat](d storage.Device, dst storage.Storage[T], dstL layout.Layout, src storage.Storage[T], srcL layout.Layout) error {
	if dd, dok := any(dst).(storage.Storage[float32]); dok {
		if sd, sok := any(src).(storage.Storage[float32]); sok {
			return UnaryCore(d, dd, dstL, sd, srcL, math32.Log)
		}
	}
	if dd, dok := any(dst).(storage.Storage[float64]); dok {
		if sd, sok := any(src).(storage.Storage[float64]); sok {
			return UnaryCore(d, dd, dstL, sd, srcL, logFloat64)
		}
	}
	return nil
}
