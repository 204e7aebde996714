package elementwise

import (
	"github.com/vynegra/tensorcore/device"
	"github.com/vynegra/tensorcore/layout"
	"github.com/vynegra/tensorcore/storage"
	"github.com/vynegra/tensorcore/tensor"
)

// binOp is the shape of every device package binary operator (Add, Sub,
// Mul, Div, ...), letting binary below stay a single generic broadcasting
// wrapper around whichever one the caller names.
type binOp[T storage.Numeric] func(d storage.Device, dst storage.Storage[T], dstL layout.Layout, a storage.Storage[T], aL layout.Layout, b storage.Storage[T], bL layout.Layout) error

// binary broadcasts a and b against each other, allocates a fresh Owned
// output tensor of the broadcast shape, and dispatches op across it.
func binary[T storage.Numeric](d storage.Device, a, b tensor.Tensor[T], op binOp[T]) (tensor.Tensor[T], error) {
	aData, aL := a.View()
	bData, bL := b.View()

	outShape, err := BroadcastShapes(aL.Shape(), bL.Shape())
	if err != nil {
		return tensor.Tensor[T]{}, err
	}
	aB, err := aL.BroadcastTo(outShape)
	if err != nil {
		return tensor.Tensor[T]{}, err
	}
	bB, err := bL.BroadcastTo(outShape)
	if err != nil {
		return tensor.Tensor[T]{}, err
	}

	out := tensor.Zeros[T](d, outShape)
	outData, outL := out.View()
	if err := op(d, outData, outL, aData, aB, bData, bB); err != nil {
		return tensor.Tensor[T]{}, err
	}
	return out, nil
}

// Add returns a broadcast a+b.
func Add[T storage.Numeric](d storage.Device, a, b tensor.Tensor[T]) (tensor.Tensor[T], error) {
	return binary(d, a, b, device.Add[T])
}

// Sub returns a broadcast a-b.
func Sub[T storage.Numeric](d storage.Device, a, b tensor.Tensor[T]) (tensor.Tensor[T], error) {
	return binary(d, a, b, device.Sub[T])
}

// Mul returns a broadcast a*b.
func Mul[T storage.Numeric](d storage.Device, a, b tensor.Tensor[T]) (tensor.Tensor[T], error) {
	return binary(d, a, b, device.Mul[T])
}

// Div returns a broadcast a/b.
func Div[T storage.Numeric](d storage.Device, a, b tensor.Tensor[T]) (tensor.Tensor[T], error) {
	return binary(d, a, b, device.Div[T])
}

// scalarStorage wraps v as a length-1 Storage with the rank-0 Layout that
// represents a scalar: BroadcastTo can then expand it to any shape with
// every stride 0, so the same BinaryCore machinery that handles
// tensor-tensor ops handles tensor-scalar ops with no special case in
// package device at all.
func scalarStorage[T storage.Numeric](d storage.Device, v T) (storage.Storage[T], layout.Layout) {
	return storage.New([]T{v}, d), layout.Unchecked(nil, nil, 0)
}

func binaryScalar[T storage.Numeric](d storage.Device, a tensor.Tensor[T], v T, op binOp[T]) (tensor.Tensor[T], error) {
	aData, aL := a.View()
	sData, sL := scalarStorage(d, v)
	sB, err := sL.BroadcastTo(aL.Shape())
	if err != nil {
		return tensor.Tensor[T]{}, err
	}
	out := tensor.Zeros[T](d, aL.Shape())
	outData, outL := out.View()
	if err := op(d, outData, outL, aData, aL, sData, sB); err != nil {
		return tensor.Tensor[T]{}, err
	}
	return out, nil
}

// AddScalar returns a+v, v broadcast against every element of a.
func AddScalar[T storage.Numeric](d storage.Device, a tensor.Tensor[T], v T) (tensor.Tensor[T], error) {
	return binaryScalar(d, a, v, device.Add[T])
}

// SubScalar returns a-v.
func SubScalar[T storage.Numeric](d storage.Device, a tensor.Tensor[T], v T) (tensor.Tensor[T], error) {
	return binaryScalar(d, a, v, device.Sub[T])
}

// MulScalar returns a*v.
func MulScalar[T storage.Numeric](d storage.Device, a tensor.Tensor[T], v T) (tensor.Tensor[T], error) {
	return binaryScalar(d, a, v, device.Mul[T])
}

// DivScalar returns a/v.
func DivScalar[T storage.Numeric](d storage.Device, a tensor.Tensor[T], v T) (tensor.Tensor[T], error) {
	return binaryScalar(d, a, v, device.Div[T])
}

// unOp is the shape of every device package unary operator (Neg, ...).
type unOp[T storage.Numeric] func(d storage.Device, dst storage.Storage[T], dstL layout.Layout, src storage.Storage[T], srcL layout.Layout) error

func unary[T storage.Numeric](d storage.Device, a tensor.Tensor[T], op unOp[T]) (tensor.Tensor[T], error) {
	aData, aL := a.View()
	out := tensor.Zeros[T](d, aL.Shape())
	outData, outL := out.View()
	if err := op(d, outData, outL, aData, aL); err != nil {
		return tensor.Tensor[T]{}, err
	}
	return out, nil
}

// Neg returns -a.
func Neg[T storage.Numeric](d storage.Device, a tensor.Tensor[T]) (tensor.Tensor[T], error) {
	return unary(d, a, device.Neg[T])
}

// realUnOp is unOp specialized to storage.RealFloat, the constraint Abs and
// Sqrt/Exp/Log carry in package device.
type realUnOp[T storage.RealFloat] func(d storage.Device, dst storage.Storage[T], dstL layout.Layout, src storage.Storage[T], srcL layout.Layout) error

func unaryReal[T storage.RealFloat](d storage.Device, a tensor.Tensor[T], op realUnOp[T]) (tensor.Tensor[T], error) {
	aData, aL := a.View()
	out := tensor.Zeros[T](d, aL.Shape())
	outData, outL := out.View()
	if err := op(d, outData, outL, aData, aL); err != nil {
		return tensor.Tensor[T]{}, err
	}
	return out, nil
}

// Abs returns |a| elementwise (real floats only).
func Abs[T storage.RealFloat](d storage.Device, a tensor.Tensor[T]) (tensor.Tensor[T], error) {
	return unaryReal(d, a, device.Abs[T])
}

// Sqrt returns sqrt(a) elementwise (real floats only).
func Sqrt[T storage.RealFloat](d storage.Device, a tensor.Tensor[T]) (tensor.Tensor[T], error) {
	return unaryReal(d, a, device.Sqrt[T])
}

// Exp returns exp(a) elementwise (real floats only).
func Exp[T storage.RealFloat](d storage.Device, a tensor.Tensor[T]) (tensor.Tensor[T], error) {
	return unaryReal(d, a, device.Exp[T])
}

// Log returns ln(a) elementwise (real floats only).
func Log[T storage.RealFloat](d storage.Device, a tensor.Tensor[T]) (tensor.Tensor[T], error) {
	return unaryReal(d, a, device.Log[T])
}

// Where selects whenTrue[i] where cond[i] != 0, else whenFalse[i],
// broadcasting all three operands against each other first. Built directly
// on device.TernaryCore, the one functional core with no binary/unary
// shorthand of its own.
func Where[T storage.Numeric](d storage.Device, cond tensor.Tensor[T], whenTrue, whenFalse tensor.Tensor[T]) (tensor.Tensor[T], error) {
	cData, cL := cond.View()
	tData, tL := whenTrue.View()
	fData, fL := whenFalse.View()

	outShape, err := BroadcastShapes(cL.Shape(), tL.Shape(), fL.Shape())
	if err != nil {
		return tensor.Tensor[T]{}, err
	}
	cB, err := cL.BroadcastTo(outShape)
	if err != nil {
		return tensor.Tensor[T]{}, err
	}
	tB, err := tL.BroadcastTo(outShape)
	if err != nil {
		return tensor.Tensor[T]{}, err
	}
	fB, err := fL.BroadcastTo(outShape)
	if err != nil {
		return tensor.Tensor[T]{}, err
	}

	out := tensor.Zeros[T](d, outShape)
	outData, outL := out.View()
	err = device.TernaryCore(d, outData, outL, cData, cB, tData, tB, fData, fB, func(c, a, b T) T {
		if c != 0 {
			return a
		}
		return b
	})
	if err != nil {
		return tensor.Tensor[T]{}, err
	}
	return out, nil
}
