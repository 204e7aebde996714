// Package matmul implements the matrix-multiplication engine: shape
// analysis (dot / gemv / gemm / batched gemm, chosen by operand rank),
// stride analysis (deferred to package device, which materializes a
// row-major copy of any matrix operand that is not C-contiguous, including
// column-major ones), a
// self-product shortcut onto SYRK, and output allocation.
package matmul

import (
	"github.com/vynegra/tensorcore/device"
	"github.com/vynegra/tensorcore/elementwise"
	"github.com/vynegra/tensorcore/errs"
	"github.com/vynegra/tensorcore/layout"
	"github.com/vynegra/tensorcore/storage"
	"github.com/vynegra/tensorcore/tensor"
)

// MatMul dispatches on a's and b's rank to the appropriate primitive:
//
//	1D . 1D -> inner product, rank-0 result
//	2D . 1D -> matrix-vector product, rank-1 result
//	1D . 2D -> vector-matrix product (treated as a transposed gemv)
//	2D . 2D -> matrix product, rank-2 result
//	>2D     -> batched matrix product over broadcast leading (batch) axes
func MatMul[T storage.Float](d storage.Device, a, b tensor.Tensor[T]) (tensor.Tensor[T], error) {
	aData, aL := a.View()
	bData, bL := b.View()
	ar, br := aL.Rank(), bL.Rank()

	switch {
	case ar == 1 && br == 1:
		v, err := device.Dot(aData, aL, bData, bL)
		if err != nil {
			return tensor.Tensor[T]{}, err
		}
		out := tensor.Zeros[T](d, nil)
		od, ol := out.View()
		od.Data[ol.Pos(nil)] = v
		return out, nil

	case ar == 2 && br == 1:
		return gemv(d, aData, aL, bData, bL)

	case ar == 1 && br == 2:
		// v @ M == (M^T @ v); Transpose is a view, no data movement.
		bT, err := bL.Transpose([]int{1, 0})
		if err != nil {
			return tensor.Tensor[T]{}, err
		}
		return gemv(d, bData, bT, aData, aL)

	case ar == 2 && br == 2:
		return gemm(d, aData, aL, bData, bL)

	default:
		return batchedGemm(d, aData, aL, bData, bL)
	}
}

func gemv[T storage.Float](d storage.Device, matData storage.Storage[T], matL layout.Layout, vecData storage.Storage[T], vecL layout.Layout) (tensor.Tensor[T], error) {
	if matL.Rank() != 2 || vecL.Rank() != 1 {
		return tensor.Tensor[T]{}, errs.New(errs.InvalidLayout, "gemv requires a rank-2 matrix and rank-1 vector")
	}
	out := tensor.Zeros[T](d, []int{matL.Dim(0)})
	outData, outL := out.View()
	if err := device.Gemv(outData, outL, matData, matL, vecData, vecL); err != nil {
		return tensor.Tensor[T]{}, err
	}
	return out, nil
}

// isSelfTranspose reports whether b is exactly a's transpose sharing the
// same backing array, the shape the matmul component's SYRK shortcut is
// named for (a @ a^T).
func isSelfTranspose[T storage.Numeric](aData storage.Storage[T], aL layout.Layout, bData storage.Storage[T], bL layout.Layout) bool {
	if len(aData.Data) == 0 || len(bData.Data) == 0 {
		return false
	}
	if &aData.Data[0] != &bData.Data[0] {
		return false
	}
	aT, err := aL.Transpose([]int{1, 0})
	if err != nil {
		return false
	}
	return aT.Equal(bL)
}

func gemm[T storage.Float](d storage.Device, aData storage.Storage[T], aL layout.Layout, bData storage.Storage[T], bL layout.Layout) (tensor.Tensor[T], error) {
	m, k, k2, n := aL.Dim(0), aL.Dim(1), bL.Dim(0), bL.Dim(1)
	if k != k2 {
		return tensor.Tensor[T]{}, errs.New(errs.InvalidLayout, "matmul inner dimensions differ: %d vs %d", k, k2)
	}

	out := tensor.Zeros[T](d, []int{m, n})
	outData, outL := out.View()

	if real, ok := any(aData).(storage.Storage[float64]); ok && isSelfTranspose(aData, aL, bData, bL) {
		outReal := any(outData).(storage.Storage[float64])
		if err := device.Syrk[float64](outReal, outL, real, aL); err != nil {
			return tensor.Tensor[T]{}, err
		}
		return out, nil
	}
	if real, ok := any(aData).(storage.Storage[float32]); ok && isSelfTranspose(aData, aL, bData, bL) {
		outReal := any(outData).(storage.Storage[float32])
		if err := device.Syrk[float32](outReal, outL, real, aL); err != nil {
			return tensor.Tensor[T]{}, err
		}
		return out, nil
	}

	if err := device.Gemm(outData, outL, aData, aL, bData, bL); err != nil {
		return tensor.Tensor[T]{}, err
	}
	return out, nil
}

// batchedGemm broadcasts a's and b's leading (batch) axes against each
// other and runs an independent 2D gemm per resulting batch index.
func batchedGemm[T storage.Float](d storage.Device, aData storage.Storage[T], aL layout.Layout, bData storage.Storage[T], bL layout.Layout) (tensor.Tensor[T], error) {
	if aL.Rank() < 2 || bL.Rank() < 2 {
		return tensor.Tensor[T]{}, errs.New(errs.InvalidLayout, "batched matmul requires at least rank-2 operands")
	}
	aBatch := aL.Shape()[:aL.Rank()-2]
	bBatch := bL.Shape()[:bL.Rank()-2]
	batchShape, err := elementwise.BroadcastShapes(aBatch, bBatch)
	if err != nil {
		return tensor.Tensor[T]{}, err
	}

	m, k := aL.Dim(aL.Rank() - 2), aL.Dim(aL.Rank() - 1)
	k2, n := bL.Dim(bL.Rank() - 2), bL.Dim(bL.Rank() - 1)
	if k != k2 {
		return tensor.Tensor[T]{}, errs.New(errs.InvalidLayout, "batched matmul inner dimensions differ: %d vs %d", k, k2)
	}

	aFullShape := append(append([]int{}, batchShape...), m, k)
	bFullShape := append(append([]int{}, batchShape...), k, n)
	aB, err := aL.BroadcastTo(aFullShape)
	if err != nil {
		return tensor.Tensor[T]{}, err
	}
	bB, err := bL.BroadcastTo(bFullShape)
	if err != nil {
		return tensor.Tensor[T]{}, err
	}

	outShape := append(append([]int{}, batchShape...), m, n)
	out := tensor.Zeros[T](d, outShape)
	outData, outL := out.View()

	batchSize := 1
	for _, s := range batchShape {
		batchSize *= s
	}
	idx := make([]int, len(batchShape))
	for lin := 0; lin < batchSize; lin++ {
		rem := lin
		for axis := len(batchShape) - 1; axis >= 0; axis-- {
			if batchShape[axis] == 0 {
				idx[axis] = 0
				continue
			}
			idx[axis] = rem % batchShape[axis]
			rem /= batchShape[axis]
		}

		aSlice, err := sliceBatch(aB, idx)
		if err != nil {
			return tensor.Tensor[T]{}, err
		}
		bSlice, err := sliceBatch(bB, idx)
		if err != nil {
			return tensor.Tensor[T]{}, err
		}
		outSlice, err := sliceBatch(outL, idx)
		if err != nil {
			return tensor.Tensor[T]{}, err
		}

		if err := device.Gemm(outData, outSlice, aData, aSlice, bData, bSlice); err != nil {
			return tensor.Tensor[T]{}, err
		}
	}

	return out, nil
}

// sliceBatch fixes each leading batch axis of l to the corresponding entry
// of idx, squeezing it away and leaving the trailing 2 (matrix) axes
// untouched.
func sliceBatch(l layout.Layout, idx []int) (layout.Layout, error) {
	cur := l
	for axis := 0; axis < len(idx); axis++ {
		sliced, err := cur.Slice(0, layout.S(layout.IntP(idx[axis]), layout.IntP(idx[axis]+1), layout.IntP(1)))
		if err != nil {
			return layout.Layout{}, err
		}
		squeezed, err := sliced.Squeeze(0)
		if err != nil {
			return layout.Layout{}, err
		}
		cur = squeezed
	}
	return cur, nil
}
