package device

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/vynegra/tensorcore/errs"
	"github.com/vynegra/tensorcore/layout"
	"github.com/vynegra/tensorcore/storage"
)

// materializeRowMajor2D returns a contiguous row-major [rows*cols]T copy of
// the 2D region l addresses in data. Used whenever a matmul operand is not
// C-contiguous: gonum's BLAS bindings are always called with NoTrans on a
// row-major buffer, so F-contiguous operands are copied too rather than
// passed with a transpose flag.
func materializeRowMajor2D[T storage.Numeric](l layout.Layout, data []T) []T {
	rows, cols := l.Dim(0), l.Dim(1)
	out := make([]T, rows*cols)
	idx := make([]int, 2)
	for r := 0; r < rows; r++ {
		idx[0] = r
		for c := 0; c < cols; c++ {
			idx[1] = c
			out[r*cols+c] = data[l.Pos(idx)]
		}
	}
	return out
}

// asRowMajorF64 returns (data, stride) for a 2D float64 layout, copying
// into a fresh contiguous buffer only when l isn't already C-contiguous.
func asRowMajorF64(l layout.Layout, data []float64) ([]float64, int) {
	if l.IsCContiguous() {
		lo, _ := l.BoundsIndex()
		return data[lo:], l.Dim(1)
	}
	return materializeRowMajor2D(l, data), l.Dim(1)
}

func asRowMajorF32(l layout.Layout, data []float32) ([]float32, int) {
	if l.IsCContiguous() {
		lo, _ := l.BoundsIndex()
		return data[lo:], l.Dim(1)
	}
	return materializeRowMajor2D(l, data), l.Dim(1)
}

// Dot computes the inner product of two rank-1 operands of equal length.
// Dispatches to gonum's blas64/blas32 Dot for the two real float types and
// falls back to a plain loop for the complex pair (gonum's blas64/blas32
// packages only cover the real types).
func Dot[T storage.Float](a storage.Storage[T], aL layout.Layout, b storage.Storage[T], bL layout.Layout) (T, error) {
	var zero T
	if aL.Rank() != 1 || bL.Rank() != 1 {
		return zero, errs.New(errs.InvalidLayout, "dot requires rank-1 operands, got ranks %d and %d", aL.Rank(), bL.Rank())
	}
	if aL.Dim(0) != bL.Dim(0) {
		return zero, errs.New(errs.InvalidLayout, "dot operand lengths differ: %d vs %d", aL.Dim(0), bL.Dim(0))
	}

	if ad, ok := any(a).(storage.Storage[float64]); ok {
		bd := any(b).(storage.Storage[float64])
		alo, _ := aL.BoundsIndex()
		blo, _ := bL.BoundsIndex()
		n := aL.Dim(0)
		va := blas64.Vector{N: n, Data: ad.Data[alo:], Inc: aL.Stride()[0]}
		vb := blas64.Vector{N: n, Data: bd.Data[blo:], Inc: bL.Stride()[0]}
		return any(blas64.Dot(va, vb)).(T), nil
	}
	if ad, ok := any(a).(storage.Storage[float32]); ok {
		bd := any(b).(storage.Storage[float32])
		alo, _ := aL.BoundsIndex()
		blo, _ := bL.BoundsIndex()
		n := aL.Dim(0)
		va := blas32.Vector{N: n, Data: ad.Data[alo:], Inc: aL.Stride()[0]}
		vb := blas32.Vector{N: n, Data: bd.Data[blo:], Inc: bL.Stride()[0]}
		return any(blas32.Dot(va, vb)).(T), nil
	}

	var sum T
	idx := make([]int, 1)
	for i := 0; i < aL.Dim(0); i++ {
		idx[0] = i
		sum += a.Data[aL.Pos(idx)] * b.Data[bL.Pos(idx)]
	}
	return sum, nil
}

// Gemm computes out = a @ b for rank-2 a, b and rank-2 out, where a is
// (m,k), b is (k,n), out is (m,n). Dispatches to gonum blas64/blas32 for
// the real float types; complex64/complex128 use a hand-rolled triple loop,
// a documented stdlib-only exception since gonum's blas64/blas32 packages
// are real-only.
func Gemm[T storage.Float](out storage.Storage[T], outL layout.Layout, a storage.Storage[T], aL layout.Layout, b storage.Storage[T], bL layout.Layout) error {
	if aL.Rank() != 2 || bL.Rank() != 2 || outL.Rank() != 2 {
		return errs.New(errs.InvalidLayout, "gemm requires rank-2 operands")
	}
	m, k, k2, n := aL.Dim(0), aL.Dim(1), bL.Dim(0), bL.Dim(1)
	if k != k2 {
		return errs.New(errs.InvalidLayout, "gemm inner dimensions differ: %d vs %d", k, k2)
	}
	if outL.Dim(0) != m || outL.Dim(1) != n {
		return errs.New(errs.InvalidLayout, "gemm output shape (%d,%d) does not match (%d,%d)", outL.Dim(0), outL.Dim(1), m, n)
	}

	if ad, ok := any(a).(storage.Storage[float64]); ok {
		bd := any(b).(storage.Storage[float64])
		od := any(out).(storage.Storage[float64])
		adata, astride := asRowMajorF64(aL, ad.Data)
		bdata, bstride := asRowMajorF64(bL, bd.Data)
		olo, _ := outL.BoundsIndex()
		cdata := od.Data[olo:]
		if !outL.IsCContiguous() {
			cdata = make([]float64, m*n)
		}
		ga := blas64.General{Rows: m, Cols: k, Stride: astride, Data: adata}
		gb := blas64.General{Rows: k, Cols: n, Stride: bstride, Data: bdata}
		gc := blas64.General{Rows: m, Cols: n, Stride: n, Data: cdata}
		blas64.Gemm(blas.NoTrans, blas.NoTrans, 1, ga, gb, 0, gc)
		if !outL.IsCContiguous() {
			scatterRowMajor2D(outL, od.Data, gc.Data)
		}
		return nil
	}
	if ad, ok := any(a).(storage.Storage[float32]); ok {
		bd := any(b).(storage.Storage[float32])
		od := any(out).(storage.Storage[float32])
		adata, astride := asRowMajorF32(aL, ad.Data)
		bdata, bstride := asRowMajorF32(bL, bd.Data)
		olo, _ := outL.BoundsIndex()
		cdata := od.Data[olo:]
		if !outL.IsCContiguous() {
			cdata = make([]float32, m*n)
		}
		ga := blas32.General{Rows: m, Cols: k, Stride: astride, Data: adata}
		gb := blas32.General{Rows: k, Cols: n, Stride: bstride, Data: bdata}
		gc := blas32.General{Rows: m, Cols: n, Stride: n, Data: cdata}
		blas32.Gemm(blas.NoTrans, blas.NoTrans, 1, ga, gb, 0, gc)
		if !outL.IsCContiguous() {
			scatterRowMajor2D(outL, od.Data, gc.Data)
		}
		return nil
	}

	// complex64/complex128: no gonum BLAS coverage, fall back to a plain
	// triple loop.
	aIdx, bIdx, oIdx := make([]int, 2), make([]int, 2), make([]int, 2)
	for i := 0; i < m; i++ {
		oIdx[0] = i
		aIdx[0] = i
		for j := 0; j < n; j++ {
			oIdx[1] = j
			var acc T
			for p := 0; p < k; p++ {
				aIdx[1] = p
				bIdx[0] = p
				bIdx[1] = j
				acc += a.Data[aL.Pos(aIdx)] * b.Data[bL.Pos(bIdx)]
			}
			out.Data[outL.Pos(oIdx)] = acc
		}
	}
	return nil
}

// scatterRowMajor2D writes a freshly computed contiguous row-major result
// back into out's actual (non-contiguous) storage positions.
func scatterRowMajor2D[T storage.Numeric](l layout.Layout, dst []T, rowMajor []T) {
	rows, cols := l.Dim(0), l.Dim(1)
	idx := make([]int, 2)
	for r := 0; r < rows; r++ {
		idx[0] = r
		for c := 0; c < cols; c++ {
			idx[1] = c
			dst[l.Pos(idx)] = rowMajor[r*cols+c]
		}
	}
}

// Gemv computes out = mat @ vec for a rank-2 mat (m,n) and rank-1 vec (n),
// producing a rank-1 out (m). Real floats dispatch to gonum's Gemv;
// complex64/complex128 fall back to a plain loop.
func Gemv[T storage.Float](out storage.Storage[T], outL layout.Layout, mat storage.Storage[T], matL layout.Layout, vec storage.Storage[T], vecL layout.Layout) error {
	if matL.Rank() != 2 || vecL.Rank() != 1 || outL.Rank() != 1 {
		return errs.New(errs.InvalidLayout, "gemv requires a rank-2 matrix and rank-1 vector/output")
	}
	m, n := matL.Dim(0), matL.Dim(1)
	if vecL.Dim(0) != n {
		return errs.New(errs.InvalidLayout, "gemv: vector length %d does not match matrix column count %d", vecL.Dim(0), n)
	}
	if outL.Dim(0) != m {
		return errs.New(errs.InvalidLayout, "gemv: output length %d does not match matrix row count %d", outL.Dim(0), m)
	}

	if md, ok := any(mat).(storage.Storage[float64]); ok {
		vd := any(vec).(storage.Storage[float64])
		od := any(out).(storage.Storage[float64])
		mdata, mstride := asRowMajorF64(matL, md.Data)
		vlo, _ := vecL.BoundsIndex()
		olo, _ := outL.BoundsIndex()
		gm := blas64.General{Rows: m, Cols: n, Stride: mstride, Data: mdata}
		vv := blas64.Vector{N: n, Data: vd.Data[vlo:], Inc: vecL.Stride()[0]}
		ov := blas64.Vector{N: m, Data: od.Data[olo:], Inc: outL.Stride()[0]}
		blas64.Gemv(blas.NoTrans, 1, gm, vv, 0, ov)
		return nil
	}
	if md, ok := any(mat).(storage.Storage[float32]); ok {
		vd := any(vec).(storage.Storage[float32])
		od := any(out).(storage.Storage[float32])
		mdata, mstride := asRowMajorF32(matL, md.Data)
		vlo, _ := vecL.BoundsIndex()
		olo, _ := outL.BoundsIndex()
		gm := blas32.General{Rows: m, Cols: n, Stride: mstride, Data: mdata}
		vv := blas32.Vector{N: n, Data: vd.Data[vlo:], Inc: vecL.Stride()[0]}
		ov := blas32.Vector{N: m, Data: od.Data[olo:], Inc: outL.Stride()[0]}
		blas32.Gemv(blas.NoTrans, 1, gm, vv, 0, ov)
		return nil
	}

	mIdx, vIdx, oIdx := make([]int, 2), make([]int, 1), make([]int, 1)
	for i := 0; i < m; i++ {
		mIdx[0] = i
		oIdx[0] = i
		var acc T
		for j := 0; j < n; j++ {
			mIdx[1] = j
			vIdx[0] = j
			acc += mat.Data[matL.Pos(mIdx)] * vec.Data[vecL.Pos(vIdx)]
		}
		out.Data[outL.Pos(oIdx)] = acc
	}
	return nil
}

// Syrk computes out = a @ a^T for a (m,k) — the shortcut taken when matmul
// analysis detects a self-product. The BLAS Syrk call computes only the
// upper triangle of the symmetric (m,m) result, avoiding a full Gemm's
// redundant lower-triangle work; mirrorUpperToLower then copies it into the
// lower triangle, so out holds the full matrix. Real floats only, matching
// blas64/blas32's Syrk coverage.
func Syrk[T storage.RealFloat](out storage.Storage[T], outL layout.Layout, a storage.Storage[T], aL layout.Layout) error {
	if aL.Rank() != 2 || outL.Rank() != 2 {
		return errs.New(errs.InvalidLayout, "syrk requires rank-2 operands")
	}
	m, k := aL.Dim(0), aL.Dim(1)
	if outL.Dim(0) != m || outL.Dim(1) != m {
		return errs.New(errs.InvalidLayout, "syrk output shape (%d,%d) does not match (%d,%d)", outL.Dim(0), outL.Dim(1), m, m)
	}

	if ad, ok := any(a).(storage.Storage[float64]); ok {
		od := any(out).(storage.Storage[float64])
		adata, astride := asRowMajorF64(aL, ad.Data)
		olo, _ := outL.BoundsIndex()
		ga := blas64.General{Rows: m, Cols: k, Stride: astride, Data: adata}
		gc := blas64.Symmetric{N: m, Stride: m, Data: od.Data[olo:], Uplo: blas.Upper}
		blas64.Syrk(blas.NoTrans, 1, ga, 0, gc)
		mirrorUpperToLower(od.Data[olo:], m)
		return nil
	}
	ad := any(a).(storage.Storage[float32])
	od := any(out).(storage.Storage[float32])
	adata, astride := asRowMajorF32(aL, ad.Data)
	olo, _ := outL.BoundsIndex()
	ga := blas32.General{Rows: m, Cols: k, Stride: astride, Data: adata}
	gc := blas32.Symmetric{N: m, Stride: m, Data: od.Data[olo:], Uplo: blas.Upper}
	blas32.Syrk(blas.NoTrans, 1, ga, 0, gc)
	mirrorUpperToLower(od.Data[olo:], m)
	return nil
}

// mirrorUpperToLower fills in the lower triangle of an (m,m) row-major
// buffer from the upper triangle Syrk wrote, so the result reads as a
// complete dense symmetric matrix rather than a half-populated one.
func mirrorUpperToLower[T storage.RealFloat](data []T, m int) {
	for i := 0; i < m; i++ {
		for j := 0; j < i; j++ {
			data[i*m+j] = data[j*m+i]
		}
	}
}
