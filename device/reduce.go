package device

import (
	"github.com/vynegra/tensorcore/errs"
	"github.com/vynegra/tensorcore/iterator"
	"github.com/vynegra/tensorcore/layout"
	"github.com/vynegra/tensorcore/storage"
)

// Sum fully reduces src to a single scalar. On a ThreadPool device each
// chunk accumulates its own partial sum (written to a private slot, so no
// synchronization is needed across chunks) and the partials are combined
// serially afterward — grounded on the teacher's mps.Sum reduction, which
// likewise computes per-chunk partials before a final combine.
func Sum[T storage.Numeric](d storage.Device, src storage.Storage[T], srcL layout.Layout) (T, error) {
	var zero T
	if err := CheckBounds(srcL, len(src.Data)); err != nil {
		return zero, err
	}
	order := iterator.Select(srcL)
	total := srcL.Size()
	if total == 0 {
		return zero, nil
	}

	slots := d.Threads()
	if slots < 1 {
		slots = 1
	}
	partials := make([]T, slots)

	err := Parallelize(d, total, func(start, end, chunkIdx int) error {
		it, err := rangeIterator(srcL, order, start, end)
		if err != nil {
			return err
		}
		var local T
		for {
			p, ok := it.Next()
			if !ok {
				break
			}
			local += src.Data[p]
		}
		partials[chunkIdx] = local
		return nil
	})
	if err != nil {
		return zero, err
	}

	var sum T
	for _, p := range partials {
		sum += p
	}
	return sum, nil
}

// SumAxis reduces src along the given axes, dropping each from the result
// shape (no keepdims). Accumulation across input positions that map to the
// same output position makes a chunked-parallel version unsafe without
// per-chunk output buffers and a merge pass, so this walks the whole input
// on the calling goroutine regardless of d's thread count — simpler and, at
// the reduced output's typically small size, not the bottleneck a full
// elementwise pass over src would be.
func SumAxis[T storage.Numeric](d storage.Device, src storage.Storage[T], srcL layout.Layout, axes ...int) (storage.Storage[T], layout.Layout, error) {
	if err := CheckBounds(srcL, len(src.Data)); err != nil {
		return storage.Storage[T]{}, layout.Layout{}, err
	}
	rank := srcL.Rank()
	reduce := make([]bool, rank)
	for _, a := range axes {
		if a < 0 || a >= rank {
			return storage.Storage[T]{}, layout.Layout{}, errs.New(errs.InvalidLayout, "sum_axis: axis %d out of range for rank %d", a, rank)
		}
		reduce[a] = true
	}

	shape := srcL.Shape()
	outAxisOf := make([]int, rank)
	outDims := make([]int, 0, rank)
	for i := 0; i < rank; i++ {
		if reduce[i] {
			outAxisOf[i] = -1
			continue
		}
		outAxisOf[i] = len(outDims)
		outDims = append(outDims, shape[i])
	}

	outLayout := layout.RowMajor(outDims)
	outData := make([]T, outLayout.Size())
	out := storage.New(outData, d)

	total := srcL.Size()
	idx := make([]int, rank)
	outIdx := make([]int, len(outDims))
	for lin := 0; lin < total; lin++ {
		rem := lin
		for k := rank - 1; k >= 0; k-- {
			if shape[k] == 0 {
				idx[k] = 0
				continue
			}
			idx[k] = rem % shape[k]
			rem /= shape[k]
		}
		srcPos := srcL.Pos(idx)
		for k := 0; k < rank; k++ {
			if outAxisOf[k] >= 0 {
				outIdx[outAxisOf[k]] = idx[k]
			}
		}
		outPos := outLayout.Pos(outIdx)
		out.Data[outPos] += src.Data[srcPos]
	}

	return out, outLayout, nil
}
