package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowMajorColMajorStrides(t *testing.T) {
	assert.Equal(t, []int{6, 2, 1}, RowMajorStrides([]int{2, 3, 2}))
	assert.Equal(t, []int{1, 2, 6}, ColMajorStrides([]int{2, 3, 2}))
}

func TestReverseAxesInvolution(t *testing.T) {
	l := RowMajor([]int{2, 3, 4})
	rr := l.ReverseAxes().ReverseAxes()
	assert.True(t, l.Equal(rr))
}

func TestSizeIsProductOfExtents(t *testing.T) {
	l := RowMajor([]int{2, 3, 4})
	assert.Equal(t, 24, l.Size())
}

func TestContiguousBoundsExactlyOnce(t *testing.T) {
	l := RowMajor([]int{2, 3})
	lo, hi := l.BoundsIndex()
	assert.Equal(t, 0, lo)
	assert.Equal(t, 6, hi)
}

func TestBroadcastToSucceedsIffTrailingExtentsMatchOrOne(t *testing.T) {
	l := RowMajor([]int{3})
	out, err := l.BroadcastTo([]int{2, 3})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, out.Shape())
	assert.Equal(t, []int{0, 1}, out.Stride())

	_, err = l.BroadcastTo([]int{2, 4})
	require.Error(t, err)
}

func TestTransposeOfS1Example(t *testing.T) {
	// S1: a 2x3 row-major tensor transposed to 3x2.
	l := RowMajor([]int{2, 3})
	tp, err := l.Transpose([]int{1, 0})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, tp.Shape())
	assert.Equal(t, []int{1, 3}, tp.Stride())
}

func TestTransposeRejectsNonPermutation(t *testing.T) {
	l := RowMajor([]int{2, 3, 4})
	_, err := l.Transpose([]int{0, 0, 2})
	require.Error(t, err)
	_, err = l.Transpose([]int{0, 1})
	require.Error(t, err)
}

func TestSliceS4NegativeStep(t *testing.T) {
	// S4: arange(10)[::-2] -> [9,7,5,3,1]
	l := RowMajor([]int{10})
	sl, err := l.Slice(0, S(nil, nil, IntP(-2)))
	require.NoError(t, err)
	require.Equal(t, 5, sl.Size())
	var got []int
	for i := 0; i < sl.Size(); i++ {
		got = append(got, sl.Pos([]int{i}))
	}
	assert.Equal(t, []int{9, 7, 5, 3, 1}, got)
}

func TestSliceComposesWithSingleEquivalentSlice(t *testing.T) {
	l := RowMajor([]int{20})
	a, err := l.Slice(0, S(IntP(2), IntP(18), IntP(3)))
	require.NoError(t, err)
	b, err := a.Slice(0, S(IntP(1), IntP(4), IntP(2)))
	require.NoError(t, err)

	var got []int
	for i := 0; i < b.Size(); i++ {
		got = append(got, b.Pos([]int{i}))
	}

	// Equivalent single-slice positions, computed by hand from the NumPy
	// semantics of [2:18:3][1:4:2].
	var want []int
	first := []int{}
	for v := 2; v < 18; v += 3 {
		first = append(first, v)
	}
	for i := 1; i < 4 && i < len(first); i += 2 {
		want = append(want, first[i])
	}
	assert.Equal(t, want, got)
}

func TestReshapeAssumeContigRejectsNonContiguous(t *testing.T) {
	l := RowMajor([]int{2, 3})
	// Every other column of a (2,4) row-major layout: shape (2,2), stride
	// (4,2), neither C- nor F-contiguous. (A plain transpose would not do
	// here: the transpose of a C-contiguous layout is F-contiguous.)
	strided, err := RowMajor([]int{2, 4}).Slice(1, S(nil, nil, IntP(2)))
	require.NoError(t, err)
	_, err = strided.ReshapeAssumeContig([]int{4})
	require.Error(t, err)

	_, err = l.ReshapeAssumeContig([]int{6})
	require.NoError(t, err)
	_, err = l.ReshapeAssumeContig([]int{4})
	require.Error(t, err)
}

func TestIsMemNonStridedForPermutedContiguous(t *testing.T) {
	l := RowMajor([]int{2, 3})
	tp, _ := l.Transpose([]int{1, 0})
	assert.True(t, tp.IsMemNonStrided())
	assert.False(t, tp.IsCContiguous())
}

func TestIsMemNonStridedRejectsNegativeStride(t *testing.T) {
	// arange(6)[::-1]: shape (6,), stride -1, offset 5. Its reachable slab
	// is [0,5], not [offset, offset+size) = [5,11), so it must not be
	// reported memory-non-strided.
	l := Unchecked([]int{6}, []int{-1}, 5)
	assert.False(t, l.IsMemNonStrided())
}

func TestExpandDimsAndSqueezeInvert(t *testing.T) {
	l := RowMajor([]int{2, 3})
	e, err := l.ExpandDims(1)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 3}, e.Shape())
	s, err := e.Squeeze(1)
	require.NoError(t, err)
	assert.True(t, l.Equal(s))
}
