package iterator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vynegra/tensorcore/layout"
)

func drain(it PosIterator) []int {
	var out []int
	for {
		pos, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, pos)
	}
	return out
}

func TestRowMajorVisitsEveryPositionOnceForContiguous(t *testing.T) {
	l := layout.RowMajor([]int{2, 3})
	it := NewRowMajor(l)
	got := drain(it)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5}, got)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, got)
}

func TestColMajorOrderForContiguousRowMajorLayout(t *testing.T) {
	// shape (2,3) row-major: strides [3,1]. Column-major traversal visits
	// axis 0 fastest: (0,0),(1,0),(0,1),(1,1),(0,2),(1,2) -> positions
	// 0,3,1,4,2,5.
	l := layout.RowMajor([]int{2, 3})
	it := NewColMajor(l)
	got := drain(it)
	assert.Equal(t, []int{0, 3, 1, 4, 2, 5}, got)
}

func TestDoubleEndedEndsNeverCross(t *testing.T) {
	l := layout.RowMajor([]int{2, 3})
	it := NewRowMajor(l)
	var front, back []int
	for i := 0; i < 3; i++ {
		p, ok := it.Next()
		require.True(t, ok)
		front = append(front, p)
	}
	for i := 0; i < 3; i++ {
		p, ok := it.NextBack()
		require.True(t, ok)
		back = append(back, p)
	}
	_, ok := it.Next()
	assert.False(t, ok)
	_, ok = it.NextBack()
	assert.False(t, ok)
	assert.Equal(t, []int{0, 1, 2}, front)
	assert.Equal(t, []int{5, 4, 3}, back)
}

func TestCloneIsIndependent(t *testing.T) {
	l := layout.RowMajor([]int{5})
	it := NewRowMajor(l)
	it.Next()
	it.Next()
	clone := it.Clone()
	it.Next()
	p, _ := clone.Next()
	assert.Equal(t, 2, p)
}

func TestSplitAtCoversEveryPositionOnceForContiguous(t *testing.T) {
	l := layout.RowMajor([]int{10})
	it := NewRowMajor(l)
	left, right := it.SplitAt(4)
	assert.Equal(t, []int{0, 1, 2, 3}, drain(left))
	assert.Equal(t, []int{4, 5, 6, 7, 8, 9}, drain(right))
}

func TestMemNonStridedRejectsNegativeStrideLayout(t *testing.T) {
	l := layout.Unchecked([]int{6}, []int{-1}, 5)
	_, err := NewMemNonStrided(l)
	require.Error(t, err)
}

func TestMemNonStridedOnTransposeYieldsRawOffsetsNotLogicalOrder(t *testing.T) {
	// A transpose of a C-contiguous layout is still memory-non-strided (its
	// positions form the unbroken slab [0,6)), but MemNonStridedIter walks
	// raw offsets, not the transpose's logical index order: it is only
	// correct to use when every operand agrees on the SAME sense (see
	// Select), never for a bare permuted-contiguous view on its own.
	l := layout.RowMajor([]int{2, 3})
	tp, err := l.Transpose([]int{1, 0})
	require.NoError(t, err)
	it, err := NewMemNonStrided(tp)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, drain(it))
}

func TestMemNonStridedYieldsContiguousRange(t *testing.T) {
	l := layout.RowMajor([]int{4})
	it, err := NewMemNonStrided(l)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, drain(it))
}

func TestSelectPicksMemNonStridedWhenAllAgree(t *testing.T) {
	a := layout.RowMajor([]int{2, 3})
	b := layout.RowMajor([]int{2, 3})
	assert.Equal(t, MemNonStridedOrder, Select(a, b))
}

func TestSelectFallsBackToRowMajorOnMixedOrder(t *testing.T) {
	a := layout.RowMajor([]int{2, 3})
	b := layout.ColMajor([]int{2, 3})
	assert.Equal(t, RowMajorOrder, Select(a, b))
}

func TestSelectRejectsMemNonStridedWhenOperandsDisagreeInSense(t *testing.T) {
	// tp is the transpose of a C-contiguous 2x3 layout: shape (3,2), stride
	// (1,3). out is a plain C-contiguous (3,2) layout: stride (2,1). Both
	// are individually memory-non-strided, but NOT packed in the same
	// sense: pairing them up by raw offset (as MemNonStridedOrder does)
	// does not pair them up by logical index. Select must fall back to an
	// odometer-based order here, never MemNonStrided.
	a := layout.RowMajor([]int{2, 3})
	tp, err := a.Transpose([]int{1, 0})
	require.NoError(t, err)
	out := layout.RowMajor([]int{3, 2})
	got := Select(tp, out)
	assert.NotEqual(t, MemNonStridedOrder, got)
}
