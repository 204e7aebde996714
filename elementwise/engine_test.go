package elementwise_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vynegra/tensorcore/device"
	"github.com/vynegra/tensorcore/elementwise"
	"github.com/vynegra/tensorcore/tensor"
)

func TestAddBroadcastsRowVectorOverMatrix(t *testing.T) {
	d := device.NewSerial()
	a := tensor.FromHostVec[float64](d, []int{2, 3}, []float64{1, 2, 3, 4, 5, 6})
	b := tensor.FromHostVec[float64](d, []int{3}, []float64{10, 20, 30})

	out, err := elementwise.Add(d, a, b)
	require.NoError(t, err)
	data, l := out.View()
	assert.Equal(t, []int{2, 3}, l.Shape())
	assert.Equal(t, []float64{11, 22, 33, 14, 25, 36}, data.Data)
}

func TestAddScalar(t *testing.T) {
	d := device.NewSerial()
	a := tensor.FromHostVec[float64](d, []int{3}, []float64{1, 2, 3})
	out, err := elementwise.AddScalar(d, a, 10.0)
	require.NoError(t, err)
	data, _ := out.View()
	assert.Equal(t, []float64{11, 12, 13}, data.Data)
}

func TestAddIncompatibleShapesErrors(t *testing.T) {
	d := device.NewSerial()
	a := tensor.FromHostVec[float64](d, []int{2, 3}, []float64{1, 2, 3, 4, 5, 6})
	b := tensor.FromHostVec[float64](d, []int{4}, []float64{1, 2, 3, 4})
	_, err := elementwise.Add(d, a, b)
	assert.Error(t, err)
}

func TestNeg(t *testing.T) {
	d := device.NewSerial()
	a := tensor.FromHostVec[int](d, []int{3}, []int{1, -2, 3})
	out, err := elementwise.Neg(d, a)
	require.NoError(t, err)
	data, _ := out.View()
	assert.Equal(t, []int{-1, 2, -3}, data.Data)
}

func TestWhere(t *testing.T) {
	d := device.NewSerial()
	cond := tensor.FromHostVec[int](d, []int{4}, []int{1, 0, 1, 0})
	whenTrue := tensor.FromHostVec[int](d, []int{4}, []int{10, 20, 30, 40})
	whenFalse := tensor.FromHostVec[int](d, []int{4}, []int{-1, -2, -3, -4})

	out, err := elementwise.Where(d, cond, whenTrue, whenFalse)
	require.NoError(t, err)
	data, _ := out.View()
	assert.Equal(t, []int{10, -2, 30, -4}, data.Data)
}

func TestNegOverTransposedViewUsesLogicalOrderNotRawOffset(t *testing.T) {
	d := device.NewSerial()
	a := tensor.FromHostVec[int](d, []int{2, 3}, []int{1, 2, 3, 4, 5, 6})
	tL, err := a.Layout().Transpose([]int{1, 0})
	require.NoError(t, err)
	at := a.WithLayout(tL)

	out, err := elementwise.Neg(d, at)
	require.NoError(t, err)
	data, l := out.View()
	assert.Equal(t, []int{3, 2}, l.Shape())
	// Logical order of the transpose is (1,4,2,5,3,6); a buggy dispatch
	// that walks a and the output by raw storage offset instead would
	// instead produce -(1,2,3,4,5,6).
	assert.Equal(t, []int{-1, -4, -2, -5, -3, -6}, data.Data)
}

func TestAddOverTransposedViewUsesLogicalOrderNotRawOffset(t *testing.T) {
	d := device.NewSerial()
	a := tensor.FromHostVec[float64](d, []int{2, 3}, []float64{1, 2, 3, 4, 5, 6})
	tL, err := a.Layout().Transpose([]int{1, 0})
	require.NoError(t, err)
	at := a.WithLayout(tL)
	zeros := tensor.Zeros[float64](d, []int{3, 2})

	out, err := elementwise.Add(d, at, zeros)
	require.NoError(t, err)
	data, l := out.View()
	assert.Equal(t, []int{3, 2}, l.Shape())
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, data.Data)
}

func TestSqrtFloat32(t *testing.T) {
	d := device.NewSerial()
	a := tensor.FromHostVec[float32](d, []int{2}, []float32{4, 9})
	out, err := elementwise.Sqrt(d, a)
	require.NoError(t, err)
	data, _ := out.View()
	assert.InDelta(t, 2.0, data.Data[0], 1e-6)
	assert.InDelta(t, 3.0, data.Data[1], 1e-6)
}
