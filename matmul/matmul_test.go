package matmul_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vynegra/tensorcore/device"
	"github.com/vynegra/tensorcore/matmul"
	"github.com/vynegra/tensorcore/tensor"
)

func TestDotProduct(t *testing.T) {
	d := device.NewSerial()
	a := tensor.FromHostVec[float64](d, []int{3}, []float64{1, 2, 3})
	b := tensor.FromHostVec[float64](d, []int{3}, []float64{4, 5, 6})

	out, err := matmul.MatMul(d, a, b)
	require.NoError(t, err)
	data, l := out.View()
	assert.Equal(t, 0, l.Rank())
	assert.Equal(t, float64(32), data.Data[l.Pos(nil)])
}

func TestGemv(t *testing.T) {
	d := device.NewSerial()
	m := tensor.FromHostVec[float64](d, []int{2, 3}, []float64{1, 2, 3, 4, 5, 6})
	v := tensor.FromHostVec[float64](d, []int{3}, []float64{1, 1, 1})

	out, err := matmul.MatMul(d, m, v)
	require.NoError(t, err)
	data, _ := out.View()
	assert.Equal(t, []float64{6, 15}, data.Data)
}

func TestGemm(t *testing.T) {
	d := device.NewSerial()
	a := tensor.FromHostVec[float64](d, []int{2, 2}, []float64{1, 2, 3, 4})
	b := tensor.FromHostVec[float64](d, []int{2, 2}, []float64{5, 6, 7, 8})

	out, err := matmul.MatMul(d, a, b)
	require.NoError(t, err)
	data, l := out.View()
	assert.Equal(t, []int{2, 2}, l.Shape())
	assert.Equal(t, []float64{19, 22, 43, 50}, data.Data)
}

func TestBatchedGemm(t *testing.T) {
	d := device.NewSerial()
	a := tensor.FromHostVec[float64](d, []int{2, 2, 2}, []float64{
		1, 2, 3, 4,
		1, 0, 0, 1,
	})
	b := tensor.FromHostVec[float64](d, []int{2, 2, 2}, []float64{
		1, 0, 0, 1,
		5, 6, 7, 8,
	})

	out, err := matmul.MatMul(d, a, b)
	require.NoError(t, err)
	data, l := out.View()
	assert.Equal(t, []int{2, 2, 2}, l.Shape())
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8}, data.Data)
}

func TestGemmInnerDimMismatchErrors(t *testing.T) {
	d := device.NewSerial()
	a := tensor.FromHostVec[float64](d, []int{2, 3}, []float64{1, 2, 3, 4, 5, 6})
	b := tensor.FromHostVec[float64](d, []int{2, 2}, []float64{1, 2, 3, 4})
	_, err := matmul.MatMul(d, a, b)
	assert.Error(t, err)
}
