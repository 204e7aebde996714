package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vynegra/tensorcore/device"
	"github.com/vynegra/tensorcore/tensor"
)

func TestCoWMaterializesOnFirstMutation(t *testing.T) {
	d := device.NewSerial()
	base := tensor.FromHostVec[float64](d, []int{4}, []float64{1, 2, 3, 4})

	cow := base.IntoCoW()
	s, l, err := cow.ViewMut()
	require.NoError(t, err)
	s.Data[l.Pos([]int{0})] = 99

	baseData, baseL := base.View()
	assert.Equal(t, float64(1), baseData.Data[baseL.Pos([]int{0})], "mutating the CoW copy must not affect the original")
}

func TestSharedBorrowRejectsMutation(t *testing.T) {
	d := device.NewSerial()
	base := tensor.FromHostVec[float64](d, []int{3}, []float64{1, 2, 3})
	borrowed := base.Borrow()

	_, _, err := borrowed.ViewMut()
	assert.Error(t, err)
}

func TestExclusiveBorrowAllowsMutation(t *testing.T) {
	d := device.NewSerial()
	base := tensor.FromHostVec[float64](d, []int{3}, []float64{1, 2, 3})
	borrowed := base.BorrowMut()

	s, l, err := borrowed.ViewMut()
	require.NoError(t, err)
	s.Data[l.Pos([]int{1})] = 42

	baseData, baseL := base.View()
	assert.Equal(t, float64(42), baseData.Data[baseL.Pos([]int{1})], "an exclusive borrow writes through to the original storage")
}

func TestIntoOwnedKeepLayoutDecouplesFromSource(t *testing.T) {
	d := device.NewSerial()
	base := tensor.FromHostVec[float64](d, []int{2}, []float64{5, 6})
	owned := base.IntoOwnedKeepLayout()

	s, l, err := owned.ViewMut()
	require.NoError(t, err)
	s.Data[l.Pos([]int{0})] = -1

	baseData, baseL := base.View()
	assert.Equal(t, float64(5), baseData.Data[baseL.Pos([]int{0})])
}

func TestZerosAndOnes(t *testing.T) {
	d := device.NewSerial()
	z := tensor.Zeros[int](d, []int{2, 2})
	zd, zl := z.View()
	assert.Equal(t, 4, zl.Size())
	for _, v := range zd.Data {
		assert.Equal(t, 0, v)
	}

	o := tensor.Ones[float32](d, []int{3})
	od, _ := o.View()
	for _, v := range od.Data {
		assert.Equal(t, float32(1), v)
	}
}
