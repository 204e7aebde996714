package device_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vynegra/tensorcore/device"
	"github.com/vynegra/tensorcore/layout"
)

func TestSerialThreadPoolAgreeOnAdd(t *testing.T) {
	serial := device.NewSerial()
	pool, err := device.NewThreadPool(device.Config{Threads: 4})
	require.NoError(t, err)

	shape := []int{4, 37}
	l := layout.RowMajor(shape)

	aData := make([]float64, l.Size())
	bData := make([]float64, l.Size())
	for i := range aData {
		aData[i] = float64(i) * 1.5
		bData[i] = float64(i) - 3.0
	}

	aSerial := device.FromHostVec[float64](serial, aData)
	bSerial := device.FromHostVec[float64](serial, bData)
	dstSerial := device.Zeros[float64](serial, l.Size())
	require.NoError(t, device.Add(serial, dstSerial, l, aSerial, l, bSerial, l))

	aPool := device.FromHostVec[float64](pool, aData)
	bPool := device.FromHostVec[float64](pool, bData)
	dstPool := device.Zeros[float64](pool, l.Size())
	require.NoError(t, device.Add(pool, dstPool, l, aPool, l, bPool, l))

	assert.Equal(t, dstSerial.Data, dstPool.Data, "serial and threadpool backends must produce bit-identical output")
}

func TestSumMatchesAcrossBackends(t *testing.T) {
	serial := device.NewSerial()
	pool, err := device.NewThreadPool(device.Config{Threads: 3})
	require.NoError(t, err)

	l := layout.RowMajor([]int{100})
	data := make([]int, l.Size())
	for i := range data {
		data[i] = i
	}

	sSerial, err := device.Sum(serial, device.FromHostVec[int](serial, data), l)
	require.NoError(t, err)
	sPool, err := device.Sum(pool, device.FromHostVec[int](pool, data), l)
	require.NoError(t, err)

	assert.Equal(t, sSerial, sPool)
	assert.Equal(t, 4950, sSerial)
}

func TestFillSetsEveryPosition(t *testing.T) {
	d := device.NewSerial()
	l := layout.RowMajor([]int{3, 3})
	s := device.Zeros[float32](d, l.Size())
	require.NoError(t, device.Fill(d, s, l, float32(7)))
	for _, v := range s.Data {
		assert.Equal(t, float32(7), v)
	}
}

func TestThreadPoolRejectsOutOfRangeThreadCount(t *testing.T) {
	_, err := device.NewThreadPool(device.Config{Threads: -1})
	assert.Error(t, err)
}

func TestSumAxisDropsReducedAxis(t *testing.T) {
	d := device.NewSerial()
	l := layout.RowMajor([]int{2, 3})
	data := []int{1, 2, 3, 4, 5, 6}
	s := device.FromHostVec[int](d, data)

	out, outL, err := device.SumAxis[int](d, s, l, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, outL.Rank())
	assert.Equal(t, []int{6, 15}, out.Data)
}
