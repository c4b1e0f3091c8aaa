package shapeops

import (
	"errors"
	"testing"

	"github.com/alekLukanen/ndarrow/elements"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIRangeInt(t *testing.T) {
	mem := checkedAllocator(t)

	testCases := []struct {
		caseName          string
		start, stop, step int64
		halfOpen          bool
		expected          []int64
	}{
		{caseName: "ascending", start: 1, stop: 3, step: 1, expected: []int64{1, 2, 3}},
		{caseName: "descending", start: 3, stop: 1, step: -1, expected: []int64{3, 2, 1}},
		{caseName: "single", start: 5, stop: 5, step: 2, expected: []int64{5}},
		{caseName: "wrong direction", start: 3, stop: 1, step: 1, expected: []int64{}},
		{caseName: "half open", start: 0, stop: 10, step: 3, halfOpen: true, expected: []int64{0, 3, 6, 9}},
		{caseName: "half open descending", start: 10, stop: 0, step: -3, halfOpen: true, expected: []int64{10, 7, 4, 1}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.caseName, func(t *testing.T) {
			opts := NewRangeOptions()
			opts.HalfOpenFallback = testCase.halfOpen
			arr, err := IRangeInt(mem, testCase.start, testCase.stop, testCase.step, opts)
			require.NoError(t, err)
			defer arr.Release()

			assert.Equal(t, elements.KindInt64, arr.Kind())
			assert.Equal(t, testCase.expected, append([]int64{}, arr.Values().(*array.Int64).Int64Values()...))
		})
	}
}

func TestIRangeFloat(t *testing.T) {
	mem := checkedAllocator(t)

	arr, err := IRangeFloat(mem, 0, 1, 0.1, NewRangeOptions())
	require.NoError(t, err)
	defer arr.Release()
	assert.Equal(t, elements.KindFloat64, arr.Kind())
	values := arr.Values().(*array.Float64).Float64Values()
	require.Len(t, values, 11)
	for i, v := range values {
		assert.InDelta(t, float64(i)*0.1, v, 1e-12)
	}
	assert.Equal(t, 1.0, values[10])

	down, err := IRangeFloat(mem, 1, 0, -0.1, NewRangeOptions())
	require.NoError(t, err)
	defer down.Release()
	values = down.Values().(*array.Float64).Float64Values()
	require.Len(t, values, 11)
	assert.InDelta(t, 0.0, values[10], 1e-12)

	whole, err := IRangeFloat(mem, 1, 3, 1, NewRangeOptions())
	require.NoError(t, err)
	defer whole.Release()
	assert.Equal(t, []float64{1, 2, 3}, whole.Values().(*array.Float64).Float64Values())

	opts := NewRangeOptions()
	opts.HalfOpenFallback = true
	halfOpen, err := IRangeFloat(mem, 0, 1, 0.3, opts)
	require.NoError(t, err)
	defer halfOpen.Release()
	values = halfOpen.Values().(*array.Float64).Float64Values()
	require.Len(t, values, 4)
	assert.InDelta(t, 0.9, values[3], 1e-12)
}

func TestIRangeErrors(t *testing.T) {
	mem := checkedAllocator(t)

	_, err := IRangeFloat(mem, 0, 1, 0.3, NewRangeOptions())
	assert.True(t, errors.Is(err, elements.ErrStepNotDivisible))

	_, err = IRangeInt(mem, 0, 10, 3, NewRangeOptions())
	assert.True(t, errors.Is(err, elements.ErrStepNotDivisible))

	_, err = IRangeInt(mem, 0, 10, 0, NewRangeOptions())
	assert.True(t, errors.Is(err, elements.ErrInvalidArgument))

	_, err = IRangeFloat(mem, 0, 10, 0, NewRangeOptions())
	assert.True(t, errors.Is(err, elements.ErrInvalidArgument))
}

func TestIRangeFloatWrongDirection(t *testing.T) {
	mem := checkedAllocator(t)

	for _, stop := range []float64{-0.4, -3} {
		arr, err := IRangeFloat(mem, 0, stop, 1, NewRangeOptions())
		require.NoError(t, err)
		assert.Equal(t, 0, arr.Len())
		arr.Release()
	}
}
