package findops

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/alekLukanen/ndarrow/elements"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/decimal128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortedAbove() AboveOptions {
	opts := NewAboveOptions()
	opts.Sorted = true
	return opts
}

func TestFirstAbove(t *testing.T) {
	mem := checkedAllocator(t)

	testCases := []struct {
		caseName string
		values   []float64
		kind     elements.Kind
		query    elements.Scalar
		expected int
	}{
		{caseName: "ints", values: []float64{3, 1, 4, 1, 5}, kind: elements.KindInt64, query: elements.Int(4), expected: 4},
		{caseName: "none above", values: []float64{1, 2, 3}, kind: elements.KindInt64, query: elements.Int(7), expected: -1},
		{caseName: "floats", values: []float64{1.1, 1.2, 1.3}, kind: elements.KindFloat64, query: elements.Float64(1.2), expected: 2},
		{caseName: "example", values: []float64{4, 5, 8, 2, 7}, kind: elements.KindInt64, query: elements.Int(6), expected: 2},
		{caseName: "nine", values: []float64{5, 6, 7}, kind: elements.KindInt64, query: elements.Int(9), expected: -1},
		{caseName: "int array float query", values: []float64{1, 3, 4, 7, 9}, kind: elements.KindInt32, query: elements.Float64(4.5), expected: 3},
		{caseName: "negative fraction", values: []float64{-3, -2, -1}, kind: elements.KindInt8, query: elements.Float64(-2.5), expected: 1},
		{caseName: "float16", values: []float64{0, 1, 2, 3, 4, 5}, kind: elements.KindFloat16, query: elements.Float64(3), expected: 4},
		{caseName: "huge float on ints", values: []float64{1, 2}, kind: elements.KindInt64, query: elements.Float64(1e300), expected: -1},
		{caseName: "tiny float on ints", values: []float64{1, 2}, kind: elements.KindInt64, query: elements.Float64(-1e300), expected: 0},
		{caseName: "negative inf on uints", values: []float64{1, 2}, kind: elements.KindUint32, query: elements.Float64(math.Inf(-1)), expected: 0},
		{caseName: "inf on floats", values: []float64{1, math.Inf(1)}, kind: elements.KindFloat64, query: elements.Float64(math.Inf(1)), expected: -1},
		{caseName: "nan query", values: []float64{1, 2}, kind: elements.KindFloat64, query: elements.Float64(math.NaN()), expected: -1},
		{caseName: "nan elements", values: []float64{math.NaN(), 2}, kind: elements.KindFloat64, query: elements.Float64(1), expected: 1},
	}

	for _, testCase := range testCases {
		t.Run(testCase.caseName, func(t *testing.T) {
			arr := numeric(t, mem, testCase.kind, testCase.values)
			defer arr.Release()

			loc, err := FirstAbove(arr, testCase.query, NewAboveOptions())
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, loc.Index)
		})
	}
}

func TestFirstAboveSorted(t *testing.T) {
	mem := checkedAllocator(t)

	for _, kind := range []elements.Kind{elements.KindInt64, elements.KindFloat64, elements.KindUint8, elements.KindFloat32} {
		arr := numeric(t, mem, kind, []float64{1, 2, 3, 3, 3, 4})
		for q, expected := range map[float64]int{0: 0, 1: 1, 2: 2, 3: 5, 4: -1, 5: -1} {
			for _, queryKind := range []elements.Kind{elements.KindInt64, elements.KindFloat64} {
				for _, opts := range []AboveOptions{NewAboveOptions(), sortedAbove()} {
					loc, err := FirstAbove(arr, scalarOf(queryKind, q), opts)
					require.NoError(t, err)
					assert.Equal(t, expected, loc.Index, "%s array, %s query %v, sorted=%v", kind, queryKind, q, opts.Sorted)
				}
			}
		}
		arr.Release()
	}

	withNaN := numeric(t, mem, elements.KindFloat64, []float64{1, 2, math.NaN()})
	defer withNaN.Release()
	loc, err := FirstAbove(withNaN, elements.Float64(5), sortedAbove())
	require.NoError(t, err)
	assert.False(t, loc.Found)
}

func TestFirstAboveAcrossNumericKinds(t *testing.T) {
	mem := checkedAllocator(t)

	for _, arrayKind := range intsAndFloats {
		for _, queryKind := range intsAndFloats {
			t.Run(fmt.Sprintf("%s_%s", arrayKind, queryKind), func(t *testing.T) {
				arr := numeric(t, mem, arrayKind, []float64{0, 1, 2, 3})
				defer arr.Release()

				loc, err := FirstAbove(arr, scalarOf(queryKind, 1), sortedAbove())
				require.NoError(t, err)
				assert.Equal(t, 2, loc.Index)
			})
		}
	}
}

func TestFirstAboveMixedSignedness(t *testing.T) {
	mem := checkedAllocator(t)

	for _, arrayKind := range signedKinds {
		for _, queryKind := range unsignedKinds {
			arr := numeric(t, mem, arrayKind, []float64{-1, 1, 2})
			loc, err := FirstAbove(arr, scalarOf(queryKind, 1), NewAboveOptions())
			require.NoError(t, err)
			assert.Equal(t, 2, loc.Index, "%s %s", arrayKind, queryKind)
			arr.Release()
		}
	}

	for _, arrayKind := range unsignedKinds {
		for _, queryKind := range signedKinds {
			arr := numeric(t, mem, arrayKind, []float64{2, 3, 5})
			loc, err := FirstAbove(arr, scalarOf(queryKind, -1), NewAboveOptions())
			require.NoError(t, err)
			assert.Equal(t, 0, loc.Index, "%s %s", arrayKind, queryKind)
			arr.Release()
		}
	}

	big, err := elements.FromSlice(mem, []uint64{1, math.MaxUint64})
	require.NoError(t, err)
	defer big.Release()
	loc, err := FirstAbove(big, elements.Int64(math.MaxInt64), NewAboveOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, loc.Index)

	signed, err := elements.FromSlice(mem, []int64{math.MinInt64, math.MaxInt64})
	require.NoError(t, err)
	defer signed.Release()
	loc, err = FirstAbove(signed, elements.Uint64(math.MaxUint64), NewAboveOptions())
	require.NoError(t, err)
	assert.False(t, loc.Found)
}

func TestFirstAboveOtherKinds(t *testing.T) {
	mem := checkedAllocator(t)

	strs, err := elements.FromSlice(mem, []string{"a", "bb", "ccc"})
	require.NoError(t, err)
	defer strs.Release()
	loc, err := FirstAbove(strs, elements.String("bb"), NewAboveOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, loc.Index)

	day := func(d int) arrow.Timestamp {
		return arrow.Timestamp(time.Date(2023, 1, d, 0, 0, 0, 0, time.UTC).Unix())
	}
	days, err := elements.FromTimestamps(mem, []arrow.Timestamp{day(20), day(21), day(22)}, arrow.Second, nil)
	require.NoError(t, err)
	defer days.Release()
	loc, err = FirstAbove(days, elements.Time(time.Date(2023, 1, 21, 0, 0, 0, 0, time.UTC)), NewAboveOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, loc.Index)
	loc, err = FirstAbove(days, elements.Time(time.Date(2023, 1, 20, 23, 59, 59, 999, time.UTC)), sortedAbove())
	require.NoError(t, err)
	assert.Equal(t, 1, loc.Index)
	loc, err = FirstAbove(days, elements.NaT(), NewAboveOptions())
	require.NoError(t, err)
	assert.False(t, loc.Found)

	decs, err := elements.FromDecimals(mem, []decimal128.Num{
		decimal128.FromI64(1), decimal128.FromI64(2), decimal128.FromI64(3),
	}, 5, 0, nil)
	require.NoError(t, err)
	defer decs.Release()
	for _, opts := range []AboveOptions{NewAboveOptions(), sortedAbove()} {
		loc, err = FirstAbove(decs, elements.Decimal(decimal128.FromI64(2), 0), opts)
		require.NoError(t, err)
		assert.Equal(t, 2, loc.Index)

		loc, err = FirstAbove(decs, elements.Float64(1.5), opts)
		require.NoError(t, err)
		assert.Equal(t, 1, loc.Index)
	}

	objs := elements.NewObjectArray([]any{1, "x", 2.5, 4})
	loc, err = FirstAbove(objs, elements.Int(2), NewAboveOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, loc.Index)
}

func TestFirstAboveErrors(t *testing.T) {
	mem := checkedAllocator(t)

	complexes := numeric(t, mem, elements.KindComplex128, []float64{1})
	defer complexes.Release()
	ints := numeric(t, mem, elements.KindInt64, []float64{1, 2, 3})
	defer ints.Release()
	bools := numeric(t, mem, elements.KindBool, []float64{1})
	defer bools.Release()
	grid := numeric(t, mem, elements.KindInt64, []float64{1, 2, 3, 4}, 2, 2)
	defer grid.Release()
	strs, err := elements.FromSlice(mem, []string{"a"})
	require.NoError(t, err)
	defer strs.Release()

	raises := NewAboveOptions()
	raises.Raises = true

	testCases := []struct {
		caseName    string
		arr         *elements.Array
		query       elements.Scalar
		options     AboveOptions
		expectedErr error
	}{
		{caseName: "complex array", arr: complexes, query: elements.Int(2), options: NewAboveOptions(), expectedErr: elements.ErrUnsupportedType},
		{caseName: "complex query", arr: ints, query: elements.Complex128(2i), options: NewAboveOptions(), expectedErr: elements.ErrUnsupportedType},
		{caseName: "bool array", arr: bools, query: elements.Int(2), options: NewAboveOptions(), expectedErr: elements.ErrUnsupportedType},
		{caseName: "bool query", arr: ints, query: elements.Bool(true), options: NewAboveOptions(), expectedErr: elements.ErrUnsupportedType},
		{caseName: "2-D", arr: grid, query: elements.Int(5), options: NewAboveOptions(), expectedErr: elements.ErrInvalidDimension},
		{caseName: "raises", arr: ints, query: elements.Int(7), options: raises, expectedErr: elements.ErrNotFound},
		{caseName: "string query on ints", arr: ints, query: elements.String("a"), options: NewAboveOptions(), expectedErr: elements.ErrIncompatibleTypes},
		{caseName: "int query on strings", arr: strs, query: elements.Int(1), options: NewAboveOptions(), expectedErr: elements.ErrIncompatibleTypes},
	}
	for _, testCase := range testCases {
		t.Run(testCase.caseName, func(t *testing.T) {
			_, err := FirstAbove(testCase.arr, testCase.query, testCase.options)
			if !errors.Is(err, testCase.expectedErr) {
				t.Errorf("expected error %v, received %v", testCase.expectedErr, err)
			}
		})
	}
}
