package findops

import (
	"testing"

	"github.com/alekLukanen/ndarrow/elements"
	"github.com/apache/arrow/go/v17/arrow/float16"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/stretchr/testify/require"
)

var intsAndFloats = []elements.Kind{
	elements.KindInt8,
	elements.KindUint8,
	elements.KindInt16,
	elements.KindUint16,
	elements.KindInt32,
	elements.KindUint32,
	elements.KindInt64,
	elements.KindUint64,
	elements.KindFloat32,
	elements.KindFloat64,
}

var signedKinds = []elements.Kind{elements.KindInt8, elements.KindInt16, elements.KindInt32, elements.KindInt64}
var unsignedKinds = []elements.Kind{elements.KindUint8, elements.KindUint16, elements.KindUint32, elements.KindUint64}

func convert[T int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64](vals []float64) []T {
	out := make([]T, len(vals))
	for i, v := range vals {
		out[i] = T(v)
	}
	return out
}

// numeric builds an array of the given numeric kind from float64 values.
func numeric(t *testing.T, mem memory.Allocator, kind elements.Kind, vals []float64, shape ...int) *elements.Array {
	t.Helper()
	var (
		arr *elements.Array
		err error
	)
	switch kind {
	case elements.KindBool:
		bools := make([]bool, len(vals))
		for i, v := range vals {
			bools[i] = v != 0
		}
		arr, err = elements.FromSlice(mem, bools, shape...)
	case elements.KindInt8:
		arr, err = elements.FromSlice(mem, convert[int8](vals), shape...)
	case elements.KindInt16:
		arr, err = elements.FromSlice(mem, convert[int16](vals), shape...)
	case elements.KindInt32:
		arr, err = elements.FromSlice(mem, convert[int32](vals), shape...)
	case elements.KindInt64:
		arr, err = elements.FromSlice(mem, convert[int64](vals), shape...)
	case elements.KindUint8:
		arr, err = elements.FromSlice(mem, convert[uint8](vals), shape...)
	case elements.KindUint16:
		arr, err = elements.FromSlice(mem, convert[uint16](vals), shape...)
	case elements.KindUint32:
		arr, err = elements.FromSlice(mem, convert[uint32](vals), shape...)
	case elements.KindUint64:
		arr, err = elements.FromSlice(mem, convert[uint64](vals), shape...)
	case elements.KindFloat16:
		halves := make([]float16.Num, len(vals))
		for i, v := range vals {
			halves[i] = float16.New(float32(v))
		}
		arr, err = elements.FromSlice(mem, halves, shape...)
	case elements.KindFloat32:
		arr, err = elements.FromSlice(mem, convert[float32](vals), shape...)
	case elements.KindFloat64:
		arr, err = elements.FromSlice(mem, vals, shape...)
	case elements.KindComplex64:
		cs := make([]complex64, len(vals))
		for i, v := range vals {
			cs[i] = complex(float32(v), 0)
		}
		arr, err = elements.FromSlice(mem, cs, shape...)
	case elements.KindComplex128:
		cs := make([]complex128, len(vals))
		for i, v := range vals {
			cs[i] = complex(v, 0)
		}
		arr, err = elements.FromSlice(mem, cs, shape...)
	default:
		t.Fatalf("no numeric builder for %s", kind)
	}
	require.NoError(t, err)
	return arr
}

// scalarOf converts v to a scalar of the given numeric kind.
func scalarOf(kind elements.Kind, v float64) elements.Scalar {
	switch kind {
	case elements.KindBool:
		return elements.Bool(v != 0)
	case elements.KindInt8:
		return elements.Int8(int8(v))
	case elements.KindInt16:
		return elements.Int16(int16(v))
	case elements.KindInt32:
		return elements.Int32(int32(v))
	case elements.KindInt64:
		return elements.Int64(int64(v))
	case elements.KindUint8:
		return elements.Uint8(uint8(v))
	case elements.KindUint16:
		return elements.Uint16(uint16(v))
	case elements.KindUint32:
		return elements.Uint32(uint32(v))
	case elements.KindUint64:
		return elements.Uint64(uint64(v))
	case elements.KindFloat16:
		return elements.Float16(float16.New(float32(v)))
	case elements.KindFloat32:
		return elements.Float32(float32(v))
	case elements.KindComplex64:
		return elements.Complex64(complex(float32(v), 0))
	case elements.KindComplex128:
		return elements.Complex128(complex(v, 0))
	}
	return elements.Float64(v)
}

func checkedAllocator(t *testing.T) *memory.CheckedAllocator {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	t.Cleanup(func() { mem.AssertSize(t, 0) })
	return mem
}

func sortedOptions() FindOptions {
	opts := NewFindOptions()
	opts.Sorted = true
	return opts
}
