package findops

import (
	"github.com/alekLukanen/ndarrow/elements"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
)

// The accessors below resolve the arrow storage type once and return a
// closure reading element i in one numeric domain. Null slots read as
// zero; callers check IsNull themselves.

func signedAt(values arrow.Array) (func(int) int64, bool) {
	switch arr := values.(type) {
	case *array.Boolean:
		return func(i int) int64 {
			if arr.Value(i) {
				return 1
			}
			return 0
		}, true
	case *array.Int8:
		return func(i int) int64 { return int64(arr.Value(i)) }, true
	case *array.Int16:
		return func(i int) int64 { return int64(arr.Value(i)) }, true
	case *array.Int32:
		return func(i int) int64 { return int64(arr.Value(i)) }, true
	case *array.Int64:
		return arr.Value, true
	}
	return nil, false
}

func unsignedAt(values arrow.Array) (func(int) uint64, bool) {
	switch arr := values.(type) {
	case *array.Uint8:
		return func(i int) uint64 { return uint64(arr.Value(i)) }, true
	case *array.Uint16:
		return func(i int) uint64 { return uint64(arr.Value(i)) }, true
	case *array.Uint32:
		return func(i int) uint64 { return uint64(arr.Value(i)) }, true
	case *array.Uint64:
		return arr.Value, true
	}
	return nil, false
}

// floatAt widens every real numeric storage to float64.
func floatAt(values arrow.Array) (func(int) float64, bool) {
	if at, ok := signedAt(values); ok {
		return func(i int) float64 { return float64(at(i)) }, true
	}
	if at, ok := unsignedAt(values); ok {
		return func(i int) float64 { return float64(at(i)) }, true
	}
	switch arr := values.(type) {
	case *array.Float16:
		return func(i int) float64 { return float64(arr.Value(i).Float32()) }, true
	case *array.Float32:
		return func(i int) float64 { return float64(arr.Value(i)) }, true
	case *array.Float64:
		return arr.Value, true
	case *array.Decimal128:
		scale := arr.DataType().(*arrow.Decimal128Type).Scale
		return func(i int) float64 { return arr.Value(i).ToFloat64(scale) }, true
	}
	return nil, false
}

func complexAt(values arrow.Array) (func(int) complex128, bool) {
	if arr, ok := values.(*array.FixedSizeList); ok {
		return func(i int) complex128 { return elements.ComplexValue(arr, i) }, true
	}
	at, ok := floatAt(values)
	if !ok {
		return nil, false
	}
	return func(i int) complex128 { return complex(at(i), 0) }, true
}

// int64Values and friends expose null free storage so the kernel backend
// can scan it directly.
func int64Values(values arrow.Array) ([]int64, bool) {
	arr, ok := values.(*array.Int64)
	if !ok || arr.NullN() > 0 {
		return nil, false
	}
	return arr.Int64Values(), true
}

func uint64Values(values arrow.Array) ([]uint64, bool) {
	arr, ok := values.(*array.Uint64)
	if !ok || arr.NullN() > 0 {
		return nil, false
	}
	return arr.Uint64Values(), true
}

func float64Values(values arrow.Array) ([]float64, bool) {
	arr, ok := values.(*array.Float64)
	if !ok || arr.NullN() > 0 {
		return nil, false
	}
	return arr.Float64Values(), true
}
