package elements

import (
	"fmt"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/decimal128"
	"github.com/apache/arrow/go/v17/arrow/float16"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

// Native lists the Go element types FromSlice can build arrays from.
type Native interface {
	bool | int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 |
		float16.Num | float32 | float64 | complex64 | complex128 | string | []byte
}

// FromSlice builds an array from Go values. Without a shape the array is
// 1-D.
func FromSlice[T Native](mem memory.Allocator, values []T, shape ...int) (*Array, error) {
	arr, err := buildNative(mem, values)
	if err != nil {
		return nil, err
	}
	defer arr.Release()
	if len(shape) == 0 {
		return NewArray(arr)
	}
	return NewArrayWithShape(arr, shape)
}

// FromValue builds a 0-D array.
func FromValue[T Native](mem memory.Allocator, value T) (*Array, error) {
	arr, err := buildNative(mem, []T{value})
	if err != nil {
		return nil, err
	}
	defer arr.Release()
	return NewArrayWithShape(arr, []int{})
}

func buildNative[T Native](mem memory.Allocator, values []T) (arrow.Array, error) {
	switch vals := any(values).(type) {
	case []bool:
		b := array.NewBooleanBuilder(mem)
		defer b.Release()
		b.AppendValues(vals, nil)
		return b.NewArray(), nil
	case []int8:
		b := array.NewInt8Builder(mem)
		defer b.Release()
		b.AppendValues(vals, nil)
		return b.NewArray(), nil
	case []int16:
		b := array.NewInt16Builder(mem)
		defer b.Release()
		b.AppendValues(vals, nil)
		return b.NewArray(), nil
	case []int32:
		b := array.NewInt32Builder(mem)
		defer b.Release()
		b.AppendValues(vals, nil)
		return b.NewArray(), nil
	case []int64:
		b := array.NewInt64Builder(mem)
		defer b.Release()
		b.AppendValues(vals, nil)
		return b.NewArray(), nil
	case []uint8:
		b := array.NewUint8Builder(mem)
		defer b.Release()
		b.AppendValues(vals, nil)
		return b.NewArray(), nil
	case []uint16:
		b := array.NewUint16Builder(mem)
		defer b.Release()
		b.AppendValues(vals, nil)
		return b.NewArray(), nil
	case []uint32:
		b := array.NewUint32Builder(mem)
		defer b.Release()
		b.AppendValues(vals, nil)
		return b.NewArray(), nil
	case []uint64:
		b := array.NewUint64Builder(mem)
		defer b.Release()
		b.AppendValues(vals, nil)
		return b.NewArray(), nil
	case []float16.Num:
		b := array.NewFloat16Builder(mem)
		defer b.Release()
		b.AppendValues(vals, nil)
		return b.NewArray(), nil
	case []float32:
		b := array.NewFloat32Builder(mem)
		defer b.Release()
		b.AppendValues(vals, nil)
		return b.NewArray(), nil
	case []float64:
		b := array.NewFloat64Builder(mem)
		defer b.Release()
		b.AppendValues(vals, nil)
		return b.NewArray(), nil
	case []complex64:
		b := array.NewFixedSizeListBuilder(mem, 2, arrow.PrimitiveTypes.Float32)
		defer b.Release()
		parts := b.ValueBuilder().(*array.Float32Builder)
		for _, v := range vals {
			b.Append(true)
			parts.Append(real(v))
			parts.Append(imag(v))
		}
		return b.NewArray(), nil
	case []complex128:
		b := array.NewFixedSizeListBuilder(mem, 2, arrow.PrimitiveTypes.Float64)
		defer b.Release()
		parts := b.ValueBuilder().(*array.Float64Builder)
		for _, v := range vals {
			b.Append(true)
			parts.Append(real(v))
			parts.Append(imag(v))
		}
		return b.NewArray(), nil
	case []string:
		b := array.NewStringBuilder(mem)
		defer b.Release()
		b.AppendValues(vals, nil)
		return b.NewArray(), nil
	case [][]byte:
		b := array.NewBinaryBuilder(mem, arrow.BinaryTypes.Binary)
		defer b.Release()
		b.AppendValues(vals, nil)
		return b.NewArray(), nil
	}
	return nil, NewStackError(fmt.Errorf("%w| %T", ErrUnsupportedType, values))
}

// FromDecimals builds a decimal array. valid may be nil; a false entry
// marks a null slot.
func FromDecimals(
	mem memory.Allocator,
	values []decimal128.Num,
	precision, scale int32,
	valid []bool,
	shape ...int,
) (*Array, error) {
	b := array.NewDecimal128Builder(mem, &arrow.Decimal128Type{Precision: precision, Scale: scale})
	defer b.Release()
	b.AppendValues(values, valid)
	arr := b.NewArray()
	defer arr.Release()
	if len(shape) == 0 {
		return NewArray(arr)
	}
	return NewArrayWithShape(arr, shape)
}

// FromTimestamps builds a timestamp array; slots whose valid entry is
// false hold NaT.
func FromTimestamps(
	mem memory.Allocator,
	values []arrow.Timestamp,
	unit arrow.TimeUnit,
	valid []bool,
	shape ...int,
) (*Array, error) {
	b := array.NewTimestampBuilder(mem, &arrow.TimestampType{Unit: unit})
	defer b.Release()
	b.AppendValues(values, valid)
	arr := b.NewArray()
	defer arr.Release()
	if len(shape) == 0 {
		return NewArray(arr)
	}
	return NewArrayWithShape(arr, shape)
}

// DecimalFromString parses a decimal literal such as "12.50" at the
// given precision and scale.
func DecimalFromString(v string, precision, scale int32) (Scalar, error) {
	num, err := decimal128.FromString(v, precision, scale)
	if err != nil {
		return Scalar{}, NewStackError(fmt.Errorf("%w| decimal %q: %s", ErrInvalidArgument, v, err))
	}
	return Decimal(num, scale), nil
}
