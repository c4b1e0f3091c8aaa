package arrowops

import (
	"fmt"

	"github.com/alekLukanen/ndarrow/elements"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/decimal128"
	"github.com/apache/arrow/go/v17/arrow/float16"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

// TakeArray gathers the values of arr at indices into a new array of the
// same data type. Null slots stay null.
func TakeArray(mem memory.Allocator, arr arrow.Array, indices []int) (arrow.Array, error) {
	for _, idx := range indices {
		if idx < 0 || idx >= arr.Len() {
			return nil, elements.NewStackError(
				fmt.Errorf("%w| take index %d of %d values", ErrIndexOutOfBounds, idx, arr.Len()),
			)
		}
	}

	switch arr.DataType().ID() {
	case arrow.BOOL:
		return takeValues[bool](arr.(*array.Boolean), array.NewBooleanBuilder(mem), indices), nil
	case arrow.INT8:
		return takeValues[int8](arr.(*array.Int8), array.NewInt8Builder(mem), indices), nil
	case arrow.INT16:
		return takeValues[int16](arr.(*array.Int16), array.NewInt16Builder(mem), indices), nil
	case arrow.INT32:
		return takeValues[int32](arr.(*array.Int32), array.NewInt32Builder(mem), indices), nil
	case arrow.INT64:
		return takeValues[int64](arr.(*array.Int64), array.NewInt64Builder(mem), indices), nil
	case arrow.UINT8:
		return takeValues[uint8](arr.(*array.Uint8), array.NewUint8Builder(mem), indices), nil
	case arrow.UINT16:
		return takeValues[uint16](arr.(*array.Uint16), array.NewUint16Builder(mem), indices), nil
	case arrow.UINT32:
		return takeValues[uint32](arr.(*array.Uint32), array.NewUint32Builder(mem), indices), nil
	case arrow.UINT64:
		return takeValues[uint64](arr.(*array.Uint64), array.NewUint64Builder(mem), indices), nil
	case arrow.FLOAT16:
		return takeValues[float16.Num](arr.(*array.Float16), array.NewFloat16Builder(mem), indices), nil
	case arrow.FLOAT32:
		return takeValues[float32](arr.(*array.Float32), array.NewFloat32Builder(mem), indices), nil
	case arrow.FLOAT64:
		return takeValues[float64](arr.(*array.Float64), array.NewFloat64Builder(mem), indices), nil
	case arrow.DECIMAL128:
		dt := arr.DataType().(*arrow.Decimal128Type)
		return takeValues[decimal128.Num](arr.(*array.Decimal128), array.NewDecimal128Builder(mem, dt), indices), nil
	case arrow.TIMESTAMP:
		dt := arr.DataType().(*arrow.TimestampType)
		return takeValues[arrow.Timestamp](arr.(*array.Timestamp), array.NewTimestampBuilder(mem, dt), indices), nil
	case arrow.STRING:
		return takeValues[string](arr.(*array.String), array.NewStringBuilder(mem), indices), nil
	case arrow.BINARY:
		return takeValues[[]byte](arr.(*array.Binary), array.NewBinaryBuilder(mem, arrow.BinaryTypes.Binary), indices), nil
	case arrow.FIXED_SIZE_LIST:
		return takePairs(mem, arr.(*array.FixedSizeList), indices)
	default:
		return nil, elements.NewStackError(fmt.Errorf("%w| take on %s", ErrUnsupportedDataType, arr.DataType()))
	}
}

func takeValues[T any, A valueArray[T], B valueBuilder[T]](arr A, b B, indices []int) arrow.Array {
	defer b.Release()
	b.Reserve(len(indices))
	for _, idx := range indices {
		if arr.IsNull(idx) {
			b.AppendNull()
			continue
		}
		b.Append(arr.Value(idx))
	}
	return b.NewArray()
}

// takePairs gathers complex values stored as fixed size lists of two
// floats.
func takePairs(mem memory.Allocator, arr *array.FixedSizeList, indices []int) (arrow.Array, error) {
	dt := arr.DataType().(*arrow.FixedSizeListType)
	if dt.Len() != 2 {
		return nil, elements.NewStackError(fmt.Errorf("%w| take on %s", ErrUnsupportedDataType, dt))
	}
	b := array.NewFixedSizeListBuilder(mem, 2, dt.Elem())
	defer b.Release()
	b.Reserve(len(indices))

	switch parts := arr.ListValues().(type) {
	case *array.Float32:
		vb := b.ValueBuilder().(*array.Float32Builder)
		for _, idx := range indices {
			if arr.IsNull(idx) {
				b.AppendNull()
				continue
			}
			start, _ := arr.ValueOffsets(idx)
			b.Append(true)
			vb.Append(parts.Value(int(start)))
			vb.Append(parts.Value(int(start) + 1))
		}
	case *array.Float64:
		vb := b.ValueBuilder().(*array.Float64Builder)
		for _, idx := range indices {
			if arr.IsNull(idx) {
				b.AppendNull()
				continue
			}
			start, _ := arr.ValueOffsets(idx)
			b.Append(true)
			vb.Append(parts.Value(int(start)))
			vb.Append(parts.Value(int(start) + 1))
		}
	default:
		return nil, elements.NewStackError(fmt.Errorf("%w| take on %s", ErrUnsupportedDataType, dt))
	}
	return b.NewArray(), nil
}
