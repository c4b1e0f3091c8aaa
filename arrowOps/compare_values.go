package arrowops

import (
	"bytes"
	"cmp"
	"fmt"
	"math"

	"github.com/alekLukanen/errs"
	"github.com/alekLukanen/ndarrow/elements"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
)

// ValueOrder orders the values of one array. Compare is only meaningful
// when neither value is Missing; missing values (nulls, NaN) carry no
// order and callers place them last.
type ValueOrder struct {
	Missing func(i int) bool
	Compare func(i, j int) int
}

// NewValueOrder resolves the comparison for the data type of arr once so
// callers can compare many pairs without a per-pair type switch.
func NewValueOrder(arr arrow.Array) (ValueOrder, error) {
	switch arr.DataType().ID() {
	case arrow.BOOL:
		a := arr.(*array.Boolean)
		return ValueOrder{Missing: a.IsNull, Compare: func(i, j int) int {
			return compareBool(a.Value(i), a.Value(j))
		}}, nil
	case arrow.INT8:
		return nativeOrder[int8](arr.(*array.Int8)), nil
	case arrow.INT16:
		return nativeOrder[int16](arr.(*array.Int16)), nil
	case arrow.INT32:
		return nativeOrder[int32](arr.(*array.Int32)), nil
	case arrow.INT64:
		return nativeOrder[int64](arr.(*array.Int64)), nil
	case arrow.UINT8:
		return nativeOrder[uint8](arr.(*array.Uint8)), nil
	case arrow.UINT16:
		return nativeOrder[uint16](arr.(*array.Uint16)), nil
	case arrow.UINT32:
		return nativeOrder[uint32](arr.(*array.Uint32)), nil
	case arrow.UINT64:
		return nativeOrder[uint64](arr.(*array.Uint64)), nil
	case arrow.FLOAT16:
		a := arr.(*array.Float16)
		return ValueOrder{
			Missing: func(i int) bool { return a.IsNull(i) || a.Value(i).IsNaN() },
			Compare: func(i, j int) int { return a.Value(i).Cmp(a.Value(j)) },
		}, nil
	case arrow.FLOAT32:
		return floatOrder[float32](arr.(*array.Float32)), nil
	case arrow.FLOAT64:
		return floatOrder[float64](arr.(*array.Float64)), nil
	case arrow.DECIMAL128:
		a := arr.(*array.Decimal128)
		return ValueOrder{Missing: a.IsNull, Compare: func(i, j int) int {
			return elements.CompareDecimal(a.Value(i), a.Value(j))
		}}, nil
	case arrow.TIMESTAMP:
		return nativeOrder[arrow.Timestamp](arr.(*array.Timestamp)), nil
	case arrow.STRING:
		return nativeOrder[string](arr.(*array.String)), nil
	case arrow.BINARY:
		a := arr.(*array.Binary)
		return ValueOrder{Missing: a.IsNull, Compare: func(i, j int) int {
			return bytes.Compare(a.Value(i), a.Value(j))
		}}, nil
	case arrow.FIXED_SIZE_LIST:
		a := arr.(*array.FixedSizeList)
		if _, err := elements.KindOf(a.DataType()); err != nil {
			return ValueOrder{}, errs.Wrap(err)
		}
		return ValueOrder{
			Missing: func(i int) bool {
				if a.IsNull(i) {
					return true
				}
				c := elements.ComplexValue(a, i)
				return math.IsNaN(real(c)) || math.IsNaN(imag(c))
			},
			Compare: func(i, j int) int {
				return elements.CompareComplex(elements.ComplexValue(a, i), elements.ComplexValue(a, j))
			},
		}, nil
	default:
		return ValueOrder{}, elements.NewStackError(
			fmt.Errorf("%w| ordering on %s", ErrUnsupportedDataType, arr.DataType()),
		)
	}
}

func nativeOrder[T cmp.Ordered, E orderableArray[T]](arr E) ValueOrder {
	return ValueOrder{
		Missing: arr.IsNull,
		Compare: func(i, j int) int { return cmp.Compare(arr.Value(i), arr.Value(j)) },
	}
}

func floatOrder[T float32 | float64, E orderableArray[T]](arr E) ValueOrder {
	return ValueOrder{
		Missing: func(i int) bool {
			v := arr.Value(i)
			return arr.IsNull(i) || v != v
		},
		Compare: func(i, j int) int { return cmp.Compare(arr.Value(i), arr.Value(j)) },
	}
}

func compareBool(a, b bool) int {
	if a == b {
		return 0
	} else if a {
		return 1
	} else {
		return -1
	}
}
