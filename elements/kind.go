package elements

import (
	"fmt"

	"github.com/apache/arrow/go/v17/arrow"
)

// Kind is the element kind of an Array or the kind of a Scalar.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat16
	KindFloat32
	KindFloat64
	KindComplex64
	KindComplex128
	KindDecimal
	KindTimestamp
	KindString
	KindBinary
	KindObject
)

var kindNames = [...]string{
	KindInvalid:    "invalid",
	KindBool:       "bool",
	KindInt8:       "int8",
	KindInt16:      "int16",
	KindInt32:      "int32",
	KindInt64:      "int64",
	KindUint8:      "uint8",
	KindUint16:     "uint16",
	KindUint32:     "uint32",
	KindUint64:     "uint64",
	KindFloat16:    "float16",
	KindFloat32:    "float32",
	KindFloat64:    "float64",
	KindComplex64:  "complex64",
	KindComplex128: "complex128",
	KindDecimal:    "decimal",
	KindTimestamp:  "timestamp",
	KindString:     "string",
	KindBinary:     "binary",
	KindObject:     "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name && Kind(k) != KindInvalid {
			return Kind(k), true
		}
	}
	return KindInvalid, false
}

func (k Kind) IsBool() bool {
	return k == KindBool
}

func (k Kind) IsSigned() bool {
	return k >= KindInt8 && k <= KindInt64
}

func (k Kind) IsUnsigned() bool {
	return k >= KindUint8 && k <= KindUint64
}

func (k Kind) IsInteger() bool {
	return k.IsSigned() || k.IsUnsigned()
}

func (k Kind) IsFloat() bool {
	return k >= KindFloat16 && k <= KindFloat64
}

func (k Kind) IsComplex() bool {
	return k == KindComplex64 || k == KindComplex128
}

func (k Kind) IsDecimal() bool {
	return k == KindDecimal
}

// IsNumeric reports whether values of the kind take part in arithmetic
// comparisons. Booleans count as the integers 0 and 1.
func (k Kind) IsNumeric() bool {
	return k.IsBool() || k.IsInteger() || k.IsFloat() || k.IsComplex() || k.IsDecimal()
}

// IsInexact reports whether comparisons against the kind go through a
// tolerance window.
func (k Kind) IsInexact() bool {
	return k.IsFloat() || k.IsComplex() || k.IsDecimal()
}

// BitWidth is the storage width of fixed width kinds and 0 otherwise.
func (k Kind) BitWidth() int {
	switch k {
	case KindBool:
		return 1
	case KindInt8, KindUint8:
		return 8
	case KindInt16, KindUint16, KindFloat16:
		return 16
	case KindInt32, KindUint32, KindFloat32:
		return 32
	case KindInt64, KindUint64, KindFloat64, KindComplex64, KindTimestamp:
		return 64
	case KindComplex128, KindDecimal:
		return 128
	default:
		return 0
	}
}

// KindOf maps an arrow data type onto the element kind it stores.
// Complex kinds are fixed size lists of two floats (real, imag).
func KindOf(dt arrow.DataType) (Kind, error) {
	switch dt.ID() {
	case arrow.BOOL:
		return KindBool, nil
	case arrow.INT8:
		return KindInt8, nil
	case arrow.INT16:
		return KindInt16, nil
	case arrow.INT32:
		return KindInt32, nil
	case arrow.INT64:
		return KindInt64, nil
	case arrow.UINT8:
		return KindUint8, nil
	case arrow.UINT16:
		return KindUint16, nil
	case arrow.UINT32:
		return KindUint32, nil
	case arrow.UINT64:
		return KindUint64, nil
	case arrow.FLOAT16:
		return KindFloat16, nil
	case arrow.FLOAT32:
		return KindFloat32, nil
	case arrow.FLOAT64:
		return KindFloat64, nil
	case arrow.DECIMAL128:
		return KindDecimal, nil
	case arrow.TIMESTAMP:
		return KindTimestamp, nil
	case arrow.STRING:
		return KindString, nil
	case arrow.BINARY:
		return KindBinary, nil
	case arrow.FIXED_SIZE_LIST:
		lt := dt.(*arrow.FixedSizeListType)
		if lt.Len() == 2 {
			switch lt.Elem().ID() {
			case arrow.FLOAT32:
				return KindComplex64, nil
			case arrow.FLOAT64:
				return KindComplex128, nil
			}
		}
	}
	return KindInvalid, NewStackError(fmt.Errorf("%w| arrow type %s", ErrUnsupportedType, dt))
}

// DataType returns the default arrow type for the kind. Decimals default
// to precision 38 scale 0 and timestamps to nanoseconds.
func (k Kind) DataType() (arrow.DataType, error) {
	switch k {
	case KindBool:
		return arrow.FixedWidthTypes.Boolean, nil
	case KindInt8:
		return arrow.PrimitiveTypes.Int8, nil
	case KindInt16:
		return arrow.PrimitiveTypes.Int16, nil
	case KindInt32:
		return arrow.PrimitiveTypes.Int32, nil
	case KindInt64:
		return arrow.PrimitiveTypes.Int64, nil
	case KindUint8:
		return arrow.PrimitiveTypes.Uint8, nil
	case KindUint16:
		return arrow.PrimitiveTypes.Uint16, nil
	case KindUint32:
		return arrow.PrimitiveTypes.Uint32, nil
	case KindUint64:
		return arrow.PrimitiveTypes.Uint64, nil
	case KindFloat16:
		return arrow.FixedWidthTypes.Float16, nil
	case KindFloat32:
		return arrow.PrimitiveTypes.Float32, nil
	case KindFloat64:
		return arrow.PrimitiveTypes.Float64, nil
	case KindComplex64:
		return arrow.FixedSizeListOf(2, arrow.PrimitiveTypes.Float32), nil
	case KindComplex128:
		return arrow.FixedSizeListOf(2, arrow.PrimitiveTypes.Float64), nil
	case KindDecimal:
		return &arrow.Decimal128Type{Precision: 38, Scale: 0}, nil
	case KindTimestamp:
		return &arrow.TimestampType{Unit: arrow.Nanosecond}, nil
	case KindString:
		return arrow.BinaryTypes.String, nil
	case KindBinary:
		return arrow.BinaryTypes.Binary, nil
	default:
		return nil, NewStackError(fmt.Errorf("%w| kind %s has no arrow type", ErrUnsupportedType, k))
	}
}
