package elements

import (
	"fmt"
	"math"
	"math/big"
	"math/cmplx"
	"strconv"
	"time"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/decimal128"
	"github.com/apache/arrow/go/v17/arrow/float16"
)

// Scalar is a single tagged value. It is used as the query of the
// locate operations and as the normalized form of object elements.
type Scalar struct {
	kind  Kind
	i     int64
	u     uint64
	f     float64
	c     complex128
	dec   decimal128.Num
	scale int32
	unit  arrow.TimeUnit
	null  bool
	str   string
	bin   []byte
	obj   any
}

func Bool(v bool) Scalar {
	s := Scalar{kind: KindBool}
	if v {
		s.i = 1
	}
	return s
}

func Int8(v int8) Scalar   { return Scalar{kind: KindInt8, i: int64(v)} }
func Int16(v int16) Scalar { return Scalar{kind: KindInt16, i: int64(v)} }
func Int32(v int32) Scalar { return Scalar{kind: KindInt32, i: int64(v)} }
func Int64(v int64) Scalar { return Scalar{kind: KindInt64, i: v} }

// Int is a convenience for Int64.
func Int(v int) Scalar { return Int64(int64(v)) }

func Uint8(v uint8) Scalar   { return Scalar{kind: KindUint8, u: uint64(v)} }
func Uint16(v uint16) Scalar { return Scalar{kind: KindUint16, u: uint64(v)} }
func Uint32(v uint32) Scalar { return Scalar{kind: KindUint32, u: uint64(v)} }
func Uint64(v uint64) Scalar { return Scalar{kind: KindUint64, u: v} }

func Float16(v float16.Num) Scalar {
	return Scalar{kind: KindFloat16, f: float64(v.Float32())}
}

func Float32(v float32) Scalar { return Scalar{kind: KindFloat32, f: float64(v)} }
func Float64(v float64) Scalar { return Scalar{kind: KindFloat64, f: v} }

func Complex64(v complex64) Scalar {
	return Scalar{kind: KindComplex64, c: complex128(v)}
}

func Complex128(v complex128) Scalar {
	return Scalar{kind: KindComplex128, c: v}
}

// Decimal is num scaled by 10^-scale.
func Decimal(num decimal128.Num, scale int32) Scalar {
	return Scalar{kind: KindDecimal, dec: num, scale: scale}
}

func Timestamp(ts arrow.Timestamp, unit arrow.TimeUnit) Scalar {
	return Scalar{kind: KindTimestamp, i: int64(ts), unit: unit}
}

// Time converts t to a nanosecond timestamp scalar.
func Time(t time.Time) Scalar {
	return Timestamp(arrow.Timestamp(t.UnixNano()), arrow.Nanosecond)
}

// NaT is the not-a-time marker.
func NaT() Scalar {
	return Scalar{kind: KindTimestamp, unit: arrow.Nanosecond, null: true}
}

func String(v string) Scalar { return Scalar{kind: KindString, str: v} }
func Binary(v []byte) Scalar { return Scalar{kind: KindBinary, bin: v} }

// Object normalizes well known Go values into typed scalars. Values of
// any other type stay opaque and only compare equal to themselves.
func Object(v any) Scalar {
	switch x := v.(type) {
	case nil:
		return Scalar{kind: KindObject, null: true}
	case Scalar:
		return x
	case bool:
		return Bool(x)
	case int:
		return Int64(int64(x))
	case int8:
		return Int8(x)
	case int16:
		return Int16(x)
	case int32:
		return Int32(x)
	case int64:
		return Int64(x)
	case uint:
		return Uint64(uint64(x))
	case uint8:
		return Uint8(x)
	case uint16:
		return Uint16(x)
	case uint32:
		return Uint32(x)
	case uint64:
		return Uint64(x)
	case float16.Num:
		return Float16(x)
	case float32:
		return Float32(x)
	case float64:
		return Float64(x)
	case complex64:
		return Complex64(x)
	case complex128:
		return Complex128(x)
	case string:
		return String(x)
	case []byte:
		return Binary(x)
	case decimal128.Num:
		return Decimal(x, 0)
	case time.Time:
		return Time(x)
	case arrow.Timestamp:
		return Timestamp(x, arrow.Nanosecond)
	default:
		return Scalar{kind: KindObject, obj: v}
	}
}

func (s Scalar) Kind() Kind { return s.kind }

func (s Scalar) Bool() bool { return s.i != 0 }

// Int returns signed integer, bool and timestamp tick values.
func (s Scalar) Int() int64 { return s.i }

func (s Scalar) Uint() uint64 { return s.u }

func (s Scalar) Float() float64 { return s.f }

func (s Scalar) Complex() complex128 { return s.c }

func (s Scalar) Decimal() (decimal128.Num, int32) { return s.dec, s.scale }

func (s Scalar) Timestamp() (arrow.Timestamp, arrow.TimeUnit) {
	return arrow.Timestamp(s.i), s.unit
}

func (s Scalar) Text() string { return s.str }

func (s Scalar) Bytes() []byte { return s.bin }

// Value returns the opaque payload of an object scalar.
func (s Scalar) Value() any { return s.obj }

// IsNull reports a nil object or NaT.
func (s Scalar) IsNull() bool { return s.null }

func (s Scalar) IsNaT() bool { return s.kind == KindTimestamp && s.null }

func (s Scalar) IsNaN() bool {
	switch {
	case s.kind.IsFloat():
		return math.IsNaN(s.f)
	case s.kind.IsComplex():
		return cmplx.IsNaN(s.c)
	}
	return false
}

func (s Scalar) IsInf() bool {
	switch {
	case s.kind.IsFloat():
		return math.IsInf(s.f, 0)
	case s.kind.IsComplex():
		return cmplx.IsInf(s.c)
	}
	return false
}

// IsSpecial reports NaN or an infinity.
func (s Scalar) IsSpecial() bool {
	return s.IsNaN() || s.IsInf()
}

// AsFloat64 widens any real numeric scalar to float64.
func (s Scalar) AsFloat64() (float64, bool) {
	switch {
	case s.kind.IsBool() || s.kind.IsSigned():
		return float64(s.i), true
	case s.kind.IsUnsigned():
		return float64(s.u), true
	case s.kind.IsFloat():
		return s.f, true
	case s.kind.IsDecimal():
		return s.dec.ToFloat64(s.scale), true
	}
	return 0, false
}

// AsComplex widens any numeric scalar to complex128.
func (s Scalar) AsComplex() (complex128, bool) {
	if s.kind.IsComplex() {
		return s.c, true
	}
	f, ok := s.AsFloat64()
	if !ok {
		return 0, false
	}
	return complex(f, 0), true
}

// AsRat returns the exact rational value of a finite real numeric
// scalar.
func (s Scalar) AsRat() (*big.Rat, bool) {
	switch {
	case s.kind.IsBool() || s.kind.IsSigned():
		return new(big.Rat).SetInt64(s.i), true
	case s.kind.IsUnsigned():
		return new(big.Rat).SetUint64(s.u), true
	case s.kind.IsFloat():
		if math.IsNaN(s.f) || math.IsInf(s.f, 0) {
			return nil, false
		}
		return new(big.Rat).SetFloat64(s.f), true
	case s.kind.IsDecimal():
		return DecimalRat(s.dec, s.scale), true
	case s.kind.IsComplex():
		if imag(s.c) != 0 || cmplx.IsNaN(s.c) || cmplx.IsInf(s.c) {
			return nil, false
		}
		return new(big.Rat).SetFloat64(real(s.c)), true
	}
	return nil, false
}

// DecimalRat is num·10^-scale as an exact rational.
func DecimalRat(num decimal128.Num, scale int32) *big.Rat {
	r := new(big.Rat).SetInt(num.BigInt())
	if scale == 0 {
		return r
	}
	p := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(absInt32(scale))), nil)
	if scale > 0 {
		return r.Quo(r, new(big.Rat).SetInt(p))
	}
	return r.Mul(r, new(big.Rat).SetInt(p))
}

func absInt32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// IsZero reports the kind's own falsy value: numeric zero, false, the
// empty string, a nil object or NaT.
func (s Scalar) IsZero() bool {
	switch {
	case s.null:
		return true
	case s.kind.IsBool() || s.kind.IsSigned():
		return s.i == 0
	case s.kind.IsUnsigned():
		return s.u == 0
	case s.kind.IsFloat():
		return s.f == 0
	case s.kind.IsComplex():
		return s.c == 0
	case s.kind.IsDecimal():
		return s.dec.Sign() == 0
	case s.kind == KindTimestamp:
		return s.i == 0
	case s.kind == KindString:
		return s.str == ""
	case s.kind == KindBinary:
		return len(s.bin) == 0
	}
	return false
}

func (s Scalar) String() string {
	switch {
	case s.IsNaT():
		return "NaT"
	case s.kind == KindObject:
		if s.null {
			return "<nil>"
		}
		return fmt.Sprintf("%v", s.obj)
	case s.kind.IsBool():
		return strconv.FormatBool(s.i != 0)
	case s.kind.IsSigned():
		return strconv.FormatInt(s.i, 10)
	case s.kind.IsUnsigned():
		return strconv.FormatUint(s.u, 10)
	case s.kind.IsFloat():
		return strconv.FormatFloat(s.f, 'g', -1, 64)
	case s.kind.IsComplex():
		return strconv.FormatComplex(s.c, 'g', -1, 128)
	case s.kind.IsDecimal():
		return DecimalRat(s.dec, s.scale).FloatString(int(max(s.scale, 0)))
	case s.kind == KindTimestamp:
		return arrow.Timestamp(s.i).ToTime(s.unit).UTC().Format(time.RFC3339Nano)
	case s.kind == KindString:
		return strconv.Quote(s.str)
	case s.kind == KindBinary:
		return fmt.Sprintf("%x", s.bin)
	}
	return "invalid"
}
