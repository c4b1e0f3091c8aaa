package elements

import (
	"bytes"
	"cmp"
	"math"
	"math/bits"
	"math/cmplx"
	"reflect"
	"strings"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/decimal128"
)

// EqualValues compares two scalars by value the way generic object
// equality does: numbers of any kind are equal when they are the same
// mathematical value, NaN and NaT never equal anything.
func EqualValues(a, b Scalar) bool {
	switch {
	case a.kind == KindObject || b.kind == KindObject:
		if a.kind != b.kind {
			return false
		}
		if a.null || b.null {
			return a.null && b.null
		}
		return reflect.DeepEqual(a.obj, b.obj)
	case a.kind.IsNumeric() && b.kind.IsNumeric():
		return equalNumbers(a, b)
	case a.kind == KindString && b.kind == KindString:
		return a.str == b.str
	case a.kind == KindBinary && b.kind == KindBinary:
		return bytes.Equal(a.bin, b.bin)
	case a.kind == KindTimestamp && b.kind == KindTimestamp:
		if a.null || b.null {
			return false
		}
		return CompareTimestamps(a.i, a.unit, b.i, b.unit) == 0
	}
	return false
}

func equalNumbers(a, b Scalar) bool {
	if a.IsNaN() || b.IsNaN() {
		return false
	}
	if a.kind.IsComplex() || b.kind.IsComplex() {
		ac, _ := a.AsComplex()
		bc, _ := b.AsComplex()
		if imag(ac) != imag(bc) {
			return false
		}
		a, b = Float64(real(ac)), Float64(real(bc))
	}
	if a.IsInf() || b.IsInf() {
		af, _ := a.AsFloat64()
		bf, _ := b.AsFloat64()
		return af == bf
	}
	c, ok := CompareNumbers(a, b)
	return ok && c == 0
}

// CompareNumbers orders two real numeric scalars exactly. It returns
// false when either side is NaN or complex with an imaginary part.
func CompareNumbers(a, b Scalar) (int, bool) {
	if a.IsNaN() || b.IsNaN() {
		return 0, false
	}
	switch {
	case isIntLike(a.kind) && isIntLike(b.kind):
		return CompareIntegers(a, b), true
	case a.kind.IsFloat() && b.kind.IsFloat():
		return cmp.Compare(a.f, b.f), true
	case a.IsInf() || b.IsInf():
		af, aok := a.AsFloat64()
		bf, bok := b.AsFloat64()
		if !aok || !bok {
			return 0, false
		}
		return cmp.Compare(af, bf), true
	}
	ar, aok := a.AsRat()
	br, bok := b.AsRat()
	if !aok || !bok {
		return 0, false
	}
	return ar.Cmp(br), true
}

func isIntLike(k Kind) bool {
	return k.IsInteger() || k.IsBool()
}

// CompareIntegers orders integers of any width and signedness by
// mathematical value.
func CompareIntegers(a, b Scalar) int {
	switch {
	case a.kind.IsUnsigned() && b.kind.IsUnsigned():
		return cmp.Compare(a.u, b.u)
	case a.kind.IsUnsigned():
		return -CompareSignedUnsigned(b.i, a.u)
	case b.kind.IsUnsigned():
		return CompareSignedUnsigned(a.i, b.u)
	}
	return cmp.Compare(a.i, b.i)
}

// CompareSignedUnsigned orders a signed and an unsigned value without
// reinterpreting either bit pattern.
func CompareSignedUnsigned(s int64, u uint64) int {
	if s < 0 || u > math.MaxInt64 {
		return -1
	}
	return cmp.Compare(uint64(s), u)
}

// CompareValues orders two scalars when they are mutually ordered:
// real numbers, complex numbers (real part first), strings, binaries,
// and non-NaT timestamps.
func CompareValues(a, b Scalar) (int, bool) {
	switch {
	case a.kind.IsComplex() || b.kind.IsComplex():
		if !a.kind.IsNumeric() || !b.kind.IsNumeric() || a.IsNaN() || b.IsNaN() {
			return 0, false
		}
		ac, _ := a.AsComplex()
		bc, _ := b.AsComplex()
		return CompareComplex(ac, bc), true
	case a.kind.IsNumeric() && b.kind.IsNumeric():
		return CompareNumbers(a, b)
	case a.kind == KindString && b.kind == KindString:
		return strings.Compare(a.str, b.str), true
	case a.kind == KindBinary && b.kind == KindBinary:
		return bytes.Compare(a.bin, b.bin), true
	case a.kind == KindTimestamp && b.kind == KindTimestamp:
		if a.null || b.null {
			return 0, false
		}
		return CompareTimestamps(a.i, a.unit, b.i, b.unit), true
	}
	return 0, false
}

// CompareComplex orders complex values lexicographically.
func CompareComplex(a, b complex128) int {
	if c := cmp.Compare(real(a), real(b)); c != 0 {
		return c
	}
	return cmp.Compare(imag(a), imag(b))
}

// IsMissing reports values that carry no ordering: NaN, NaT and nil.
func (s Scalar) IsMissing() bool {
	if s.null {
		return true
	}
	if s.kind.IsComplex() {
		return cmplx.IsNaN(s.c)
	}
	return s.kind.IsFloat() && math.IsNaN(s.f)
}

// ConvertTicks converts ticks between time units. It fails when the
// value is not representable exactly in the target unit.
func ConvertTicks(ticks int64, from, to arrow.TimeUnit) (int64, bool) {
	if from == to {
		return ticks, true
	}
	fm, tm := int64(from.Multiplier()), int64(to.Multiplier())
	if fm > tm {
		ratio := fm / tm
		hi, lo := bits.Mul64(uint64(absInt64(ticks)), uint64(ratio))
		if hi != 0 || lo > math.MaxInt64 {
			return 0, false
		}
		if ticks < 0 {
			return -int64(lo), true
		}
		return int64(lo), true
	}
	ratio := tm / fm
	if ticks%ratio != 0 {
		return 0, false
	}
	return ticks / ratio, true
}

// CompareTimestamps orders two tick counts that may use different units.
func CompareTimestamps(a int64, ua arrow.TimeUnit, b int64, ub arrow.TimeUnit) int {
	if ua == ub {
		return cmp.Compare(a, b)
	}
	if ua.Multiplier() > ub.Multiplier() {
		return -CompareTimestamps(b, ub, a, ua)
	}
	// ua is the finer unit
	bb, ok := ConvertTicks(b, ub, ua)
	if !ok {
		if b < 0 {
			return 1
		}
		return -1
	}
	return cmp.Compare(a, bb)
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// CompareDecimal orders two decimal values of the same scale.
func CompareDecimal(a, b decimal128.Num) int {
	if c := cmp.Compare(a.HighBits(), b.HighBits()); c != 0 {
		return c
	}
	return cmp.Compare(a.LowBits(), b.LowBits())
}
