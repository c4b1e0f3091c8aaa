package findops

import (
	"bytes"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/alekLukanen/ndarrow/elements"
	"github.com/alekLukanen/ndarrow/internal/kernels"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
)

func findPlan(k kernels.Kernels, arr *elements.Array, v elements.Scalar, mode Mode, tol Tolerance) (scanPlan, error) {
	if arr.Kind() == elements.KindObject {
		return objectFindPlan(arr.Objects(), v, mode), nil
	}

	values := arr.Values()
	var (
		plan scanPlan
		ok   bool
	)
	switch mode {
	case ModeExact, ModeSignedUnsignedExact:
		plan, ok = exactPlan(k, values, v)
	case ModeTolerant:
		plan, ok = tolerantPlan(k, values, v, tol)
	case ModeSpecialFloat:
		plan, ok = specialPlan(values, v)
	case ModeTimestamp:
		plan, ok = timestampPlan(values, v)
	}
	if !ok {
		return scanPlan{}, elements.NewStackError(
			fmt.Errorf("%w| %s search on %s storage", elements.ErrUnsupportedType, mode, values.DataType()),
		)
	}
	return plan, nil
}

func objectFindPlan(objs []any, v elements.Scalar, mode Mode) scanPlan {
	if mode == ModeObjectNaNScan {
		return scanPlan{match: func(i int) bool {
			s := elements.Object(objs[i])
			return s.IsNaN() || s.IsNaT()
		}}
	}
	return scanPlan{
		match: func(i int) bool {
			return elements.EqualValues(elements.Object(objs[i]), v)
		},
		atLeast: func(i int) bool {
			c, ok := elements.CompareValues(elements.Object(objs[i]), v)
			return ok && c >= 0
		},
	}
}

// beyondPlan handles a query outside the value range of the storage.
// above is true when the query exceeds every storable value.
func beyondPlan(values arrow.Array, above bool) scanPlan {
	if above {
		return scanPlan{match: never, atLeast: values.IsNull}
	}
	return scanPlan{match: never, atLeast: always}
}

func exactPlan(k kernels.Kernels, values arrow.Array, v elements.Scalar) (scanPlan, bool) {
	switch arr := values.(type) {
	case *array.String:
		q := v.Text()
		return scanPlan{
			match:   func(i int) bool { return arr.IsValid(i) && arr.Value(i) == q },
			atLeast: func(i int) bool { return arr.IsNull(i) || arr.Value(i) >= q },
		}, true
	case *array.Binary:
		q := v.Bytes()
		return scanPlan{
			match:   func(i int) bool { return arr.IsValid(i) && bytes.Equal(arr.Value(i), q) },
			atLeast: func(i int) bool { return arr.IsNull(i) || bytes.Compare(arr.Value(i), q) >= 0 },
		}, true
	}

	if at, ok := signedAt(values); ok {
		t, beyond := signedTarget(v)
		if beyond != 0 {
			return beyondPlan(values, beyond > 0), true
		}
		plan := scanPlan{
			match:   func(i int) bool { return values.IsValid(i) && at(i) == t },
			atLeast: func(i int) bool { return values.IsNull(i) || at(i) >= t },
		}
		if vals, ok := int64Values(values); ok {
			plan.kernel = func() int { return k.IndexEqualInt64(vals, t) }
		}
		return plan, true
	}

	if at, ok := unsignedAt(values); ok {
		t, beyond := unsignedTarget(v)
		if beyond != 0 {
			return beyondPlan(values, beyond > 0), true
		}
		plan := scanPlan{
			match:   func(i int) bool { return values.IsValid(i) && at(i) == t },
			atLeast: func(i int) bool { return values.IsNull(i) || at(i) >= t },
		}
		if vals, ok := uint64Values(values); ok {
			plan.kernel = func() int { return k.IndexEqualUint64(vals, t) }
		}
		return plan, true
	}

	return scanPlan{}, false
}

// signedTarget maps an integer or boolean query into the signed domain.
// beyond is +1 when the query is larger than any int64.
func signedTarget(v elements.Scalar) (t int64, beyond int) {
	if v.Kind().IsUnsigned() {
		if v.Uint() > math.MaxInt64 {
			return 0, 1
		}
		return int64(v.Uint()), 0
	}
	return v.Int(), 0
}

// unsignedTarget maps an integer or boolean query into the unsigned
// domain. beyond is -1 for negative queries.
func unsignedTarget(v elements.Scalar) (t uint64, beyond int) {
	if v.Kind().IsUnsigned() {
		return v.Uint(), 0
	}
	if v.Int() < 0 {
		return 0, -1
	}
	return uint64(v.Int()), 0
}

func tolerantPlan(k kernels.Kernels, values arrow.Array, v elements.Scalar, tol Tolerance) (scanPlan, bool) {
	if isComplexStorage(values) || v.Kind().IsComplex() {
		at, ok := complexAt(values)
		if !ok {
			return scanPlan{}, false
		}
		vc, _ := v.AsComplex()
		return scanPlan{
			match: func(i int) bool { return values.IsValid(i) && tol.CloseToComplex(at(i), vc) },
		}, true
	}

	at, ok := floatAt(values)
	if !ok {
		return scanPlan{}, false
	}
	vf, _ := v.AsFloat64()
	delta := tol.Delta(vf)
	lo := vf - delta
	plan := scanPlan{
		match: func(i int) bool { return values.IsValid(i) && tol.CloseTo(at(i), vf) },
		atLeast: func(i int) bool {
			if values.IsNull(i) {
				return true
			}
			x := at(i)
			return math.IsNaN(x) || x >= lo
		},
	}
	if vals, ok := float64Values(values); ok {
		plan.kernel = func() int { return k.IndexCloseFloat64(vals, vf, delta) }
	}
	return plan, true
}

// specialPlan detects NaN structurally and matches infinities exactly.
func specialPlan(values arrow.Array, v elements.Scalar) (scanPlan, bool) {
	if v.IsNaN() {
		isNaN, ok := nanAt(values)
		if !ok {
			return scanPlan{}, false
		}
		return scanPlan{
			match:   func(i int) bool { return values.IsValid(i) && isNaN(i) },
			atLeast: func(i int) bool { return values.IsNull(i) || isNaN(i) },
		}, true
	}

	if isComplexStorage(values) {
		at, _ := complexAt(values)
		vc, _ := v.AsComplex()
		return scanPlan{
			match: func(i int) bool { return values.IsValid(i) && at(i) == vc },
		}, true
	}

	at, ok := floatAt(values)
	if !ok {
		return scanPlan{}, false
	}
	vc, _ := v.AsComplex()
	if imag(vc) != 0 {
		return scanPlan{match: never, atLeast: always}, true
	}
	vf := real(vc)
	return scanPlan{
		match: func(i int) bool { return values.IsValid(i) && at(i) == vf },
		atLeast: func(i int) bool {
			if values.IsNull(i) {
				return true
			}
			x := at(i)
			return math.IsNaN(x) || x >= vf
		},
	}, true
}

func nanAt(values arrow.Array) (func(int) bool, bool) {
	if arr, ok := values.(*array.FixedSizeList); ok {
		return func(i int) bool { return cmplx.IsNaN(elements.ComplexValue(arr, i)) }, true
	}
	at, ok := floatAt(values)
	if !ok {
		return nil, false
	}
	return func(i int) bool { return math.IsNaN(at(i)) }, true
}

func isComplexStorage(values arrow.Array) bool {
	_, ok := values.(*array.FixedSizeList)
	return ok
}

// timestampPlan compares ticks exactly across units. NaT (and a NaN
// query) locates the first null slot.
func timestampPlan(values arrow.Array, v elements.Scalar) (scanPlan, bool) {
	arr, ok := values.(*array.Timestamp)
	if !ok {
		return scanPlan{}, false
	}
	if v.IsNaT() || v.IsNaN() {
		return scanPlan{match: arr.IsNull, atLeast: arr.IsNull}, true
	}

	unit := arr.DataType().(*arrow.TimestampType).Unit
	ts, qunit := v.Timestamp()
	t, exact := elements.ConvertTicks(int64(ts), qunit, unit)
	if !exact {
		return scanPlan{
			match: never,
			atLeast: func(i int) bool {
				return arr.IsNull(i) || elements.CompareTimestamps(int64(arr.Value(i)), unit, int64(ts), qunit) >= 0
			},
		}, true
	}
	return scanPlan{
		match:   func(i int) bool { return arr.IsValid(i) && int64(arr.Value(i)) == t },
		atLeast: func(i int) bool { return arr.IsNull(i) || int64(arr.Value(i)) >= t },
	}, true
}
