package findops

import (
	"bytes"
	"fmt"
	"math"
	"math/big"

	"github.com/alekLukanen/ndarrow/elements"
	"github.com/alekLukanen/ndarrow/internal/kernels"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/decimal128"
)

// abovePlan resolves "strictly greater than v". The query is converted
// once into a threshold in the storage's own domain so the scan compares
// native values. Missing values are never above anything.
func abovePlan(k kernels.Kernels, arr *elements.Array, v elements.Scalar) (scanPlan, error) {
	kind, vk := arr.Kind(), v.Kind()

	if kind == elements.KindObject {
		objs := arr.Objects()
		if v.IsNaN() || v.IsNaT() {
			return noneAbove(), nil
		}
		return scanPlan{
			match: func(i int) bool {
				c, ok := elements.CompareValues(elements.Object(objs[i]), v)
				return ok && c > 0
			},
			atLeast: func(i int) bool {
				c, ok := elements.CompareValues(elements.Object(objs[i]), v)
				return !ok || c > 0
			},
		}, nil
	}

	values := arr.Values()
	switch {
	case kind == elements.KindTimestamp:
		if v.IsNaT() || v.IsNaN() {
			return noneAbove(), nil
		}
		if vk != elements.KindTimestamp {
			return scanPlan{}, incompatible(kind, v)
		}
		return timestampAbovePlan(values.(*array.Timestamp), v), nil
	case vk == elements.KindTimestamp || vk == elements.KindObject:
		return scanPlan{}, incompatible(kind, v)
	case isText(kind) || isText(vk):
		if kind != vk {
			return scanPlan{}, incompatible(kind, v)
		}
		return textAbovePlan(values, v), nil
	case v.IsNaN():
		return noneAbove(), nil
	}

	if at, ok := signedAt(values); ok {
		t, beyond := signedFloor(v)
		if beyond != 0 {
			return beyondAbovePlan(values, beyond > 0), nil
		}
		plan := scanPlan{
			match:   func(i int) bool { return values.IsValid(i) && at(i) > t },
			atLeast: func(i int) bool { return values.IsNull(i) || at(i) > t },
		}
		if vals, ok := int64Values(values); ok {
			plan.kernel = func() int { return k.IndexGreaterInt64(vals, t) }
		}
		return plan, nil
	}

	if at, ok := unsignedAt(values); ok {
		t, beyond := unsignedFloor(v)
		if beyond != 0 {
			return beyondAbovePlan(values, beyond > 0), nil
		}
		return scanPlan{
			match:   func(i int) bool { return values.IsValid(i) && at(i) > t },
			atLeast: func(i int) bool { return values.IsNull(i) || at(i) > t },
		}, nil
	}

	if dec, ok := values.(*array.Decimal128); ok {
		return decimalAbovePlan(dec, v), nil
	}

	at, ok := floatAt(values)
	if !ok {
		return scanPlan{}, elements.NewStackError(
			fmt.Errorf("%w| ordering on %s storage", elements.ErrUnsupportedType, values.DataType()),
		)
	}
	vf, _ := v.AsFloat64()
	plan := scanPlan{
		match: func(i int) bool { return values.IsValid(i) && at(i) > vf },
		atLeast: func(i int) bool {
			if values.IsNull(i) {
				return true
			}
			x := at(i)
			return math.IsNaN(x) || x > vf
		},
	}
	if vals, ok := float64Values(values); ok {
		plan.kernel = func() int { return k.IndexGreaterFloat64(vals, vf) }
	}
	return plan, nil
}

func noneAbove() scanPlan {
	return scanPlan{match: never, atLeast: always}
}

// beyondAbovePlan handles thresholds outside the storable range. When
// the threshold is above every value nothing matches; when it is below,
// every non-null value matches.
func beyondAbovePlan(values arrow.Array, above bool) scanPlan {
	if above {
		return noneAbove()
	}
	return scanPlan{match: values.IsValid, atLeast: always}
}

func textAbovePlan(values arrow.Array, v elements.Scalar) scanPlan {
	switch arr := values.(type) {
	case *array.String:
		q := v.Text()
		return scanPlan{
			match:   func(i int) bool { return arr.IsValid(i) && arr.Value(i) > q },
			atLeast: func(i int) bool { return arr.IsNull(i) || arr.Value(i) > q },
		}
	case *array.Binary:
		q := v.Bytes()
		return scanPlan{
			match:   func(i int) bool { return arr.IsValid(i) && bytes.Compare(arr.Value(i), q) > 0 },
			atLeast: func(i int) bool { return arr.IsNull(i) || bytes.Compare(arr.Value(i), q) > 0 },
		}
	}
	return noneAbove()
}

func timestampAbovePlan(arr *array.Timestamp, v elements.Scalar) scanPlan {
	unit := arr.DataType().(*arrow.TimestampType).Unit
	ts, qunit := v.Timestamp()
	t, beyond := floorTicks(int64(ts), qunit, unit)
	if beyond != 0 {
		return beyondAbovePlan(arr, beyond > 0)
	}
	return scanPlan{
		match:   func(i int) bool { return arr.IsValid(i) && int64(arr.Value(i)) > t },
		atLeast: func(i int) bool { return arr.IsNull(i) || int64(arr.Value(i)) > t },
	}
}

func decimalAbovePlan(arr *array.Decimal128, v elements.Scalar) scanPlan {
	scale := arr.DataType().(*arrow.Decimal128Type).Scale
	t, beyond := decimalFloor(v, scale)
	if beyond != 0 {
		return beyondAbovePlan(arr, beyond > 0)
	}
	return scanPlan{
		match:   func(i int) bool { return arr.IsValid(i) && elements.CompareDecimal(arr.Value(i), t) > 0 },
		atLeast: func(i int) bool { return arr.IsNull(i) || elements.CompareDecimal(arr.Value(i), t) > 0 },
	}
}

// floorOf returns floor(v) of a real, non NaN query. Infinities return
// a nil integer and the sign of the infinity.
func floorOf(v elements.Scalar) (*big.Int, int) {
	if v.IsInf() {
		if f, _ := v.AsFloat64(); f > 0 {
			return nil, 1
		}
		return nil, -1
	}
	r, _ := v.AsRat()
	// Euclidean division by the positive denominator is the floor.
	return new(big.Int).Div(r.Num(), r.Denom()), 0
}

// signedFloor is the int64 threshold t with x > v iff x > t for every
// int64 x. beyond reports a threshold outside the int64 range.
func signedFloor(v elements.Scalar) (int64, int) {
	switch {
	case v.Kind().IsSigned():
		return v.Int(), 0
	case v.Kind().IsUnsigned():
		return signedTarget(v)
	}
	f, beyond := floorOf(v)
	if beyond != 0 {
		return 0, beyond
	}
	if f.IsInt64() {
		return f.Int64(), 0
	}
	return 0, f.Sign()
}

func unsignedFloor(v elements.Scalar) (uint64, int) {
	switch {
	case v.Kind().IsSigned() || v.Kind().IsUnsigned():
		return unsignedTarget(v)
	}
	f, beyond := floorOf(v)
	if beyond != 0 {
		return 0, beyond
	}
	if f.Sign() < 0 {
		return 0, -1
	}
	if f.IsUint64() {
		return f.Uint64(), 0
	}
	return 0, 1
}

// decimalFloor is the threshold in units of 10^-scale.
func decimalFloor(v elements.Scalar, scale int32) (decimal128.Num, int) {
	if v.IsInf() {
		_, beyond := floorOf(v)
		return decimal128.Num{}, beyond
	}
	r, _ := v.AsRat()
	r.Mul(r, elements.DecimalRat(decimal128.FromI64(1), -scale))
	f := new(big.Int).Div(r.Num(), r.Denom())
	if f.BitLen() > 127 {
		return decimal128.Num{}, f.Sign()
	}
	return decimal128.FromBigInt(f), 0
}

// floorTicks converts ticks to another unit rounding toward negative
// infinity. beyond reports an overflow of the target range.
func floorTicks(ticks int64, from, to arrow.TimeUnit) (int64, int) {
	fm, tm := int64(from.Multiplier()), int64(to.Multiplier())
	if fm >= tm {
		t, ok := elements.ConvertTicks(ticks, from, to)
		if ok {
			return t, 0
		}
		if ticks > 0 {
			return 0, 1
		}
		return 0, -1
	}
	ratio := tm / fm
	q := ticks / ratio
	if ticks%ratio != 0 && ticks < 0 {
		q--
	}
	return q, 0
}
