package findops

import (
	"github.com/alekLukanen/ndarrow/elements"
	"github.com/alekLukanen/ndarrow/internal/kernels"
	"github.com/apache/arrow/go/v17/arrow/array"
)

// nonzeroPlan matches values that are truthy under their kind's own
// rule. Nulls and nil objects are falsy, NaN is truthy.
func nonzeroPlan(k kernels.Kernels, arr *elements.Array) scanPlan {
	if arr.Kind() == elements.KindObject {
		objs := arr.Objects()
		return scanPlan{match: func(i int) bool { return !elements.Object(objs[i]).IsZero() }}
	}

	values := arr.Values()
	switch typed := values.(type) {
	case *array.String:
		return scanPlan{match: func(i int) bool { return typed.IsValid(i) && typed.ValueLen(i) > 0 }}
	case *array.Binary:
		return scanPlan{match: func(i int) bool { return typed.IsValid(i) && typed.ValueLen(i) > 0 }}
	case *array.Timestamp:
		return scanPlan{match: func(i int) bool { return typed.IsValid(i) && typed.Value(i) != 0 }}
	case *array.Decimal128:
		return scanPlan{match: func(i int) bool { return typed.IsValid(i) && typed.Value(i).Sign() != 0 }}
	case *array.FixedSizeList:
		return scanPlan{match: func(i int) bool { return typed.IsValid(i) && elements.ComplexValue(typed, i) != 0 }}
	}

	if at, ok := signedAt(values); ok {
		plan := scanPlan{match: func(i int) bool { return values.IsValid(i) && at(i) != 0 }}
		if vals, ok := int64Values(values); ok {
			plan.kernel = func() int { return k.IndexNonzeroInt64(vals) }
		}
		return plan
	}
	if at, ok := unsignedAt(values); ok {
		return scanPlan{match: func(i int) bool { return values.IsValid(i) && at(i) != 0 }}
	}
	if at, ok := floatAt(values); ok {
		plan := scanPlan{match: func(i int) bool { return values.IsValid(i) && at(i) != 0 }}
		if vals, ok := float64Values(values); ok {
			plan.kernel = func() int { return k.IndexNonzeroFloat64(vals) }
		}
		return plan
	}
	return scanPlan{match: never}
}
