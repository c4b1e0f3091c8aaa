package shapeops

import (
	"fmt"
	"math"

	"github.com/alekLukanen/ndarrow/elements"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

type RangeOptions struct {
	// relative slack allowed when checking that a float step divides
	// the span
	Tolerance float64
	// build [start, stop) instead of failing when the step does not
	// land on stop
	HalfOpenFallback bool
}

func NewRangeOptions() RangeOptions {
	return RangeOptions{Tolerance: 1e-9}
}

// IRangeInt builds the inclusive range start, start+step, ..., stop as
// an Int64 array. A range whose step points away from stop is empty.
func IRangeInt(mem memory.Allocator, start, stop, step int64, opts RangeOptions) (*elements.Array, error) {
	if step == 0 {
		return nil, elements.NewStackError(fmt.Errorf("%w| range step must not be zero", elements.ErrInvalidArgument))
	}

	span := stop - start
	count := int64(0)
	switch {
	case span != 0 && (span < 0) != (step < 0):
		count = 0
	case span%step == 0:
		count = span/step + 1
	case opts.HalfOpenFallback:
		count = span/step + 1
	default:
		return nil, elements.NewStackError(
			fmt.Errorf("%w| step %d does not divide %d..%d", elements.ErrStepNotDivisible, step, start, stop),
		)
	}

	b := array.NewInt64Builder(mem)
	defer b.Release()
	b.Reserve(int(count))
	for i := int64(0); i < count; i++ {
		b.Append(start + i*step)
	}
	values := b.NewArray()
	defer values.Release()
	return elements.NewArray(values)
}

/*
* IRangeFloat builds the inclusive range start, start+step, ..., stop as
* a Float64 array. Values are computed as start+i*step so rounding does
* not accumulate. The step must divide the span to within the relative
* tolerance; the last value is then exactly stop.
 */
func IRangeFloat(mem memory.Allocator, start, stop, step float64, opts RangeOptions) (*elements.Array, error) {
	for _, v := range []float64{start, stop, step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, elements.NewStackError(
				fmt.Errorf("%w| range bounds must be finite: %v..%v by %v", elements.ErrInvalidArgument, start, stop, step),
			)
		}
	}
	if step == 0 {
		return nil, elements.NewStackError(fmt.Errorf("%w| range step must not be zero", elements.ErrInvalidArgument))
	}
	if opts.Tolerance < 0 || math.IsNaN(opts.Tolerance) {
		return nil, elements.NewStackError(
			fmt.Errorf("%w| range tolerance %v", elements.ErrInvalidArgument, opts.Tolerance),
		)
	}

	steps := (stop - start) / step
	whole := math.Round(steps)
	count := 0
	exact := false
	switch {
	case math.Abs(steps-whole) <= opts.Tolerance*math.Max(1, math.Abs(steps)):
		if whole >= 0 {
			count = int(whole) + 1
			exact = true
		}
	case steps < 0:
		// step points away from stop
	case opts.HalfOpenFallback:
		count = int(math.Ceil(steps))
	default:
		return nil, elements.NewStackError(
			fmt.Errorf("%w| step %v does not divide %v..%v", elements.ErrStepNotDivisible, step, start, stop),
		)
	}

	b := array.NewFloat64Builder(mem)
	defer b.Release()
	b.Reserve(count)
	for i := 0; i < count; i++ {
		if exact && i == count-1 {
			b.Append(stop)
			continue
		}
		b.Append(start + float64(i)*step)
	}
	values := b.NewArray()
	defer values.Release()
	return elements.NewArray(values)
}
