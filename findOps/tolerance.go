package findops

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/alekLukanen/ndarrow/elements"
)

// Tolerance is the closeness window used when either side of a
// comparison is inexact: |a - v| <= Atol + Rtol*|v|.
type Tolerance struct {
	Rtol float64
	Atol float64
}

func DefaultTolerance() Tolerance {
	return Tolerance{Rtol: 1e-5, Atol: 1e-8}
}

func (obj Tolerance) validate() error {
	if !(obj.Rtol >= 0) || !(obj.Atol >= 0) || math.IsInf(obj.Rtol, 0) || math.IsInf(obj.Atol, 0) {
		return elements.NewStackError(
			fmt.Errorf("%w| tolerance rtol=%g atol=%g", elements.ErrInvalidArgument, obj.Rtol, obj.Atol),
		)
	}
	return nil
}

// Delta is the half width of the window around v.
func (obj Tolerance) Delta(v float64) float64 {
	return obj.Atol + obj.Rtol*math.Abs(v)
}

func (obj Tolerance) ComplexDelta(v complex128) float64 {
	return obj.Atol + obj.Rtol*cmplx.Abs(v)
}

// CloseTo reports whether a lies in the window around v. NaN is never
// close to anything and infinities are only close to themselves.
func (obj Tolerance) CloseTo(a, v float64) bool {
	if math.IsInf(a, 0) || math.IsInf(v, 0) {
		return a == v
	}
	return math.Abs(a-v) <= obj.Delta(v)
}

// CloseToComplex applies the window to the modulus of the difference.
func (obj Tolerance) CloseToComplex(a, v complex128) bool {
	if cmplx.IsInf(a) || cmplx.IsInf(v) {
		return a == v
	}
	return cmplx.Abs(a-v) <= obj.ComplexDelta(v)
}
