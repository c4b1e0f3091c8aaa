package findops

import (
	"fmt"

	"github.com/alekLukanen/ndarrow/elements"
	"github.com/alekLukanen/ndarrow/internal/kernels"
)

// Backend selects the scan kernels a Locator uses.
type Backend = kernels.Backend

const (
	BackendGeneric  = kernels.Generic
	BackendUnrolled = kernels.Unrolled
)

// ParseBackend accepts "generic", "unrolled" or "auto".
func ParseBackend(name string) (Backend, bool) {
	return kernels.ParseBackend(name)
}

type LocatorOptions struct {
	Backend Backend
}

// NewLocatorOptions uses the backend detected for this machine, or the
// one named by the NDARROW_KERNELS environment variable.
func NewLocatorOptions() LocatorOptions {
	return LocatorOptions{Backend: kernels.Default()}
}

// Locator runs the locate operations with a fixed kernel backend. It
// holds no mutable state and is safe for concurrent use.
type Locator struct {
	kernels kernels.Kernels
}

func NewLocator(options LocatorOptions) *Locator {
	return &Locator{kernels: kernels.For(options.Backend)}
}

func (obj *Locator) Backend() Backend {
	return obj.kernels.Backend()
}

type FindOptions struct {
	Tolerance Tolerance
	// Sorted asserts a 1-D array in ascending order with missing values
	// last and switches to bisection. The order is not verified.
	Sorted bool
	// Missing is returned as the Location index when nothing matches.
	Missing int
	// Raises turns absence into ErrNotFound.
	Raises bool
}

func NewFindOptions() FindOptions {
	return FindOptions{Tolerance: DefaultTolerance(), Missing: -1}
}

type AboveOptions struct {
	Sorted  bool
	Missing int
	Raises  bool
}

func NewAboveOptions() AboveOptions {
	return AboveOptions{Missing: -1}
}

type NonzeroOptions struct {
	Missing int
	Raises  bool
}

func NewNonzeroOptions() NonzeroOptions {
	return NonzeroOptions{Missing: -1}
}

// Find returns the location of the first element equal to v in
// row-major order. Floats, complex numbers and decimals on either side
// compare within the tolerance window.
func (obj *Locator) Find(arr *elements.Array, v elements.Scalar, options FindOptions) (elements.Location, error) {
	if options.Sorted && arr.NDim() != 1 {
		return elements.Location{}, elements.NewStackError(
			fmt.Errorf("%w| sorted search needs a 1-D array, got %d-D", elements.ErrInvalidArgument, arr.NDim()),
		)
	}
	if err := options.Tolerance.validate(); err != nil {
		return elements.Location{}, err
	}

	mode, err := Classify(arr.Kind(), v)
	if err != nil {
		return elements.Location{}, err
	}
	if options.Sorted {
		if arr.Kind().IsComplex() || v.Kind().IsComplex() {
			return elements.Location{}, elements.NewStackError(
				fmt.Errorf("%w| complex values have no order to bisect", elements.ErrUnsupportedType),
			)
		}
		if mode == ModeObjectNaNScan {
			return elements.Location{}, elements.NewStackError(
				fmt.Errorf("%w| sorted search for %s in an object array", elements.ErrInvalidArgument, v),
			)
		}
	}

	plan, err := findPlan(obj.kernels, arr, v, mode, options.Tolerance)
	if err != nil {
		return elements.Location{}, err
	}

	idx := obj.run(plan, arr, options.Sorted)
	if idx < 0 {
		return absent(options.Missing, options.Raises, fmt.Errorf("%w| %s is not in the array", elements.ErrNotFound, v))
	}
	return elements.Locate(arr, idx), nil
}

// FirstAbove returns the location of the first element strictly greater
// than v in a 1-D array.
func (obj *Locator) FirstAbove(arr *elements.Array, v elements.Scalar, options AboveOptions) (elements.Location, error) {
	if arr.Kind().IsComplex() || v.Kind().IsComplex() {
		return elements.Location{}, elements.NewStackError(
			fmt.Errorf("%w| complex values are not ordered", elements.ErrUnsupportedType),
		)
	}
	if arr.Kind().IsBool() || v.Kind().IsBool() {
		return elements.Location{}, elements.NewStackError(
			fmt.Errorf("%w| bool values have no greater than", elements.ErrUnsupportedType),
		)
	}
	if arr.NDim() != 1 {
		return elements.Location{}, elements.NewStackError(
			fmt.Errorf("%w| expected a 1-D array, got %d-D", elements.ErrInvalidDimension, arr.NDim()),
		)
	}

	plan, err := abovePlan(obj.kernels, arr, v)
	if err != nil {
		return elements.Location{}, err
	}

	idx := obj.run(plan, arr, options.Sorted)
	if idx < 0 {
		return absent(options.Missing, options.Raises, fmt.Errorf("%w| no values above %s", elements.ErrNotFound, v))
	}
	return elements.Locate(arr, idx), nil
}

// FirstNonzero returns the location of the first truthy element of a
// 1-D array.
func (obj *Locator) FirstNonzero(arr *elements.Array, options NonzeroOptions) (elements.Location, error) {
	if arr.NDim() != 1 {
		return elements.Location{}, elements.NewStackError(
			fmt.Errorf("%w| expected a 1-D array, got %d-D", elements.ErrInvalidDimension, arr.NDim()),
		)
	}

	idx := obj.run(nonzeroPlan(obj.kernels, arr), arr, false)
	if idx < 0 {
		return absent(options.Missing, options.Raises, fmt.Errorf("%w| all values are zero", elements.ErrNotFound))
	}
	return elements.Locate(arr, idx), nil
}

func (obj *Locator) run(plan scanPlan, arr *elements.Array, sorted bool) int {
	if sorted && plan.atLeast != nil {
		return plan.sortedProbe(arr.Len())
	}
	return plan.linearScan(arr.Len())
}

func absent(missing int, raises bool, err error) (elements.Location, error) {
	if raises {
		return elements.Location{}, elements.NewStackError(err)
	}
	return elements.Missing(missing), nil
}

var defaultLocator = NewLocator(NewLocatorOptions())

// Find runs Locator.Find with the default backend.
func Find(arr *elements.Array, v elements.Scalar, options FindOptions) (elements.Location, error) {
	return defaultLocator.Find(arr, v, options)
}

func FirstAbove(arr *elements.Array, v elements.Scalar, options AboveOptions) (elements.Location, error) {
	return defaultLocator.FirstAbove(arr, v, options)
}

func FirstNonzero(arr *elements.Array, options NonzeroOptions) (elements.Location, error) {
	return defaultLocator.FirstNonzero(arr, options)
}
