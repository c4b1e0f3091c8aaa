package shapeops

import (
	"fmt"

	"github.com/alekLukanen/ndarrow/arrowOps"
	"github.com/alekLukanen/ndarrow/elements"
)

type extremum int

const (
	minimum extremum = 1
	maximum extremum = -1
)

// Argmin locates the first smallest value in row-major order. A missing
// value (NaN, NaT or null) wins over every other value.
func Argmin(arr *elements.Array) (elements.Location, error) {
	return argExtremum(arr, minimum, true)
}

// Argmax locates the first largest value in row-major order. A missing
// value (NaN, NaT or null) wins over every other value.
func Argmax(arr *elements.Array) (elements.Location, error) {
	return argExtremum(arr, maximum, true)
}

// NanArgmin is Argmin ignoring missing values.
func NanArgmin(arr *elements.Array) (elements.Location, error) {
	return argExtremum(arr, minimum, false)
}

// NanArgmax is Argmax ignoring missing values.
func NanArgmax(arr *elements.Array) (elements.Location, error) {
	return argExtremum(arr, maximum, false)
}

func argExtremum(arr *elements.Array, want extremum, propagate bool) (elements.Location, error) {
	if arr.Len() == 0 {
		return elements.Location{}, elements.NewStackError(
			fmt.Errorf("%w| extremum of an empty %s array", elements.ErrEmptyArray, arr.Kind()),
		)
	}

	missing, compare, err := orderOf(arr)
	if err != nil {
		return elements.Location{}, err
	}

	best := -1
	for i := 0; i < arr.Len(); i++ {
		if missing(i) {
			if propagate {
				return elements.Locate(arr, i), nil
			}
			continue
		}
		if best < 0 {
			best = i
			continue
		}
		c, err := compare(i, best)
		if err != nil {
			return elements.Location{}, err
		}
		if c*int(want) < 0 {
			best = i
		}
	}

	if best < 0 {
		return elements.Location{}, elements.NewStackError(
			fmt.Errorf("%w| all %d values are missing", elements.ErrAllMissing, arr.Len()),
		)
	}
	return elements.Locate(arr, best), nil
}

func orderOf(arr *elements.Array) (func(int) bool, func(int, int) (int, error), error) {
	if arr.Kind() != elements.KindObject {
		ord, err := arrowops.NewValueOrder(arr.Values())
		if err != nil {
			return nil, nil, elements.NewStackError(
				fmt.Errorf("%w| extremum of %s: %s", elements.ErrUnsupportedType, arr.Kind(), err),
			)
		}
		return ord.Missing, func(i, j int) (int, error) { return ord.Compare(i, j), nil }, nil
	}

	scalars := make([]elements.Scalar, arr.Len())
	for i, obj := range arr.Objects() {
		scalars[i] = elements.Object(obj)
	}
	missing := func(i int) bool { return scalars[i].IsMissing() }
	compare := func(i, j int) (int, error) {
		c, ok := elements.CompareValues(scalars[i], scalars[j])
		if !ok {
			return 0, elements.NewStackError(fmt.Errorf(
				"%w| cannot order %s (%s) against %s (%s)",
				elements.ErrUnsupportedType, scalars[i], scalars[i].Kind(), scalars[j], scalars[j].Kind(),
			))
		}
		return c, nil
	}
	return missing, compare, nil
}
