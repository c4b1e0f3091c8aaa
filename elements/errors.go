package elements

import (
	"errors"

	"github.com/alekLukanen/errs"
)

var (
	ErrInvalidDimension  = errors.New("invalid dimension")
	ErrUnsupportedType   = errors.New("unsupported type")
	ErrIncompatibleTypes = errors.New("incompatible types")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrLengthMismatch    = errors.New("length mismatch")
	ErrNotFound          = errors.New("not found")
	ErrInvalidShape      = errors.New("invalid shape")
	ErrIndexOutOfBounds  = errors.New("index out of bounds")
	ErrAllMissing        = errors.New("all values are missing")
	ErrEmptyArray        = errors.New("empty array")
	ErrStepNotDivisible  = errors.New("step does not divide the range")
)

// NewStackError captures a stack for err. errs.StackError only unwraps
// to the errors wrapped into it, so the errors err wraps with %w are
// wrapped again to keep them reachable by errors.Is.
func NewStackError(err error) error {
	stackErr := errs.NewStackError(err)
	switch wrapped := err.(type) {
	case interface{ Unwrap() error }:
		if inner := wrapped.Unwrap(); inner != nil {
			return errs.Wrap(stackErr, inner)
		}
	case interface{ Unwrap() []error }:
		return errs.Wrap(stackErr, wrapped.Unwrap()...)
	}
	return stackErr
}
