package arrowops

import "errors"

var (
	ErrUnsupportedDataType = errors.New("unsupported data type")
	ErrColumnNotFound      = errors.New("column not found")
	ErrDataTypesNotEqual   = errors.New("data types not equal")
	ErrNoDataSupplied      = errors.New("no data supplied")
	ErrIndexOutOfBounds    = errors.New("index out of bounds")
)
