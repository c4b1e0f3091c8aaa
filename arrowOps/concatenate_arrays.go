package arrowops

import (
	"fmt"

	"github.com/alekLukanen/errs"
	"github.com/alekLukanen/ndarrow/elements"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

/*
* Returns a concatenated array from the provided homogeneous arrays.
* If only one array is provided the resulting array will still be a
* net new array.
 */
func ConcatenateArrays(mem memory.Allocator, arrays ...arrow.Array) (arrow.Array, error) {
	if len(arrays) == 0 {
		return nil, elements.NewStackError(
			fmt.Errorf("%w| expected at least one array but received 0", ErrNoDataSupplied),
		)
	}
	arrayDataType := arrays[0].DataType()
	for idx, arr := range arrays[1:] {
		if !arrow.TypeEqual(arrayDataType, arr.DataType()) {
			return nil, elements.NewStackError(
				fmt.Errorf("%w| array %d is %s, expected %s", ErrDataTypesNotEqual, idx+1, arr.DataType(), arrayDataType),
			)
		}
	}

	concatenated, err := array.Concatenate(arrays, mem)
	if err != nil {
		return nil, errs.Wrap(err)
	}
	return concatenated, nil
}
