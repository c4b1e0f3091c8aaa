package shapeops

import (
	"fmt"

	"github.com/alekLukanen/errs"
	"github.com/alekLukanen/ndarrow/arrowOps"
	"github.com/alekLukanen/ndarrow/elements"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

/*
* T is the row/column transpose. A 1-D array becomes a (n, 1) column and
* a (n, 1) column becomes 1-D. Other 2-D arrays are transposed and arrays
* of rank three or more swap their last two axes. 0-D arrays have
* nothing to transpose.
 */
func T(mem memory.Allocator, arr *elements.Array) (*elements.Array, error) {
	shape := arr.Shape()
	switch {
	case len(shape) == 0:
		return nil, elements.NewStackError(fmt.Errorf("%w| transpose of a 0-D array", elements.ErrInvalidDimension))
	case len(shape) == 1:
		return arr.Reshape([]int{shape[0], 1})
	case len(shape) == 2 && shape[1] == 1:
		return arr.Reshape([]int{shape[0]})
	}

	rows, cols := shape[len(shape)-2], shape[len(shape)-1]
	blocks := 1
	for _, dim := range shape[:len(shape)-2] {
		blocks *= dim
	}

	indices := make([]int, 0, arr.Len())
	for block := 0; block < blocks; block++ {
		base := block * rows * cols
		for col := 0; col < cols; col++ {
			for row := 0; row < rows; row++ {
				indices = append(indices, base+row*cols+col)
			}
		}
	}

	outShape := shape
	outShape[len(shape)-2], outShape[len(shape)-1] = cols, rows

	if arr.Kind() == elements.KindObject {
		objs := arr.Objects()
		out := make([]any, len(indices))
		for i, idx := range indices {
			out[i] = objs[idx]
		}
		return elements.NewObjectArrayWithShape(out, outShape)
	}

	values, err := arrowops.TakeArray(mem, arr.Values(), indices)
	if err != nil {
		return nil, errs.Wrap(err)
	}
	defer values.Release()
	return elements.NewArrayWithShape(values, outShape)
}
