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
* Builds an array from record columns. One column gives a 1-D array,
* several columns of the same type give a 2-D array with one row per
* record row and one column per named column.
 */
func RecordToArray(mem memory.Allocator, record arrow.Record, columns ...string) (*elements.Array, error) {
	if len(columns) == 0 {
		for _, field := range record.Schema().Fields() {
			columns = append(columns, field.Name)
		}
	}

	selected := make([]arrow.Array, len(columns))
	for idx, column := range columns {
		colIdxs := record.Schema().FieldIndices(column)
		if len(colIdxs) == 0 {
			return nil, elements.NewStackError(fmt.Errorf("%w| column name: %s", ErrColumnNotFound, column))
		}
		selected[idx] = record.Column(colIdxs[0])
	}

	if len(selected) == 1 {
		return elements.NewArray(selected[0])
	}

	// column major after concatenation, gathered back in row major order
	stacked, err := ConcatenateArrays(mem, selected...)
	if err != nil {
		return nil, errs.Wrap(err, fmt.Errorf("columns %v", columns))
	}
	defer stacked.Release()

	numRows := int(record.NumRows())
	indices := make([]int, 0, numRows*len(selected))
	for row := 0; row < numRows; row++ {
		for col := range selected {
			indices = append(indices, col*numRows+row)
		}
	}
	rowMajor, err := TakeArray(mem, stacked, indices)
	if err != nil {
		return nil, errs.Wrap(err)
	}
	defer rowMajor.Release()

	return elements.NewArrayWithShape(rowMajor, []int{numRows, len(selected)})
}

/*
* Splits a 1-D or 2-D array back into record columns. Names default to
* column_0, column_1, ...
 */
func ArrayToRecord(mem memory.Allocator, arr *elements.Array, names ...string) (arrow.Record, error) {
	if arr.Values() == nil {
		return nil, elements.NewStackError(fmt.Errorf("%w| object arrays have no record form", ErrUnsupportedDataType))
	}

	var numRows, numCols int
	switch arr.NDim() {
	case 1:
		numRows, numCols = arr.Len(), 1
	case 2:
		numRows, numCols = arr.Shape()[0], arr.Shape()[1]
	default:
		return nil, elements.NewStackError(
			fmt.Errorf("%w| expected a 1-D or 2-D array, got %d-D", elements.ErrInvalidDimension, arr.NDim()),
		)
	}
	if len(names) == 0 {
		for col := 0; col < numCols; col++ {
			names = append(names, fmt.Sprintf("column_%d", col))
		}
	}
	if len(names) != numCols {
		return nil, elements.NewStackError(
			fmt.Errorf("%w| %d names for %d columns", elements.ErrLengthMismatch, len(names), numCols),
		)
	}

	fields := make([]arrow.Field, numCols)
	columns := make([]arrow.Array, numCols)
	defer func() {
		for _, col := range columns {
			if col != nil {
				col.Release()
			}
		}
	}()
	for col := 0; col < numCols; col++ {
		indices := make([]int, numRows)
		for row := range indices {
			indices[row] = row*numCols + col
		}
		taken, err := TakeArray(mem, arr.Values(), indices)
		if err != nil {
			return nil, errs.Wrap(err)
		}
		columns[col] = taken
		fields[col] = arrow.Field{Name: names[col], Type: arr.Values().DataType(), Nullable: true}
	}

	return array.NewRecord(arrow.NewSchema(fields, nil), columns, int64(numRows)), nil
}
