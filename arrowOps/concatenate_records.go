package arrowops

import (
	"fmt"

	"github.com/alekLukanen/errs"
	"github.com/alekLukanen/ndarrow/elements"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

// ConcatenateRecords stacks records sharing one schema into a single
// record.
func ConcatenateRecords(mem memory.Allocator, records ...arrow.Record) (arrow.Record, error) {
	if len(records) == 0 {
		return nil, elements.NewStackError(fmt.Errorf("%w| no records to concatenate", ErrNoDataSupplied))
	}
	schema := records[0].Schema()
	numRows := int64(0)
	for _, record := range records {
		if !schema.Equal(record.Schema()) {
			return nil, elements.NewStackError(fmt.Errorf("%w| record schemas differ", ErrDataTypesNotEqual))
		}
		numRows += record.NumRows()
	}

	// group all of the columns from each record together
	// so that we can concatenate them together
	columns := make([]arrow.Array, schema.NumFields())
	defer func() {
		for _, col := range columns {
			if col != nil {
				col.Release()
			}
		}
	}()
	for colIdx := range columns {
		parts := make([]arrow.Array, len(records))
		for recIdx, record := range records {
			parts[recIdx] = record.Column(colIdx)
		}
		col, err := ConcatenateArrays(mem, parts...)
		if err != nil {
			return nil, errs.Wrap(err, fmt.Errorf("column %s", schema.Field(colIdx).Name))
		}
		columns[colIdx] = col
	}

	return array.NewRecord(schema, columns, numRows), nil
}
