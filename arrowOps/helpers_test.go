package arrowops

import (
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

// mockData builds a record with columns a (uint32), b (float32) and
// c (string) holding size rows in ascending or descending order.
func mockData(mem memory.Allocator, size int, order string) arrow.Record {
	rb := array.NewRecordBuilder(mem, mockSchema())
	defer rb.Release()

	for i := 0; i < size; i++ {
		v := i
		if order == "descending" {
			v = size - i - 1
		}
		rb.Field(0).(*array.Uint32Builder).Append(uint32(v))
		rb.Field(1).(*array.Float32Builder).Append(float32(v))
		rb.Field(2).(*array.StringBuilder).Append(string(rune('a' + v%26)))
	}
	return rb.NewRecord()
}

func int64Array(mem memory.Allocator, values []int64, valid []bool) arrow.Array {
	b := array.NewInt64Builder(mem)
	defer b.Release()
	b.AppendValues(values, valid)
	return b.NewArray()
}

func mockSchema() *arrow.Schema {
	return arrow.NewSchema(
		[]arrow.Field{
			{Name: "a", Type: arrow.PrimitiveTypes.Uint32, Nullable: true},
			{Name: "b", Type: arrow.PrimitiveTypes.Float32, Nullable: true},
			{Name: "c", Type: arrow.BinaryTypes.String, Nullable: true},
		}, nil)
}
