package arrowops

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/apache/arrow/go/v17/arrow/memory"
)

func TestWritingAndReadingParquetFile(t *testing.T) {
	ctx := context.Background()
	mem := memory.NewGoAllocator()

	data := mockData(mem, 10, "ascending")
	defer data.Release()

	filePath := filepath.Join(t.TempDir(), "test.parquet")

	err := WriteRecordToParquetFile(ctx, mem, data, filePath)
	if err != nil {
		t.Fatalf("WriteRecordToParquetFile failed: %v", err)
	}

	readRecord, err := ReadParquetRecord(ctx, mem, filePath)
	if err != nil {
		t.Fatalf("ReadParquetRecord failed: %v", err)
	}
	defer readRecord.Release()
	if readRecord.NumRows() != 10 {
		t.Fatalf("ReadParquetRecord failed: expected 10 rows, got %d", readRecord.NumRows())
	}

	if !RecordsEqual(data, readRecord) {
		t.Log("Expected:", data)
		t.Log("Got:", readRecord)
		t.Errorf("ReadParquetRecord failed: records are not equal")
		return
	}

}
