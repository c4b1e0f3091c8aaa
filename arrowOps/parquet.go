package arrowops

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/alekLukanen/errs"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/apache/arrow/go/v17/parquet"
	"github.com/apache/arrow/go/v17/parquet/compress"
	parquetFileUtils "github.com/apache/arrow/go/v17/parquet/file"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"
)

func WriteRecordToParquetFile(ctx context.Context, mem memory.Allocator, record arrow.Record, filePath string) error {

	file, err := os.Create(filePath)
	if err != nil {
		return errs.Wrap(err)
	}
	defer file.Close()

	parquetWriteProps := parquet.NewWriterProperties(
		parquet.WithStats(true),
		parquet.WithCompression(compress.Codecs.Zstd),
		parquet.WithAllocator(mem),
	)
	arrowWriteProps := pqarrow.NewArrowWriterProperties(
		pqarrow.WithStoreSchema(),
		pqarrow.WithAllocator(mem),
	)
	parquetFileWriter, err := pqarrow.NewFileWriter(record.Schema(), file, parquetWriteProps, arrowWriteProps)
	if err != nil {
		return errs.Wrap(err)
	}

	err = parquetFileWriter.WriteBuffered(record)
	if err != nil {
		parquetFileWriter.Close()
		return errs.Wrap(err)
	}
	return errs.Wrap(parquetFileWriter.Close())
}

// ReadParquetFile reads every row group of the file. The caller releases
// the returned records.
func ReadParquetFile(ctx context.Context, mem memory.Allocator, filePath string) ([]arrow.Record, error) {

	parquetFileReader, err := parquetFileUtils.OpenParquetFile(filePath, false)
	if err != nil {
		return nil, errs.Wrap(err)
	}
	defer parquetFileReader.Close()

	parquetReadProps := pqarrow.ArrowReadProperties{
		Parallel:  true,
		BatchSize: 1 << 20, // 1MB
	}
	arrowFileReader, err := pqarrow.NewFileReader(parquetFileReader, parquetReadProps, mem)
	if err != nil {
		return nil, errs.Wrap(err)
	}

	recordReader, err := arrowFileReader.GetRecordReader(ctx, nil, nil)
	if err != nil {
		return nil, errs.Wrap(err)
	}
	defer recordReader.Release()

	records := make([]arrow.Record, 0)
	for recordReader.Next() {
		record := recordReader.Record()
		record.Retain()
		records = append(records, record)
	}
	if err := recordReader.Err(); err != nil && !errors.Is(err, io.EOF) {
		for _, record := range records {
			record.Release()
		}
		return nil, errs.Wrap(err)
	}

	return records, nil
}

// ReadParquetRecord reads the file into a single record.
func ReadParquetRecord(ctx context.Context, mem memory.Allocator, filePath string) (arrow.Record, error) {
	records, err := ReadParquetFile(ctx, mem, filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		for _, record := range records {
			record.Release()
		}
	}()
	if len(records) == 1 {
		records[0].Retain()
		return records[0], nil
	}
	record, err := ConcatenateRecords(mem, records...)
	if err != nil {
		return nil, errs.Wrap(err)
	}
	return record, nil
}
