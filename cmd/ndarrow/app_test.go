package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alekLukanen/ndarrow/arrowOps"
	"github.com/alekLukanen/ndarrow/elements"
	"github.com/alekLukanen/ndarrow/storage"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
	flags "github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T) string {
	t.Helper()
	mem := memory.NewGoAllocator()
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "a", Type: arrow.PrimitiveTypes.Int64},
		{Name: "b", Type: arrow.PrimitiveTypes.Float64},
		{Name: "c", Type: arrow.PrimitiveTypes.Float64},
	}, nil)
	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()
	b.Field(0).(*array.Int64Builder).AppendValues([]int64{3, 1, 2, 1}, nil)
	b.Field(1).(*array.Float64Builder).AppendValues([]float64{0, 2.5, math.NaN(), -1}, nil)
	b.Field(2).(*array.Float64Builder).AppendValues([]float64{1, 1, 0, 1}, nil)
	rec := b.NewRecord()
	defer rec.Release()

	path := filepath.Join(t.TempDir(), "input.parquet")
	require.NoError(t, arrowops.WriteRecordToParquetFile(context.Background(), mem, rec, path))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	a := newApp(&out, io.Discard)
	parser := flags.NewParser(&a.globalOptions, flags.HelpFlag|flags.PassDoubleDash)
	require.NoError(t, a.register(parser))
	_, err := parser.ParseArgs(args)
	return strings.TrimSpace(out.String()), err
}

func TestLocateCommands(t *testing.T) {
	input := writeInput(t)

	testCases := []struct {
		caseName string
		args     []string
		expected string
	}{
		{caseName: "find", args: []string{"find", "-f", input, "-c", "a", "-v", "2"}, expected: "2"},
		{caseName: "find tolerant", args: []string{"find", "-f", input, "-c", "b", "-v", "2.500001"}, expected: "1"},
		{caseName: "find nan", args: []string{"find", "-f", input, "-c", "b", "-v", "nan"}, expected: "2"},
		{caseName: "find missing", args: []string{"find", "-f", input, "-c", "a", "-v", "9", "--missing=-7"}, expected: "missing(-7)"},
		{caseName: "find in rows", args: []string{"find", "-f", input, "-c", "b", "-c", "c", "--value=-1"}, expected: "[3 0]"},
		{caseName: "above", args: []string{"above", "-f", input, "-c", "a", "-v", "1"}, expected: "0"},
		{caseName: "nonzero", args: []string{"nonzero", "-f", input, "-c", "b"}, expected: "1"},
		{caseName: "argmin", args: []string{"argmin", "-f", input, "-c", "a"}, expected: "1"},
		{caseName: "argmax propagates nan", args: []string{"argmax", "-f", input, "-c", "b"}, expected: "2"},
		{caseName: "argmax skips nan", args: []string{"argmax", "-f", input, "-c", "b", "--skip-missing"}, expected: "1"},
		{caseName: "generic kernels", args: []string{"--kernels", "generic", "find", "-f", input, "-c", "a", "-v", "1"}, expected: "1"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.caseName, func(t *testing.T) {
			out, err := run(t, testCase.args...)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, out)
		})
	}
}

func TestLocateCommandErrors(t *testing.T) {
	input := writeInput(t)

	_, err := run(t, "find", "-f", input, "-c", "a", "-v", "9", "--raises")
	assert.True(t, errors.Is(err, elements.ErrNotFound))

	_, err = run(t, "--kernels", "avx", "find", "-f", input, "-v", "1")
	assert.True(t, errors.Is(err, elements.ErrInvalidArgument))

	_, err = run(t, "sort", "-f", input, "-o", "x.parquet", "--descending", "--ascending", "true")
	assert.True(t, errors.Is(err, elements.ErrInvalidArgument))
}

func TestSortCommand(t *testing.T) {
	input := writeInput(t)
	out := filepath.Join(t.TempDir(), "sorted.parquet")

	_, err := run(t, "sort", "-f", input, "-c", "c", "-c", "b", "--by", "0", "--ascending", "false", "-o", out)
	require.NoError(t, err)

	mem := memory.NewGoAllocator()
	rec, err := arrowops.ReadParquetRecord(context.Background(), mem, out)
	require.NoError(t, err)
	defer rec.Release()

	assert.Equal(t, []string{"c", "b"}, []string{rec.Schema().Field(0).Name, rec.Schema().Field(1).Name})
	assert.Equal(t, []float64{1, 1, 1, 0}, rec.Column(0).(*array.Float64).Float64Values())
	b := rec.Column(1).(*array.Float64).Float64Values()
	assert.Equal(t, []float64{-1, 0, 2.5}, b[:3])
	assert.True(t, math.IsNaN(b[3]))
}

func TestSaveCommand(t *testing.T) {
	input := writeInput(t)
	out := filepath.Join(t.TempDir(), "columns")

	_, err := run(t, "save", "-f", input, "-o", out, "--compression", "zstd", "--encoding", "avro")
	require.NoError(t, err)

	reader, err := storage.OpenArchive(out + storage.ArchiveExtension)
	require.NoError(t, err)
	defer reader.Close()
	assert.Equal(t, []string{"a", "b", "c"}, reader.Names())

	mem := memory.NewGoAllocator()
	arr, err := reader.Read(mem, "a")
	require.NoError(t, err)
	defer arr.Release()
	assert.Equal(t, []int64{3, 1, 2, 1}, arr.Values().(*array.Int64).Int64Values())

	_, err = run(t, "save", "-f", input)
	assert.True(t, errors.Is(err, elements.ErrInvalidArgument))
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, elements.KindInt64, parseValue("-3").Kind())
	assert.Equal(t, elements.KindUint64, parseValue("18446744073709551615").Kind())
	assert.Equal(t, elements.KindFloat64, parseValue("2.5").Kind())
	assert.True(t, parseValue("NaN").IsNaN())
	assert.True(t, parseValue("nat").IsNaT())
	assert.Equal(t, elements.KindTimestamp, parseValue("2024-01-02T03:04:05Z").Kind())
	assert.Equal(t, elements.KindBool, parseValue("true").Kind())
	assert.Equal(t, "pear", parseValue("pear").Text())
}
