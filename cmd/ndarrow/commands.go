package main

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/alekLukanen/ndarrow/arrowOps"
	"github.com/alekLukanen/ndarrow/elements"
	"github.com/alekLukanen/ndarrow/findOps"
	"github.com/alekLukanen/ndarrow/shapeOps"
	"github.com/alekLukanen/ndarrow/sortOps"
	"github.com/alekLukanen/ndarrow/storage"
)

type findCommand struct {
	app *app
	inputOptions

	Value   string  `short:"v" long:"value" required:"true" description:"value to look for"`
	Rtol    float64 `long:"rtol" default:"1e-5" description:"relative tolerance for inexact kinds"`
	Atol    float64 `long:"atol" default:"1e-8" description:"absolute tolerance for inexact kinds"`
	Sorted  bool    `long:"sorted" description:"input is sorted ascending; bisect instead of scanning"`
	Missing int     `long:"missing" default:"-1" description:"index reported when nothing matches"`
	Raises  bool    `long:"raises" description:"fail when nothing matches"`
}

func (obj *findCommand) Execute(args []string) error {
	if err := obj.app.setup(); err != nil {
		return err
	}
	arr, _, err := obj.load(context.Background(), obj.app.mem)
	if err != nil {
		return err
	}
	defer arr.Release()

	opts := findops.NewFindOptions()
	opts.Tolerance = findops.Tolerance{Rtol: obj.Rtol, Atol: obj.Atol}
	opts.Sorted, opts.Missing, opts.Raises = obj.Sorted, obj.Missing, obj.Raises

	loc, err := obj.app.locator.Find(arr, parseValue(obj.Value), opts)
	if err != nil {
		return err
	}
	return obj.app.report("find", loc)
}

type aboveCommand struct {
	app *app
	inputOptions

	Value   string `short:"v" long:"value" required:"true" description:"threshold"`
	Sorted  bool   `long:"sorted" description:"input is sorted ascending; bisect instead of scanning"`
	Missing int    `long:"missing" default:"-1" description:"index reported when nothing is above"`
	Raises  bool   `long:"raises" description:"fail when nothing is above"`
}

func (obj *aboveCommand) Execute(args []string) error {
	if err := obj.app.setup(); err != nil {
		return err
	}
	arr, _, err := obj.load(context.Background(), obj.app.mem)
	if err != nil {
		return err
	}
	defer arr.Release()

	opts := findops.NewAboveOptions()
	opts.Sorted, opts.Missing, opts.Raises = obj.Sorted, obj.Missing, obj.Raises

	loc, err := obj.app.locator.FirstAbove(arr, parseValue(obj.Value), opts)
	if err != nil {
		return err
	}
	return obj.app.report("above", loc)
}

type nonzeroCommand struct {
	app *app
	inputOptions

	Missing int  `long:"missing" default:"-1" description:"index reported when every element is falsy"`
	Raises  bool `long:"raises" description:"fail when every element is falsy"`
}

func (obj *nonzeroCommand) Execute(args []string) error {
	if err := obj.app.setup(); err != nil {
		return err
	}
	arr, _, err := obj.load(context.Background(), obj.app.mem)
	if err != nil {
		return err
	}
	defer arr.Release()

	opts := findops.NewNonzeroOptions()
	opts.Missing, opts.Raises = obj.Missing, obj.Raises

	loc, err := obj.app.locator.FirstNonzero(arr, opts)
	if err != nil {
		return err
	}
	return obj.app.report("nonzero", loc)
}

type sortCommand struct {
	app *app
	inputOptions

	By         []int    `long:"by" description:"key column position; repeat in priority order"`
	Ascending  []string `long:"ascending" description:"true or false per key; one value applies to every key"`
	Descending bool     `long:"descending" description:"reverse the order of every column"`
	Out        string   `short:"o" long:"out" required:"true" description:"Parquet output file"`
}

func (obj *sortCommand) Execute(args []string) error {
	if err := obj.app.setup(); err != nil {
		return err
	}

	ascending := sortops.Uniform(!obj.Descending)
	if len(obj.Ascending) > 0 {
		if obj.Descending {
			return elements.NewStackError(
				fmt.Errorf("%w| --descending and --ascending are exclusive", elements.ErrInvalidArgument),
			)
		}
		directions := make([]bool, len(obj.Ascending))
		for i, text := range obj.Ascending {
			v, err := strconv.ParseBool(text)
			if err != nil {
				return elements.NewStackError(fmt.Errorf("%w| --ascending %q", elements.ErrInvalidArgument, text))
			}
			directions[i] = v
		}
		ascending = sortops.PerKey(directions...)
	}

	ctx := context.Background()
	arr, columns, err := obj.load(ctx, obj.app.mem)
	if err != nil {
		return err
	}
	defer arr.Release()

	sorted, err := sortops.Sort(obj.app.mem, arr, sortops.ByColumns(obj.By...), ascending)
	if err != nil {
		return err
	}
	defer sorted.Release()

	rec, err := arrowops.ArrayToRecord(obj.app.mem, sorted, columns...)
	if err != nil {
		return err
	}
	defer rec.Release()

	if err := arrowops.WriteRecordToParquetFile(ctx, obj.app.mem, rec, obj.Out); err != nil {
		return err
	}
	obj.app.logger.Info(
		"sorted rows",
		slog.String("out", obj.Out),
		slog.Int64("rows", rec.NumRows()),
		slog.String("by", sortops.ByColumns(obj.By...).String()),
		slog.String("ascending", ascending.String()),
	)
	return nil
}

type extremumCommand struct {
	app     *app
	largest bool
	inputOptions

	SkipMissing bool `long:"skip-missing" description:"ignore NaN and NaT instead of reporting them"`
}

func (obj *extremumCommand) Execute(args []string) error {
	if err := obj.app.setup(); err != nil {
		return err
	}
	arr, _, err := obj.load(context.Background(), obj.app.mem)
	if err != nil {
		return err
	}
	defer arr.Release()

	op, fn := "argmin", shapeops.Argmin
	switch {
	case obj.largest && obj.SkipMissing:
		op, fn = "nanargmax", shapeops.NanArgmax
	case obj.largest:
		op, fn = "argmax", shapeops.Argmax
	case obj.SkipMissing:
		op, fn = "nanargmin", shapeops.NanArgmin
	}

	loc, err := fn(arr)
	if err != nil {
		return err
	}
	return obj.app.report(op, loc)
}

type saveCommand struct {
	app *app
	inputOptions

	Out         string `short:"o" long:"out" description:"archive path; .ndz is appended when missing"`
	Compression string `long:"compression" default:"stored" description:"stored, deflate or zstd"`
	Encoding    string `long:"encoding" default:"arrow" description:"arrow or avro"`

	Bucket       string `long:"bucket" description:"upload the archive to this bucket instead of a local path"`
	Key          string `long:"key" description:"object key of the uploaded archive"`
	Endpoint     string `long:"endpoint" env:"NDARROW_S3_ENDPOINT" description:"S3 endpoint"`
	Region       string `long:"region" env:"NDARROW_S3_REGION" default:"us-east-1" description:"S3 region"`
	AccessKey    string `long:"access-key" env:"NDARROW_S3_ACCESS_KEY" description:"static S3 access key"`
	SecretKey    string `long:"secret-key" env:"NDARROW_S3_SECRET_KEY" description:"static S3 secret key"`
	UsePathStyle bool   `long:"path-style" description:"use path style S3 addressing"`
}

func (obj *saveCommand) Execute(args []string) error {
	if err := obj.app.setup(); err != nil {
		return err
	}

	opts := storage.NewArchiveOptions()
	var ok bool
	if opts.Compression, ok = storage.ParseCompression(obj.Compression); !ok {
		return elements.NewStackError(fmt.Errorf("%w| compression %q", elements.ErrInvalidArgument, obj.Compression))
	}
	if opts.Encoding, ok = storage.ParseEncoding(obj.Encoding); !ok {
		return elements.NewStackError(fmt.Errorf("%w| encoding %q", elements.ErrInvalidArgument, obj.Encoding))
	}
	opts.Allocator = obj.app.mem

	ctx := context.Background()
	rec, err := arrowops.ReadParquetRecord(ctx, obj.app.mem, obj.File)
	if err != nil {
		return err
	}
	defer rec.Release()

	if len(obj.Columns) > 0 {
		selected, err := arrowops.TakeColumns(rec, obj.Columns)
		if err != nil {
			return err
		}
		defer selected.Release()
		rec = selected
	}

	w, err := obj.createArchive(ctx, opts)
	if err != nil {
		return err
	}
	defer w.Close()

	for _, field := range rec.Schema().Fields() {
		column := field.Name
		arr, err := arrowops.RecordToArray(obj.app.mem, rec, column)
		if err != nil {
			return err
		}
		err = w.WriteNamed(storage.NamedArray{Name: column, Array: arr})
		arr.Release()
		if err != nil {
			return err
		}
	}
	return w.Close()
}

func (obj *saveCommand) createArchive(ctx context.Context, opts storage.ArchiveOptions) (*storage.ArchiveWriter, error) {
	switch {
	case obj.Bucket != "" && obj.Key != "":
		storeOpts := storage.ObjectStorageOptions{
			Endpoint:     obj.Endpoint,
			Region:       obj.Region,
			UsePathStyle: obj.UsePathStyle,
		}
		if obj.AccessKey != "" {
			storeOpts = storage.NewObjectStorageOptionsFromStaticCredentials(
				obj.Endpoint, obj.Region, obj.AccessKey, obj.SecretKey, obj.UsePathStyle,
			)
		}
		store, err := storage.NewObjectStorage(ctx, obj.app.logger, storeOpts)
		if err != nil {
			return nil, err
		}
		return storage.CreateObjectArchive(ctx, obj.app.logger, store, obj.Bucket, obj.Key, opts)
	case obj.Out != "":
		return storage.CreateArchive(obj.app.logger, obj.Out, opts)
	}
	return nil, elements.NewStackError(
		fmt.Errorf("%w| save needs --out or both --bucket and --key", elements.ErrInvalidArgument),
	)
}
