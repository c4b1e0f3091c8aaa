package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/alekLukanen/errs"
	"github.com/alekLukanen/ndarrow/arrowOps"
	"github.com/alekLukanen/ndarrow/elements"
	"github.com/alekLukanen/ndarrow/findOps"
	"github.com/apache/arrow/go/v17/arrow/memory"
	flags "github.com/jessevdk/go-flags"
)

type globalOptions struct {
	LogLevel string `long:"log-level" default:"info" description:"debug, info, warn or error"`
	Kernels  string `long:"kernels" default:"auto" description:"scan kernels: generic, unrolled or auto"`
}

type app struct {
	globalOptions

	out     io.Writer
	logOut  io.Writer
	logger  *slog.Logger
	mem     memory.Allocator
	locator *findops.Locator
}

func newApp(out, logOut io.Writer) *app {
	return &app{
		out:    out,
		logOut: logOut,
		logger: slog.New(slog.NewJSONHandler(logOut, nil)),
		mem:    memory.NewGoAllocator(),
	}
}

func (obj *app) register(parser *flags.Parser) error {
	commands := []struct {
		name, short string
		data        flags.Commander
	}{
		{"find", "Locate the first element equal to a value", &findCommand{app: obj}},
		{"above", "Locate the first element greater than a value", &aboveCommand{app: obj}},
		{"nonzero", "Locate the first truthy element", &nonzeroCommand{app: obj}},
		{"sort", "Sort rows by key columns and write Parquet", &sortCommand{app: obj}},
		{"argmin", "Locate the smallest element", &extremumCommand{app: obj, largest: false}},
		{"argmax", "Locate the largest element", &extremumCommand{app: obj, largest: true}},
		{"save", "Write columns into an array archive", &saveCommand{app: obj}},
	}
	for _, cmd := range commands {
		if _, err := parser.AddCommand(cmd.name, cmd.short, "", cmd.data); err != nil {
			return errs.Wrap(err)
		}
	}
	return nil
}

// setup applies the global options; go-flags fills them in before any
// command executes.
func (obj *app) setup() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(obj.LogLevel)); err != nil {
		return elements.NewStackError(fmt.Errorf("%w| log level %q", elements.ErrInvalidArgument, obj.LogLevel))
	}
	obj.logger = slog.New(slog.NewJSONHandler(obj.logOut, &slog.HandlerOptions{Level: level}))

	backend, ok := findops.ParseBackend(obj.Kernels)
	if !ok {
		return elements.NewStackError(fmt.Errorf("%w| kernels %q", elements.ErrInvalidArgument, obj.Kernels))
	}
	obj.locator = findops.NewLocator(findops.LocatorOptions{Backend: backend})
	return nil
}

type inputOptions struct {
	File    string   `short:"f" long:"file" required:"true" description:"Parquet input file"`
	Columns []string `short:"c" long:"column" description:"column to include; repeat for several, default all"`
}

// load reads the input columns as one array: 1-D for a single column,
// rows by columns otherwise.
func (obj *inputOptions) load(ctx context.Context, mem memory.Allocator) (*elements.Array, []string, error) {
	rec, err := arrowops.ReadParquetRecord(ctx, mem, obj.File)
	if err != nil {
		return nil, nil, err
	}
	defer rec.Release()

	columns := obj.Columns
	if len(columns) == 0 {
		for _, field := range rec.Schema().Fields() {
			columns = append(columns, field.Name)
		}
	}
	arr, err := arrowops.RecordToArray(mem, rec, columns...)
	if err != nil {
		return nil, nil, err
	}
	return arr, columns, nil
}

// parseValue reads a command line query: integers, then floats
// (including nan and inf), then RFC 3339 times, then booleans, and
// otherwise the text itself.
func parseValue(text string) elements.Scalar {
	if v, err := strconv.ParseInt(text, 10, 64); err == nil {
		return elements.Int64(v)
	}
	if v, err := strconv.ParseUint(text, 10, 64); err == nil {
		return elements.Uint64(v)
	}
	if v, err := strconv.ParseFloat(text, 64); err == nil {
		return elements.Float64(v)
	}
	if strings.EqualFold(text, "nat") {
		return elements.NaT()
	}
	if t, err := time.Parse(time.RFC3339Nano, text); err == nil {
		return elements.Time(t)
	}
	switch text {
	case "true":
		return elements.Bool(true)
	case "false":
		return elements.Bool(false)
	}
	return elements.String(text)
}

func (obj *app) report(op string, loc elements.Location) error {
	obj.logger.Debug("located", slog.String("op", op), slog.String("location", loc.String()), slog.Bool("found", loc.Found))
	_, err := fmt.Fprintln(obj.out, loc.String())
	return err
}
