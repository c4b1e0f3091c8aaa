package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alekLukanen/errs"
	"github.com/alekLukanen/ndarrow/elements"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

/*
* ArchiveWriter appends arrays to a zip container one entry at a time.
* Entries are committed as soon as Write returns, so a writer that fails
* part way through still leaves a readable archive of everything written
* before the failure once it is closed. It is not safe for concurrent
* use.
 */
type ArchiveWriter struct {
	logger *slog.Logger
	opts   ArchiveOptions

	path   string
	file   *os.File
	zw     *zip.Writer
	method uint16

	names  map[string]struct{}
	next   int
	closed bool

	// runs after the container is closed; object archives upload here
	onClose func() error
	// runs on every Close, after onClose
	cleanup func()
}

// CreateArchive creates (or truncates) the archive at path, appending the
// .ndz extension when it is missing.
func CreateArchive(logger *slog.Logger, path string, opts ArchiveOptions) (*ArchiveWriter, error) {
	method, err := opts.Compression.method()
	if err != nil {
		return nil, err
	}
	if opts.Encoding != EncodingArrowIPC && opts.Encoding != EncodingAvro {
		return nil, elements.NewStackError(fmt.Errorf("%w| %s", ErrUnknownEncoding, opts.Encoding))
	}
	if opts.Allocator == nil {
		opts.Allocator = NewArchiveOptions().Allocator
	}

	path = archivePath(path)
	f, err := os.Create(path)
	if err != nil {
		return nil, errs.Wrap(err)
	}

	zw := zip.NewWriter(f)
	zw.RegisterCompressor(zstd.ZipMethodWinZip, zstd.ZipCompressor())

	logger.Debug(
		"created archive",
		slog.String("path", path),
		slog.String("compression", opts.Compression.String()),
		slog.String("encoding", opts.Encoding.String()),
	)

	return &ArchiveWriter{
		logger: logger,
		opts:   opts,
		path:   path,
		file:   f,
		zw:     zw,
		method: method,
		names:  make(map[string]struct{}),
	}, nil
}

// CreateObjectArchive stages the archive in a local file and uploads it
// to bucket/key when the writer is closed. The staged file is removed
// on Close whether or not the container or the upload succeeded.
func CreateObjectArchive(
	ctx context.Context,
	logger *slog.Logger,
	store IObjectStorage,
	bucket, key string,
	opts ArchiveOptions,
) (*ArchiveWriter, error) {
	stagingDir := opts.StagingDir
	if stagingDir == "" {
		stagingDir = os.TempDir()
	}
	staged := filepath.Join(stagingDir, fmt.Sprintf("ndarrow-%s%s", uuid.NewString(), ArchiveExtension))

	w, err := CreateArchive(logger, staged, opts)
	if err != nil {
		return nil, err
	}
	w.onClose = func() error {
		if err := store.UploadFile(ctx, bucket, key, staged); err != nil {
			return errs.Wrap(err, fmt.Errorf("uploading archive to %s/%s", bucket, key))
		}
		return nil
	}
	w.cleanup = func() {
		os.Remove(staged)
	}
	return w, nil
}

// WithArchive runs fn against a new archive and closes it on every exit
// path. The error from fn takes precedence over the close error.
func WithArchive(logger *slog.Logger, path string, opts ArchiveOptions, fn func(*ArchiveWriter) error) error {
	w, err := CreateArchive(logger, path, opts)
	if err != nil {
		return err
	}

	fnErr := func() error {
		defer func() {
			if r := recover(); r != nil {
				w.Close()
				panic(r)
			}
		}()
		return fn(w)
	}()

	closeErr := w.Close()
	if fnErr != nil {
		return fnErr
	}
	return closeErr
}

func (obj *ArchiveWriter) Path() string {
	return obj.path
}

// Write stores arrays under the positional names arr_0, arr_1, ...
// The numbering continues across calls and counts every committed
// entry, including those committed before a failure.
func (obj *ArchiveWriter) Write(arrays ...*elements.Array) error {
	entries := make([]NamedArray, len(arrays))
	for i, arr := range arrays {
		entries[i] = NamedArray{Name: fmt.Sprintf("arr_%d", obj.next+i), Array: arr}
	}
	return obj.write(entries, true)
}

// WriteNamed stores arrays under explicit names. A name already in the
// archive, or repeated within the call, is rejected before anything is
// written.
func (obj *ArchiveWriter) WriteNamed(entries ...NamedArray) error {
	return obj.write(entries, false)
}

func (obj *ArchiveWriter) write(entries []NamedArray, positional bool) error {
	if obj.closed {
		return elements.NewStackError(fmt.Errorf("%w| %s", ErrArchiveClosed, obj.path))
	}

	pending := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if err := checkEntryName(entry.Name); err != nil {
			return err
		}
		if _, ok := obj.names[entry.Name]; ok {
			return elements.NewStackError(fmt.Errorf("%w| %q already written", ErrDuplicateEntry, entry.Name))
		}
		if _, ok := pending[entry.Name]; ok {
			return elements.NewStackError(fmt.Errorf("%w| %q named twice", ErrDuplicateEntry, entry.Name))
		}
		if entry.Array == nil || entry.Array.Kind() == elements.KindObject {
			return elements.NewStackError(
				fmt.Errorf("%w| entry %q must be an arrow backed array", elements.ErrUnsupportedType, entry.Name),
			)
		}
		pending[entry.Name] = struct{}{}
	}

	for _, entry := range entries {
		if err := obj.writeEntry(entry); err != nil {
			return err
		}
		if positional {
			obj.next++
		}
	}
	return nil
}

func (obj *ArchiveWriter) writeEntry(entry NamedArray) error {
	payload, err := encodeEntry(obj.opts.Allocator, entry.Array, obj.opts.Encoding)
	if err != nil {
		return err
	}

	fw, err := obj.zw.CreateHeader(&zip.FileHeader{
		Name:    entry.Name + obj.opts.Encoding.extension(),
		Method:  obj.method,
		Comment: fmt.Sprintf("%s%016x", checksumPrefix, xxhash.Sum64(payload)),
	})
	if err != nil {
		return errs.Wrap(err)
	}
	if _, err := fw.Write(payload); err != nil {
		return errs.Wrap(err)
	}
	obj.names[entry.Name] = struct{}{}

	obj.logger.Debug(
		"wrote archive entry",
		slog.String("path", obj.path),
		slog.String("name", entry.Name),
		slog.String("kind", entry.Array.Kind().String()),
		slog.Any("shape", entry.Array.Shape()),
		slog.Int("numBytes", len(payload)),
	)
	return nil
}

// Close finishes the container. Calling it again is a no-op.
func (obj *ArchiveWriter) Close() error {
	if obj.closed {
		return nil
	}
	obj.closed = true
	if obj.cleanup != nil {
		defer obj.cleanup()
	}

	zipErr := obj.zw.Close()
	fileErr := obj.file.Close()
	if zipErr != nil {
		return errs.Wrap(zipErr)
	}
	if fileErr != nil {
		return errs.Wrap(fileErr)
	}

	obj.logger.Info("closed archive", slog.String("path", obj.path), slog.Int("entries", len(obj.names)))

	if obj.onClose != nil {
		return obj.onClose()
	}
	return nil
}
