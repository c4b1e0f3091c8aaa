package storage

import (
	"fmt"
	"io"
	"strings"

	"github.com/alekLukanen/errs"
	"github.com/alekLukanen/ndarrow/elements"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

type archiveEntry struct {
	file     *zip.File
	encoding Encoding
}

// ArchiveReader reads the entries of an archive written by ArchiveWriter.
type ArchiveReader struct {
	zr      *zip.ReadCloser
	names   []string
	entries map[string]archiveEntry
}

func OpenArchive(path string) (*ArchiveReader, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, errs.Wrap(err)
	}
	zr.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())

	reader := &ArchiveReader{
		zr:      zr,
		names:   make([]string, 0, len(zr.File)),
		entries: make(map[string]archiveEntry, len(zr.File)),
	}
	for _, f := range zr.File {
		found := false
		for _, enc := range []Encoding{EncodingArrowIPC, EncodingAvro} {
			name, ok := strings.CutSuffix(f.Name, enc.extension())
			if !ok {
				continue
			}
			reader.names = append(reader.names, name)
			reader.entries[name] = archiveEntry{file: f, encoding: enc}
			found = true
			break
		}
		if !found {
			zr.Close()
			return nil, elements.NewStackError(fmt.Errorf("%w| unrecognized entry %q", ErrEntryCorrupt, f.Name))
		}
	}
	return reader, nil
}

// Names lists the entry names in the order they were written.
func (obj *ArchiveReader) Names() []string {
	return append([]string(nil), obj.names...)
}

// Read decodes one entry after verifying its checksum.
func (obj *ArchiveReader) Read(mem memory.Allocator, name string) (*elements.Array, error) {
	entry, ok := obj.entries[name]
	if !ok {
		return nil, elements.NewStackError(fmt.Errorf("%w| %q", ErrEntryNotFound, name))
	}

	rc, err := entry.file.Open()
	if err != nil {
		return nil, errs.Wrap(err)
	}
	defer rc.Close()
	payload, err := io.ReadAll(rc)
	if err != nil {
		return nil, elements.NewStackError(fmt.Errorf("%w| reading %q: %s", ErrEntryCorrupt, name, err))
	}

	expected := entry.file.Comment
	actual := fmt.Sprintf("%s%016x", checksumPrefix, xxhash.Sum64(payload))
	if expected != actual {
		return nil, elements.NewStackError(
			fmt.Errorf("%w| entry %q has %s, stored %q", ErrChecksumMismatch, name, actual, expected),
		)
	}

	return decodeEntry(mem, payload, entry.encoding)
}

func (obj *ArchiveReader) Close() error {
	if err := obj.zr.Close(); err != nil {
		return errs.Wrap(err)
	}
	return nil
}
