package storage

import (
	"fmt"
	"strings"

	"github.com/alekLukanen/ndarrow/elements"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

const (
	ArchiveExtension = ".ndz"

	metaKind      = "ndarrow.kind"
	metaShape     = "ndarrow.shape"
	metaUnit      = "ndarrow.unit"
	metaPrecision = "ndarrow.precision"
	metaScale     = "ndarrow.scale"

	checksumPrefix = "xxh64:"
)

type Compression int

const (
	CompressionStored Compression = iota
	CompressionDeflate
	CompressionZstd
)

func (obj Compression) String() string {
	switch obj {
	case CompressionStored:
		return "stored"
	case CompressionDeflate:
		return "deflate"
	case CompressionZstd:
		return "zstd"
	}
	return fmt.Sprintf("compression(%d)", int(obj))
}

func (obj Compression) method() (uint16, error) {
	switch obj {
	case CompressionStored:
		return zip.Store, nil
	case CompressionDeflate:
		return zip.Deflate, nil
	case CompressionZstd:
		return zstd.ZipMethodWinZip, nil
	}
	return 0, elements.NewStackError(fmt.Errorf("%w| compression %d", elements.ErrInvalidArgument, int(obj)))
}

func ParseCompression(name string) (Compression, bool) {
	for _, c := range []Compression{CompressionStored, CompressionDeflate, CompressionZstd} {
		if strings.EqualFold(strings.TrimSpace(name), c.String()) {
			return c, true
		}
	}
	return CompressionStored, false
}

// Encoding selects how one array is serialized inside its entry.
type Encoding int

const (
	EncodingArrowIPC Encoding = iota
	EncodingAvro
)

func (obj Encoding) String() string {
	switch obj {
	case EncodingArrowIPC:
		return "arrow"
	case EncodingAvro:
		return "avro"
	}
	return fmt.Sprintf("encoding(%d)", int(obj))
}

func (obj Encoding) extension() string {
	return "." + obj.String()
}

func ParseEncoding(name string) (Encoding, bool) {
	for _, e := range []Encoding{EncodingArrowIPC, EncodingAvro} {
		if strings.EqualFold(strings.TrimSpace(name), e.String()) {
			return e, true
		}
	}
	return EncodingArrowIPC, false
}

type ArchiveOptions struct {
	Compression Compression
	Encoding    Encoding
	// allocator for the buffers used while encoding entries
	Allocator memory.Allocator
	// directory for staged object archives; the system temp dir when
	// empty
	StagingDir string
}

func NewArchiveOptions() ArchiveOptions {
	return ArchiveOptions{
		Compression: CompressionStored,
		Encoding:    EncodingArrowIPC,
		Allocator:   memory.DefaultAllocator,
	}
}

// NamedArray is an array written under an explicit entry name.
type NamedArray struct {
	Name  string
	Array *elements.Array
}

func archivePath(path string) string {
	if strings.HasSuffix(path, ArchiveExtension) {
		return path
	}
	return path + ArchiveExtension
}

func checkEntryName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return elements.NewStackError(fmt.Errorf("%w| archive entry name %q", elements.ErrInvalidArgument, name))
	}
	return nil
}
