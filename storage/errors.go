package storage

import "errors"

var (
	ErrDuplicateEntry   = errors.New("duplicate archive entry")
	ErrChecksumMismatch = errors.New("archive entry checksum mismatch")
	ErrArchiveClosed    = errors.New("archive is closed")
	ErrEntryNotFound    = errors.New("archive entry not found")
	ErrEntryCorrupt     = errors.New("archive entry is corrupt")
	ErrUnknownEncoding  = errors.New("unknown archive encoding")
)
