package importer

import "errors"

var (
	// ErrFormat means the input is not readable as the selected foreign
	// format at all (bad JSON, unknown source).
	ErrFormat = errors.New("unreadable import file")

	// ErrMalformedDatabase means a KDBX database opened correctly but an
	// entry is missing a mandatory field. The whole import aborts; the
	// binary path has no per-entry skip.
	ErrMalformedDatabase = errors.New("malformed KeePass database")
)
