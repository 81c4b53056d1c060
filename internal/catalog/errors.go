package catalog

import "errors"

var (
	// ErrIO wraps read and write failures of the backing file other than
	// "does not exist", which Load recovers from by creating the file.
	ErrIO = errors.New("catalog I/O failure")

	// ErrEntryNotFound is returned by AddOrUpdate when the entry being
	// edited no longer exists, for example because another program removed
	// it from the file. Nothing is written in that case.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrUnterminatedQuote is returned by Decode when a quoted field is never
	// closed. Load reports it as ErrIO so no mutation rewrites the file from
	// a partial read.
	ErrUnterminatedQuote = errors.New("unterminated quoted field")
)
