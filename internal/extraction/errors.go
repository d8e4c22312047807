// Package extraction turns free-form note text into task candidates by
// prompting a language model and defensively parsing its response. It is
// pure: all persistence is done by the caller.
package extraction

import "errors"

// Common extraction errors.
var (
	// ErrBackend is returned when the model backend is unreachable or
	// answers with an error status. It aborts the current source unit
	// only, never the whole ingestion run.
	ErrBackend = errors.New("extraction backend error")

	// ErrParse is returned when the model emitted a task payload that
	// could not be parsed at all. Individual malformed items inside an
	// otherwise parseable payload are skipped, not raised.
	ErrParse = errors.New("extraction response not parseable")

	// ErrNilModel is returned when an Extractor is constructed without a
	// model client.
	ErrNilModel = errors.New("model client cannot be nil")

	// ErrNilLogger is returned when an Extractor is constructed without a
	// logger.
	ErrNilLogger = errors.New("logger cannot be nil")
)
