package errors

import "errors"

var (
	// ErrInvalidArgument is a generic sentinel for invalid caller input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrMetadataNotFound marks a corpus file with no metadata entry.
	// Ingestion fails loudly on it rather than indexing untagged text.
	ErrMetadataNotFound = errors.New("corpus metadata not found")
	// ErrSchemaViolation marks model output that does not conform to the
	// requested structured-output schema. Never coerced into partial data.
	ErrSchemaViolation = errors.New("generation schema violation")
)
