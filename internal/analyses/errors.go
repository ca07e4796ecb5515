package analyses

import "errors"

var (
	// ErrMalformedCompletion means no parseable JSON object was found in the
	// completion text.
	ErrMalformedCompletion = errors.New("malformed completion")

	// ErrSchemaValidation means the extracted object parsed as JSON but does
	// not have the required analysis shape.
	ErrSchemaValidation = errors.New("completion failed schema validation")

	// ErrNotFound is returned for lookups of unknown analysis ids.
	ErrNotFound = errors.New("analysis not found")
)
