package assist

import "errors"

// Adapter errors.
var (
	// ErrMalformedOutput means the model returned non-JSON text or JSON
	// violating the schema for its declared action.
	ErrMalformedOutput = errors.New("assist output is not a valid response object")

	// ErrUnparseable means the structured extraction failed on every attempt.
	ErrUnparseable = errors.New("assist output unparseable after all attempts")
)
