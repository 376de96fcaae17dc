package errors

import "errors"

// Pipeline error kinds. Handlers inspect these with errors.Is to pick the
// API error code; everything except ErrSessionPersistence aborts the request.
var (
	ErrUnsupportedFormat  = errors.New("unsupported document format")
	ErrDocumentLoad       = errors.New("document load failed")
	ErrNoContent          = errors.New("document has no usable content")
	ErrEmbedding          = errors.New("embedding failed")
	ErrEmptyIndex         = errors.New("vector index has no entries")
	ErrGeneration         = errors.New("answer generation failed")
	ErrSessionPersistence = errors.New("session persistence failed")

	ErrInvalid  = errors.New("invalid")
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
