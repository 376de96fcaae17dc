package errcode

const (
	ErrUnknown = 20000000 + iota
	ErrInvalid
	ErrNotFound
	ErrInternal
	ErrUnsupportedFormat
	ErrDocumentLoad
	ErrNoContent
	ErrEmbeddingFailed
	ErrGenerationFailed
	ErrInvalidFile
	ErrUploadFailed
	ErrFileTooLarge
)
