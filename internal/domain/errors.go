package domain

import "errors"

var (
	// ErrInvalidPageRange covers malformed page-selection syntax, including
	// ranges with start > end. Caller-correctable; nothing is processed.
	ErrInvalidPageRange = errors.New("invalid page range")

	// ErrInvalidDocument means the input could not be decoded as a PDF.
	// The whole request fails; no partial model is returned.
	ErrInvalidDocument = errors.New("invalid or corrupted PDF document")

	ErrFileTooLarge         = errors.New("file exceeds maximum allowed size")
	ErrUnsupportedOperation = errors.New("operation is not supported")
	ErrInvalidBase64        = errors.New("request data is not valid base64")
)
