package converter

import (
	"errors"
)

// Conversion failure conditions. Strategy-level extraction failures are
// logged at the strategy boundary and only surface through these when the
// converter decides they are terminal.
var (
	// ErrFileNotFound means the input path does not reference an existing file.
	ErrFileNotFound = errors.New("pdf file not found")

	// ErrInvalidMethod means the requested extraction method is not recognized.
	ErrInvalidMethod = errors.New("unsupported extraction method")

	// ErrAllMethodsFailed means auto mode exhausted every strategy without success.
	ErrAllMethodsFailed = errors.New("all extraction methods failed")
)
