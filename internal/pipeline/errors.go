package pipeline

import "errors"

var (
	// ErrEmptyURL is returned when the input URL is empty after trimming.
	ErrEmptyURL = errors.New("website URL is empty")

	// ErrURLTooLong is returned when the input URL exceeds MaxURLLength.
	ErrURLTooLong = errors.New("website URL is too long")

	// ErrMissingScheme is returned when the URL carries no scheme at all.
	ErrMissingScheme = errors.New("website URL must start with http:// or https://")

	// ErrUnsupportedScheme is returned when the URL carries a scheme
	// other than http or https.
	ErrUnsupportedScheme = errors.New("only http and https URLs are supported")
)
