package transform

import "errors"

var (
	// ErrMalformed indicates a token or line that cannot be parsed.
	ErrMalformed = errors.New("malformed transform file")

	// ErrTruncated indicates a file with fewer values than its header
	// declares.
	ErrTruncated = errors.New("transform file truncated")

	// ErrHeaderMismatch indicates a header that does not match the
	// caller's expected shape or output array.
	ErrHeaderMismatch = errors.New("transform header mismatch")

	// ErrUnsupportedModel indicates a parameter count with no known model.
	ErrUnsupportedModel = errors.New("unsupported transform model")
)
