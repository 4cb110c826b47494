package framestore

import "errors"

var (
	// ErrFrameSizeMismatch indicates frames of one sequence with differing
	// dimensions or channel counts.
	ErrFrameSizeMismatch = errors.New("frames differ in size")

	// ErrUnknownFormat indicates a file extension with no image encoder.
	ErrUnknownFormat = errors.New("unknown image format")

	// ErrUnsupportedChannels indicates a video that cannot be stored as
	// gray or RGB images.
	ErrUnsupportedChannels = errors.New("images need 1 or 3 channels")

	// ErrInvalidRange indicates an empty or inverted frame range, a
	// non-positive step or an empty quantization range.
	ErrInvalidRange = errors.New("invalid range")
)
