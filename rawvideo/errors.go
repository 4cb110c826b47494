package rawvideo

import "errors"

var (
	// ErrUnsupportedChannels indicates a source with a channel count other
	// than 1 or 3.
	ErrUnsupportedChannels = errors.New("video needs to have 1 or 3 channels")

	// ErrBadMagic indicates a file that is not a raw video dump.
	ErrBadMagic = errors.New("not a raw video file")

	// ErrTruncated indicates a raw video file that ends early.
	ErrTruncated = errors.New("raw video file truncated")

	// ErrChecksum indicates sample data that does not match its checksum.
	ErrChecksum = errors.New("raw video checksum mismatch")

	// ErrTooLarge indicates a header declaring more samples than MaxSamples.
	ErrTooLarge = errors.New("raw video too large")
)
