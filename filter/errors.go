package filter

import "errors"

var (
	// ErrNilVideo indicates a nil input buffer.
	ErrNilVideo = errors.New("input video cannot be nil")

	// ErrRadiusTooLarge indicates a radius that would read further past an
	// edge than one mirror reflection reaches.
	ErrRadiusTooLarge = errors.New("radius exceeds mirror range")

	// ErrFrameCountMismatch indicates per-frame parameters that do not
	// match the number of frames.
	ErrFrameCountMismatch = errors.New("frame count mismatch")
)
