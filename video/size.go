package video

import "fmt"

// Size describes the dimensions of a video.
//
// Derived products (PlaneSize, FrameStride, VolumeSize, FrameSize) are
// computed from the four primary fields on every call, so they can never
// be observed out of date. Two sizes are equal, with ==, iff the four
// primary fields match.
//
// Products are computed in int; dimensions whose product overflows are the
// caller's responsibility.
type Size struct {
	Width    int
	Height   int
	Frames   int
	Channels int
}

// NewSize returns a Size with the given dimensions.
func NewSize(width, height, frames, channels int) Size {
	return Size{Width: width, Height: height, Frames: frames, Channels: channels}
}

// PlaneSize returns Width*Height.
func (s Size) PlaneSize() int { return s.Width * s.Height }

// FrameStride returns the number of samples in one frame, all channels
// included.
func (s Size) FrameStride() int { return s.PlaneSize() * s.Channels }

// VolumeSize returns the total number of samples.
func (s Size) VolumeSize() int { return s.FrameStride() * s.Frames }

// FrameSize returns Width*Height*Frames, the number of pixels of a single
// channel across all frames.
func (s Size) FrameSize() int { return s.PlaneSize() * s.Frames }

// IsEmpty reports whether the size holds no samples.
func (s Size) IsEmpty() bool { return s.VolumeSize() == 0 }

// String returns the size as WxHxFxC.
func (s Size) String() string {
	return fmt.Sprintf("%dx%dx%dx%d", s.Width, s.Height, s.Frames, s.Channels)
}

// Contains reports whether (x, y, t, c) is a valid coordinate.
func (s Size) Contains(x, y, t, c int) bool {
	return x >= 0 && x < s.Width &&
		y >= 0 && y < s.Height &&
		t >= 0 && t < s.Frames &&
		c >= 0 && c < s.Channels
}

// Index returns the linear offset of (x, y, t, c). It panics if the
// coordinate is out of range.
func (s Size) Index(x, y, t, c int) int {
	if !s.Contains(x, y, t, c) {
		violation("index (%d,%d,%d,%d) out of range for %s", x, y, t, c, s)
	}
	return t*s.FrameStride() + c*s.PlaneSize() + y*s.Width + x
}

// PixelIndex returns the linear offset of (x, y, t) as if the video had a
// single channel. It panics if the coordinate is out of range.
func (s Size) PixelIndex(x, y, t int) int {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height || t < 0 || t >= s.Frames {
		violation("pixel index (%d,%d,%d) out of range for %s", x, y, t, s)
	}
	return t*s.PlaneSize() + y*s.Width + x
}

// Coords is the inverse of Index. It panics unless 0 <= idx < VolumeSize.
func (s Size) Coords(idx int) (x, y, t, c int) {
	if idx < 0 || idx >= s.VolumeSize() {
		violation("linear index %d out of range [0,%d)", idx, s.VolumeSize())
	}
	wh := s.PlaneSize()
	t = idx / s.FrameStride()
	c = (idx % s.FrameStride()) / wh
	y = (idx % wh) / s.Width
	x = idx % s.Width
	return x, y, t, c
}

// PixelCoords is the inverse of PixelIndex. It panics unless
// 0 <= idx < FrameSize.
func (s Size) PixelCoords(idx int) (x, y, t int) {
	if idx < 0 || idx >= s.FrameSize() {
		violation("pixel index %d out of range [0,%d)", idx, s.FrameSize())
	}
	wh := s.PlaneSize()
	t = idx / wh
	y = (idx % wh) / s.Width
	x = idx % s.Width
	return x, y, t
}
