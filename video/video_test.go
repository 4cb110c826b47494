package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestVideo returns a video whose samples equal their linear index.
func newTestVideo(sz Size) *Video {
	v := New(sz)
	for i := range v.Data() {
		v.Data()[i] = float32(i)
	}
	return v
}

func TestNewVideo(t *testing.T) {
	var empty Video
	assert.Equal(t, Size{}, empty.Size())
	assert.Empty(t, empty.Data())

	v := New(NewSize(4, 3, 2, 3))
	require.Len(t, v.Data(), 72)
	for _, s := range v.Data() {
		assert.Zero(t, s)
	}

	filled := NewFilled(NewSize(2, 2, 1, 1), 7.5)
	assert.Equal(t, []float32{7.5, 7.5, 7.5, 7.5}, filled.Data())
}

func TestVideoAccess(t *testing.T) {
	sz := NewSize(4, 3, 2, 2)
	v := newTestVideo(sz)

	assert.Equal(t, float32(sz.Index(3, 2, 1, 1)), v.At(3, 2, 1, 1))
	assert.Equal(t, float32(5), v.AtIndex(5))

	v.Set(1, 1, 0, 1, -3)
	assert.Equal(t, float32(-3), v.AtIndex(sz.Index(1, 1, 0, 1)))

	v.SetIndex(0, 42)
	assert.Equal(t, float32(42), v.At(0, 0, 0, 0))

	assert.Panics(t, func() { v.AtIndex(sz.VolumeSize()) })
	assert.Panics(t, func() { v.SetIndex(-1, 0) })
	assert.Panics(t, func() { v.At(4, 0, 0, 0) })
	assert.Panics(t, func() { v.Set(0, 0, 0, 2, 1) })
}

func TestVideoResize(t *testing.T) {
	tests := []struct {
		name     string
		size     Size
		preserve bool
	}{
		{name: "same size", size: NewSize(3, 2, 2, 1), preserve: true},
		{name: "smaller", size: NewSize(2, 2, 2, 1)},
		{name: "larger", size: NewSize(4, 4, 2, 1)},
		{name: "same volume", size: NewSize(2, 3, 2, 1)},
		{name: "more channels", size: NewSize(3, 2, 2, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewFilled(NewSize(3, 2, 2, 1), 9)
			v.Resize(tt.size)

			assert.Equal(t, tt.size, v.Size())
			require.Len(t, v.Data(), tt.size.VolumeSize())
			for _, s := range v.Data() {
				if tt.preserve {
					assert.Equal(t, float32(9), s)
				} else {
					assert.Zero(t, s)
				}
			}
		})
	}
}

func TestVideoClear(t *testing.T) {
	v := NewFilled(NewSize(3, 2, 2, 1), 1)
	v.Clear()

	assert.Equal(t, Size{}, v.Size())
	assert.Empty(t, v.Data())

	v.Resize(NewSize(1, 1, 1, 1))
	assert.Equal(t, []float32{0}, v.Data())
}

func TestVideoCloneAndEqual(t *testing.T) {
	v := newTestVideo(NewSize(3, 2, 2, 2))
	c := v.Clone()

	assert.True(t, v.Equal(c))
	c.SetIndex(0, 100)
	assert.False(t, v.Equal(c))
	assert.Equal(t, float32(0), v.AtIndex(0), "clone must not alias")

	assert.False(t, v.Equal(New(NewSize(2, 3, 2, 2))))
}

func TestMirrorInRangeMatchesDirect(t *testing.T) {
	sz := NewSize(4, 3, 3, 2)
	v := newTestVideo(sz)

	for tt := 0; tt < sz.Frames; tt++ {
		for c := 0; c < sz.Channels; c++ {
			for y := 0; y < sz.Height; y++ {
				for x := 0; x < sz.Width; x++ {
					assert.Equal(t, v.At(x, y, tt, c), v.AtMirrored(x, y, tt, c))
				}
			}
		}
	}
}

func TestMirrorBoundarySymmetry(t *testing.T) {
	sz := NewSize(5, 4, 3, 2)
	v := newTestVideo(sz)

	for c := 0; c < sz.Channels; c++ {
		for tt := 0; tt < sz.Frames; tt++ {
			for y := 0; y < sz.Height; y++ {
				assert.Equal(t, v.AtMirrored(1, y, tt, c), v.AtMirrored(-1, y, tt, c))
				assert.Equal(t, v.AtMirrored(sz.Width-2, y, tt, c), v.AtMirrored(sz.Width, y, tt, c))
			}
			for x := 0; x < sz.Width; x++ {
				assert.Equal(t, v.AtMirrored(x, 1, tt, c), v.AtMirrored(x, -1, tt, c))
				assert.Equal(t, v.AtMirrored(x, sz.Height-2, tt, c), v.AtMirrored(x, sz.Height, tt, c))
			}
		}
		assert.Equal(t, v.AtMirrored(2, 2, 1, c), v.AtMirrored(2, 2, -1, c))
		assert.Equal(t, v.AtMirrored(2, 2, sz.Frames-2, c), v.AtMirrored(2, 2, sz.Frames, c))
	}
}

func TestMirrorFullPeriod(t *testing.T) {
	tests := []struct {
		x    int
		want int
	}{
		{x: -4, want: 4},
		{x: -1, want: 1},
		{x: 0, want: 0},
		{x: 4, want: 4},
		{x: 5, want: 3},
		{x: 8, want: 0},
	}

	v := newTestVideo(NewSize(5, 1, 1, 1))
	for _, tt := range tests {
		assert.Equal(t, float32(tt.want), v.AtMirrored(tt.x, 0, 0, 0), "x=%d", tt.x)
	}
}

func TestMirrorContractViolations(t *testing.T) {
	v := newTestVideo(NewSize(5, 4, 3, 2))

	assert.Panics(t, func() { v.AtMirrored(-5, 0, 0, 0) })
	assert.Panics(t, func() { v.AtMirrored(9, 0, 0, 0) })
	assert.Panics(t, func() { v.AtMirrored(0, 7, 0, 0) })
	assert.Panics(t, func() { v.AtMirrored(0, 0, -3, 0) })
	assert.Panics(t, func() { v.AtMirrored(0, 0, 0, 2) })
	assert.Panics(t, func() { v.AtMirrored(0, 0, 0, -1) })
	assert.NotPanics(t, func() { v.AtMirrored(-4, -3, -2, 1) })
	assert.NotPanics(t, func() { v.AtMirrored(8, 6, 4, 0) })
}

func TestSetMirrored(t *testing.T) {
	v := New(NewSize(3, 3, 1, 1))
	v.SetMirrored(-1, 3, 0, 0, 5)

	assert.Equal(t, float32(5), v.At(1, 1, 0, 0))
	assert.Equal(t, v.Size().Index(1, 1, 0, 0), v.MirrorIndex(-1, 3, 0, 0))
}
