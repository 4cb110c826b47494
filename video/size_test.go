package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeDerivedFields(t *testing.T) {
	sz := NewSize(4, 3, 2, 3)

	assert.Equal(t, 12, sz.PlaneSize())
	assert.Equal(t, 36, sz.FrameStride())
	assert.Equal(t, 72, sz.VolumeSize())
	assert.Equal(t, 24, sz.FrameSize())
	assert.Equal(t, "4x3x2x3", sz.String())

	sz.Channels = 1
	assert.Equal(t, 12, sz.FrameStride(), "derived fields follow mutation")
	assert.Equal(t, 24, sz.VolumeSize())
}

func TestSizeEquality(t *testing.T) {
	assert.Equal(t, NewSize(4, 3, 2, 1), Size{Width: 4, Height: 3, Frames: 2, Channels: 1})
	assert.True(t, NewSize(4, 3, 2, 1) == NewSize(4, 3, 2, 1))
	assert.False(t, NewSize(4, 3, 2, 1) == NewSize(3, 4, 2, 1))
	assert.True(t, Size{}.IsEmpty())
}

func TestSizeIndexScenario(t *testing.T) {
	sz := NewSize(4, 3, 2, 1)

	assert.Equal(t, 23, sz.Index(3, 2, 1, 0))
	assert.Equal(t, 24, sz.VolumeSize())
	assert.Equal(t, 23, sz.PixelIndex(3, 2, 1))
}

func TestSizeIndexRoundTrip(t *testing.T) {
	sizes := []Size{
		NewSize(1, 1, 1, 1),
		NewSize(4, 3, 2, 1),
		NewSize(5, 2, 3, 3),
		NewSize(7, 1, 2, 4),
	}

	for _, sz := range sizes {
		t.Run(sz.String(), func(t *testing.T) {
			seen := make([]bool, sz.VolumeSize())
			for tt := 0; tt < sz.Frames; tt++ {
				for c := 0; c < sz.Channels; c++ {
					for y := 0; y < sz.Height; y++ {
						for x := 0; x < sz.Width; x++ {
							idx := sz.Index(x, y, tt, c)
							require.GreaterOrEqual(t, idx, 0)
							require.Less(t, idx, sz.VolumeSize())
							require.False(t, seen[idx], "index %d produced twice", idx)
							seen[idx] = true

							gx, gy, gt, gc := sz.Coords(idx)
							assert.Equal(t, []int{x, y, tt, c}, []int{gx, gy, gt, gc})
						}
					}
				}
			}
			for idx, ok := range seen {
				assert.True(t, ok, "index %d never produced", idx)
			}
		})
	}
}

func TestSizePixelIndexRoundTrip(t *testing.T) {
	sz := NewSize(5, 4, 3, 3)
	for idx := 0; idx < sz.FrameSize(); idx++ {
		x, y, tt := sz.PixelCoords(idx)
		assert.Equal(t, idx, sz.PixelIndex(x, y, tt))
	}
}

func TestSizeContractViolations(t *testing.T) {
	sz := NewSize(4, 3, 2, 1)

	assert.Panics(t, func() { sz.Index(4, 0, 0, 0) })
	assert.Panics(t, func() { sz.Index(0, -1, 0, 0) })
	assert.Panics(t, func() { sz.Index(0, 0, 2, 0) })
	assert.Panics(t, func() { sz.Index(0, 0, 0, 1) })
	assert.Panics(t, func() { sz.PixelIndex(0, 3, 0) })
	assert.Panics(t, func() { sz.Coords(24) })
	assert.Panics(t, func() { sz.PixelCoords(-1) })
}
