package filter

import (
	"fmt"
	"math"

	"github.com/opd-ai/vidbuf/transform"
	"github.com/opd-ai/vidbuf/video"
)

// WarpEffect resamples each frame through its own transform. Output pixel
// (x, y) of frame t takes the value of the input at matrices[t]·(x, y),
// interpolated bilinearly. Positions outside the input frame take the
// background value.
type WarpEffect struct {
	matrices   []transform.Matrix
	background float32
}

// NewWarpEffect creates a warp with one matrix per frame.
func NewWarpEffect(matrices []transform.Matrix, background float32) *WarpEffect {
	return &WarpEffect{matrices: matrices, background: background}
}

// Apply warps every frame of v.
func (we *WarpEffect) Apply(v *video.Video) (*video.Video, error) {
	if v == nil {
		return nil, ErrNilVideo
	}
	sz := v.Size()
	if len(we.matrices) != sz.Frames {
		return nil, fmt.Errorf("%w: %d matrices for %d frames", ErrFrameCountMismatch, len(we.matrices), sz.Frames)
	}

	result := video.New(sz)
	for t, m := range we.matrices {
		for y := 0; y < sz.Height; y++ {
			for x := 0; x < sz.Width; x++ {
				sx, sy := m.Apply(float64(x), float64(y))
				for c := 0; c < sz.Channels; c++ {
					result.Set(x, y, t, c, we.sample(v, sx, sy, t, c))
				}
			}
		}
	}
	return result, nil
}

// sample interpolates v bilinearly at (sx, sy).
func (we *WarpEffect) sample(v *video.Video, sx, sy float64, t, c int) float32 {
	sz := v.Size()
	if math.IsNaN(sx) || math.IsNaN(sy) ||
		sx < 0 || sy < 0 || sx > float64(sz.Width-1) || sy > float64(sz.Height-1) {
		return we.background
	}

	x1 := int(sx)
	y1 := int(sy)
	x2 := min(x1+1, sz.Width-1)
	y2 := min(y1+1, sz.Height-1)
	fx := float32(sx - float64(x1))
	fy := float32(sy - float64(y1))

	p11 := v.At(x1, y1, t, c)
	p12 := v.At(x2, y1, t, c)
	p21 := v.At(x1, y2, t, c)
	p22 := v.At(x2, y2, t, c)

	top := p11*(1-fx) + p12*fx
	bottom := p21*(1-fx) + p22*fx
	return top*(1-fy) + bottom*fy
}

// GetName returns the effect name.
func (we *WarpEffect) GetName() string {
	return fmt.Sprintf("Warp(%d)", len(we.matrices))
}
