package filter

import (
	"fmt"

	"github.com/opd-ai/vidbuf/video"
)

// Effect transforms a video into a new video.
type Effect interface {
	// Apply processes v and returns the result.
	Apply(v *video.Video) (*video.Video, error)
	// GetName returns the effect name for identification.
	GetName() string
}

// EffectChain applies several effects in sequence.
type EffectChain struct {
	effects []Effect
}

// NewEffectChain creates an empty chain.
func NewEffectChain() *EffectChain {
	return &EffectChain{
		effects: make([]Effect, 0),
	}
}

// AddEffect appends an effect to the chain.
func (ec *EffectChain) AddEffect(effect Effect) {
	ec.effects = append(ec.effects, effect)
}

// Apply runs v through every effect of the chain. An empty chain returns
// a copy.
func (ec *EffectChain) Apply(v *video.Video) (*video.Video, error) {
	if v == nil {
		return nil, ErrNilVideo
	}

	current := v.Clone()
	for i, effect := range ec.effects {
		result, err := effect.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("effect %d (%s) failed: %w", i, effect.GetName(), err)
		}
		current = result
	}
	return current, nil
}

// GetEffectCount returns the number of effects in the chain.
func (ec *EffectChain) GetEffectCount() int {
	return len(ec.effects)
}

// Clear removes all effects from the chain.
func (ec *EffectChain) Clear() {
	ec.effects = ec.effects[:0]
}

// checkRadius verifies that radius stays within one reflection of a
// dimension of length n.
func checkRadius(axis string, radius, n int) error {
	if radius > n-1 {
		return fmt.Errorf("%w: %s radius %d needs %s >= %d, got %d", ErrRadiusTooLarge, axis, radius, axis, radius+1, n)
	}
	return nil
}

// BoxBlurEffect averages each sample over a (2r+1)×(2r+1) spatial window.
type BoxBlurEffect struct {
	radius int
}

// NewBoxBlurEffect creates a box blur. Radii below 1 are raised to 1.
func NewBoxBlurEffect(radius int) *BoxBlurEffect {
	if radius < 1 {
		radius = 1
	}
	return &BoxBlurEffect{radius: radius}
}

// Apply blurs every frame and channel. The window is separable, so rows
// are averaged first and columns second.
func (be *BoxBlurEffect) Apply(v *video.Video) (*video.Video, error) {
	if v == nil {
		return nil, ErrNilVideo
	}
	sz := v.Size()
	if err := checkRadius("width", be.radius, sz.Width); err != nil {
		return nil, err
	}
	if err := checkRadius("height", be.radius, sz.Height); err != nil {
		return nil, err
	}

	r := be.radius
	norm := float32(2*r + 1)
	rows := video.New(sz)
	forEach(sz, func(x, y, t, c int) {
		var sum float32
		for dx := -r; dx <= r; dx++ {
			sum += v.AtMirrored(x+dx, y, t, c)
		}
		rows.Set(x, y, t, c, sum/norm)
	})

	result := video.New(sz)
	forEach(sz, func(x, y, t, c int) {
		var sum float32
		for dy := -r; dy <= r; dy++ {
			sum += rows.AtMirrored(x, y+dy, t, c)
		}
		result.Set(x, y, t, c, sum/norm)
	})
	return result, nil
}

// GetName returns the effect name.
func (be *BoxBlurEffect) GetName() string {
	return fmt.Sprintf("BoxBlur(%d)", be.radius)
}

// TemporalSmoothEffect averages each sample over 2r+1 neighboring frames.
type TemporalSmoothEffect struct {
	radius int
}

// NewTemporalSmoothEffect creates a temporal average. Radii below 1 are
// raised to 1.
func NewTemporalSmoothEffect(radius int) *TemporalSmoothEffect {
	if radius < 1 {
		radius = 1
	}
	return &TemporalSmoothEffect{radius: radius}
}

// Apply averages along the time axis.
func (te *TemporalSmoothEffect) Apply(v *video.Video) (*video.Video, error) {
	if v == nil {
		return nil, ErrNilVideo
	}
	sz := v.Size()
	if err := checkRadius("frames", te.radius, sz.Frames); err != nil {
		return nil, err
	}

	r := te.radius
	norm := float32(2*r + 1)
	result := video.New(sz)
	forEach(sz, func(x, y, t, c int) {
		var sum float32
		for dt := -r; dt <= r; dt++ {
			sum += v.AtMirrored(x, y, t+dt, c)
		}
		result.Set(x, y, t, c, sum/norm)
	})
	return result, nil
}

// GetName returns the effect name.
func (te *TemporalSmoothEffect) GetName() string {
	return fmt.Sprintf("TemporalSmooth(%d)", te.radius)
}

// SharpenEffect is an unsharp mask: v + strength*(v - blur(v)).
type SharpenEffect struct {
	strength float32
	blur     *BoxBlurEffect
}

// NewSharpenEffect creates an unsharp mask over a box blur of the given
// radius. strength is clamped to [0, 2].
func NewSharpenEffect(strength float32, radius int) *SharpenEffect {
	if strength < 0 {
		strength = 0
	}
	if strength > 2 {
		strength = 2
	}
	return &SharpenEffect{strength: strength, blur: NewBoxBlurEffect(radius)}
}

// Apply sharpens every frame and channel.
func (se *SharpenEffect) Apply(v *video.Video) (*video.Video, error) {
	blurred, err := se.blur.Apply(v)
	if err != nil {
		return nil, err
	}

	result := v.Clone()
	out := result.Data()
	for i, b := range blurred.Data() {
		out[i] += se.strength * (out[i] - b)
	}
	return result, nil
}

// GetName returns the effect name.
func (se *SharpenEffect) GetName() string {
	return fmt.Sprintf("Sharpen(%.2f,%d)", se.strength, se.blur.radius)
}

// GainEffect maps every sample s to s*gain + offset.
type GainEffect struct {
	gain   float32
	offset float32
}

// NewGainEffect creates a linear intensity adjustment.
func NewGainEffect(gain, offset float32) *GainEffect {
	return &GainEffect{gain: gain, offset: offset}
}

// Apply adjusts every sample.
func (ge *GainEffect) Apply(v *video.Video) (*video.Video, error) {
	if v == nil {
		return nil, ErrNilVideo
	}
	result := v.Clone()
	out := result.Data()
	for i := range out {
		out[i] = out[i]*ge.gain + ge.offset
	}
	return result, nil
}

// GetName returns the effect name.
func (ge *GainEffect) GetName() string {
	return fmt.Sprintf("Gain(%g,%+g)", ge.gain, ge.offset)
}

// forEach calls fn for every coordinate of sz in linear order.
func forEach(sz video.Size, fn func(x, y, t, c int)) {
	for t := 0; t < sz.Frames; t++ {
		for c := 0; c < sz.Channels; c++ {
			for y := 0; y < sz.Height; y++ {
				for x := 0; x < sz.Width; x++ {
					fn(x, y, t, c)
				}
			}
		}
	}
}
