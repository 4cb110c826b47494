package video

// Video is a float32 pixel buffer of a given Size.
//
// The zero value is an empty video. The sample sequence always holds
// exactly Size().VolumeSize() samples and is never shared with another
// Video.
type Video struct {
	size Size
	data []float32
}

// New allocates a zero-filled video of the given size.
func New(sz Size) *Video {
	return &Video{size: sz, data: make([]float32, sz.VolumeSize())}
}

// NewFilled allocates a video of the given size with every sample set to
// val.
func NewFilled(sz Size, val float32) *Video {
	v := New(sz)
	v.Fill(val)
	return v
}

// Size returns the dimensions of the video.
func (v *Video) Size() Size { return v.size }

// Data returns the sample sequence in linear order.
//
// The slice aliases the buffer: writes through it are visible to the
// video. Its length must not be changed; use Resize instead.
func (v *Video) Data() []float32 { return v.data }

// Resize changes the dimensions of the video. When sz differs from the
// current size every sample is discarded and the buffer is reallocated
// zero-filled, even when the new volume is smaller. Resizing to the
// current size keeps the data untouched.
func (v *Video) Resize(sz Size) {
	if v.size == sz {
		return
	}
	v.Clear()
	v.size = sz
	v.data = make([]float32, sz.VolumeSize())
}

// Clear resets the video to the empty size and drops its samples.
func (v *Video) Clear() {
	v.size = Size{}
	v.data = nil
}

// Fill sets every sample to val.
func (v *Video) Fill(val float32) {
	for i := range v.data {
		v.data[i] = val
	}
}

// AtIndex returns the sample at linear index idx.
func (v *Video) AtIndex(idx int) float32 {
	v.checkIndex(idx)
	return v.data[idx]
}

// SetIndex stores val at linear index idx.
func (v *Video) SetIndex(idx int, val float32) {
	v.checkIndex(idx)
	v.data[idx] = val
}

// At returns the sample at (x, y, t, c).
func (v *Video) At(x, y, t, c int) float32 {
	return v.data[v.size.Index(x, y, t, c)]
}

// Set stores val at (x, y, t, c).
func (v *Video) Set(x, y, t, c int, val float32) {
	v.data[v.size.Index(x, y, t, c)] = val
}

// Clone returns a deep copy of the video.
func (v *Video) Clone() *Video {
	return &Video{size: v.size, data: append([]float32(nil), v.data...)}
}

// Equal reports whether both videos have the same size and samples.
func (v *Video) Equal(o *Video) bool {
	if v.size != o.size {
		return false
	}
	for i, s := range v.data {
		if o.data[i] != s {
			return false
		}
	}
	return true
}

func (v *Video) checkIndex(idx int) {
	if idx < 0 || idx >= len(v.data) {
		violation("linear index %d out of range [0,%d)", idx, len(v.data))
	}
}
