package video

// mirror reflects p about the first and last valid position of a
// dimension of length n. It panics when p is more than one reflection
// period away from the valid range.
func mirror(p, n int, axis string) int {
	if p <= -n || p >= 2*n-1 {
		violation("%s=%d outside one reflection period of length %d", axis, p, n)
	}
	switch {
	case p < 0:
		return -p
	case p >= n:
		return 2*(n-1) - p
	default:
		return p
	}
}

// MirrorIndex returns the linear index that AtMirrored reads for
// (x, y, t, c). Each of x, y and t must satisfy -n < p < 2n-1 for its
// dimension n; c is never mirrored and must be in range.
func (v *Video) MirrorIndex(x, y, t, c int) int {
	x = mirror(x, v.size.Width, "x")
	y = mirror(y, v.size.Height, "y")
	t = mirror(t, v.size.Frames, "t")
	return v.size.Index(x, y, t, c)
}

// AtMirrored returns the sample at (x, y, t, c) with symmetric boundary
// extension. In-range coordinates read the same sample as At.
func (v *Video) AtMirrored(x, y, t, c int) float32 {
	return v.data[v.MirrorIndex(x, y, t, c)]
}

// SetMirrored stores val in the sample that AtMirrored(x, y, t, c) reads.
func (v *Video) SetMirrored(x, y, t, c int, val float32) {
	v.data[v.MirrorIndex(x, y, t, c)] = val
}
