package video

import "fmt"

// bayerSites lists the offsets inside a 2×2 mosaic cell, in channel order.
var bayerSites = [4][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}

// PackBayer splits a single-channel mosaic into four half-resolution
// planes, one per site of the 2×2 Bayer cell. Sample values are copied
// unchanged; no demosaicing takes place.
//
// The source must have one channel and even width and height.
func PackBayer(src *Video) (*Video, error) {
	sz := src.Size()
	if sz.Channels != 1 || sz.Width%2 != 0 || sz.Height%2 != 0 {
		return nil, fmt.Errorf("%w: pack needs 1 channel and even dimensions, got %s", ErrBayerShape, sz)
	}

	dst := New(NewSize(sz.Width/2, sz.Height/2, sz.Frames, 4))
	for t := 0; t < sz.Frames; t++ {
		for y := 0; y < sz.Height/2; y++ {
			for x := 0; x < sz.Width/2; x++ {
				for c, site := range bayerSites {
					dst.Set(x, y, t, c, src.At(2*x+site[0], 2*y+site[1], t, 0))
				}
			}
		}
	}
	return dst, nil
}

// UnpackBayer is the inverse of PackBayer: it interleaves four planes back
// into a single-channel mosaic of twice the width and height.
func UnpackBayer(src *Video) (*Video, error) {
	sz := src.Size()
	if sz.Channels != 4 {
		return nil, fmt.Errorf("%w: unpack needs 4 channels, got %s", ErrBayerShape, sz)
	}

	dst := New(NewSize(sz.Width*2, sz.Height*2, sz.Frames, 1))
	for t := 0; t < sz.Frames; t++ {
		for y := 0; y < sz.Height; y++ {
			for x := 0; x < sz.Width; x++ {
				for c, site := range bayerSites {
					dst.Set(2*x+site[0], 2*y+site[1], t, 0, src.At(x, y, t, c))
				}
			}
		}
	}
	return dst, nil
}
