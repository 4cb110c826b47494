// Package video provides the in-memory pixel buffer shared by the
// registration pipeline and raw video storage.
//
// A video is four dimensional: width × height × frames × channels. The
// Size type describes those dimensions and owns all address arithmetic;
// the Video type owns one contiguous float32 sample sequence sized to a
// Size.
//
// # Memory Layout
//
// Samples are stored frame-major, then channel, then row, then column.
// Channels are separate planes inside a frame, they are not interleaved
// per pixel:
//
//	index = t*FrameStride() + c*PlaneSize() + y*Width + x
//
// Interleaved layouts used by external callers are converted by the
// rawvideo package.
//
// # Boundary Handling
//
// AtMirrored reads "virtual" samples outside the valid range by
// reflecting each of x, y and t about the first or last sample:
//
//	x' = -x              if x < 0
//	x' = 2*(Width-1) - x if x >= Width
//
// Only one reflection is supported, so a neighborhood operation may read
// at most min(dimension)-1 samples past an edge:
//
//	v := video.New(video.NewSize(640, 480, 10, 3))
//	left := v.AtMirrored(-1, 0, 0, 0) // same sample as (1, 0, 0, 0)
//
// # Error Handling
//
// Out-of-range coordinates, exceeded reflection periods and mismatched
// sizes are caller bugs and panic. Conditions that depend on data, such
// as an unsupported Bayer input shape, are returned as errors wrapping the
// sentinels in errors.go.
//
// # Thread Safety
//
// A Video is not safe for concurrent mutation. Distinct Video values share
// no state and may be processed in separate goroutines.
package video
