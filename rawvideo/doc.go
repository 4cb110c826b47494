// Package rawvideo converts between video.Video buffers and the flat
// sample arrays exchanged with external callers, and stores buffers as
// raw dump files.
//
// # Interleaved Arrays
//
// External arrays nest frame, row, column, channel from outermost to
// innermost, so the channels of a pixel are contiguous. A video.Video
// keeps channels as separate planes. DecodeInto and EncodeFrom convert
// between the two:
//
//	v := new(video.Video)
//	err := rawvideo.DecodeInto(v, samples, video.NewSize(w, h, f, 1))
//	// v now has 3 channels; each pixel's channels equal the gray sample
//
//	out := make([]float32, v.Size().VolumeSize())
//	n := rawvideo.EncodeFrom(v, out)
//
// Only one or three source channels are accepted on the read side; a
// single channel is replicated into three. Writes always emit the buffer's
// own channel count.
//
// # Adapter Functions
//
// FrameSize, ReadVideo and WriteVideo wrap a Loader or Saver (usually a
// framestore.ImageSequence) for callers that work purely with caller-owned
// arrays. They retain no reference to those arrays.
//
// # Raw Dump Files
//
// WriteFile and ReadFile persist a buffer in planar order:
//
//	"RVF1" | width | height | frames | channels | samples... | blake2b-256
//
// All integers and samples are little-endian. Files whose name ends in
// ".zst" are zstd compressed.
package rawvideo
