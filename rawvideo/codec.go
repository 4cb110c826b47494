package rawvideo

import (
	"fmt"

	"github.com/opd-ai/vidbuf/video"
)

// checkChannels rejects channel counts the read side cannot convert.
func checkChannels(channels int) error {
	if channels != 1 && channels != 3 {
		return fmt.Errorf("%w: got %d", ErrUnsupportedChannels, channels)
	}
	return nil
}

// requireLen panics when a caller-owned array cannot hold n samples.
func requireLen(op string, samples []float32, n int) {
	if len(samples) < n {
		panic(fmt.Sprintf("rawvideo: %s needs %d samples, array holds %d", op, n, len(samples)))
	}
}

// DecodeInto fills dst from an interleaved external array whose shape is
// given by src. dst is resized to src's width, height and frames with
// three channels.
//
// With src.Channels == 1 every gray sample is replicated into channels
// 0, 1 and 2 of its pixel. With src.Channels == 3 samples are copied in
// (t, y, x, c) order. Any other channel count returns
// ErrUnsupportedChannels and leaves dst untouched.
func DecodeInto(dst *video.Video, samples []float32, src video.Size) error {
	if err := checkChannels(src.Channels); err != nil {
		return err
	}
	requireLen("decode", samples, src.VolumeSize())

	dst.Resize(video.NewSize(src.Width, src.Height, src.Frames, 3))
	if src.Channels == 3 {
		fillPlanar(dst, samples)
		return nil
	}

	pos := 0
	for t := 0; t < src.Frames; t++ {
		for y := 0; y < src.Height; y++ {
			for x := 0; x < src.Width; x++ {
				g := samples[pos]
				pos++
				dst.Set(x, y, t, 0, g)
				dst.Set(x, y, t, 1, g)
				dst.Set(x, y, t, 2, g)
			}
		}
	}
	return nil
}

// fillPlanar copies interleaved (t, y, x, c) samples into dst using dst's
// own size and returns the number of samples consumed.
func fillPlanar(dst *video.Video, samples []float32) int {
	sz := dst.Size()
	pos := 0
	for t := 0; t < sz.Frames; t++ {
		for y := 0; y < sz.Height; y++ {
			for x := 0; x < sz.Width; x++ {
				for c := 0; c < sz.Channels; c++ {
					dst.Set(x, y, t, c, samples[pos])
					pos++
				}
			}
		}
	}
	return pos
}

// EncodeFrom writes every sample of src into dst in interleaved
// (t, y, x, c) order, emitting src's own channel count. It returns the
// number of samples written.
func EncodeFrom(src *video.Video, dst []float32) int {
	sz := src.Size()
	requireLen("encode", dst, sz.VolumeSize())

	pos := 0
	for t := 0; t < sz.Frames; t++ {
		for y := 0; y < sz.Height; y++ {
			for x := 0; x < sz.Width; x++ {
				for c := 0; c < sz.Channels; c++ {
					dst[pos] = src.At(x, y, t, c)
					pos++
				}
			}
		}
	}
	return pos
}

// BroadcastLen returns the number of samples ExportBroadcast writes for a
// source of size sz.
func BroadcastLen(sz video.Size) int {
	return sz.FrameSize() * 3
}

// ExportBroadcast writes src into dst as interleaved three-channel
// samples. A single-channel source is replicated: for each pixel, in
// frame, row, column order, its value is written to three consecutive
// slots. A three-channel source is encoded as by EncodeFrom.
func ExportBroadcast(src *video.Video, dst []float32) (int, error) {
	sz := src.Size()
	if err := checkChannels(sz.Channels); err != nil {
		return 0, err
	}
	if sz.Channels == 3 {
		return EncodeFrom(src, dst), nil
	}

	requireLen("broadcast", dst, BroadcastLen(sz))
	data := src.Data()
	pos := 0
	for i := 0; i < sz.FrameSize(); i++ {
		dst[pos] = data[i]
		dst[pos+1] = data[i]
		dst[pos+2] = data[i]
		pos += 3
	}
	return pos, nil
}
