// Package framestore decodes and encodes videos stored as numbered image
// sequences.
//
// A sequence is addressed by a printf pattern with a single integer verb,
// for example "clip/frame_%03d.png". Frames first, first+step, ... up to
// last are read into one video.Video; a pattern without a verb names a
// single image. Grayscale images produce one channel, anything else three
// (alpha is dropped). Samples are floats in the 0..255 range regardless of
// the file's bit depth.
//
// Encoding picks the format from the file extension: .png, .jpg/.jpeg,
// .bmp (8 bits) and .tif/.tiff (16 bits). Sample values are mapped
// linearly from [PMin, PMax] onto the full range of the format and
// clamped.
//
//	seq := framestore.NewImageSequence(0, 255)
//	v, err := seq.Load("in_%03d.png", 1, 30, 1)
//	...
//	err = seq.Save(v, "out_%03d.tif", 1, 1)
package framestore
