package framestore

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/opd-ai/vidbuf/video"
)

// ImageSequence loads and saves videos as one image file per frame.
// It implements rawvideo.Loader and rawvideo.Saver.
type ImageSequence struct {
	// PMin and PMax is the sample range mapped onto the full range of
	// the output format on Save.
	PMin float32
	PMax float32
}

// NewImageSequence returns an ImageSequence quantizing [pmin, pmax].
func NewImageSequence(pmin, pmax float32) *ImageSequence {
	return &ImageSequence{PMin: pmin, PMax: pmax}
}

// frameNames expands pattern to the file names of n frames starting at
// first.
func frameNames(pattern string, first, step, n int) ([]string, error) {
	if !strings.Contains(pattern, "%") {
		if n != 1 {
			return nil, fmt.Errorf("%w: %q names a single image, %d frames requested", ErrInvalidRange, pattern, n)
		}
		return []string{pattern}, nil
	}
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf(pattern, first+i*step)
	}
	return names, nil
}

// Load decodes frames first, first+step, ... <= last.
func (s *ImageSequence) Load(pattern string, first, last, step int) (*video.Video, error) {
	if step <= 0 || last < first {
		return nil, fmt.Errorf("%w: frames %d-%d step %d", ErrInvalidRange, first, last, step)
	}
	n := (last-first)/step + 1
	if !strings.Contains(pattern, "%") {
		n = 1
	}
	names, err := frameNames(pattern, first, step, n)
	if err != nil {
		return nil, err
	}

	var v *video.Video
	for t, name := range names {
		img, err := decodeFile(name)
		if err != nil {
			return nil, err
		}

		b := img.Bounds()
		channels := 3
		if isGray(img) {
			channels = 1
		}
		if v == nil {
			v = video.New(video.NewSize(b.Dx(), b.Dy(), len(names), channels))
		} else if sz := v.Size(); sz.Width != b.Dx() || sz.Height != b.Dy() || sz.Channels != channels {
			return nil, fmt.Errorf("%w: %s is %dx%dx%d, sequence is %dx%dx%d",
				ErrFrameSizeMismatch, name, b.Dx(), b.Dy(), channels, sz.Width, sz.Height, sz.Channels)
		}
		storeFrame(v, t, img)

		logrus.WithFields(logrus.Fields{
			"function": "ImageSequence.Load",
			"file":     name,
			"frame":    t,
		}).Debug("Frame decoded")
	}

	logrus.WithFields(logrus.Fields{
		"function": "ImageSequence.Load",
		"pattern":  pattern,
		"size":     v.Size().String(),
	}).Info("Image sequence loaded")
	return v, nil
}

func decodeFile(name string) (image.Image, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open frame: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return img, nil
}

// isGray reports whether img carries a single intensity channel.
func isGray(img image.Image) bool {
	switch m := img.ColorModel().(type) {
	case color.Palette:
		for _, c := range m {
			r, g, b, _ := c.RGBA()
			if r != g || g != b {
				return false
			}
		}
		return true
	default:
		return m == color.GrayModel || m == color.Gray16Model
	}
}

func storeFrame(v *video.Video, t int, img image.Image) {
	b := img.Bounds()
	sz := v.Size()

	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < sz.Height; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			for x := 0; x < sz.Width; x++ {
				v.Set(x, y, t, 0, float32(row[x]))
			}
		}
		return
	case *image.Gray16:
		for y := 0; y < sz.Height; y++ {
			for x := 0; x < sz.Width; x++ {
				v.Set(x, y, t, 0, float32(src.Gray16At(b.Min.X+x, b.Min.Y+y).Y)/257)
			}
		}
		return
	}

	for y := 0; y < sz.Height; y++ {
		for x := 0; x < sz.Width; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			if sz.Channels == 1 {
				v.Set(x, y, t, 0, float32(r)/257)
				continue
			}
			v.Set(x, y, t, 0, float32(r)/257)
			v.Set(x, y, t, 1, float32(g)/257)
			v.Set(x, y, t, 2, float32(bl)/257)
		}
	}
}

type encoder struct {
	deep   bool
	encode func(io.Writer, image.Image) error
}

func encoderFor(path string) (encoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return encoder{encode: png.Encode}, nil
	case ".jpg", ".jpeg":
		return encoder{encode: func(w io.Writer, m image.Image) error {
			return jpeg.Encode(w, m, &jpeg.Options{Quality: 95})
		}}, nil
	case ".bmp":
		return encoder{encode: bmp.Encode}, nil
	case ".tif", ".tiff":
		return encoder{deep: true, encode: func(w io.Writer, m image.Image) error {
			return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
		}}, nil
	}
	return encoder{}, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Save encodes v as one image per frame, named by pattern for frame
// indices first, first+step, ...
func (s *ImageSequence) Save(v *video.Video, pattern string, first, step int) error {
	sz := v.Size()
	if sz.Channels != 1 && sz.Channels != 3 {
		return fmt.Errorf("%w: got %d", ErrUnsupportedChannels, sz.Channels)
	}
	if s.PMax <= s.PMin {
		return fmt.Errorf("%w: pmin %g >= pmax %g", ErrInvalidRange, s.PMin, s.PMax)
	}
	enc, err := encoderFor(pattern)
	if err != nil {
		return err
	}
	names, err := frameNames(pattern, first, step, sz.Frames)
	if err != nil {
		return err
	}

	for t, name := range names {
		img := s.frameImage(v, t, enc.deep)
		if err := encodeFile(name, img, enc); err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "ImageSequence.Save",
				"file":     name,
				"error":    err.Error(),
			}).Error("Failed to write frame")
			return err
		}
	}

	logrus.WithFields(logrus.Fields{
		"function": "ImageSequence.Save",
		"pattern":  pattern,
		"size":     sz.String(),
	}).Info("Image sequence saved")
	return nil
}

func encodeFile(name string, img image.Image, enc encoder) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create frame: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close frame: %w", cerr)
		}
	}()
	if err := enc.encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return nil
}

// quantize maps val from [PMin, PMax] onto [0, full] with clamping.
func (s *ImageSequence) quantize(val float32, full float64) float64 {
	q := float64(val-s.PMin) / float64(s.PMax-s.PMin)
	q = math.Min(math.Max(q, 0), 1)
	return math.Round(q * full)
}

func (s *ImageSequence) frameImage(v *video.Video, t int, deep bool) image.Image {
	sz := v.Size()
	rect := image.Rect(0, 0, sz.Width, sz.Height)

	switch {
	case sz.Channels == 1 && deep:
		img := image.NewGray16(rect)
		for y := 0; y < sz.Height; y++ {
			for x := 0; x < sz.Width; x++ {
				img.SetGray16(x, y, color.Gray16{Y: uint16(s.quantize(v.At(x, y, t, 0), math.MaxUint16))})
			}
		}
		return img
	case sz.Channels == 1:
		img := image.NewGray(rect)
		for y := 0; y < sz.Height; y++ {
			for x := 0; x < sz.Width; x++ {
				img.SetGray(x, y, color.Gray{Y: uint8(s.quantize(v.At(x, y, t, 0), math.MaxUint8))})
			}
		}
		return img
	case deep:
		img := image.NewRGBA64(rect)
		for y := 0; y < sz.Height; y++ {
			for x := 0; x < sz.Width; x++ {
				img.SetRGBA64(x, y, color.RGBA64{
					R: uint16(s.quantize(v.At(x, y, t, 0), math.MaxUint16)),
					G: uint16(s.quantize(v.At(x, y, t, 1), math.MaxUint16)),
					B: uint16(s.quantize(v.At(x, y, t, 2), math.MaxUint16)),
					A: math.MaxUint16,
				})
			}
		}
		return img
	default:
		img := image.NewRGBA(rect)
		for y := 0; y < sz.Height; y++ {
			for x := 0; x < sz.Width; x++ {
				img.SetRGBA(x, y, color.RGBA{
					R: uint8(s.quantize(v.At(x, y, t, 0), math.MaxUint8)),
					G: uint8(s.quantize(v.At(x, y, t, 1), math.MaxUint8)),
					B: uint8(s.quantize(v.At(x, y, t, 2), math.MaxUint8)),
					A: math.MaxUint8,
				})
			}
		}
		return img
	}
}
