package framestore

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vidbuf/video"
)

// ASCIIName returns the file SaveASCII writes for frame index frame and
// channel c.
func ASCIIName(prefix string, frame, c int) string {
	return fmt.Sprintf("%s_%03d_%d.txt", prefix, frame, c)
}

// SaveASCII writes every frame and channel of v as a text file of
// space-separated samples, one image row per line. Frame t is stored
// under index first+t*step.
func SaveASCII(v *video.Video, prefix string, first, step int) error {
	sz := v.Size()
	for t := 0; t < sz.Frames; t++ {
		for c := 0; c < sz.Channels; c++ {
			name := ASCIIName(prefix, first+t*step, c)
			if err := writeASCIIPlane(name, v, t, c); err != nil {
				return err
			}
		}
	}

	logrus.WithFields(logrus.Fields{
		"function": "SaveASCII",
		"prefix":   prefix,
		"size":     sz.String(),
	}).Info("ASCII frames saved")
	return nil
}

func writeASCIIPlane(name string, v *video.Video, t, c int) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create ascii frame: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close ascii frame: %w", cerr)
		}
	}()

	w := bufio.NewWriter(f)
	sz := v.Size()
	for y := 0; y < sz.Height; y++ {
		for x := 0; x < sz.Width; x++ {
			if x > 0 {
				w.WriteByte(' ')
			}
			w.WriteString(strconv.FormatFloat(float64(v.At(x, y, t, c)), 'g', -1, 32))
		}
		w.WriteByte('\n')
	}
	return w.Flush()
}
