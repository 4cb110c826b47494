package rawvideo

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vidbuf/video"
)

// Loader decodes frames first, first+step, ... up to last from path.
type Loader interface {
	Load(path string, first, last, step int) (*video.Video, error)
}

// Saver persists v starting at frame index first, stepping by step.
type Saver interface {
	Save(v *video.Video, path string, first, step int) error
}

// FrameSize loads frame first from path and returns the number of
// samples in one frame (width*height*channels) together with the loaded
// size. Sources with a channel count other than 1 or 3 are rejected.
func FrameSize(l Loader, path string, first int) (int, video.Size, error) {
	v, err := l.Load(path, first, first, 1)
	if err != nil {
		return 0, video.Size{}, fmt.Errorf("load frame %d of %s: %w", first, path, err)
	}

	sz := v.Size()
	if err := checkChannels(sz.Channels); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "FrameSize",
			"path":     path,
			"channels": sz.Channels,
		}).Warn("Rejecting video with unsupported channel count")
		return 0, sz, err
	}
	return sz.FrameStride(), sz, nil
}

// ReadVideo loads a frame range from path and stores it in dst as
// interleaved three-channel samples, replicating single-channel sources.
// It returns the number of samples written.
func ReadVideo(l Loader, path string, first, last, step int, dst []float32) (int, error) {
	v, err := l.Load(path, first, last, step)
	if err != nil {
		return 0, fmt.Errorf("load frames %d-%d of %s: %w", first, last, path, err)
	}

	n, err := ExportBroadcast(v, dst)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "ReadVideo",
			"path":     path,
			"size":     v.Size().String(),
		}).Warn("Rejecting video with unsupported channel count")
		return 0, err
	}

	logrus.WithFields(logrus.Fields{
		"function": "ReadVideo",
		"path":     path,
		"size":     v.Size().String(),
		"samples":  n,
	}).Debug("Video read into caller array")
	return n, nil
}

// WriteVideo builds a buffer of size sz from the interleaved samples and
// hands it to s. It returns the number of samples consumed.
func WriteVideo(s Saver, path string, first, step int, samples []float32, sz video.Size) (int, error) {
	v := video.New(sz)
	requireLen("write", samples, sz.VolumeSize())

	pos := fillPlanar(v, samples)

	if err := s.Save(v, path, first, step); err != nil {
		return 0, fmt.Errorf("save %s: %w", path, err)
	}

	logrus.WithFields(logrus.Fields{
		"function": "WriteVideo",
		"path":     path,
		"size":     sz.String(),
		"samples":  pos,
	}).Debug("Video written from caller array")
	return pos, nil
}
