// Command vidbuf converts and processes videos held as image sequences or
// raw float dumps.
//
// Usage:
//
//	vidbuf info  'frames/%03d.png' --first 1 --last 50
//	vidbuf pack  'frames/%03d.png' clip.rvf.zst --first 1 --last 50
//	vidbuf blur  clip.rvf.zst blurred.rvf --radius 2 --temporal 1
//	vidbuf unpack blurred.rvf 'out/%03d.png'
//	vidbuf bayer pack mosaic.rvf planes.rvf
//	vidbuf transforms params.txt matrices.txt --count 49
//	vidbuf warp clip.rvf params.txt stable.rvf
//
// Defaults for ranges, quantization and logging come from the YAML file
// given with --config.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "main",
			"error":    err.Error(),
		}).Error("Command failed")
		os.Exit(1)
	}
}
