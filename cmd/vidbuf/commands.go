package main

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/opd-ai/vidbuf/config"
	"github.com/opd-ai/vidbuf/filter"
	"github.com/opd-ai/vidbuf/framestore"
	"github.com/opd-ai/vidbuf/rawvideo"
	"github.com/opd-ai/vidbuf/transform"
	"github.com/opd-ai/vidbuf/video"
)

// app carries the state shared by all subcommands.
type app struct {
	configPath string
	logLevel   string
	cfg        *config.Config
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "vidbuf",
		Short:         "Convert and process raw video buffers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (overrides the configuration)")

	root.AddCommand(
		a.infoCommand(),
		a.packCommand(),
		a.unpackCommand(),
		a.blurCommand(),
		a.bayerCommand(),
		a.transformsCommand(),
		a.warpCommand(),
	)
	return root
}

func (a *app) setup() error {
	a.cfg = config.Default()
	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if a.logLevel != "" {
		a.cfg.LogLevel = a.logLevel
		if err := a.cfg.Validate(); err != nil {
			return err
		}
	}
	logrus.SetLevel(a.cfg.Level())
	return nil
}

// inputFlags binds the frame range flags, defaulting to the configuration
// once it is loaded.
type inputFlags struct {
	first, last, step int
}

func (f *inputFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.first, "first", -1, "first frame index (default from config)")
	cmd.Flags().IntVar(&f.last, "last", -1, "last frame index (default from config)")
	cmd.Flags().IntVar(&f.step, "step", 0, "frame step (default from config)")
}

func (f *inputFlags) resolve(cfg *config.Config) (first, last, step int) {
	first, last, step = cfg.Input.First, cfg.Input.Last, cfg.Input.Step
	if f.first >= 0 {
		first = f.first
	}
	if f.last >= 0 {
		last = f.last
	}
	if f.step > 0 {
		step = f.step
	}
	return first, last, step
}

func isRawFile(path string) bool {
	return strings.HasSuffix(path, ".rvf") || strings.HasSuffix(path, ".rvf"+rawvideo.CompressedSuffix)
}

func (a *app) infoCommand() *cobra.Command {
	var in inputFlags
	cmd := &cobra.Command{
		Use:   "info PATTERN|FILE.rvf",
		Short: "Print the size of a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var sz video.Size
			if isRawFile(args[0]) {
				v, err := rawvideo.ReadFile(args[0])
				if err != nil {
					return err
				}
				sz = v.Size()
			} else {
				first, last, step := in.resolve(a.cfg)
				seq := framestore.NewImageSequence(a.cfg.PMin, a.cfg.PMax)
				n, _, err := rawvideo.FrameSize(seq, args[0], first)
				if err != nil {
					return err
				}
				v, err := seq.Load(args[0], first, last, step)
				if err != nil {
					return err
				}
				sz = v.Size()
				fmt.Fprintf(cmd.OutOrStdout(), "samples per frame: %d\n", n)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "size: %s (%d samples)\n", sz, sz.VolumeSize())
			return nil
		},
	}
	in.bind(cmd)
	return cmd
}

func (a *app) packCommand() *cobra.Command {
	var in inputFlags
	cmd := &cobra.Command{
		Use:   "pack PATTERN OUT.rvf",
		Short: "Store an image sequence as a raw video file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			first, last, step := in.resolve(a.cfg)
			v, err := framestore.NewImageSequence(a.cfg.PMin, a.cfg.PMax).Load(args[0], first, last, step)
			if err != nil {
				return err
			}
			return rawvideo.WriteFile(a.outputName(args[1]), v)
		},
	}
	in.bind(cmd)
	return cmd
}

// outputName appends the compression suffix when the configuration asks
// for compressed dumps.
func (a *app) outputName(path string) string {
	if a.cfg.Compress && !strings.HasSuffix(path, rawvideo.CompressedSuffix) {
		return path + rawvideo.CompressedSuffix
	}
	return path
}

func (a *app) unpackCommand() *cobra.Command {
	var ascii string
	cmd := &cobra.Command{
		Use:   "unpack IN.rvf PATTERN",
		Short: "Write a raw video file as an image sequence",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := rawvideo.ReadFile(args[0])
			if err != nil {
				return err
			}
			seq := framestore.NewImageSequence(a.cfg.PMin, a.cfg.PMax)
			if err := seq.Save(v, args[1], a.cfg.OutputFirst, a.cfg.OutputStep); err != nil {
				return err
			}
			if ascii != "" {
				return framestore.SaveASCII(v, ascii, a.cfg.OutputFirst, a.cfg.OutputStep)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&ascii, "ascii", "", "also dump every frame and channel as text under this prefix")
	return cmd
}

func (a *app) blurCommand() *cobra.Command {
	var radius, temporal int
	var sharpen float32
	cmd := &cobra.Command{
		Use:   "blur IN.rvf OUT.rvf",
		Short: "Smooth or sharpen a raw video with mirror boundaries",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := rawvideo.ReadFile(args[0])
			if err != nil {
				return err
			}
			if radius <= 0 {
				radius = a.cfg.BlurRadius
			}

			chain := filter.NewEffectChain()
			if temporal > 0 {
				chain.AddEffect(filter.NewTemporalSmoothEffect(temporal))
			}
			if sharpen > 0 {
				chain.AddEffect(filter.NewSharpenEffect(sharpen, radius))
			} else {
				chain.AddEffect(filter.NewBoxBlurEffect(radius))
			}

			out, err := chain.Apply(v)
			if err != nil {
				return err
			}
			return rawvideo.WriteFile(a.outputName(args[1]), out)
		},
	}
	cmd.Flags().IntVar(&radius, "radius", 0, "spatial radius (default from config)")
	cmd.Flags().IntVar(&temporal, "temporal", 0, "temporal radius, 0 disables")
	cmd.Flags().Float32Var(&sharpen, "sharpen", 0, "unsharp mask strength instead of blurring")
	return cmd
}

func (a *app) bayerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bayer pack|unpack IN.rvf OUT.rvf",
		Short: "Split a mosaic into Bayer planes or merge them back",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var convert func(*video.Video) (*video.Video, error)
			switch args[0] {
			case "pack":
				convert = video.PackBayer
			case "unpack":
				convert = video.UnpackBayer
			default:
				return fmt.Errorf("unknown bayer direction %q", args[0])
			}

			v, err := rawvideo.ReadFile(args[1])
			if err != nil {
				return err
			}
			out, err := convert(v)
			if err != nil {
				return err
			}
			return rawvideo.WriteFile(a.outputName(args[2]), out)
		},
	}
	return cmd
}

// loadParams reads count legacy transforms of the configured model.
func (a *app) loadParams(path string, count int) (transform.Header, []float64, error) {
	model, err := transform.ParseModel(a.cfg.Model)
	if err != nil {
		return transform.Header{}, nil, err
	}
	params := make([]float64, int(model)*count)
	h, err := transform.LoadLegacy(path, params, int(model), count)
	if err != nil {
		return h, nil, err
	}
	return h, params, nil
}

func (a *app) transformsCommand() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "transforms LEGACY.txt OUT.txt",
		Short: "Convert a legacy parameter file to matrix rows",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 0 {
				return fmt.Errorf("--count must not be negative, got %d", count)
			}
			h, params, err := a.loadParams(args[0], count)
			if err != nil {
				return err
			}
			return transform.SaveMatrices(args[1], h, params, transform.ParamsToMatrix)
		},
	}
	cmd.Flags().IntVar(&count, "count", 0, "number of transforms in the file")
	_ = cmd.MarkFlagRequired("count")
	return cmd
}

func (a *app) warpCommand() *cobra.Command {
	var background float32
	cmd := &cobra.Command{
		Use:   "warp IN.rvf LEGACY.txt OUT.rvf",
		Short: "Resample every frame through its transform",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := rawvideo.ReadFile(args[0])
			if err != nil {
				return err
			}
			h, params, err := a.loadParams(args[1], v.Size().Frames)
			if err != nil {
				return err
			}

			matrices := make([]transform.Matrix, h.NTransforms)
			for i := range matrices {
				matrices[i] = transform.ParamsToMatrix(params[i*h.NParams : (i+1)*h.NParams])
			}
			out, err := filter.NewWarpEffect(matrices, background).Apply(v)
			if err != nil {
				return err
			}
			return rawvideo.WriteFile(a.outputName(args[2]), out)
		},
	}
	cmd.Flags().Float32Var(&background, "background", 0, "value for pixels mapped outside the frame")
	return cmd
}
