package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/avscale"
	"github.com/xaionaro-go/avscale/allocator"
	"github.com/xaionaro-go/avscale/config"
	"github.com/xaionaro-go/avscale/logger"
	"github.com/xaionaro-go/avscale/rawvideo"
	"github.com/xaionaro-go/avscale/scaler"
	"github.com/xaionaro-go/avscale/types"
	"github.com/xaionaro-go/observability"
)

var transformFlags = struct {
	ConfigPath      string
	InputPath       string
	InputImagePath  string
	OutputPath      string
	SnapshotPath    string
	PixelFormat     types.PixelFormat
	InputResolution types.Resolution
	TargetWidth     uint32
	TargetHeight    uint32
	Mode            types.ScaleMode
	Interpolation   scaler.Interpolation
	StatsInterval   time.Duration
}{
	InputPath:     "-",
	OutputPath:    "-",
	PixelFormat:   types.PixelFormatYUV420P,
	Mode:          types.DefaultScaleMode,
	Interpolation: scaler.DefaultInterpolation,
	StatsInterval: 5 * time.Second,
}

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Transform a raw video stream (or an image) to the target resolution",
	Args:  cobra.NoArgs,
	RunE:  runTransform,
}

func init() {
	registerTransformFlags(transformCmd.Flags())
	rootCmd.AddCommand(transformCmd)
}

func registerTransformFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&transformFlags.ConfigPath, "config", "c", "", "path to a YAML config; the flags below override it")
	flags.StringVarP(&transformFlags.InputPath, "input", "i", transformFlags.InputPath, "raw video input file, '-' for stdin")
	flags.StringVar(&transformFlags.InputImagePath, "input-image", "", "use an image file as a single input frame instead of raw video")
	flags.StringVarP(&transformFlags.OutputPath, "output", "o", transformFlags.OutputPath, "raw video output file, '-' for stdout")
	flags.StringVar(&transformFlags.SnapshotPath, "snapshot", "", "save the first output frame as an image (.png or .jpg)")
	flags.Var(&transformFlags.PixelFormat, "pixel-format", "pixel format: rgb24 or yuv420p")
	flags.Var(&transformFlags.InputResolution, "input-resolution", "input resolution, e.g. 1280x720")
	flags.Uint32Var(&transformFlags.TargetWidth, "target-width", 0, "output width, 0 means the input width")
	flags.Uint32Var(&transformFlags.TargetHeight, "target-height", 0, "output height, 0 means the input height")
	flags.Var(&transformFlags.Mode, "mode", "scale mode: standard or aspect-ratio-correct")
	flags.Var(&transformFlags.Interpolation, "interpolation", "interpolation: nearest or bilinear")
	flags.DurationVar(&transformFlags.StatsInterval, "stats-interval", transformFlags.StatsInterval, "how often to log the statistics, 0 to disable")
}

func transformConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if transformFlags.ConfigPath != "" {
		var err error
		cfg, err = config.Load(transformFlags.ConfigPath)
		if err != nil {
			return config.Config{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("pixel-format") {
		cfg.Input.PixelFormat = transformFlags.PixelFormat
	}
	if flags.Changed("input-resolution") {
		cfg.Input.Resolution = transformFlags.InputResolution
	}
	if flags.Changed("target-width") {
		cfg.Parameters.TargetWidth = transformFlags.TargetWidth
	}
	if flags.Changed("target-height") {
		cfg.Parameters.TargetHeight = transformFlags.TargetHeight
	}
	if flags.Changed("mode") {
		cfg.Parameters.Mode = transformFlags.Mode
	}
	if flags.Changed("interpolation") {
		cfg.Interpolation = transformFlags.Interpolation
	}
	return cfg, cfg.Validate()
}

func runTransform(cmd *cobra.Command, _ []string) (_err error) {
	ctx, cancelFn := context.WithCancel(cmd.Context())
	defer cancelFn()

	cfg, err := transformConfig(cmd)
	if err != nil {
		return err
	}

	var (
		input      *rawvideo.Reader
		imageFrame []byte
	)
	switch {
	case transformFlags.InputImagePath != "":
		imageFrame, cfg.Input.Resolution, err = rawvideo.LoadImage(transformFlags.InputImagePath, cfg.Input.PixelFormat)
		if err != nil {
			return err
		}
	case transformFlags.InputPath == "-":
		input = rawvideo.NewReader(os.Stdin, cfg.Input.PixelFormat, cfg.Input.Resolution)
	default:
		f, err := os.Open(transformFlags.InputPath)
		if err != nil {
			return fmt.Errorf("unable to open the input: %w", err)
		}
		defer f.Close()
		input = rawvideo.NewReader(f, cfg.Input.PixelFormat, cfg.Input.Resolution)
	}
	if cfg.Input.Resolution.IsZero() {
		return fmt.Errorf("the input resolution is not set (see --input-resolution)")
	}

	outputFile := os.Stdout
	if transformFlags.OutputPath != "-" {
		outputFile, err = os.Create(transformFlags.OutputPath)
		if err != nil {
			return fmt.Errorf("unable to create the output: %w", err)
		}
		defer func() {
			if err := outputFile.Close(); err != nil && _err == nil {
				_err = fmt.Errorf("unable to close the output: %w", err)
			}
		}()
	}
	output := rawvideo.NewWriter(outputFile)

	filter := avscale.NewLocked(avscale.New(ctx,
		avscale.OptionParameters(cfg.Parameters),
		avscale.OptionScaler{Option: scaler.OptionInterpolation(cfg.Interpolation)},
	))
	defer func() {
		if err := filter.Close(ctx); err != nil {
			logger.Errorf(ctx, "unable to close the filter: %v", err)
		}
	}()

	if err := filter.SetInputFormat(ctx, cfg.MediaFormat()); err != nil {
		return err
	}
	outFmt, err := filter.Filter.OutputFormat()
	if err != nil {
		return err
	}
	pool := allocator.NewPool()
	props, err := filter.ConnectOutput(ctx, outFmt.MediaFormat, pool, allocator.Properties{Count: 2})
	if err != nil {
		return err
	}
	defer filter.DisconnectOutput(ctx)
	logger.Infof(ctx, "%s; output buffers: %s", filter, props)

	if transformFlags.StatsInterval > 0 {
		observability.Go(ctx, func(ctx context.Context) {
			t := time.NewTicker(transformFlags.StatsInterval)
			defer t.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-t.C:
					logStats(ctx, filter.GetStats())
				}
			}
		})
	}

	processFrame := func(frame []byte) error {
		buf := pool.Get()
		defer pool.Put(buf)
		n, err := filter.Process(ctx, buf.Bytes, frame)
		if err != nil {
			return err
		}
		if output.FramesWritten == 0 && transformFlags.SnapshotPath != "" {
			if err := rawvideo.SaveSnapshot(transformFlags.SnapshotPath, outFmt.PixelFormat, outFmt.Resolution, buf.Bytes[:n]); err != nil {
				return err
			}
		}
		logger.Debugf(ctx, "frame #%d: %016x", output.FramesWritten, xxhash.Sum64(buf.Bytes[:n]))
		return output.WriteFrame(buf.Bytes[:n])
	}

	if imageFrame != nil {
		if err := processFrame(imageFrame); err != nil {
			return err
		}
	} else {
		frame := make([]byte, input.FrameSize())
		for ctx.Err() == nil {
			err := input.ReadFrame(frame)
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return fmt.Errorf("unable to read frame #%d: %w", input.FramesRead, err)
			}
			if err := processFrame(frame); err != nil {
				return err
			}
		}
	}

	logStats(ctx, filter.GetStats())
	return nil
}

func logStats(ctx context.Context, stats *avscale.Statistics) {
	logger.Infof(ctx,
		"frames: %d processed, %d failed; read: %s; wrote: %s; reconfigurations: %d",
		stats.FramesProcessed, stats.FramesFailed,
		humanize.IBytes(stats.BytesRead), humanize.IBytes(stats.BytesWrote),
		stats.Reconfigurations,
	)
}
