// scale_filter.go implements the ScaleFilter: it owns the transform pipeline
// and rebuilds it on every change of the input format or the parameters.

package avscale

import (
	"context"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/xaionaro-go/avscale/geometry"
	"github.com/xaionaro-go/avscale/helpers/closuresignaler"
	"github.com/xaionaro-go/avscale/internal"
	"github.com/xaionaro-go/avscale/logger"
	"github.com/xaionaro-go/avscale/scaler"
	"github.com/xaionaro-go/avscale/transform"
	"github.com/xaionaro-go/avscale/types"
)

type State int

const (
	StateUnconfigured = State(iota)
	StateConfigured
)

func (s State) String() string {
	switch s {
	case StateUnconfigured:
		return "unconfigured"
	case StateConfigured:
		return "configured"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type ScaleFilter struct {
	CommonsProcessing
	*closuresignaler.ClosureSignaler

	aspectRatioEpsilon float64
	scalerOptions      scaler.Options

	parameters      Parameters
	input           *types.MediaFormat
	outputConnected bool
	pipeline        *transform.Pipeline
}

func New(
	ctx context.Context,
	opts ...Option,
) *ScaleFilter {
	f := &ScaleFilter{
		ClosureSignaler:    closuresignaler.New(),
		aspectRatioEpsilon: geometry.DefaultAspectRatioEpsilon,
		parameters:         DefaultParameters(),
	}
	for _, opt := range opts {
		switch opt := opt.(type) {
		case OptionAspectRatioEpsilon:
			f.aspectRatioEpsilon = float64(opt)
		case OptionScaler:
			f.scalerOptions = append(f.scalerOptions, opt.Option)
		case OptionParameters:
			f.parameters = Parameters(opt)
		}
	}
	logger.Debugf(ctx, "New: %s", f)
	return f
}

func (f *ScaleFilter) String() string {
	if f.pipeline == nil {
		return "ScaleFilter(unconfigured)"
	}
	return fmt.Sprintf("ScaleFilter(%s)", f.pipeline.Config())
}

func (f *ScaleFilter) State() State {
	if f.pipeline == nil {
		return StateUnconfigured
	}
	return StateConfigured
}

// Config returns the currently active configuration including the derived crop.
func (f *ScaleFilter) Config() (types.PipelineConfig, bool) {
	if f.pipeline == nil {
		return types.PipelineConfig{}, false
	}
	return f.pipeline.Config(), true
}

func (f *ScaleFilter) IsOutputConnected() bool {
	return f.outputConnected
}

// Reconfigure replaces the whole pipeline with a new one built from cfg.
// Zero output dimensions default to the input ones and the crop is derived
// from the mode and the resolutions, any cfg.Crop value is ignored.
//
// On failure the previous configuration stays active.
func (f *ScaleFilter) Reconfigure(
	ctx context.Context,
	cfg types.PipelineConfig,
) (_err error) {
	logger.Debugf(ctx, "Reconfigure: %s", cfg)
	defer func() { logger.Debugf(ctx, "/Reconfigure: %s: %v", cfg, _err) }()

	if err := f.reconfigure(ctx, cfg); err != nil {
		return err
	}
	f.input = &types.MediaFormat{
		MediaType:   types.MediaTypeVideo,
		PixelFormat: cfg.PixelFormat,
		Resolution:  cfg.Input,
	}
	f.parameters = Parameters{
		TargetWidth:  cfg.Output.Width,
		TargetHeight: cfg.Output.Height,
		Mode:         cfg.Mode,
	}
	return nil
}

func (f *ScaleFilter) reconfigure(
	ctx context.Context,
	cfg types.PipelineConfig,
) error {
	if f.IsClosed() {
		return ErrClosed{}
	}
	if f.outputConnected {
		return ErrConfigurationWhileConnected{Operation: "reconfigure"}
	}
	if !cfg.PixelFormat.IsSupported() {
		return ErrUnsupportedFormat{
			Format: types.MediaFormat{MediaType: types.MediaTypeVideo, PixelFormat: cfg.PixelFormat, Resolution: cfg.Input},
			Reason: "unsupported pixel format",
		}
	}
	if cfg.Input.IsZero() {
		return ErrInvalidResolution{Resolution: cfg.Input}
	}
	if !cfg.Mode.IsValid() {
		return fmt.Errorf("invalid scale mode %s", cfg.Mode)
	}

	if cfg.Output.Width == 0 {
		cfg.Output.Width = cfg.Input.Width
	}
	if cfg.Output.Height == 0 {
		cfg.Output.Height = cfg.Input.Height
	}

	cfg.Crop = nil
	if cfg.Mode == types.ScaleModeAspectRatioCorrect {
		cfg.Crop = geometry.ComputeCropSpec(ctx, cfg.Input, cfg.Output, f.aspectRatioEpsilon)
		if cfg.Crop != nil {
			internal.Assert(ctx, !cfg.Crop.IsZero(), "the crop is not empty", cfg.Crop)
		}
	}

	pipeline, err := transform.New(ctx, cfg, f.scalerOptions...)
	if err != nil {
		return fmt.Errorf("unable to build the pipeline for %s: %w", cfg, err)
	}

	// the old pipeline is discarded even if the new one is identical
	if old := f.pipeline; old != nil {
		if err := old.Close(ctx); err != nil {
			logger.Errorf(ctx, "unable to close the previous pipeline %s: %v", old, err)
		}
	}
	f.pipeline = pipeline
	f.Reconfigurations.Inc()
	logger.Debugf(ctx, "the pipeline is rebuilt: %s", spew.Sdump(cfg))
	return nil
}

// rebuild reconfigures the pipeline from the negotiated input and the
// current parameters. Without a negotiated input there is nothing to build.
func (f *ScaleFilter) rebuild(ctx context.Context) error {
	if f.input == nil {
		logger.Debugf(ctx, "no input format yet, postponing the pipeline build")
		return nil
	}
	return f.reconfigure(ctx, types.PipelineConfig{
		PixelFormat: f.input.PixelFormat,
		Input:       f.input.Resolution,
		Output: types.Resolution{
			Width:  f.parameters.TargetWidth,
			Height: f.parameters.TargetHeight,
		},
		Mode: f.parameters.Mode,
	})
}

// Process transforms one frame; it returns the amount of bytes written to dst.
func (f *ScaleFilter) Process(
	ctx context.Context,
	dst []byte,
	src []byte,
) (_ret int, _err error) {
	logger.Tracef(ctx, "Process")
	defer func() { logger.Tracef(ctx, "/Process: %d %v", _ret, _err) }()

	if f.pipeline == nil {
		if f.IsClosed() {
			return 0, ErrClosed{}
		}
		return 0, ErrNotConfigured{}
	}

	n, err := f.pipeline.Process(ctx, dst, src)
	if err != nil {
		f.FramesFailed.Inc()
		return 0, err
	}
	f.FramesProcessed.Inc()
	f.BytesRead.Add(uint64(len(src)))
	f.BytesWrote.Add(uint64(n))
	return n, nil
}

func (f *ScaleFilter) Close(ctx context.Context) (_err error) {
	logger.Debugf(ctx, "Close")
	defer func() { logger.Debugf(ctx, "/Close: %v", _err) }()

	f.ClosureSignaler.Close(ctx)
	f.outputConnected = false
	if f.pipeline == nil {
		return nil
	}
	err := f.pipeline.Close(ctx)
	f.pipeline = nil
	return err
}
