// pipeline.go implements the per-frame crop-then-scale sequence.

// Package transform executes the crop and scale strategies on raw frames.
package transform

import (
	"context"
	"errors"
	"fmt"

	"github.com/xaionaro-go/avscale/cropper"
	"github.com/xaionaro-go/avscale/internal"
	"github.com/xaionaro-go/avscale/logger"
	"github.com/xaionaro-go/avscale/scaler"
	"github.com/xaionaro-go/avscale/types"
)

// Pipeline exclusively owns its Scaler, the optional Cropper and the
// intermediate buffer between them. It is built once per configuration
// and is never reconfigured in place: a new configuration means a new
// Pipeline.
type Pipeline struct {
	config          types.PipelineConfig
	cropped         types.Resolution
	inputFrameSize  uint
	outputFrameSize uint

	Cropper            cropper.Cropper
	Scaler             scaler.Scaler
	IntermediateBuffer []byte
}

func New(
	ctx context.Context,
	cfg types.PipelineConfig,
	opts ...scaler.Option,
) (_ret *Pipeline, _err error) {
	logger.Debugf(ctx, "New: %s", cfg)
	defer func() { logger.Debugf(ctx, "/New: %s: %v", cfg, _err) }()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline config: %w", err)
	}
	if cfg.Crop != nil {
		// an empty crop is the same as no crop
		if cfg.Crop.IsZero() {
			cfg.Crop = nil
		} else {
			crop := *cfg.Crop
			cfg.Crop = &crop
		}
	}

	cropped, err := cfg.CroppedResolution()
	if err != nil {
		return nil, fmt.Errorf("unable to get the cropped resolution: %w", err)
	}

	p := &Pipeline{
		config:          cfg,
		cropped:         cropped,
		inputFrameSize:  cfg.InputFrameSize(),
		outputFrameSize: cfg.OutputFrameSize(),
	}

	if cfg.Crop != nil {
		p.Cropper, err = cropper.New(ctx, cfg.PixelFormat, cfg.Input, *cfg.Crop)
		if err != nil {
			return nil, fmt.Errorf("unable to initialize the cropper: %w", err)
		}
		p.IntermediateBuffer = make([]byte, cfg.PixelFormat.FrameSize(cropped))
	}

	p.Scaler, err = scaler.New(ctx, cfg.PixelFormat, cropped, cfg.Output, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize the scaler: %w", err)
	}
	if p.Cropper != nil {
		internal.Assert(ctx, p.Cropper.DestinationResolution() == p.Scaler.SourceResolution(), "the scaler consumes what the cropper produces", p.Cropper, p.Scaler)
	}

	return p, nil
}

func (p *Pipeline) String() string {
	if p.Cropper == nil {
		return fmt.Sprintf("Pipeline(%s)", p.Scaler)
	}
	return fmt.Sprintf("Pipeline(%s -> %s)", p.Cropper, p.Scaler)
}

// Config returns the configuration the pipeline was built from.
func (p *Pipeline) Config() types.PipelineConfig {
	cfg := p.config
	if cfg.Crop != nil {
		crop := *cfg.Crop
		cfg.Crop = &crop
	}
	return cfg
}

func (p *Pipeline) CropSpec() *types.CropSpec {
	return p.Config().Crop
}

// CroppedResolution is the resolution of the frames the scaler receives.
func (p *Pipeline) CroppedResolution() types.Resolution {
	return p.cropped
}

func (p *Pipeline) InputFrameSize() uint {
	return p.inputFrameSize
}

func (p *Pipeline) OutputFrameSize() uint {
	return p.outputFrameSize
}

// Process transforms exactly one frame from src into dst and returns
// the amount of bytes written. It does not allocate.
func (p *Pipeline) Process(
	ctx context.Context,
	dst []byte,
	src []byte,
) (_ret int, _err error) {
	logger.Tracef(ctx, "Process: %d -> %d", len(src), len(dst))
	defer func() { logger.Tracef(ctx, "/Process: %d: %v", _ret, _err) }()

	if p.Scaler == nil {
		return 0, ErrClosed{}
	}
	if uint(len(src)) != p.inputFrameSize {
		return 0, ErrFrameSize{Buffer: "input", Size: uint(len(src)), Expected: p.inputFrameSize}
	}
	if uint(len(dst)) < p.outputFrameSize {
		return 0, ErrFrameSize{Buffer: "output", Size: uint(len(dst)), Expected: p.outputFrameSize}
	}

	scaleSrc := src
	if p.Cropper != nil {
		if err := p.Cropper.Crop(ctx, p.IntermediateBuffer, src); err != nil {
			return 0, ErrFrameTransform{Stage: "crop", Err: err}
		}
		scaleSrc = p.IntermediateBuffer
	}

	if err := p.Scaler.Scale(ctx, dst[:p.outputFrameSize], scaleSrc); err != nil {
		return 0, ErrFrameTransform{Stage: "scale", Err: err}
	}

	return int(p.outputFrameSize), nil
}

// Close releases the owned strategies and the intermediate buffer.
func (p *Pipeline) Close(ctx context.Context) (_err error) {
	logger.Debugf(ctx, "Close")
	defer func() { logger.Debugf(ctx, "/Close: %v", _err) }()

	var errs []error
	if p.Cropper != nil {
		if err := p.Cropper.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("unable to close the cropper: %w", err))
		}
		p.Cropper = nil
	}
	if p.Scaler != nil {
		if err := p.Scaler.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("unable to close the scaler: %w", err))
		}
		p.Scaler = nil
	}
	p.IntermediateBuffer = nil
	return errors.Join(errs...)
}
