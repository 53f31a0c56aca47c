// negotiation.go implements the format negotiation and the output buffer
// allocation contracts of ScaleFilter.

package avscale

import (
	"context"
	"fmt"
	"image"

	"github.com/xaionaro-go/avscale/allocator"
	"github.com/xaionaro-go/avscale/logger"
	"github.com/xaionaro-go/avscale/types"
)

// SupportedInputFormats returns the input formats the filter accepts;
// the output format always equals the input one.
func SupportedInputFormats() []types.MediaFormat {
	var result []types.MediaFormat
	for _, pixFmt := range types.PixelFormats() {
		result = append(result, types.MediaFormat{
			MediaType:   types.MediaTypeVideo,
			PixelFormat: pixFmt,
		})
	}
	return result
}

func CheckInputFormat(in types.MediaFormat) error {
	if in.MediaType != types.MediaTypeVideo {
		return ErrUnsupportedFormat{Format: in, Reason: "not a video"}
	}
	if !in.PixelFormat.IsSupported() {
		return ErrUnsupportedFormat{Format: in, Reason: "unsupported pixel format"}
	}
	return nil
}

// CheckTransform verifies the filter can convert in to out.
func CheckTransform(in, out types.MediaFormat) error {
	if err := CheckInputFormat(in); err != nil {
		return err
	}
	if out.MediaType != types.MediaTypeVideo {
		return ErrUnsupportedFormat{Format: out, Reason: "not a video"}
	}
	if out.PixelFormat != in.PixelFormat {
		return ErrUnsupportedFormat{
			Format: out,
			Reason: fmt.Sprintf("the pixel format differs from the input one (%s); color space conversion is not supported", in.PixelFormat),
		}
	}
	return nil
}

// SetInputFormat is called on every (re)negotiation of the input.
func (f *ScaleFilter) SetInputFormat(
	ctx context.Context,
	in types.MediaFormat,
) (_err error) {
	logger.Debugf(ctx, "SetInputFormat: %s", in)
	defer func() { logger.Debugf(ctx, "/SetInputFormat: %s: %v", in, _err) }()

	if err := CheckInputFormat(in); err != nil {
		return err
	}
	if in.Resolution.IsZero() {
		return ErrInvalidResolution{Resolution: in.Resolution}
	}
	if f.outputConnected {
		return ErrConfigurationWhileConnected{Operation: "change the input format"}
	}

	prev := f.input
	f.input = &in
	if err := f.rebuild(ctx); err != nil {
		f.input = prev
		return fmt.Errorf("unable to rebuild the pipeline for input %s: %w", in, err)
	}
	return nil
}

func (f *ScaleFilter) InputFormat() (types.MediaFormat, bool) {
	if f.input == nil {
		return types.MediaFormat{}, false
	}
	return *f.input, true
}

type OutputFormat struct {
	types.MediaFormat
	SampleSize uint
	SourceRect image.Rectangle
	TargetRect image.Rectangle
}

// OutputFormat describes the frames produced by the current pipeline.
func (f *ScaleFilter) OutputFormat() (OutputFormat, error) {
	cfg, ok := f.Config()
	if !ok {
		return OutputFormat{}, ErrNotConfigured{}
	}
	rect := image.Rect(0, 0, int(cfg.Output.Width), int(cfg.Output.Height))
	return OutputFormat{
		MediaFormat: types.MediaFormat{
			MediaType:   types.MediaTypeVideo,
			PixelFormat: cfg.PixelFormat,
			Resolution:  cfg.Output,
		},
		SampleSize: cfg.OutputFrameSize(),
		SourceRect: rect,
		TargetRect: rect,
	}, nil
}

// DecideBufferSize requests output buffers large enough for one output frame.
// A zero alignment or buffer count in requested is raised to 1.
func (f *ScaleFilter) DecideBufferSize(
	ctx context.Context,
	alloc allocator.Allocator,
	requested allocator.Properties,
) (_ret allocator.Properties, _err error) {
	logger.Debugf(ctx, "DecideBufferSize: %s", requested)
	defer func() { logger.Debugf(ctx, "/DecideBufferSize: %s: %v", _ret, _err) }()

	cfg, ok := f.Config()
	if !ok {
		return allocator.Properties{}, ErrNotConfigured{}
	}

	requested.BufferSize = cfg.OutputFrameSize()
	requested = requested.WithDefaults()

	actual, err := alloc.SetProperties(ctx, requested)
	if err != nil {
		return allocator.Properties{}, fmt.Errorf("unable to set the allocator properties %s: %w", requested, err)
	}
	if actual.BufferSize < requested.BufferSize {
		return actual, ErrBufferTooSmall{Required: requested.BufferSize, Actual: actual.BufferSize}
	}
	return actual, nil
}

// ConnectOutput validates the downstream format, negotiates the buffers and
// marks the output as connected. While connected, the configuration is frozen.
func (f *ScaleFilter) ConnectOutput(
	ctx context.Context,
	out types.MediaFormat,
	alloc allocator.Allocator,
	requested allocator.Properties,
) (_ret allocator.Properties, _err error) {
	logger.Debugf(ctx, "ConnectOutput: %s", out)
	defer func() { logger.Debugf(ctx, "/ConnectOutput: %s: %v", out, _err) }()

	if f.outputConnected {
		return allocator.Properties{}, fmt.Errorf("the output is already connected")
	}
	outFmt, err := f.OutputFormat()
	if err != nil {
		return allocator.Properties{}, err
	}
	if err := CheckTransform(*f.input, out); err != nil {
		return allocator.Properties{}, err
	}
	if out.Resolution != outFmt.Resolution {
		return allocator.Properties{}, ErrUnsupportedFormat{
			Format: out,
			Reason: fmt.Sprintf("the resolution differs from the configured output %s", outFmt.Resolution),
		}
	}

	actual, err := f.DecideBufferSize(ctx, alloc, requested)
	if err != nil {
		return actual, err
	}
	f.outputConnected = true
	return actual, nil
}

func (f *ScaleFilter) DisconnectOutput(ctx context.Context) {
	logger.Debugf(ctx, "DisconnectOutput")
	f.outputConnected = false
}
