package scaler

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/avscale/logger"
	"github.com/xaionaro-go/avscale/types"
)

// software is the format-agnostic part of the software scalers:
// a frame is a sequence of planes, each scaled independently.
type software struct {
	pixelFormat   types.PixelFormat
	interpolation Interpolation
	src           types.Resolution
	dst           types.Resolution
	srcFrameSize  uint
	dstFrameSize  uint
	planes        []plane
}

func newSoftware(pixFmt types.PixelFormat, opts Options) software {
	return software{
		pixelFormat:   pixFmt,
		interpolation: opts.interpolation(),
	}
}

func (s *software) String() string {
	return fmt.Sprintf(
		"SoftwareScaler(%s:%s -> %s:%s, %s)",
		s.src, s.pixelFormat,
		s.dst, s.pixelFormat,
		s.interpolation,
	)
}

func (s *software) configure(
	ctx context.Context,
	src types.Resolution,
	dst types.Resolution,
	planesFn func(src, dst types.Resolution, interpolation Interpolation) []plane,
) (_err error) {
	logger.Tracef(ctx, "configure: %s -> %s", src, dst)
	defer func() { logger.Tracef(ctx, "/configure: %s -> %s: %v", src, dst, _err) }()
	if src.IsZero() || dst.IsZero() {
		return fmt.Errorf("invalid resolutions %s -> %s", src, dst)
	}
	s.src, s.dst = src, dst
	s.srcFrameSize = s.pixelFormat.FrameSize(src)
	s.dstFrameSize = s.pixelFormat.FrameSize(dst)
	s.planes = planesFn(src, dst, s.interpolation)
	return nil
}

func (s *software) scale(
	ctx context.Context,
	dst []byte,
	src []byte,
) (_err error) {
	logger.Tracef(ctx, "Scale")
	defer func() { logger.Tracef(ctx, "/Scale: %v", _err) }()
	if s.planes == nil {
		return ErrNotConfigured{}
	}
	if uint(len(src)) < s.srcFrameSize {
		return ErrBufferSize{Buffer: "source", Size: uint(len(src)), Required: s.srcFrameSize}
	}
	if uint(len(dst)) < s.dstFrameSize {
		return ErrBufferSize{Buffer: "destination", Size: uint(len(dst)), Required: s.dstFrameSize}
	}
	for idx := range s.planes {
		s.planes[idx].scale(dst, src)
	}
	return nil
}

func (s *software) Close(ctx context.Context) error {
	logger.Tracef(ctx, "Close")
	defer logger.Tracef(ctx, "/Close")
	s.planes = nil
	return nil
}

func (s *software) SourceResolution() types.Resolution {
	return s.src
}

func (s *software) DestinationResolution() types.Resolution {
	return s.dst
}

func (s *software) PixelFormat() types.PixelFormat {
	return s.pixelFormat
}

// RGB24 scales packed 24-bit RGB frames.
type RGB24 struct {
	software
}

var _ Scaler = (*RGB24)(nil)

func NewRGB24(opts ...Option) *RGB24 {
	return &RGB24{
		software: newSoftware(types.PixelFormatRGB24, opts),
	}
}

func (s *RGB24) Configure(ctx context.Context, src, dst types.Resolution) error {
	return s.configure(ctx, src, dst, func(src, dst types.Resolution, interpolation Interpolation) []plane {
		return []plane{newPlane(src, dst, 3, 0, 0, interpolation)}
	})
}

func (s *RGB24) Scale(ctx context.Context, dst, src []byte) error {
	return s.scale(ctx, dst, src)
}

// YUV420P scales 8-bit planar YUV 4:2:0 frames.
type YUV420P struct {
	software
}

var _ Scaler = (*YUV420P)(nil)

func NewYUV420P(opts ...Option) *YUV420P {
	return &YUV420P{
		software: newSoftware(types.PixelFormatYUV420P, opts),
	}
}

func (s *YUV420P) Configure(ctx context.Context, src, dst types.Resolution) error {
	return s.configure(ctx, src, dst, yuv420pPlanes)
}

func (s *YUV420P) Scale(ctx context.Context, dst, src []byte) error {
	return s.scale(ctx, dst, src)
}

func yuv420pPlanes(src, dst types.Resolution, interpolation Interpolation) []plane {
	srcLuma := int(src.Pixels())
	dstLuma := int(dst.Pixels())
	srcChroma, dstChroma := types.ChromaResolution(src), types.ChromaResolution(dst)
	srcChromaSize := int(srcChroma.Pixels())
	dstChromaSize := int(dstChroma.Pixels())
	return []plane{
		newPlane(src, dst, 1, 0, 0, interpolation),
		newPlane(srcChroma, dstChroma, 1, srcLuma, dstLuma, interpolation),
		newPlane(srcChroma, dstChroma, 1, srcLuma+srcChromaSize, dstLuma+dstChromaSize, interpolation),
	}
}
