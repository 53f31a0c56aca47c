// Package scaler provides scalers of raw video frames held in byte buffers.
package scaler

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/avscale/types"
)

// Scaler resizes exactly one frame per Scale call. It reads only the
// first SourceResolution-sized frame from src and writes only the first
// DestinationResolution-sized frame into dst.
type Scaler interface {
	fmt.Stringer
	Configure(ctx context.Context, src types.Resolution, dst types.Resolution) error
	Scale(ctx context.Context, dst []byte, src []byte) error
	Close(context.Context) error
	SourceResolution() types.Resolution
	DestinationResolution() types.Resolution
	PixelFormat() types.PixelFormat
}

// New returns a configured scaler for the given pixel format.
func New(
	ctx context.Context,
	pixFmt types.PixelFormat,
	src types.Resolution,
	dst types.Resolution,
	opts ...Option,
) (Scaler, error) {
	var s Scaler
	switch pixFmt {
	case types.PixelFormatRGB24:
		s = NewRGB24(opts...)
	case types.PixelFormatYUV420P:
		s = NewYUV420P(opts...)
	default:
		return nil, fmt.Errorf("pixel format '%s' is not supported by any scaler", pixFmt)
	}
	if err := s.Configure(ctx, src, dst); err != nil {
		return nil, fmt.Errorf("unable to configure %s: %w", s, err)
	}
	return s, nil
}
