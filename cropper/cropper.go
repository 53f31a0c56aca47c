// Package cropper provides croppers of raw video frames held in byte buffers.
package cropper

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/avscale/types"
)

// Cropper copies the region left after removing the configured margins
// of exactly one source frame into the destination buffer.
type Cropper interface {
	fmt.Stringer
	Configure(ctx context.Context, src types.Resolution, crop types.CropSpec) error
	Crop(ctx context.Context, dst []byte, src []byte) error
	Close(context.Context) error
	SourceResolution() types.Resolution
	DestinationResolution() types.Resolution
	CropSpec() types.CropSpec
	PixelFormat() types.PixelFormat
}

// New returns a configured cropper for the given pixel format.
func New(
	ctx context.Context,
	pixFmt types.PixelFormat,
	src types.Resolution,
	crop types.CropSpec,
) (Cropper, error) {
	var c Cropper
	switch pixFmt {
	case types.PixelFormatRGB24:
		c = NewRGB24()
	case types.PixelFormatYUV420P:
		c = NewYUV420P()
	default:
		return nil, fmt.Errorf("pixel format '%s' is not supported by any cropper", pixFmt)
	}
	if err := c.Configure(ctx, src, crop); err != nil {
		return nil, fmt.Errorf("unable to configure %s: %w", c, err)
	}
	return c, nil
}

type ErrNotConfigured struct{}

func (ErrNotConfigured) Error() string {
	return "the cropper is not configured"
}

type ErrBufferSize struct {
	Buffer   string
	Size     uint
	Required uint
}

func (e ErrBufferSize) Error() string {
	return fmt.Sprintf("the %s buffer has %d bytes, but %d bytes are required", e.Buffer, e.Size, e.Required)
}
