package cropper

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/avscale/logger"
	"github.com/xaionaro-go/avscale/types"
)

type software struct {
	pixelFormat  types.PixelFormat
	src          types.Resolution
	dst          types.Resolution
	crop         types.CropSpec
	srcFrameSize uint
	dstFrameSize uint
	regions      []region
}

func (c *software) String() string {
	return fmt.Sprintf("SoftwareCropper(%s:%s -> %s, %s)", c.src, c.pixelFormat, c.dst, c.crop)
}

func (c *software) configure(
	ctx context.Context,
	src types.Resolution,
	crop types.CropSpec,
	regionsFn func(src, dst types.Resolution, crop types.CropSpec) []region,
) (_err error) {
	logger.Tracef(ctx, "configure: %s %s", src, crop)
	defer func() { logger.Tracef(ctx, "/configure: %s %s: %v", src, crop, _err) }()
	if src.IsZero() {
		return fmt.Errorf("invalid source resolution %s", src)
	}
	dst, err := crop.Apply(src)
	if err != nil {
		return err
	}
	c.src, c.dst, c.crop = src, dst, crop
	c.srcFrameSize = c.pixelFormat.FrameSize(src)
	c.dstFrameSize = c.pixelFormat.FrameSize(dst)
	c.regions = regionsFn(src, dst, crop)
	return nil
}

func (c *software) cropFrame(
	ctx context.Context,
	dst []byte,
	src []byte,
) (_err error) {
	logger.Tracef(ctx, "Crop")
	defer func() { logger.Tracef(ctx, "/Crop: %v", _err) }()
	if c.regions == nil {
		return ErrNotConfigured{}
	}
	if uint(len(src)) < c.srcFrameSize {
		return ErrBufferSize{Buffer: "source", Size: uint(len(src)), Required: c.srcFrameSize}
	}
	if uint(len(dst)) < c.dstFrameSize {
		return ErrBufferSize{Buffer: "destination", Size: uint(len(dst)), Required: c.dstFrameSize}
	}
	for idx := range c.regions {
		c.regions[idx].copy(dst, src)
	}
	return nil
}

func (c *software) Close(ctx context.Context) error {
	logger.Tracef(ctx, "Close")
	defer logger.Tracef(ctx, "/Close")
	c.regions = nil
	return nil
}

func (c *software) SourceResolution() types.Resolution {
	return c.src
}

func (c *software) DestinationResolution() types.Resolution {
	return c.dst
}

func (c *software) CropSpec() types.CropSpec {
	return c.crop
}

func (c *software) PixelFormat() types.PixelFormat {
	return c.pixelFormat
}

// RGB24 crops packed 24-bit RGB frames.
type RGB24 struct {
	software
}

var _ Cropper = (*RGB24)(nil)

func NewRGB24() *RGB24 {
	return &RGB24{
		software: software{pixelFormat: types.PixelFormatRGB24},
	}
}

func (c *RGB24) Configure(ctx context.Context, src types.Resolution, crop types.CropSpec) error {
	return c.configure(ctx, src, crop, func(src, dst types.Resolution, crop types.CropSpec) []region {
		const bytesPerPixel = 3
		stride := int(src.Width) * bytesPerPixel
		return []region{{
			srcOffset: int(crop.Top)*stride + int(crop.Left)*bytesPerPixel,
			srcStride: stride,
			dstOffset: 0,
			rowBytes:  int(dst.Width) * bytesPerPixel,
			rows:      int(dst.Height),
		}}
	})
}

func (c *RGB24) Crop(ctx context.Context, dst, src []byte) error {
	return c.cropFrame(ctx, dst, src)
}

// YUV420P crops 8-bit planar YUV 4:2:0 frames. The chroma planes are
// cropped starting at half of the luma margin (rounded down).
type YUV420P struct {
	software
}

var _ Cropper = (*YUV420P)(nil)

func NewYUV420P() *YUV420P {
	return &YUV420P{
		software: software{pixelFormat: types.PixelFormatYUV420P},
	}
}

func (c *YUV420P) Configure(ctx context.Context, src types.Resolution, crop types.CropSpec) error {
	return c.configure(ctx, src, crop, yuv420pRegions)
}

func (c *YUV420P) Crop(ctx context.Context, dst, src []byte) error {
	return c.cropFrame(ctx, dst, src)
}

func yuv420pRegions(src, dst types.Resolution, crop types.CropSpec) []region {
	srcChroma, dstChroma := types.ChromaResolution(src), types.ChromaResolution(dst)
	srcLumaSize, dstLumaSize := int(src.Pixels()), int(dst.Pixels())
	srcChromaSize, dstChromaSize := int(srcChroma.Pixels()), int(dstChroma.Pixels())
	chromaStart := int(crop.Top/2)*int(srcChroma.Width) + int(crop.Left/2)

	luma := region{
		srcOffset: int(crop.Top)*int(src.Width) + int(crop.Left),
		srcStride: int(src.Width),
		dstOffset: 0,
		rowBytes:  int(dst.Width),
		rows:      int(dst.Height),
	}
	u := region{
		srcOffset: srcLumaSize + chromaStart,
		srcStride: int(srcChroma.Width),
		dstOffset: dstLumaSize,
		rowBytes:  int(dstChroma.Width),
		rows:      int(dstChroma.Height),
	}
	v := u
	v.srcOffset += srcChromaSize
	v.dstOffset += dstChromaSize
	return []region{luma, u, v}
}
