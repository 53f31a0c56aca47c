package cropper

import (
	"context"
	"image"
	"testing"

	"github.com/anthonynsimon/bild/transform"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/avscale/types"
)

func res(w, h uint32) types.Resolution {
	return types.Resolution{Width: w, Height: h}
}

func patternFrame(pixFmt types.PixelFormat, r types.Resolution) []byte {
	buf := make([]byte, pixFmt.FrameSize(r))
	for idx := range buf {
		buf[idx] = byte(idx*31 + idx/7)
	}
	return buf
}

func rgb24ToRGBA(buf []byte, r types.Resolution) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(r.Width), int(r.Height)))
	for idx := 0; idx < int(r.Pixels()); idx++ {
		copy(img.Pix[idx*4:idx*4+3], buf[idx*3:idx*3+3])
		img.Pix[idx*4+3] = 0xff
	}
	return img
}

func rgbaToRGB24(img *image.RGBA) []byte {
	buf := make([]byte, 0, img.Rect.Dx()*img.Rect.Dy()*3)
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		for x := img.Rect.Min.X; x < img.Rect.Max.X; x++ {
			offset := img.PixOffset(x, y)
			buf = append(buf, img.Pix[offset:offset+3]...)
		}
	}
	return buf
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	c, err := New(ctx, types.PixelFormatRGB24, res(720, 480), types.CropSpec{Left: 40, Right: 40})
	require.NoError(t, err)
	require.IsType(t, &RGB24{}, c)
	require.Equal(t, res(640, 480), c.DestinationResolution())
	require.Equal(t, res(720, 480), c.SourceResolution())
	require.Equal(t, types.CropSpec{Left: 40, Right: 40}, c.CropSpec())

	c, err = New(ctx, types.PixelFormatYUV420P, res(640, 480), types.CropSpec{Top: 60, Bottom: 60})
	require.NoError(t, err)
	require.IsType(t, &YUV420P{}, c)
	require.Equal(t, res(640, 360), c.DestinationResolution())

	_, err = New(ctx, types.PixelFormatRGB24, res(10, 10), types.CropSpec{Left: 5, Right: 5})
	require.Error(t, err)

	_, err = New(ctx, types.PixelFormatRGB24, res(10, 10), types.CropSpec{Top: 10})
	require.Error(t, err)

	_, err = New(ctx, types.PixelFormat("gray8"), res(10, 10), types.CropSpec{Top: 1})
	require.Error(t, err)
}

func TestCropRGB24MatchesBild(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct {
		src  types.Resolution
		crop types.CropSpec
	}{
		{res(720, 480), types.CropSpec{Left: 40, Right: 40}},
		{res(641, 480), types.CropSpec{Left: 80, Right: 81}},
		{res(640, 480), types.CropSpec{Top: 60, Bottom: 60}},
		{res(17, 11), types.CropSpec{Left: 1, Right: 2, Top: 3, Bottom: 4}},
		{res(2, 3), types.CropSpec{Bottom: 1}},
	} {
		t.Run(tc.src.String()+"/"+tc.crop.String(), func(t *testing.T) {
			c, err := New(ctx, types.PixelFormatRGB24, tc.src, tc.crop)
			require.NoError(t, err)

			src := patternFrame(types.PixelFormatRGB24, tc.src)
			dst := make([]byte, types.PixelFormatRGB24.FrameSize(c.DestinationResolution()))
			require.NoError(t, c.Crop(ctx, dst, src))

			rect := image.Rect(
				int(tc.crop.Left),
				int(tc.crop.Top),
				int(tc.src.Width-tc.crop.Right),
				int(tc.src.Height-tc.crop.Bottom),
			)
			expected := transform.Crop(rgb24ToRGBA(src, tc.src), rect)
			require.Equal(t, rgbaToRGB24(expected), dst)
		})
	}
}

func TestCropYUV420P(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct {
		src  types.Resolution
		crop types.CropSpec
	}{
		{res(16, 8), types.CropSpec{Left: 2, Right: 4}},
		{res(16, 8), types.CropSpec{Top: 1, Bottom: 2}},
		{res(15, 9), types.CropSpec{Left: 3, Right: 1, Top: 3, Bottom: 1}},
	} {
		t.Run(tc.src.String()+"/"+tc.crop.String(), func(t *testing.T) {
			c, err := New(ctx, types.PixelFormatYUV420P, tc.src, tc.crop)
			require.NoError(t, err)
			dstRes := c.DestinationResolution()

			src := patternFrame(types.PixelFormatYUV420P, tc.src)
			dst := make([]byte, types.PixelFormatYUV420P.FrameSize(dstRes))
			require.NoError(t, c.Crop(ctx, dst, src))

			for y := 0; y < int(dstRes.Height); y++ {
				for x := 0; x < int(dstRes.Width); x++ {
					expected := src[(y+int(tc.crop.Top))*int(tc.src.Width)+x+int(tc.crop.Left)]
					require.Equal(t, expected, dst[y*int(dstRes.Width)+x], "Y(%d,%d)", x, y)
				}
			}

			srcChroma, dstChroma := types.ChromaResolution(tc.src), types.ChromaResolution(dstRes)
			for planeIdx := 0; planeIdx < 2; planeIdx++ {
				srcPlane := src[int(tc.src.Pixels())+planeIdx*int(srcChroma.Pixels()):]
				dstPlane := dst[int(dstRes.Pixels())+planeIdx*int(dstChroma.Pixels()):]
				for y := 0; y < int(dstChroma.Height); y++ {
					for x := 0; x < int(dstChroma.Width); x++ {
						sy, sx := y+int(tc.crop.Top/2), x+int(tc.crop.Left/2)
						expected := srcPlane[sy*int(srcChroma.Width)+sx]
						require.Equal(t, expected, dstPlane[y*int(dstChroma.Width)+x], "plane %d (%d,%d)", planeIdx, x, y)
					}
				}
			}
		})
	}
}

func TestCropErrors(t *testing.T) {
	ctx := context.Background()

	err := NewRGB24().Crop(ctx, make([]byte, 3), make([]byte, 12))
	require.ErrorAs(t, err, &ErrNotConfigured{})

	c, err := New(ctx, types.PixelFormatRGB24, res(4, 4), types.CropSpec{Left: 1, Right: 1})
	require.NoError(t, err)

	var errSize ErrBufferSize
	require.ErrorAs(t, c.Crop(ctx, make([]byte, 24), make([]byte, 47)), &errSize)
	require.Equal(t, "source", errSize.Buffer)
	require.ErrorAs(t, c.Crop(ctx, make([]byte, 23), make([]byte, 48)), &errSize)
	require.Equal(t, "destination", errSize.Buffer)

	require.NoError(t, c.Close(ctx))
	require.ErrorAs(t, c.Crop(ctx, make([]byte, 24), make([]byte, 48)), &ErrNotConfigured{})
}

func TestCropDoesNotAllocate(t *testing.T) {
	ctx := context.Background()
	for _, pixFmt := range types.PixelFormats() {
		c, err := New(ctx, pixFmt, res(64, 48), types.CropSpec{Left: 3, Right: 4, Top: 5, Bottom: 6})
		require.NoError(t, err)
		src := patternFrame(pixFmt, res(64, 48))
		dst := make([]byte, pixFmt.FrameSize(c.DestinationResolution()))
		allocs := testing.AllocsPerRun(10, func() {
			if err := c.Crop(ctx, dst, src); err != nil {
				panic(err)
			}
		})
		require.Zero(t, allocs, "%s", pixFmt)
	}
}
