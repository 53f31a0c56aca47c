package scaler

import (
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/avscale/types"
	"golang.org/x/image/draw"
)

func res(w, h uint32) types.Resolution {
	return types.Resolution{Width: w, Height: h}
}

func patternFrame(pixFmt types.PixelFormat, r types.Resolution) []byte {
	buf := make([]byte, pixFmt.FrameSize(r))
	for idx := range buf {
		buf[idx] = byte(idx*7 + idx/13)
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

func grayPlane(buf []byte, r types.Resolution) *image.Gray {
	return &image.Gray{
		Pix:    buf[:r.Pixels()],
		Stride: int(r.Width),
		Rect:   image.Rect(0, 0, int(r.Width), int(r.Height)),
	}
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	s, err := New(ctx, types.PixelFormatRGB24, res(640, 480), res(320, 240))
	require.NoError(t, err)
	require.IsType(t, &RGB24{}, s)
	require.Equal(t, res(640, 480), s.SourceResolution())
	require.Equal(t, res(320, 240), s.DestinationResolution())
	require.Equal(t, types.PixelFormatRGB24, s.PixelFormat())

	s, err = New(ctx, types.PixelFormatYUV420P, res(640, 480), res(320, 240), OptionInterpolation(InterpolationBilinear))
	require.NoError(t, err)
	require.IsType(t, &YUV420P{}, s)
	require.Contains(t, s.String(), "bilinear")

	_, err = New(ctx, types.PixelFormat("nv12"), res(640, 480), res(320, 240))
	require.Error(t, err)

	_, err = New(ctx, types.PixelFormatRGB24, res(0, 480), res(320, 240))
	require.Error(t, err)
}

func TestScaleNotConfigured(t *testing.T) {
	ctx := context.Background()
	err := NewRGB24().Scale(ctx, make([]byte, 3), make([]byte, 3))
	require.ErrorAs(t, err, &ErrNotConfigured{})

	s, err := New(ctx, types.PixelFormatRGB24, res(2, 2), res(1, 1))
	require.NoError(t, err)
	require.NoError(t, s.Close(ctx))
	err = s.Scale(ctx, make([]byte, 3), make([]byte, 12))
	require.ErrorAs(t, err, &ErrNotConfigured{})
}

func TestScaleBufferSize(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, types.PixelFormatRGB24, res(4, 4), res(2, 2))
	require.NoError(t, err)

	var errSize ErrBufferSize
	err = s.Scale(ctx, make([]byte, 12), make([]byte, 47))
	require.ErrorAs(t, err, &errSize)
	require.Equal(t, "source", errSize.Buffer)
	require.Equal(t, uint(48), errSize.Required)

	err = s.Scale(ctx, make([]byte, 11), make([]byte, 48))
	require.ErrorAs(t, err, &errSize)
	require.Equal(t, "destination", errSize.Buffer)
	require.Equal(t, uint(12), errSize.Required)
}

func TestScaleIdentity(t *testing.T) {
	ctx := context.Background()
	for _, pixFmt := range types.PixelFormats() {
		for _, interpolation := range []Interpolation{InterpolationNearest, InterpolationBilinear} {
			r := res(64, 48)
			s, err := New(ctx, pixFmt, r, r, OptionInterpolation(interpolation))
			require.NoError(t, err)

			src := patternFrame(pixFmt, r)
			dst := make([]byte, len(src))
			require.NoError(t, s.Scale(ctx, dst, src))
			require.Equal(t, src, dst, "%s/%s", pixFmt, interpolation)
		}
	}
}

func TestScaleRGB24NearestMatchesXImageDraw(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct {
		src, dst types.Resolution
	}{
		{res(64, 48), res(32, 24)},
		{res(64, 48), res(100, 75)},
		{res(720, 480), res(640, 480)},
		{res(17, 13), res(5, 31)},
		{res(1, 1), res(3, 2)},
	} {
		t.Run(tc.src.String()+"->"+tc.dst.String(), func(t *testing.T) {
			s, err := New(ctx, types.PixelFormatRGB24, tc.src, tc.dst)
			require.NoError(t, err)

			src := patternFrame(types.PixelFormatRGB24, tc.src)
			dst := make([]byte, types.PixelFormatRGB24.FrameSize(tc.dst))
			require.NoError(t, s.Scale(ctx, dst, src))

			expectedImg := image.NewRGBA(image.Rect(0, 0, int(tc.dst.Width), int(tc.dst.Height)))
			srcImg := rgb24ToRGBA(src, tc.src)
			draw.NearestNeighbor.Scale(expectedImg, expectedImg.Bounds(), srcImg, srcImg.Bounds(), draw.Src, nil)
			require.Equal(t, rgbaToRGB24(expectedImg), dst)
		})
	}
}

func TestScaleYUV420PNearestMatchesXImageDraw(t *testing.T) {
	ctx := context.Background()
	srcRes, dstRes := res(64, 48), res(40, 30)

	s, err := New(ctx, types.PixelFormatYUV420P, srcRes, dstRes)
	require.NoError(t, err)

	src := patternFrame(types.PixelFormatYUV420P, srcRes)
	dst := make([]byte, types.PixelFormatYUV420P.FrameSize(dstRes))
	require.NoError(t, s.Scale(ctx, dst, src))

	srcChroma, dstChroma := types.ChromaResolution(srcRes), types.ChromaResolution(dstRes)
	planes := []struct {
		srcOffset, dstOffset int
		src, dst             types.Resolution
	}{
		{0, 0, srcRes, dstRes},
		{int(srcRes.Pixels()), int(dstRes.Pixels()), srcChroma, dstChroma},
		{int(srcRes.Pixels() + srcChroma.Pixels()), int(dstRes.Pixels() + dstChroma.Pixels()), srcChroma, dstChroma},
	}
	for idx, p := range planes {
		srcImg := grayPlane(src[p.srcOffset:], p.src)
		expectedImg := image.NewGray(image.Rect(0, 0, int(p.dst.Width), int(p.dst.Height)))
		draw.NearestNeighbor.Scale(expectedImg, expectedImg.Bounds(), srcImg, srcImg.Bounds(), draw.Src, nil)
		require.Equal(t, expectedImg.Pix, dst[p.dstOffset:p.dstOffset+int(p.dst.Pixels())], "plane #%d", idx)
	}
}

func TestScaleBilinear(t *testing.T) {
	ctx := context.Background()

	t.Run("constant_color_stays_constant", func(t *testing.T) {
		s, err := New(ctx, types.PixelFormatRGB24, res(33, 17), res(80, 9), OptionInterpolation(InterpolationBilinear))
		require.NoError(t, err)
		src := make([]byte, types.PixelFormatRGB24.FrameSize(res(33, 17)))
		for idx := range src {
			src[idx] = []byte{10, 200, 255}[idx%3]
		}
		dst := make([]byte, types.PixelFormatRGB24.FrameSize(res(80, 9)))
		require.NoError(t, s.Scale(ctx, dst, src))
		for idx := range dst {
			require.Equal(t, []byte{10, 200, 255}[idx%3], dst[idx], "byte #%d", idx)
		}
	})

	t.Run("upscaled_gradient_is_monotonic", func(t *testing.T) {
		s, err := New(ctx, types.PixelFormatYUV420P, res(2, 2), res(8, 2), OptionInterpolation(InterpolationBilinear))
		require.NoError(t, err)
		src := []byte{
			0, 200, // Y row 0
			0, 200, // Y row 1
			128, // U
			128, // V
		}
		dst := make([]byte, types.PixelFormatYUV420P.FrameSize(res(8, 2)))
		require.NoError(t, s.Scale(ctx, dst, src))
		row := dst[:8]
		require.Equal(t, byte(0), row[0])
		require.Equal(t, byte(200), row[7])
		for x := 1; x < len(row); x++ {
			require.GreaterOrEqual(t, row[x], row[x-1], "%v", row)
		}
		require.Equal(t, row, dst[8:16])
		for _, v := range dst[16:] {
			require.Equal(t, byte(128), v)
		}
	})
}

func TestScaleDoesNotAllocate(t *testing.T) {
	ctx := context.Background()
	for _, pixFmt := range types.PixelFormats() {
		for _, interpolation := range []Interpolation{InterpolationNearest, InterpolationBilinear} {
			s, err := New(ctx, pixFmt, res(64, 48), res(30, 20), OptionInterpolation(interpolation))
			require.NoError(t, err)
			src := patternFrame(pixFmt, res(64, 48))
			dst := make([]byte, pixFmt.FrameSize(res(30, 20)))
			allocs := testing.AllocsPerRun(10, func() {
				if err := s.Scale(ctx, dst, src); err != nil {
					panic(err)
				}
			})
			require.Zero(t, allocs, "%s/%s", pixFmt, interpolation)
		}
	}
}

func TestInterpolationSet(t *testing.T) {
	var i Interpolation
	require.NoError(t, i.Set("Bilinear"))
	require.Equal(t, InterpolationBilinear, i)
	require.Error(t, i.Set("lanczos"))
	require.Error(t, i.Set("undefined"))
}

func TestUndefinedInterpolationIsDefault(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, types.PixelFormatRGB24, res(8, 8), res(4, 4), OptionInterpolation(UndefinedInterpolation))
	require.NoError(t, err)
	require.Contains(t, s.String(), DefaultInterpolation.String())
	require.NotContains(t, s.String(), UndefinedInterpolation.String())

	s, err = New(ctx, types.PixelFormatRGB24, res(8, 8), res(4, 4), OptionInterpolation(InterpolationBilinear), OptionInterpolation(UndefinedInterpolation))
	require.NoError(t, err)
	require.Contains(t, s.String(), DefaultInterpolation.String())
}
