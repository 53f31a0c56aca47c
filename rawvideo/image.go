// image.go converts raw frames to and from image.Image.

package rawvideo

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/xaionaro-go/avscale/types"
	"golang.org/x/image/draw"
)

// ToImage wraps the frame into an image without copying the pixel data
// where the format allows it (YUV420P).
func ToImage(
	pixFmt types.PixelFormat,
	res types.Resolution,
	frame []byte,
) (image.Image, error) {
	if expected := pixFmt.FrameSize(res); expected == 0 || uint(len(frame)) < expected {
		return nil, fmt.Errorf("invalid frame of %d bytes for %s %s (expected %d)", len(frame), pixFmt, res, expected)
	}
	w, h := int(res.Width), int(res.Height)
	rect := image.Rect(0, 0, w, h)

	switch pixFmt {
	case types.PixelFormatRGB24:
		img := image.NewNRGBA(rect)
		for idx, pos := 0, 0; idx < w*h; idx++ {
			copy(img.Pix[pos:pos+3], frame[idx*3:idx*3+3])
			img.Pix[pos+3] = 0xff
			pos += 4
		}
		return img, nil
	case types.PixelFormatYUV420P:
		luma := w * h
		chroma := int(types.ChromaPlaneSize(res))
		return &image.YCbCr{
			Y:              frame[:luma],
			Cb:             frame[luma : luma+chroma],
			Cr:             frame[luma+chroma : luma+2*chroma],
			YStride:        w,
			CStride:        int(types.ChromaResolution(res).Width),
			SubsampleRatio: image.YCbCrSubsampleRatio420,
			Rect:           rect,
		}, nil
	default:
		return nil, fmt.Errorf("pixel format '%s' is not supported", pixFmt)
	}
}

// FromImage converts img into a raw frame of the given pixel format.
func FromImage(
	pixFmt types.PixelFormat,
	img image.Image,
) ([]byte, types.Resolution, error) {
	b := img.Bounds()
	res := types.Resolution{Width: uint32(b.Dx()), Height: uint32(b.Dy())}
	if res.IsZero() {
		return nil, res, fmt.Errorf("the image is empty")
	}

	switch pixFmt {
	case types.PixelFormatRGB24:
		nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
		frame := make([]byte, pixFmt.FrameSize(res))
		for idx := 0; idx < b.Dx()*b.Dy(); idx++ {
			copy(frame[idx*3:idx*3+3], nrgba.Pix[idx*4:idx*4+3])
		}
		return frame, res, nil
	case types.PixelFormatYUV420P:
		frame := make([]byte, pixFmt.FrameSize(res))
		ycbcr, err := ToImage(pixFmt, res, frame)
		if err != nil {
			return nil, res, err
		}
		dst := ycbcr.(*image.YCbCr)
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
				yy, cb, cr := color.RGBToYCbCr(uint8(r>>8), uint8(g>>8), uint8(bl>>8))
				dst.Y[dst.YOffset(x, y)] = yy
				// the top-left pixel of each 2x2 block defines the chroma
				if x%2 == 0 && y%2 == 0 {
					dst.Cb[dst.COffset(x, y)] = cb
					dst.Cr[dst.COffset(x, y)] = cr
				}
			}
		}
		return frame, res, nil
	default:
		return nil, res, fmt.Errorf("pixel format '%s' is not supported", pixFmt)
	}
}

// LoadImage reads an image file (any format supported by imaging) as a raw frame.
func LoadImage(
	path string,
	pixFmt types.PixelFormat,
) ([]byte, types.Resolution, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, types.Resolution{}, fmt.Errorf("unable to open '%s': %w", path, err)
	}
	return FromImage(pixFmt, img)
}

// SaveSnapshot stores the frame as an image file, the format is chosen by
// the file extension (e.g. ".png" or ".jpg").
func SaveSnapshot(
	path string,
	pixFmt types.PixelFormat,
	res types.Resolution,
	frame []byte,
) error {
	img, err := ToImage(pixFmt, res, frame)
	if err != nil {
		return err
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(95)); err != nil {
		return fmt.Errorf("unable to save the snapshot to '%s': %w", path, err)
	}
	return nil
}
