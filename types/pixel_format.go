// pixel_format.go defines the PixelFormat type and the per-format frame size table.

package types

import (
	"fmt"
	"strings"
)

type PixelFormat string

func (pf PixelFormat) String() string {
	return string(pf)
}

const (
	PixelFormatUnknown PixelFormat = "unknown"

	// PixelFormatRGB24 is packed 8-bit RGB: three interleaved bytes per pixel.
	PixelFormatRGB24 PixelFormat = "rgb24"

	// PixelFormatYUV420P is 8-bit planar YUV 4:2:0 (a.k.a. I420): a full
	// resolution Y plane followed by U and V planes subsampled by two on
	// both axes (rounding up for odd dimensions).
	PixelFormatYUV420P PixelFormat = "yuv420p"
)

func PixelFormats() []PixelFormat {
	return []PixelFormat{
		PixelFormatRGB24,
		PixelFormatYUV420P,
	}
}

func (pf PixelFormat) IsSupported() bool {
	switch pf {
	case PixelFormatRGB24, PixelFormatYUV420P:
		return true
	default:
		return false
	}
}

// BitsPerPixel returns the average amount of bits a pixel occupies:
// 24 for RGB24 (3 bytes) and 12 for YUV420P (1.5 bytes).
func (pf PixelFormat) BitsPerPixel() uint {
	switch pf {
	case PixelFormatRGB24:
		return 24
	case PixelFormatYUV420P:
		return 12
	default:
		return 0
	}
}

// FrameSize returns the exact amount of bytes a single frame of
// the given resolution occupies, or 0 for an unsupported format.
func (pf PixelFormat) FrameSize(res Resolution) uint {
	switch pf {
	case PixelFormatRGB24:
		return uint(res.Width) * uint(res.Height) * 3
	case PixelFormatYUV420P:
		luma := uint(res.Width) * uint(res.Height)
		return luma + 2*ChromaPlaneSize(res)
	default:
		return 0
	}
}

// ChromaResolution returns the dimensions of a single chroma plane of a YUV420P frame.
func ChromaResolution(res Resolution) Resolution {
	return Resolution{
		Width:  (res.Width + 1) / 2,
		Height: (res.Height + 1) / 2,
	}
}

func ChromaPlaneSize(res Resolution) uint {
	c := ChromaResolution(res)
	return uint(c.Width) * uint(c.Height)
}

func (pf *PixelFormat) Set(s string) error {
	candidate := PixelFormat(strings.ToLower(strings.TrimSpace(s)))
	switch candidate {
	case "i420", "yuv420":
		candidate = PixelFormatYUV420P
	case "rgb":
		candidate = PixelFormatRGB24
	}
	if !candidate.IsSupported() {
		return fmt.Errorf("unsupported pixel format '%s', supported: %v", s, PixelFormats())
	}
	*pf = candidate
	return nil
}

func (pf PixelFormat) Type() string {
	return "PixelFormat"
}
