// media_type.go defines the MediaType enum used on format negotiation.

package types

import "fmt"

type MediaType int

const (
	MediaTypeUnknown  = MediaType(-0x1)
	MediaTypeVideo    = MediaType(0x0)
	MediaTypeAudio    = MediaType(0x1)
	MediaTypeData     = MediaType(0x2)
	MediaTypeSubtitle = MediaType(0x3)
)

func (t MediaType) String() string {
	switch t {
	case MediaTypeAudio:
		return "audio"
	case MediaTypeData:
		return "data"
	case MediaTypeSubtitle:
		return "subtitle"
	case MediaTypeVideo:
		return "video"
	case MediaTypeUnknown:
		return "unknown"
	default:
		return "MediaType(" + fmt.Sprintf("%d", int(t)) + ")"
	}
}

// MediaFormat is what the format negotiation agrees on for one side of the filter.
type MediaFormat struct {
	MediaType   MediaType
	PixelFormat PixelFormat
	Resolution  Resolution
}

func (f MediaFormat) String() string {
	return fmt.Sprintf("%s:%s:%s", f.MediaType, f.PixelFormat, f.Resolution)
}

// SampleSize returns the size of a single frame in bytes.
func (f MediaFormat) SampleSize() uint {
	return f.PixelFormat.FrameSize(f.Resolution)
}
