// frame_io.go provides reading and writing of headerless raw video streams.

// Package rawvideo handles raw (headerless) video: a stream of
// back-to-back frames of a fixed pixel format and resolution.
package rawvideo

import (
	"fmt"
	"io"

	"github.com/xaionaro-go/avscale/types"
)

type Reader struct {
	Backend     io.Reader
	PixelFormat types.PixelFormat
	Resolution  types.Resolution
	FramesRead  uint64
}

func NewReader(
	r io.Reader,
	pixFmt types.PixelFormat,
	res types.Resolution,
) *Reader {
	return &Reader{
		Backend:     r,
		PixelFormat: pixFmt,
		Resolution:  res,
	}
}

func (r *Reader) FrameSize() uint {
	return r.PixelFormat.FrameSize(r.Resolution)
}

// ReadFrame fills buf with the next frame. It returns io.EOF if the stream
// ended on a frame boundary and io.ErrUnexpectedEOF if it ended mid-frame.
func (r *Reader) ReadFrame(buf []byte) error {
	frameSize := r.FrameSize()
	if uint(len(buf)) < frameSize {
		return fmt.Errorf("the buffer is too small: %d < %d", len(buf), frameSize)
	}
	if _, err := io.ReadFull(r.Backend, buf[:frameSize]); err != nil {
		return err
	}
	r.FramesRead++
	return nil
}

type Writer struct {
	Backend       io.Writer
	FramesWritten uint64
	BytesWritten  uint64
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{Backend: w}
}

func (w *Writer) WriteFrame(frame []byte) error {
	n, err := w.Backend.Write(frame)
	w.BytesWritten += uint64(n)
	if err != nil {
		return fmt.Errorf("unable to write the frame: %w", err)
	}
	if n != len(frame) {
		return io.ErrShortWrite
	}
	w.FramesWritten++
	return nil
}
