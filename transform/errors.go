package transform

import (
	"fmt"
)

type ErrFrameTransform struct {
	Stage string
	Err   error
}

func (e ErrFrameTransform) Error() string {
	return fmt.Sprintf("unable to %s the frame: %v", e.Stage, e.Err)
}

func (e ErrFrameTransform) Unwrap() error {
	return e.Err
}

type ErrFrameSize struct {
	Buffer   string
	Size     uint
	Expected uint
}

func (e ErrFrameSize) Error() string {
	switch e.Buffer {
	case "input":
		return fmt.Sprintf("the %s frame has %d bytes, expected exactly %d", e.Buffer, e.Size, e.Expected)
	default:
		return fmt.Sprintf("the %s buffer has %d bytes, expected at least %d", e.Buffer, e.Size, e.Expected)
	}
}

type ErrClosed struct{}

func (ErrClosed) Error() string {
	return "the pipeline is closed"
}
