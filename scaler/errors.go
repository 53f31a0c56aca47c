package scaler

import (
	"fmt"
)

type ErrNotConfigured struct{}

func (ErrNotConfigured) Error() string {
	return "the scaler is not configured"
}

type ErrBufferSize struct {
	Buffer   string
	Size     uint
	Required uint
}

func (e ErrBufferSize) Error() string {
	return fmt.Sprintf("the %s buffer has %d bytes, but %d bytes are required", e.Buffer, e.Size, e.Required)
}
