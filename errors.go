// errors.go defines the errors returned by ScaleFilter.

package avscale

import (
	"fmt"

	"github.com/xaionaro-go/avscale/types"
)

type ErrUnsupportedFormat struct {
	Format types.MediaFormat
	Reason string
}

func (e ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported format %s: %s", e.Format, e.Reason)
}

type ErrConfigurationWhileConnected struct {
	Operation string
}

func (e ErrConfigurationWhileConnected) Error() string {
	return fmt.Sprintf("unable to %s: the output is already connected", e.Operation)
}

type ErrBufferTooSmall struct {
	Required uint
	Actual   uint
}

func (e ErrBufferTooSmall) Error() string {
	return fmt.Sprintf("the allocated buffers have %d bytes, but %d bytes are required", e.Actual, e.Required)
}

type ErrNotConfigured struct{}

func (ErrNotConfigured) Error() string {
	return "the filter is not configured: no input format was negotiated"
}

type ErrInvalidResolution struct {
	Resolution types.Resolution
}

func (e ErrInvalidResolution) Error() string {
	return fmt.Sprintf("invalid resolution %s", e.Resolution)
}

type ErrUnknownParameter struct {
	Name string
}

func (e ErrUnknownParameter) Error() string {
	return fmt.Sprintf("unknown parameter '%s'", e.Name)
}

type ErrInvalidParameterValue struct {
	Name  string
	Value string
	Err   error
}

func (e ErrInvalidParameterValue) Error() string {
	return fmt.Sprintf("invalid value '%s' of parameter '%s': %v", e.Value, e.Name, e.Err)
}

func (e ErrInvalidParameterValue) Unwrap() error {
	return e.Err
}

type ErrClosed struct{}

func (ErrClosed) Error() string {
	return "the filter is closed"
}
