// parameters.go implements the user-settable parameters of ScaleFilter.

package avscale

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xaionaro-go/avscale/logger"
	"github.com/xaionaro-go/avscale/types"
)

const (
	ParameterTargetWidth  = "targetwidth"
	ParameterTargetHeight = "targetheight"
	ParameterMode         = "mode"
)

func ParameterNames() []string {
	return []string{ParameterTargetWidth, ParameterTargetHeight, ParameterMode}
}

// Parameters are the user settings; a zero target dimension means
// "the same as the input".
type Parameters struct {
	TargetWidth  uint32          `yaml:"target_width"`
	TargetHeight uint32          `yaml:"target_height"`
	Mode         types.ScaleMode `yaml:"mode"`
}

func DefaultParameters() Parameters {
	return Parameters{
		Mode: types.DefaultScaleMode,
	}
}

func (f *ScaleFilter) Parameters() Parameters {
	return f.parameters
}

// SetParameters replaces all the parameters and rebuilds the pipeline.
// It fails while the output is connected; on failure the previous
// parameters stay active.
func (f *ScaleFilter) SetParameters(
	ctx context.Context,
	params Parameters,
) (_err error) {
	logger.Debugf(ctx, "SetParameters: %#+v", params)
	defer func() { logger.Debugf(ctx, "/SetParameters: %#+v: %v", params, _err) }()

	if f.IsClosed() {
		return ErrClosed{}
	}
	if f.outputConnected {
		return ErrConfigurationWhileConnected{Operation: "set parameters"}
	}
	if !params.Mode.IsValid() {
		return fmt.Errorf("invalid scale mode %s", params.Mode)
	}

	prev := f.parameters
	f.parameters = params
	if err := f.rebuild(ctx); err != nil {
		f.parameters = prev
		return fmt.Errorf("unable to rebuild the pipeline: %w", err)
	}
	return nil
}

func (f *ScaleFilter) SetTargetWidth(ctx context.Context, width uint32) error {
	params := f.parameters
	params.TargetWidth = width
	return f.SetParameters(ctx, params)
}

func (f *ScaleFilter) SetTargetHeight(ctx context.Context, height uint32) error {
	params := f.parameters
	params.TargetHeight = height
	return f.SetParameters(ctx, params)
}

func (f *ScaleFilter) SetMode(ctx context.Context, mode types.ScaleMode) error {
	params := f.parameters
	params.Mode = mode
	return f.SetParameters(ctx, params)
}

// SetParameter sets a parameter by its name, see ParameterNames.
func (f *ScaleFilter) SetParameter(
	ctx context.Context,
	name string,
	value string,
) error {
	params := f.parameters
	switch strings.ToLower(name) {
	case ParameterTargetWidth:
		v, err := strconv.ParseUint(strings.TrimSpace(value), 10, 32)
		if err != nil {
			return ErrInvalidParameterValue{Name: name, Value: value, Err: err}
		}
		params.TargetWidth = uint32(v)
	case ParameterTargetHeight:
		v, err := strconv.ParseUint(strings.TrimSpace(value), 10, 32)
		if err != nil {
			return ErrInvalidParameterValue{Name: name, Value: value, Err: err}
		}
		params.TargetHeight = uint32(v)
	case ParameterMode:
		mode, err := types.ParseScaleMode(value)
		if err != nil {
			return ErrInvalidParameterValue{Name: name, Value: value, Err: err}
		}
		params.Mode = mode
	default:
		return ErrUnknownParameter{Name: name}
	}
	return f.SetParameters(ctx, params)
}

// GetParameter returns the value of a parameter by its name.
func (f *ScaleFilter) GetParameter(name string) (string, error) {
	switch strings.ToLower(name) {
	case ParameterTargetWidth:
		return strconv.FormatUint(uint64(f.parameters.TargetWidth), 10), nil
	case ParameterTargetHeight:
		return strconv.FormatUint(uint64(f.parameters.TargetHeight), 10), nil
	case ParameterMode:
		return f.parameters.Mode.String(), nil
	default:
		return "", ErrUnknownParameter{Name: name}
	}
}
