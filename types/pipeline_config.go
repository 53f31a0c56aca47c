// pipeline_config.go defines the immutable description of a transform pipeline.

package types

import (
	"fmt"
)

// PipelineConfig is replaced as a whole on every change, it is never
// mutated in place once a pipeline is built from it.
type PipelineConfig struct {
	PixelFormat PixelFormat `yaml:"pixel_format"`
	Input       Resolution  `yaml:"input"`
	Output      Resolution  `yaml:"output"`
	Mode        ScaleMode   `yaml:"mode"`

	// Crop is derived from the other fields on reconfiguration;
	// nil means the input is scaled directly.
	Crop *CropSpec `yaml:"crop,omitempty"`
}

func (cfg PipelineConfig) String() string {
	crop := "none"
	if cfg.Crop != nil {
		crop = cfg.Crop.String()
	}
	return fmt.Sprintf("%s %s -> %s (%s, crop: %s)", cfg.PixelFormat, cfg.Input, cfg.Output, cfg.Mode, crop)
}

// CroppedResolution returns the resolution the scaler receives.
func (cfg PipelineConfig) CroppedResolution() (Resolution, error) {
	if cfg.Crop == nil {
		return cfg.Input, nil
	}
	return cfg.Crop.Apply(cfg.Input)
}

func (cfg PipelineConfig) InputFrameSize() uint {
	return cfg.PixelFormat.FrameSize(cfg.Input)
}

func (cfg PipelineConfig) OutputFrameSize() uint {
	return cfg.PixelFormat.FrameSize(cfg.Output)
}

func (cfg PipelineConfig) Validate() error {
	if !cfg.PixelFormat.IsSupported() {
		return fmt.Errorf("pixel format '%s' is not supported", cfg.PixelFormat)
	}
	if cfg.Input.IsZero() {
		return fmt.Errorf("input resolution %s has a zero dimension", cfg.Input)
	}
	if cfg.Output.IsZero() {
		return fmt.Errorf("output resolution %s has a zero dimension", cfg.Output)
	}
	if !cfg.Mode.IsValid() {
		return fmt.Errorf("invalid scale mode %s", cfg.Mode)
	}
	if cfg.Crop != nil {
		if _, err := cfg.Crop.Apply(cfg.Input); err != nil {
			return fmt.Errorf("invalid crop: %w", err)
		}
	}
	return nil
}

// Equal compares the configs including the derived crop.
func (cfg PipelineConfig) Equal(other PipelineConfig) bool {
	if cfg.PixelFormat != other.PixelFormat || cfg.Input != other.Input || cfg.Output != other.Output || cfg.Mode != other.Mode {
		return false
	}
	switch {
	case cfg.Crop == nil && other.Crop == nil:
		return true
	case cfg.Crop == nil || other.Crop == nil:
		return false
	default:
		return *cfg.Crop == *other.Crop
	}
}
