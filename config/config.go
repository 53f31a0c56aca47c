// config.go provides the YAML configuration of a scaling job.

// Package config loads the description of a scaling job (the input format
// and the filter parameters) from YAML.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/xaionaro-go/avscale"
	"github.com/xaionaro-go/avscale/scaler"
	"github.com/xaionaro-go/avscale/types"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Input         InputConfig          `yaml:"input"`
	Parameters    avscale.Parameters   `yaml:"parameters"`
	Interpolation scaler.Interpolation `yaml:"interpolation,omitempty"`
}

type InputConfig struct {
	PixelFormat types.PixelFormat `yaml:"pixel_format"`
	Resolution  types.Resolution  `yaml:"resolution"`
}

func Default() Config {
	return Config{
		Input: InputConfig{
			PixelFormat: types.PixelFormatYUV420P,
		},
		Parameters:    avscale.DefaultParameters(),
		Interpolation: scaler.DefaultInterpolation,
	}
}

// MediaFormat returns the format to negotiate as the input of the filter.
func (cfg Config) MediaFormat() types.MediaFormat {
	return types.MediaFormat{
		MediaType:   types.MediaTypeVideo,
		PixelFormat: cfg.Input.PixelFormat,
		Resolution:  cfg.Input.Resolution,
	}
}

func (cfg Config) Validate() error {
	if err := avscale.CheckInputFormat(cfg.MediaFormat()); err != nil {
		return err
	}
	if !cfg.Parameters.Mode.IsValid() {
		return fmt.Errorf("invalid scale mode %s", cfg.Parameters.Mode)
	}
	if cfg.Interpolation != scaler.UndefinedInterpolation && !cfg.Interpolation.IsValid() {
		return fmt.Errorf("invalid interpolation %s", cfg.Interpolation)
	}
	return nil
}

// Read parses the YAML from r on top of Default(); the input resolution
// may be left unset to be provided later.
func Read(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("unable to parse the config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read the config file '%s': %w", path, err)
	}
	cfg, err := Read(bytes.NewReader(b))
	if err != nil {
		return Config{}, fmt.Errorf("unable to load '%s': %w", path, err)
	}
	return cfg, nil
}

func (cfg Config) Bytes() ([]byte, error) {
	return yaml.Marshal(cfg)
}
