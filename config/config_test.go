package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/avscale"
	"github.com/xaionaro-go/avscale/scaler"
	"github.com/xaionaro-go/avscale/types"
)

const sampleConfig = `
input:
  pixel_format: rgb24
  resolution:
    width: 720
    height: 480
parameters:
  target_width: 640
  target_height: 480
  mode: aspect-ratio-correct
interpolation: bilinear
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avscale.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, types.MediaFormat{
		MediaType:   types.MediaTypeVideo,
		PixelFormat: types.PixelFormatRGB24,
		Resolution:  types.Resolution{Width: 720, Height: 480},
	}, cfg.MediaFormat())
	require.Equal(t, avscale.Parameters{
		TargetWidth:  640,
		TargetHeight: 480,
		Mode:         types.ScaleModeAspectRatioCorrect,
	}, cfg.Parameters)
	require.Equal(t, scaler.InterpolationBilinear, cfg.Interpolation)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestReadDefaults(t *testing.T) {
	cfg, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, types.DefaultScaleMode, cfg.Parameters.Mode)

	cfg, err = Read(strings.NewReader("parameters:\n  target_width: 320\n"))
	require.NoError(t, err)
	require.Equal(t, uint32(320), cfg.Parameters.TargetWidth)
	require.Equal(t, types.DefaultScaleMode, cfg.Parameters.Mode, "unset fields keep the defaults")
}

func TestReadInvalid(t *testing.T) {
	for name, content := range map[string]string{
		"pixel_format":  "input:\n  pixel_format: nv12\n",
		"mode":          "parameters:\n  mode: stretch\n",
		"interpolation": "interpolation: bicubic\n",
		"unknown_field": "brightness: 1\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Read(strings.NewReader(content))
			require.Error(t, err)
		})
	}
}

func TestBytes(t *testing.T) {
	cfg, err := Read(strings.NewReader(sampleConfig))
	require.NoError(t, err)

	b, err := cfg.Bytes()
	require.NoError(t, err)
	require.Contains(t, string(b), "mode: aspect-ratio-correct")

	parsed, err := Read(strings.NewReader(string(b)))
	require.NoError(t, err)
	require.Equal(t, cfg, parsed)
}
