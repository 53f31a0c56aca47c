package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/xaionaro-go/avscale/geometry"
	"github.com/xaionaro-go/avscale/types"
)

var planFlags = struct {
	PixelFormat types.PixelFormat
	Mode        types.ScaleMode
	Epsilon     float64
}{
	PixelFormat: types.PixelFormatYUV420P,
	Mode:        types.DefaultScaleMode,
	Epsilon:     geometry.DefaultAspectRatioEpsilon,
}

var planCmd = &cobra.Command{
	Use:   "plan <input WxH> <output WxH>",
	Short: "Show how a frame would be cropped and scaled",
	Args:  cobra.ExactArgs(2),
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().Var(&planFlags.PixelFormat, "pixel-format", "pixel format: rgb24 or yuv420p")
	planCmd.Flags().Var(&planFlags.Mode, "mode", "scale mode: standard or aspect-ratio-correct")
	planCmd.Flags().Float64Var(&planFlags.Epsilon, "aspect-ratio-epsilon", planFlags.Epsilon, "aspect ratios closer than this are considered equal")
	rootCmd.AddCommand(planCmd)
}

var (
	planTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	planKeyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(18)
	planCropStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	planBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func runPlan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var in, out types.Resolution
	if err := in.Parse(args[0]); err != nil {
		return err
	}
	if err := out.Parse(args[1]); err != nil {
		return err
	}
	// a zero output dimension means the input one, as in the filter
	if out.Width == 0 {
		out.Width = in.Width
	}
	if out.Height == 0 {
		out.Height = in.Height
	}
	cfg := types.PipelineConfig{
		PixelFormat: planFlags.PixelFormat,
		Input:       in,
		Output:      out,
		Mode:        planFlags.Mode,
	}
	if cfg.Mode == types.ScaleModeAspectRatioCorrect {
		cfg.Crop = geometry.ComputeCropSpec(ctx, in, out, planFlags.Epsilon)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cropped, err := cfg.CroppedResolution()
	if err != nil {
		return err
	}

	crop := "none (direct scaling)"
	if cfg.Crop != nil {
		crop = planCropStyle.Render(fmt.Sprintf("top %d, bottom %d, left %d, right %d", cfg.Crop.Top, cfg.Crop.Bottom, cfg.Crop.Left, cfg.Crop.Right))
	}

	var rows []string
	for _, row := range [][2]string{
		{"pixel format", cfg.PixelFormat.String()},
		{"mode", cfg.Mode.String()},
		{"input", fmt.Sprintf("%s (%.4f:1)", in, in.AspectRatio())},
		{"output", fmt.Sprintf("%s (%.4f:1)", out, out.AspectRatio())},
		{"crop", crop},
		{"scaler input", cropped.String()},
		{"input frame", humanize.IBytes(uint64(cfg.InputFrameSize()))},
		{"output frame", humanize.IBytes(uint64(cfg.OutputFrameSize()))},
	} {
		rows = append(rows, planKeyStyle.Render(row[0])+row[1])
	}

	fmt.Fprintln(cmd.OutOrStdout(), planBoxStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			planTitleStyle.Render("avscale plan"),
			strings.Join(rows, "\n"),
		),
	))
	return nil
}
