package geometry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/avscale/types"
)

func res(w, h uint32) types.Resolution {
	return types.Resolution{Width: w, Height: h}
}

func TestDetermineCropMargins(t *testing.T) {
	for _, tc := range []struct {
		name          string
		in, out       types.Resolution
		topBottom     uint32
		leftRight     uint32
		expectedError error
	}{
		{name: "720x480_to_640x480", in: res(720, 480), out: res(640, 480), leftRight: 80},
		{name: "1920x1080_to_square", in: res(1920, 1080), out: res(1000, 1000), leftRight: 840},
		{name: "4:3_to_16:9", in: res(640, 480), out: res(1280, 720), topBottom: 120},
		{name: "odd_margin", in: res(641, 480), out: res(480, 480), leftRight: 161},
		{name: "zero_input", in: res(0, 480), out: res(640, 480), expectedError: ErrDegenerateResolution},
		{name: "zero_output", in: res(640, 480), out: res(640, 0), expectedError: ErrDegenerateResolution},
		{name: "target_width_rounds_to_zero", in: res(2, 1), out: res(1, 1000), expectedError: ErrInfeasibleCrop},
		{name: "equal_aspect", in: res(640, 480), out: res(320, 240), expectedError: ErrInfeasibleCrop},
	} {
		t.Run(tc.name, func(t *testing.T) {
			topBottom, leftRight, err := DetermineCropMargins(tc.in, tc.out)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.topBottom, topBottom)
			assert.Equal(t, tc.leftRight, leftRight)
		})
	}
}

func TestSplitMargin(t *testing.T) {
	for total := uint32(0); total < 1000; total++ {
		first, second := SplitMargin(total)
		require.Equal(t, total, first+second)
		require.Equal(t, total/2, first)
		if total%2 == 0 {
			require.Equal(t, first, second)
		} else {
			require.Equal(t, first+1, second)
		}
	}
}

func TestComputeCropSpec(t *testing.T) {
	ctx := context.Background()

	t.Run("equal_aspect_ratio", func(t *testing.T) {
		require.Nil(t, ComputeCropSpec(ctx, res(640, 480), res(640, 480), DefaultAspectRatioEpsilon))
		require.Nil(t, ComputeCropSpec(ctx, res(1920, 1080), res(1280, 720), DefaultAspectRatioEpsilon))
		// 1.7778 vs 1.7787: within the epsilon
		require.Nil(t, ComputeCropSpec(ctx, res(1920, 1080), res(1921, 1080), DefaultAspectRatioEpsilon))
	})

	t.Run("width_axis", func(t *testing.T) {
		crop := ComputeCropSpec(ctx, res(720, 480), res(640, 480), DefaultAspectRatioEpsilon)
		require.NotNil(t, crop)
		require.Equal(t, types.CropSpec{Left: 40, Right: 40}, *crop)
	})

	t.Run("height_axis", func(t *testing.T) {
		crop := ComputeCropSpec(ctx, res(640, 480), res(1280, 720), DefaultAspectRatioEpsilon)
		require.NotNil(t, crop)
		require.Equal(t, types.CropSpec{Top: 60, Bottom: 60}, *crop)
	})

	t.Run("odd_margin_goes_to_bottom_right", func(t *testing.T) {
		crop := ComputeCropSpec(ctx, res(641, 480), res(480, 480), DefaultAspectRatioEpsilon)
		require.NotNil(t, crop)
		require.Equal(t, types.CropSpec{Left: 80, Right: 81}, *crop)

		crop = ComputeCropSpec(ctx, res(100, 101), res(1, 1), DefaultAspectRatioEpsilon)
		require.NotNil(t, crop)
		require.Equal(t, types.CropSpec{Top: 0, Bottom: 1}, *crop)
	})

	t.Run("deterministic", func(t *testing.T) {
		first := ComputeCropSpec(ctx, res(1023, 767), res(1280, 720), DefaultAspectRatioEpsilon)
		require.NotNil(t, first)
		for i := 0; i < 10; i++ {
			again := ComputeCropSpec(ctx, res(1023, 767), res(1280, 720), DefaultAspectRatioEpsilon)
			require.Equal(t, first, again)
		}
	})

	t.Run("infeasible_falls_back_to_no_crop", func(t *testing.T) {
		require.Nil(t, ComputeCropSpec(ctx, res(2, 1), res(1, 1000), DefaultAspectRatioEpsilon))
		require.Nil(t, ComputeCropSpec(ctx, res(640, 480), res(640, 0), DefaultAspectRatioEpsilon))
		require.Nil(t, ComputeCropSpec(ctx, res(0, 0), res(640, 480), DefaultAspectRatioEpsilon))
	})
}

func TestComputeCropSpecMatchesOutputAspectRatio(t *testing.T) {
	ctx := context.Background()
	sizes := []uint32{1, 2, 3, 7, 16, 99, 100, 144, 240, 321, 480, 576, 640, 720, 1080, 1279, 1920}
	for _, inW := range sizes {
		for _, inH := range sizes {
			for _, outW := range sizes {
				for _, outH := range []uint32{1, 9, 100, 480, 1080} {
					in, out := res(inW, inH), res(outW, outH)
					crop := ComputeCropSpec(ctx, in, out, DefaultAspectRatioEpsilon)
					if crop == nil {
						continue
					}
					require.Greater(t, crop.Total(), uint64(0), "%s -> %s", in, out)
					require.True(t, crop.Left == 0 && crop.Right == 0 || crop.Top == 0 && crop.Bottom == 0, "%s -> %s: %s", in, out, crop)
					cropped, err := crop.Apply(in)
					require.NoError(t, err, "%s -> %s", in, out)

					// the cropped side is rounded to the nearest pixel
					lhs := int64(cropped.Width) * int64(out.Height)
					rhs := int64(cropped.Height) * int64(out.Width)
					diff := lhs - rhs
					if diff < 0 {
						diff = -diff
					}
					tolerance := int64(out.Width)
					if int64(out.Height) > tolerance {
						tolerance = int64(out.Height)
					}
					require.LessOrEqual(t, diff*2, tolerance, "%s -> %s: %s", in, out, crop)
				}
			}
		}
	}
}
