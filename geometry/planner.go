// planner.go computes the margins needed to crop a frame to a target aspect ratio.

// Package geometry decides how a frame has to be cropped so that scaling it
// to the output resolution preserves the aspect ratio.
package geometry

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/xaionaro-go/avscale/logger"
	"github.com/xaionaro-go/avscale/types"
)

// DefaultAspectRatioEpsilon is the maximal difference of aspect ratios
// which are still considered equal.
const DefaultAspectRatioEpsilon = 0.001

var (
	ErrDegenerateResolution = errors.New("resolution has a zero dimension")
	ErrInfeasibleCrop       = errors.New("the aspect ratio cannot be reached by cropping")
)

// DetermineCropMargins returns the total amount of pixels to remove from
// the top+bottom and left+right edge pairs of the input, so that the rest
// has the aspect ratio of the output. Exactly one of the totals is non-zero
// on success.
func DetermineCropMargins(
	in types.Resolution,
	out types.Resolution,
) (topBottom uint32, leftRight uint32, _ error) {
	if in.IsZero() || out.IsZero() {
		return 0, 0, fmt.Errorf("%w: %s -> %s", ErrDegenerateResolution, in, out)
	}

	inW, inH := uint64(in.Width), uint64(in.Height)
	outW, outH := uint64(out.Width), uint64(out.Height)

	// inW/inH vs outW/outH without floating point
	switch lhs, rhs := inW*outH, outW*inH; {
	case lhs > rhs:
		// the input is wider: keep the height, cut the sides
		targetW := roundDiv(inH*outW, outH)
		if targetW == 0 || targetW >= inW {
			return 0, 0, fmt.Errorf("%w: width %d -> %d", ErrInfeasibleCrop, inW, targetW)
		}
		return 0, uint32(inW - targetW), nil
	case lhs < rhs:
		// the input is taller: keep the width, cut top and bottom
		targetH := roundDiv(inW*outH, outW)
		if targetH == 0 || targetH >= inH {
			return 0, 0, fmt.Errorf("%w: height %d -> %d", ErrInfeasibleCrop, inH, targetH)
		}
		return uint32(inH - targetH), 0, nil
	default:
		return 0, 0, fmt.Errorf("%w: the aspect ratios are already equal", ErrInfeasibleCrop)
	}
}

func roundDiv(a, b uint64) uint64 {
	return (a + b/2) / b
}

// SplitMargin distributes a total margin over two opposing edges;
// the second edge (bottom or right) receives the odd pixel.
func SplitMargin(total uint32) (first, second uint32) {
	first = total / 2
	second = total - first
	return
}

// AspectRatiosEqual reports whether the aspect ratios of a and b differ
// by no more than epsilon.
func AspectRatiosEqual(a, b types.Resolution, epsilon float64) bool {
	return math.Abs(a.AspectRatio()-b.AspectRatio()) <= epsilon
}

// ComputeCropSpec returns the crop to apply to the input before scaling it
// to the output, or nil if the input should be scaled directly.
//
// Failing to find a crop is not an error: the parameters are often updated
// one at a time, so a transient combination may be infeasible. In that case
// the input is scaled directly.
func ComputeCropSpec(
	ctx context.Context,
	in types.Resolution,
	out types.Resolution,
	epsilon float64,
) (_ret *types.CropSpec) {
	logger.Tracef(ctx, "ComputeCropSpec: %s -> %s", in, out)
	defer func() { logger.Tracef(ctx, "/ComputeCropSpec: %s -> %s: %v", in, out, _ret) }()

	if AspectRatiosEqual(in, out, epsilon) {
		return nil
	}

	topBottom, leftRight, err := DetermineCropMargins(in, out)
	if err != nil {
		logger.Debugf(ctx, "no crop for %s -> %s: %v", in, out, err)
		return nil
	}

	var crop types.CropSpec
	crop.Top, crop.Bottom = SplitMargin(topBottom)
	crop.Left, crop.Right = SplitMargin(leftRight)
	if crop.IsZero() {
		return nil
	}
	return &crop
}
