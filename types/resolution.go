// resolution.go defines the Resolution type describing frame dimensions.

package types

import (
	"fmt"
	"strconv"
	"strings"
)

type Resolution struct {
	Width  uint32 `yaml:"width"`
	Height uint32 `yaml:"height"`
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// Parse accepts "WxH", e.g. "1280x720".
func (r *Resolution) Parse(s string) error {
	wStr, hStr, ok := strings.Cut(strings.TrimSpace(s), "x")
	if !ok {
		return fmt.Errorf("unable to parse resolution '%s': expected WIDTHxHEIGHT", s)
	}
	w, err := strconv.ParseUint(wStr, 10, 32)
	if err != nil {
		return fmt.Errorf("unable to parse the width in resolution '%s': %w", s, err)
	}
	h, err := strconv.ParseUint(hStr, 10, 32)
	if err != nil {
		return fmt.Errorf("unable to parse the height in resolution '%s': %w", s, err)
	}
	*r = Resolution{Width: uint32(w), Height: uint32(h)}
	return nil
}

// IsZero returns true if any of the dimensions is not set.
func (r Resolution) IsZero() bool {
	return r.Width == 0 || r.Height == 0
}

// AspectRatio returns Width/Height, or 0 if the height is not set.
func (r Resolution) AspectRatio() float64 {
	if r.Height == 0 {
		return 0
	}
	return float64(r.Width) / float64(r.Height)
}

func (r Resolution) Pixels() uint64 {
	return uint64(r.Width) * uint64(r.Height)
}

func (r *Resolution) Set(s string) error {
	return r.Parse(s)
}

func (r Resolution) Type() string {
	return "Resolution"
}
