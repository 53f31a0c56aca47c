// crop_spec.go defines the amount of pixels removed from each edge of a frame.

package types

import (
	"fmt"
)

type CropSpec struct {
	Left   uint32 `yaml:"left"`
	Right  uint32 `yaml:"right"`
	Top    uint32 `yaml:"top"`
	Bottom uint32 `yaml:"bottom"`
}

func (c CropSpec) String() string {
	return fmt.Sprintf("crop(l:%d r:%d t:%d b:%d)", c.Left, c.Right, c.Top, c.Bottom)
}

func (c CropSpec) IsZero() bool {
	return c.Total() == 0
}

func (c CropSpec) Total() uint64 {
	return uint64(c.Left) + uint64(c.Right) + uint64(c.Top) + uint64(c.Bottom)
}

// Apply returns the resolution left after removing the margins from res.
func (c CropSpec) Apply(res Resolution) (Resolution, error) {
	horizontal := uint64(c.Left) + uint64(c.Right)
	vertical := uint64(c.Top) + uint64(c.Bottom)
	if horizontal >= uint64(res.Width) {
		return Resolution{}, fmt.Errorf("horizontal crop %d+%d does not fit into width %d", c.Left, c.Right, res.Width)
	}
	if vertical >= uint64(res.Height) {
		return Resolution{}, fmt.Errorf("vertical crop %d+%d does not fit into height %d", c.Top, c.Bottom, res.Height)
	}
	return Resolution{
		Width:  res.Width - uint32(horizontal),
		Height: res.Height - uint32(vertical),
	}, nil
}
