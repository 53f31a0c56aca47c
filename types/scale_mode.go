// scale_mode.go defines how the input is mapped onto the output resolution.

package types

import (
	"fmt"
	"strings"
)

type ScaleMode int

const (
	// ScaleModeStandard scales the input directly to the output
	// resolution, possibly distorting the aspect ratio.
	ScaleModeStandard = ScaleMode(iota)

	// ScaleModeAspectRatioCorrect center-crops the input to the output
	// aspect ratio first and then scales uniformly.
	ScaleModeAspectRatioCorrect

	EndOfScaleMode
)

const DefaultScaleMode = ScaleModeAspectRatioCorrect

func (m ScaleMode) String() string {
	switch m {
	case ScaleModeStandard:
		return "standard"
	case ScaleModeAspectRatioCorrect:
		return "aspect-ratio-correct"
	default:
		return fmt.Sprintf("ScaleMode(%d)", int(m))
	}
}

func (m ScaleMode) IsValid() bool {
	return m >= 0 && m < EndOfScaleMode
}

// ParseScaleMode accepts both the textual names and the numeric values.
func ParseScaleMode(s string) (ScaleMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for c := ScaleMode(0); c < EndOfScaleMode; c++ {
		if c.String() == s || fmt.Sprintf("%d", int(c)) == s {
			return c, nil
		}
	}
	return ScaleModeStandard, fmt.Errorf("unknown scale mode '%s'", s)
}

func (m *ScaleMode) Set(s string) error {
	parsed, err := ParseScaleMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m ScaleMode) Type() string {
	return "ScaleMode"
}

func (m ScaleMode) MarshalYAML() (any, error) {
	return m.String(), nil
}

func (m *ScaleMode) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return fmt.Errorf("unable to unmarshal the scale mode: %w", err)
	}
	return m.Set(s)
}
