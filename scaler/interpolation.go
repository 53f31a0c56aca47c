package scaler

import (
	"fmt"
	"strings"
)

type Interpolation int

const (
	UndefinedInterpolation = Interpolation(iota)
	InterpolationNearest
	InterpolationBilinear
	EndOfInterpolation
)

const DefaultInterpolation = InterpolationNearest

func (i Interpolation) String() string {
	switch i {
	case UndefinedInterpolation:
		return "undefined"
	case InterpolationNearest:
		return "nearest"
	case InterpolationBilinear:
		return "bilinear"
	default:
		return fmt.Sprintf("Interpolation(%d)", int(i))
	}
}

func (i *Interpolation) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	for c := InterpolationNearest; c < EndOfInterpolation; c++ {
		if c.String() == s {
			*i = c
			return nil
		}
	}
	return fmt.Errorf("unknown interpolation '%s'", s)
}

func (i Interpolation) Type() string {
	return "Interpolation"
}

func (i Interpolation) IsValid() bool {
	return i > UndefinedInterpolation && i < EndOfInterpolation
}

func (i Interpolation) MarshalYAML() (any, error) {
	return i.String(), nil
}

func (i *Interpolation) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return fmt.Errorf("unable to unmarshal the interpolation: %w", err)
	}
	return i.Set(s)
}
