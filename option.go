package avscale

import (
	"github.com/xaionaro-go/avscale/scaler"
)

type Option interface {
	filterOption()
}

type Options []Option

func OptionLatest[T Option](s Options) (ret T, ok bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if v, ok := s[i].(T); ok {
			return v, true
		}
	}
	return
}

// OptionAspectRatioEpsilon overrides geometry.DefaultAspectRatioEpsilon.
type OptionAspectRatioEpsilon float64

func (OptionAspectRatioEpsilon) filterOption() {}

// OptionScaler is passed to every scaler the filter creates.
type OptionScaler struct {
	scaler.Option
}

func (OptionScaler) filterOption() {}

// OptionParameters sets the initial parameters instead of DefaultParameters.
type OptionParameters Parameters

func (OptionParameters) filterOption() {}
