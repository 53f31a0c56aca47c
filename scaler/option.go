package scaler

type Option interface {
	scalerOption()
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

type OptionInterpolation Interpolation

func (OptionInterpolation) scalerOption() {}

func (s Options) interpolation() Interpolation {
	if v, ok := OptionLatest[OptionInterpolation](s); ok && Interpolation(v) != UndefinedInterpolation {
		return Interpolation(v)
	}
	return DefaultInterpolation
}
