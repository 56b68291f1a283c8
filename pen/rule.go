package pen

import "github.com/yitech/czsc/model/fx"

// MergeAction is the outcome of merging two same-type fractals.
type MergeAction int

const (
	Keep MergeAction = iota
	Replace
)

// IsPen reports whether f1 -> f2 forms a valid pen: opposite fractal
// types, at least four merged candles between their centers, the later
// fractal strictly exceeding the earlier in the expected direction, and
// the two fractals not standing in fractal containment.
func IsPen(f1, f2 fx.Fx) bool {
	if f1.Type == fx.Top && f2.Type == fx.Bottom &&
		f1.HasEnoughDistance(f2) && f2.Price < f1.Price && !FxContain(f1, f2) {
		return true
	}
	if f1.Type == fx.Bottom && f2.Type == fx.Top &&
		f1.HasEnoughDistance(f2) && f2.Price > f1.Price && !FxContain(f1, f2) {
		return true
	}
	return false
}

// FxContain reports whether the later fractal rhs is engulfed by the
// earlier fractal lhs — the one containment relationship pen formation
// forbids, since it would leave the pen's endpoint ambiguous. The reverse
// relationship (rhs engulfing lhs) is allowed.
func FxContain(lhs, rhs fx.Fx) bool {
	if lhs.Type == fx.Top {
		return lhs.Low() < rhs.Low() && lhs.High() < rhs.High()
	}
	return lhs.High() > rhs.High() && lhs.Low() > rhs.Low()
}

// MergeSameType decides whether next should replace prev when both share a
// fractal type: Replace iff next strictly exceeds prev in its extreme
// direction. Equality never replaces — see spec.md §9 on strict
// inequality for floating-point fractal prices.
func MergeSameType(prev, next fx.Fx) MergeAction {
	if prev.Type == fx.Top {
		if next.Price > prev.Price {
			return Replace
		}
		return Keep
	}
	if next.Price < prev.Price {
		return Replace
	}
	return Keep
}
