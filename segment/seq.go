package segment

import "github.com/yitech/czsc/model/event"

// Seq is one element of the characteristic sequence used by the L2
// segment detector: the [low, high] range spanned by a single pen,
// merged with any subsequent pen ranges that stand in containment with
// it.
type Seq struct {
	High float64
	Low  float64
}

// NewSeq builds a Seq from a pen's two endpoints, in either order.
func NewSeq(from, to float64) Seq {
	return Seq{High: max(from, to), Low: min(from, to)}
}

// Merge folds the range [from, to] into s if the two ranges stand in
// containment, combining them according to direction: Up keeps the
// higher high and the higher low, Down keeps the lower high and the
// lower low. Returns false, leaving s unchanged, if the ranges do not
// contain one another.
func (s *Seq) Merge(from, to float64, direction event.Direction) bool {
	high := max(from, to)
	low := min(from, to)

	prevIncludesNext := s.High > high && s.Low < low
	nextIncludesPrev := s.High < high && s.Low > low
	if !prevIncludesNext && !nextIncludesPrev {
		return false
	}

	switch direction {
	case event.Up:
		s.High = max(s.High, high)
		s.Low = max(s.Low, low)
	case event.Down:
		s.High = min(s.High, high)
		s.Low = min(s.Low, low)
	}
	return true
}
