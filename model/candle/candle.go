// Package candle defines the contain-merged working unit of the L0 fractal
// detector.
package candle

import "github.com/yitech/czsc/model/bar"

// Direction is the containment-merge direction inferred from two
// consecutive merged candles.
type Direction int

const (
	Up Direction = iota
	Down
)

// Candle is a bar, or a chain of contain-merged bars. Index is unique and
// monotonically increasing per run; it is never retained outside distance
// comparisons between fractals.
type Candle struct {
	Index uint64
	Time  int64
	High  float64
	Low   float64
}

// FromBar builds the first Candle in a merge chain from a raw Bar.
func FromBar(index uint64, b bar.Bar) Candle {
	return Candle{Index: index, Time: b.Time, High: b.High, Low: b.Low}
}

// CheckDirection decides the containment-merge direction for the pair
// (k1, k2): Down if the predecessor's midpoint sits above the current
// candle's, Up otherwise.
func CheckDirection(k1, k2 Candle) Direction {
	if k1.High+k1.Low > k2.High+k2.Low {
		return Down
	}
	return Up
}

// Contains reports whether current and b stand in a containment
// relationship (one's [low, high] range encloses the other's).
func Contains(current Candle, b bar.Bar) bool {
	return (current.High >= b.High && current.Low <= b.Low) ||
		(current.High <= b.High && current.Low >= b.Low)
}

// Merge folds bar b into current according to direction, in place. It
// assumes Contains(current, b) already holds.
func Merge(direction Direction, current *Candle, b bar.Bar) {
	switch direction {
	case Down:
		if current.Low > b.Low {
			current.Time = b.Time
		}
		current.High = min(b.High, current.High)
		current.Low = min(b.Low, current.Low)
	case Up:
		if current.High < b.High {
			current.Time = b.Time
		}
		current.High = max(b.High, current.High)
		current.Low = max(b.Low, current.Low)
	}
}
