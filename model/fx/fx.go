// Package fx defines the fractal (turning-point) type emitted by the L0
// candle merger and consumed by the L1 pen detector.
package fx

// Type distinguishes a top fractal (local high) from a bottom fractal
// (local low).
type Type int

const (
	Top Type = iota
	Bottom
)

func (t Type) String() string {
	if t == Top {
		return "Top"
	}
	return "Bottom"
}

// Fx is a validated turning point on the merged-candle sequence. Index is
// the candle index of the fractal's middle candle; it is used only for
// distance comparisons between fractals and is never exposed to consumers
// outside this package's Distance/HasEnoughDistance helpers.
type Fx struct {
	Type  Type
	index uint64
	Time  int64
	Price float64 // the extreme: high for Top, low for Bottom
	aux   float64 // the opposite extreme
}

// New constructs an Fx. index is the middle candle's index, price is the
// fractal's extreme (high for Top, low for Bottom), aux is the opposite
// extreme.
func New(fxType Type, index uint64, time int64, price, aux float64) Fx {
	return Fx{Type: fxType, index: index, Time: time, Price: price, aux: aux}
}

// Distance returns the difference between the merged-candle indices of
// the middle candles of two fractals.
func (f Fx) Distance(other Fx) uint64 {
	if other.index > f.index {
		return other.index - f.index
	}
	return f.index - other.index
}

// HasEnoughDistance reports whether the middle-candle indices of f and
// other are at least four apart, the minimum span required to form a pen.
func (f Fx) HasEnoughDistance(other Fx) bool {
	return f.Distance(other) >= 4
}

// IsSameType reports whether f and other are the same fractal type.
func (f Fx) IsSameType(other Fx) bool {
	return f.Type == other.Type
}

// High returns the fractal's range high: Price for a Top, aux for a Bottom.
func (f Fx) High() float64 {
	if f.Type == Top {
		return f.Price
	}
	return f.aux
}

// Low returns the fractal's range low: aux for a Top, Price for a Bottom.
func (f Fx) Low() float64 {
	if f.Type == Top {
		return f.aux
	}
	return f.Price
}
