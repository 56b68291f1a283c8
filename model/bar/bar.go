// Package bar defines the raw OHLC input to the analyzer pipeline.
package bar

// Bar is a single, unmerged OHLC tick aggregate. It is immutable and never
// retained past the fractal detector's containment merging.
type Bar struct {
	// Time is milliseconds since the Unix epoch.
	Time  int64
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// New constructs a Bar.
func New(time int64, open, high, low, close float64) Bar {
	return Bar{Time: time, Open: open, High: high, Low: low, Close: close}
}
