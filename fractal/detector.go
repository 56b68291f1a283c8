// Package fractal implements layer 0 of the analyzer pipeline: contain-merge
// of raw bars into Candles, and detection of top/bottom fractals across
// three non-containing candles.
package fractal

import (
	"github.com/yitech/czsc/internal/ring"
	"github.com/yitech/czsc/model/bar"
	"github.com/yitech/czsc/model/candle"
	"github.com/yitech/czsc/model/fx"
)

// Detector is the L0 candle merger + fractal detector. It holds a bounded
// window of up to three merged candles and a running next-index counter.
// It is not safe for concurrent use; callers must serialize calls to
// OnNewBar, matching the single-threaded pipeline model in spec.md §5.
type Detector struct {
	window    *ring.Ring[candle.Candle]
	nextIndex uint64
}

// New creates an empty fractal Detector.
func New() *Detector {
	return &Detector{window: ring.New[candle.Candle](3)}
}

func (d *Detector) addCandle(b bar.Bar) {
	c := candle.FromBar(d.nextIndex, b)
	d.nextIndex++
	d.window.Push(c)
}

// buildFx constructs the Fx carried by the middle candle k2 of a
// non-containing triple k1, k2, k3. The caller must already have confirmed
// the triple forms a fractal.
func buildFx(k1, k2, k3 candle.Candle) fx.Fx {
	isTop := k1.High < k2.High && k2.High > k3.High
	if isTop {
		return fx.New(fx.Top, k2.Index, k2.Time, k2.High, k2.Low)
	}
	return fx.New(fx.Bottom, k2.Index, k2.Time, k2.Low, k2.High)
}

// checkFx tests the last three candles in the window for a fractal.
func (d *Detector) checkFx() (fx.Fx, bool) {
	k1, _ := d.window.GetFromEnd(2)
	k2, _ := d.window.GetFromEnd(1)
	k3, _ := d.window.GetFromEnd(0)

	isTop := k1.High < k2.High && k2.High > k3.High
	isBottom := k1.Low > k2.Low && k2.Low < k3.Low
	if isTop || isBottom {
		return buildFx(k1, k2, k3), true
	}
	return fx.Fx{}, false
}

// processContainRelationship merges bar b into the window's last candle if
// they stand in containment, using the direction implied by the window's
// last two candles. Returns true if a merge occurred.
func (d *Detector) processContainRelationship(b bar.Bar) bool {
	k1, _ := d.window.GetFromEnd(1)
	last, _ := d.window.GetFromEnd(0)
	direction := candle.CheckDirection(k1, last)

	if !candle.Contains(last, b) {
		return false
	}
	candle.Merge(direction, &last, b)
	// Ring stores values, not pointers; write the merged candle back by
	// popping and re-pushing so the window reflects the in-place update.
	d.window.PopBack()
	d.window.Push(last)
	return true
}

// OnNewBar feeds one bar through the containment merge and fractal check.
// It never blocks and emits at most one Fx per call, only on the
// transition from "merging active" to "new candle appended while three or
// more candles exist".
func (d *Detector) OnNewBar(b bar.Bar) (fx.Fx, bool) {
	switch d.window.Len() {
	case 0:
		d.addCandle(b)

	case 1:
		last, _ := d.window.GetFromEnd(0)
		k1IncludesK2 := last.High >= b.High && last.Low <= b.Low
		k2IncludesK1 := last.High <= b.High && last.Low >= b.Low
		if k1IncludesK2 {
			// First candle swallows the new bar: ignore it until a bar
			// appears that is not contained.
			return fx.Fx{}, false
		}
		if k2IncludesK1 {
			// The new bar swallows the first candle: discard it and
			// restart from the new bar.
			d.window.Clear()
		}
		d.addCandle(b)

	case 2:
		if !d.processContainRelationship(b) {
			d.addCandle(b)
		}

	default:
		if !d.processContainRelationship(b) {
			result, found := d.checkFx()
			d.addCandle(b)
			if found {
				return result, true
			}
		}
	}
	return fx.Fx{}, false
}
