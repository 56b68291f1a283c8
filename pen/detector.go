// Package pen implements layer 1 of the analyzer pipeline: a five-state
// machine that debounces a stream of fractals into validated, directed
// pens.
//
// The two guiding principles (mirrored from the original implementation):
// decisions are never revised once taken, and a pen is never allowed to
// form on a secondary high or low — state S4 exists solely to enforce the
// second rule.
package pen

import (
	"github.com/yitech/czsc/internal/ring"
	"github.com/yitech/czsc/model/event"
	"github.com/yitech/czsc/model/fx"
	"github.com/yitech/czsc/model/point"
)

// Detector is the L1 pen detector. Not safe for concurrent use.
type Detector struct {
	window *ring.Ring[fx.Fx]
	hasPen bool
}

// New creates an empty pen Detector.
func New() *Detector {
	return &Detector{window: ring.New[fx.Fx](3)}
}

func pointOf(f fx.Fx) point.Point {
	return point.New(f.Time, f.Price)
}

func (d *Detector) isPenAt(i int) bool {
	a, ok1 := d.window.Get(i)
	b, ok2 := d.window.Get(i + 1)
	if !ok1 || !ok2 {
		return false
	}
	return IsPen(a, b)
}

func (d *Detector) abIsPen() bool { return d.isPenAt(0) }
func (d *Detector) bcIsPen() bool { return d.isPenAt(1) }

// OnNewFractal feeds one fractal through the pen state machine, emitting
// at most one PenEvent.
func (d *Detector) OnNewFractal(f fx.Fx) (event.PenEvent, bool) {
	switch {
	case !d.hasPen && d.window.Len() == 0:
		return d.state0(f)
	case !d.hasPen && d.window.Len() == 1:
		return d.state1(f)
	case !d.hasPen && d.window.Len() == 2:
		return d.state2(f)
	case d.hasPen && d.window.Len() == 2:
		return d.state3(f)
	case d.hasPen && d.window.Len() == 3:
		return d.state4(f)
	default:
		panic("pen: unreachable detector state")
	}
}

// S0: empty buffer. Push f and wait for a second fractal.
func (d *Detector) state0(f fx.Fx) (event.PenEvent, bool) {
	d.window.Push(f)
	return event.PenEvent{}, false
}

// S1: one fractal buffered (A). A second fractal f arrives.
func (d *Detector) state1(f fx.Fx) (event.PenEvent, bool) {
	last, _ := d.window.GetFromEnd(0)
	if last.IsSameType(f) {
		if MergeSameType(last, f) == Replace {
			d.window.PopBack()
			d.window.Push(f)
		}
		return event.PenEvent{}, false
	}

	d.window.Push(f)
	if d.abIsPen() {
		d.hasPen = true
		a, _ := d.window.Get(0)
		b, _ := d.window.Get(1)
		return event.First(pointOf(a), pointOf(b)), true
	}
	return event.PenEvent{}, false
}

// S2: two non-pen fractals buffered (A, B). A third fractal f arrives.
func (d *Detector) state2(f fx.Fx) (event.PenEvent, bool) {
	b, _ := d.window.Get(1)

	if IsPen(b, f) {
		d.window.PopFront()
		d.window.Push(f)
		d.hasPen = true
		from, _ := d.window.Get(0)
		to, _ := d.window.Get(1)
		return event.First(pointOf(from), pointOf(to)), true
	}

	if b.IsSameType(f) {
		if MergeSameType(b, f) == Replace {
			d.window.PopBack()
			d.window.Push(f)
			if d.abIsPen() {
				d.hasPen = true
				from, _ := d.window.Get(0)
				to, _ := d.window.Get(1)
				return event.First(pointOf(from), pointOf(to)), true
			}
		}
		return event.PenEvent{}, false
	}

	a, _ := d.window.Get(0)
	if MergeSameType(a, f) == Replace {
		d.window.Clear()
		d.window.Push(f)
	}
	return event.PenEvent{}, false
}

// S3: a confirmed pen A->B is buffered. A third fractal f arrives.
func (d *Detector) state3(f fx.Fx) (event.PenEvent, bool) {
	b, _ := d.window.Get(1)

	if IsPen(b, f) {
		d.window.PopFront()
		d.window.Push(f)
		return event.New(pointOf(f)), true
	}

	if b.IsSameType(f) {
		if MergeSameType(b, f) == Replace {
			d.window.PopBack()
			d.window.Push(f)
			return event.UpdateTo(pointOf(f)), true
		}
		return event.PenEvent{}, false
	}

	d.window.Push(f)
	return event.PenEvent{}, false
}

// S4: a confirmed pen A->B plus a non-pen C are buffered. A fourth
// fractal f arrives. This state exists purely to veto pens on a
// secondary extremum.
func (d *Detector) state4(f fx.Fx) (event.PenEvent, bool) {
	c, _ := d.window.Get(2)

	if c.IsSameType(f) {
		if MergeSameType(c, f) == Replace {
			d.window.PopBack()
			d.window.Push(f)
			if d.bcIsPen() {
				d.window.PopFront()
				end, _ := d.window.GetFromEnd(0)
				return event.New(pointOf(end)), true
			}
		}
		return event.PenEvent{}, false
	}

	b, _ := d.window.Get(1)
	if MergeSameType(b, f) == Replace {
		d.window.PopBack()
		d.window.PopBack()
		d.window.Push(f)
		return event.UpdateTo(pointOf(f)), true
	}
	return event.PenEvent{}, false
}
