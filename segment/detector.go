// Package segment implements layer 2 of the analyzer pipeline: the
// characteristic-sequence method for folding a stream of pens into
// segments.
//
// Two candidate hypotheses are tracked concurrently: potentialState is
// the first candidate turning point (fx1) that would end the current
// segment, and stateForCase2 is a second, opposite-type candidate (fx2)
// that would confirm fx1 via a gap rather than a direct break of its
// characteristic sequence. Case 1 is a no-gap confirmation of fx1 alone;
// case 2 is a gap-confirmed fx1 paired with fx2, which may in turn
// resolve immediately into two segments (no gap at fx2) or leave fx2
// installed as the new fx1 candidate (gap at fx2 too).
package segment

import (
	"github.com/yitech/czsc/model/event"
	"github.com/yitech/czsc/model/fx"
	"github.com/yitech/czsc/model/point"
)

// state is a candidate segment-ending fractal within the characteristic
// sequence.
type state struct {
	time           int64
	price          float64
	potentialIndex int
	fxType         fx.Type
	hasGap         bool
	k2             Seq
	confirm        bool
}

// Detector is the L2 segment detector. Not safe for concurrent use.
type Detector struct {
	points         []point.Point
	potentialState *state
	stateForCase2  *state
	direction      *event.Direction
}

// New creates an empty segment Detector. The first segment is assumed
// to start in the Up direction until a segment confirmation overrides
// it.
func New() *Detector {
	up := event.Up
	return &Detector{direction: &up}
}

// OnPenEvent feeds one pen event through the segment detector, emitting
// at most one SegmentEvent.
func (d *Detector) OnPenEvent(pe event.PenEvent) (event.SegmentEvent, bool) {
	switch pe.Kind {
	case event.PenFirst:
		d.points = append(d.points, pe.A, pe.B)
		return event.SegmentEvent{}, false

	case event.PenNew:
		// The prior pen just sealed; process it with the characteristic
		// sequence it finished contributing to, then open the new one.
		evt, ok := d.process()
		d.points = append(d.points, pe.A)
		return evt, ok

	case event.PenUpdateTo:
		if len(d.points) > 0 {
			d.points = d.points[:len(d.points)-1]
		}
		d.points = append(d.points, pe.A)
		return event.SegmentEvent{}, false

	default:
		return event.SegmentEvent{}, false
	}
}

func (d *Detector) process() (event.SegmentEvent, bool) {
	hasPotential1 := d.potentialState != nil
	hasConfirmFx1 := hasPotential1 && d.potentialState.confirm
	hasGap1 := hasPotential1 && d.potentialState.hasGap

	hasPotential2 := d.stateForCase2 != nil
	hasConfirmFx2 := hasPotential2 && d.stateForCase2.confirm

	switch {
	case hasPotential1 && hasConfirmFx1 && hasGap1 && hasPotential2 && !hasConfirmFx2:
		if d.checkFx1IsBroken() {
			return event.SegmentEvent{}, false
		}
		return d.searchFx2Confirm()

	case hasPotential1 && hasConfirmFx1 && hasGap1 && !hasPotential2:
		if d.checkFx1IsBroken() {
			return event.SegmentEvent{}, false
		}
		length := len(d.points)
		fx1Start := d.potentialState.potentialIndex
		if (length-fx1Start)%2 == 0 {
			d.searchFx2()
		}

	case hasPotential1 && hasConfirmFx1 && !hasGap1 && hasPotential2:
		panic("segment: fx1 confirmed with no gap but fx2 candidate still pending")

	case hasPotential1 && !hasConfirmFx1:
		if d.checkFx1IsBroken() {
			return event.SegmentEvent{}, false
		}
		return d.searchFx1Confirm()

	case !hasPotential1:
		if len(d.points)%2 == 0 {
			d.searchFx1()
		}
	}

	return event.SegmentEvent{}, false
}

func (d *Detector) checkPotentialPointIsBroken() bool {
	s := d.potentialState
	extremePrice := d.points[s.potentialIndex].Price
	nowPrice := d.points[len(d.points)-1].Price

	if s.fxType == fx.Top {
		return nowPrice > extremePrice
	}
	return nowPrice < extremePrice
}

func (d *Detector) checkFx1IsBroken() bool {
	if d.checkPotentialPointIsBroken() {
		d.potentialState = nil
		d.stateForCase2 = nil
		return true
	}
	return false
}

// findPotentialPoint scans the last five points for a turning fractal in
// the characteristic sequence's own point stream.
func (d *Detector) findPotentialPoint() (fx.Type, int, bool) {
	length := len(d.points)
	currentLen := length
	if d.potentialState != nil {
		currentLen = length - d.potentialState.potentialIndex
	}
	if currentLen < 5 {
		return 0, 0, false
	}

	p3 := d.points[length-1]
	p2 := d.points[length-3]
	p1 := d.points[length-5]

	isTop := p1.Price < p2.Price && p2.Price > p3.Price
	isBottom := p1.Price > p2.Price && p2.Price < p3.Price

	if isTop {
		return fx.Top, length - 3, true
	}
	if isBottom {
		return fx.Bottom, length - 3, true
	}
	return 0, 0, false
}

// findPotentialFx locates the next candidate state starting the scan no
// earlier than start (the prior candidate's own potential index).
func (d *Detector) findPotentialFx(start int) (*state, bool) {
	fxType, potentialIndex, ok := d.findPotentialPoint()
	if !ok {
		return nil, false
	}

	extremePrice := d.points[potentialIndex].Price
	secondaryIndex := potentialIndex - 2
	secondaryPrice := d.points[secondaryIndex].Price

	pos := secondaryIndex - 1
	posEnd := ((start + 1) / 2) * 2

	for pos > posEnd {
		if fxType == fx.Top {
			if d.points[pos].Price > extremePrice {
				break
			}
			if d.points[secondaryIndex].Price > secondaryPrice {
				secondaryPrice = d.points[secondaryIndex].Price
				secondaryIndex = pos
			}
		} else {
			if d.points[pos].Price < extremePrice {
				break
			}
			if d.points[secondaryIndex].Price < secondaryPrice {
				secondaryPrice = d.points[secondaryIndex].Price
				secondaryIndex = pos
			}
		}
		pos -= 2
	}

	time := d.points[potentialIndex].Time
	toPrice := d.points[potentialIndex+1].Price

	var hasGap bool
	if fxType == fx.Top {
		hasGap = secondaryPrice < toPrice
	} else {
		hasGap = secondaryPrice > toPrice
	}

	k2 := NewSeq(extremePrice, toPrice)

	return &state{
		time:           time,
		price:          extremePrice,
		potentialIndex: potentialIndex,
		fxType:         fxType,
		hasGap:         hasGap,
		k2:             k2,
	}, true
}

func (d *Detector) searchFx1() {
	s, ok := d.findPotentialFx(0)
	if !ok {
		return
	}
	if d.direction == nil {
		d.potentialState = s
		return
	}
	switch *d.direction {
	case event.Up:
		if s.fxType == fx.Top {
			d.potentialState = s
		}
	case event.Down:
		if s.fxType == fx.Bottom {
			d.potentialState = s
		}
	}
}

func (d *Detector) searchFx2() {
	start := d.potentialState.potentialIndex
	s, ok := d.findPotentialFx(start)
	if !ok {
		return
	}
	if d.direction == nil {
		d.stateForCase2 = s
		return
	}
	switch *d.direction {
	case event.Up:
		if s.fxType == fx.Bottom {
			d.stateForCase2 = s
		}
	case event.Down:
		if s.fxType == fx.Top {
			d.stateForCase2 = s
		}
	}
}

func (d *Detector) searchFx1Confirm() (event.SegmentEvent, bool) {
	ps := d.potentialState
	length := len(d.points)

	direction := event.Up
	if ps.fxType == fx.Bottom {
		direction = event.Down
	}

	merged := ps.k2.Merge(d.points[length-2].Price, d.points[length-1].Price, direction)
	if !merged {
		ps.confirm = true
		if !ps.hasGap {
			return d.postCase1SegmentConfirmed(), true
		}
	}
	return event.SegmentEvent{}, false
}

func (d *Detector) searchFx2Confirm() (event.SegmentEvent, bool) {
	ps := d.stateForCase2
	length := len(d.points)

	direction := event.Up
	if ps.fxType == fx.Bottom {
		direction = event.Down
	}

	merged := ps.k2.Merge(d.points[length-2].Price, d.points[length-1].Price, direction)
	if !merged {
		ps.confirm = true
		return d.postCase2SegmentConfirmed(), true
	}
	return event.SegmentEvent{}, false
}

func (d *Detector) postCase1SegmentConfirmed() event.SegmentEvent {
	start := d.points[0]
	endIndex := d.potentialState.potentialIndex
	end := d.points[endIndex]

	pens := make([]point.Point, endIndex)
	copy(pens, d.points[0:endIndex])

	evt := event.NewSegment(start, end, pens)

	if d.potentialState.fxType == fx.Top {
		down := event.Down
		d.direction = &down
	} else {
		up := event.Up
		d.direction = &up
	}

	d.points = d.points[endIndex:]
	d.potentialState = nil

	return evt
}

func (d *Detector) postCase2SegmentConfirmed() event.SegmentEvent {
	start := d.points[0]
	endIndex := d.potentialState.potentialIndex
	end := d.points[endIndex]
	end2Index := d.stateForCase2.potentialIndex
	end2 := d.points[end2Index]

	pens := make([]point.Point, endIndex)
	copy(pens, d.points[0:endIndex])
	d.points = d.points[endIndex:]

	var evt event.SegmentEvent
	if !d.stateForCase2.hasGap {
		pens2 := make([]point.Point, end2Index-endIndex)
		copy(pens2, d.points[0:end2Index-endIndex])
		d.points = d.points[end2Index-endIndex:]
		evt = event.NewSegment2(start, end, end2, pens, pens2)

		if d.potentialState.fxType == fx.Top {
			up := event.Up
			d.direction = &up
		} else {
			down := event.Down
			d.direction = &down
		}
		d.potentialState = nil
		d.stateForCase2 = nil
	} else {
		evt = event.NewSegment(start, end, pens)

		if d.potentialState.fxType == fx.Top {
			down := event.Down
			d.direction = &down
		} else {
			up := event.Up
			d.direction = &up
		}
		next := *d.stateForCase2
		next.potentialIndex -= endIndex
		d.potentialState = &next
		d.stateForCase2 = nil
	}

	return evt
}
