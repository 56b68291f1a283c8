// Package event defines the tagged-union events emitted by the pen and
// segment detectors, and the shared Direction type.
package event

import "github.com/yitech/czsc/model/point"

// Direction is the prevailing direction of a pen or segment.
type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Up {
		return "Up"
	}
	return "Down"
}

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	if d == Up {
		return Down
	}
	return Up
}

// PenKind discriminates the PenEvent variants.
type PenKind int

const (
	// PenFirst: the very first confirmed pen of the stream (fields A, B).
	PenFirst PenKind = iota
	// PenNew: the previous pen is sealed at its current endpoint; a new
	// tentative pen runs from that endpoint to A.
	PenNew
	// PenUpdateTo: the current tentative pen's endpoint moves to A.
	PenUpdateTo
)

// PenEvent is the tagged union emitted by the L1 pen detector. Consumers
// must switch on Kind; A and B are populated according to variant (see
// each Kind's doc comment).
type PenEvent struct {
	Kind PenKind
	A    point.Point
	B    point.Point // only meaningful when Kind == PenFirst
}

func First(a, b point.Point) PenEvent { return PenEvent{Kind: PenFirst, A: a, B: b} }
func New(p point.Point) PenEvent      { return PenEvent{Kind: PenNew, A: p} }
func UpdateTo(p point.Point) PenEvent { return PenEvent{Kind: PenUpdateTo, A: p} }

// SegmentKind discriminates the SegmentEvent variants.
type SegmentKind int

const (
	// SegmentNew: one segment confirmed, start -> end, with the pen
	// endpoints from start up to, but not including, end in Pens.
	SegmentNew SegmentKind = iota
	// SegmentNew2: two back-to-back segments confirmed simultaneously,
	// start -> mid -> end.
	SegmentNew2
	// SegmentUpdateTo: reserved (see spec.md §9) for a future tentative
	// segment endpoint update.
	SegmentUpdateTo
)

// SegmentEvent is the tagged union emitted by the L2 segment detector.
type SegmentEvent struct {
	Kind  SegmentKind
	Start point.Point
	Mid   point.Point // only meaningful when Kind == SegmentNew2
	End   point.Point
	Pens  []point.Point // pen endpoints from Start (included) up to End (or Mid for New2), excluded
	Pens2 []point.Point // pen endpoints from Mid (included) up to End, excluded; only for SegmentNew2
}

func NewSegment(start, end point.Point, pens []point.Point) SegmentEvent {
	return SegmentEvent{Kind: SegmentNew, Start: start, End: end, Pens: pens}
}

func NewSegment2(start, mid, end point.Point, pens1, pens2 []point.Point) SegmentEvent {
	return SegmentEvent{Kind: SegmentNew2, Start: start, Mid: mid, End: end, Pens: pens1, Pens2: pens2}
}

// NewSegmentUpdateTo is reserved for §9's tentative-segment-endpoint
// variant; the L2 detector never produces it yet.
func NewSegmentUpdateTo(p point.Point) SegmentEvent {
	return SegmentEvent{Kind: SegmentUpdateTo, Start: p}
}
