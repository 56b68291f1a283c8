package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yitech/czsc/model/event"
	"github.com/yitech/czsc/model/fx"
	"github.com/yitech/czsc/model/point"
)

// TestDetectorComplexSynthetic replays the canonical 23-point synthetic
// pen stream and checks it yields exactly two segment events under this
// detector's ordering (the fx1 break check runs before the fx2
// confirmation attempt): 1->4, then 4->19. The alternative rule variant
// would yield three; see DESIGN.md.
func TestDetectorComplexSynthetic(t *testing.T) {
	prices := []float64{
		100, 200, 150, 1000, 900, 950, 700, 800, 750, 850, 600, 650,
		400, 500, 450, 610, 480, 550, 50, 625, 500, 800, 700,
	}

	d := New()

	var events []event.SegmentEvent
	first := event.First(point.New(1, prices[0]), point.New(2, prices[1]))
	if se, ok := d.OnPenEvent(first); ok {
		events = append(events, se)
	}

	for i := 2; i < len(prices); i++ {
		pe := event.New(point.New(int64(i+1), prices[i]))
		if se, ok := d.OnPenEvent(pe); ok {
			events = append(events, se)
		}
	}

	assert.Len(t, events, 2)
	if len(events) > 0 {
		assert.Equal(t, int64(1), events[0].Start.Time)
		assert.Equal(t, 100.0, events[0].Start.Price)
		assert.Equal(t, int64(4), events[0].End.Time)
		assert.Equal(t, 1000.0, events[0].End.Price)
	}
}

// TestPostCase2SegmentConfirmedDrainsThroughFx2 guards the no-gap New2
// branch of postCase2SegmentConfirmed: once both segments are emitted,
// d.points must be drained all the way through fx2, not just fx1, or the
// next segment would restart at an already-confirmed endpoint.
func TestPostCase2SegmentConfirmedDrainsThroughFx2(t *testing.T) {
	d := New()
	d.points = []point.Point{
		point.New(0, 100),
		point.New(1, 50),
		point.New(2, 120),
		point.New(3, 90),
		point.New(4, 130),
		point.New(5, 110),
	}
	up := event.Up
	d.direction = &up
	d.potentialState = &state{fxType: fx.Top, potentialIndex: 2}
	d.stateForCase2 = &state{fxType: fx.Bottom, potentialIndex: 4, hasGap: false}

	evt := d.postCase2SegmentConfirmed()

	assert.Equal(t, event.SegmentNew2, evt.Kind)
	assert.Equal(t, point.New(0, 100), evt.Start)
	assert.Equal(t, point.New(2, 120), evt.Mid)
	assert.Equal(t, point.New(4, 130), evt.End)

	// The next segment must start from fx2 (the just-confirmed End), not
	// from fx1 (already emitted as Mid) or earlier.
	assert.Equal(t, point.New(4, 130), d.points[0])
	assert.Len(t, d.points, 2)
}
