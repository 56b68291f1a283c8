package fractal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yitech/czsc/model/bar"
	"github.com/yitech/czsc/model/fx"
)

func TestDetectorTopFractal(t *testing.T) {
	d := New()

	bars := []bar.Bar{
		bar.New(1, 9, 10, 5, 9),
		bar.New(2, 14, 15, 8, 14),
		bar.New(3, 11, 12, 6, 11),
		bar.New(4, 8, 9, 4, 8),
	}

	var got fx.Fx
	var found bool
	for _, b := range bars {
		got, found = d.OnNewBar(b)
	}

	require.True(t, found, "the fourth bar should trigger the fractal on the middle candle")
	assert.Equal(t, fx.Top, got.Type)
	assert.Equal(t, 15.0, got.Price)
	assert.Equal(t, int64(2), got.Time)
}

func TestDetectorNoFractalOnMonotonic(t *testing.T) {
	d := New()

	bars := []bar.Bar{
		bar.New(1, 10, 10, 9, 10),
		bar.New(2, 11, 11, 10, 11),
		bar.New(3, 12, 12, 11, 12),
		bar.New(4, 13, 13, 12, 13),
	}

	for _, b := range bars {
		_, found := d.OnNewBar(b)
		assert.False(t, found)
	}
}

func TestDetectorContainmentSwallowsFirstBar(t *testing.T) {
	d := New()

	// The second bar fully contains the first; the window restarts from
	// the second bar alone.
	_, found := d.OnNewBar(bar.New(1, 10, 10, 9, 10))
	assert.False(t, found)
	_, found = d.OnNewBar(bar.New(2, 12, 20, 1, 12))
	assert.False(t, found)
	assert.Equal(t, 1, d.window.Len())
}
