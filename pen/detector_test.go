package pen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yitech/czsc/model/event"
	"github.com/yitech/czsc/model/fx"
)

func TestDetectorEmitsFirstPenThenNew(t *testing.T) {
	d := New()

	bottom1 := fx.New(fx.Bottom, 0, 0, 10, 16)
	_, found := d.OnNewFractal(bottom1)
	assert.False(t, found)

	top1 := fx.New(fx.Top, 4, 4, 20, 15)
	pe, found := d.OnNewFractal(top1)
	require.True(t, found)
	assert.Equal(t, event.PenFirst, pe.Kind)
	assert.Equal(t, 10.0, pe.A.Price)
	assert.Equal(t, 20.0, pe.B.Price)
	assert.True(t, d.hasPen)

	bottom2 := fx.New(fx.Bottom, 8, 8, 12, 18)
	pe, found = d.OnNewFractal(bottom2)
	require.True(t, found)
	assert.Equal(t, event.PenNew, pe.Kind)
	assert.Equal(t, 12.0, pe.A.Price)
}

func TestDetectorVetoesSecondaryExtremum(t *testing.T) {
	d := New()

	d.OnNewFractal(fx.New(fx.Bottom, 0, 0, 10, 16))
	d.OnNewFractal(fx.New(fx.Top, 4, 4, 20, 15))

	// A non-pen bottom "C" follows the confirmed pen: state S4. A weaker top
	// (same type as the pen's end "B") should not replace anything real.
	_, found := d.OnNewFractal(fx.New(fx.Bottom, 6, 6, 19, 20))
	assert.False(t, found)

	pe, found := d.OnNewFractal(fx.New(fx.Top, 8, 8, 19, 17))
	assert.False(t, found, "a weaker secondary top must not override the standing pen")
	_ = pe
}
