package pen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yitech/czsc/model/fx"
)

func TestIsPen(t *testing.T) {
	top := fx.New(fx.Top, 4, 4, 20, 15)
	bottom := fx.New(fx.Bottom, 8, 8, 12, 18)

	assert.True(t, IsPen(top, bottom))
	assert.True(t, IsPen(bottom, top), "a bottom followed by a higher top ascends and forms a pen")
}

func TestIsPenRejectsShortDistance(t *testing.T) {
	top := fx.New(fx.Top, 4, 4, 20, 15)
	bottom := fx.New(fx.Bottom, 6, 6, 12, 18) // only 2 candles apart

	assert.False(t, IsPen(top, bottom))
}

func TestMergeSameTypeEqualityKeeps(t *testing.T) {
	prev := fx.New(fx.Top, 4, 4, 20, 15)
	next := fx.New(fx.Top, 10, 10, 20, 16) // exact same extreme

	assert.Equal(t, Keep, MergeSameType(prev, next))
}

func TestMergeSameTypeReplacesOnStrictImprovement(t *testing.T) {
	prevTop := fx.New(fx.Top, 4, 4, 20, 15)
	nextTop := fx.New(fx.Top, 10, 10, 21, 16)
	assert.Equal(t, Replace, MergeSameType(prevTop, nextTop))

	prevBottom := fx.New(fx.Bottom, 4, 4, 10, 15)
	nextBottom := fx.New(fx.Bottom, 10, 10, 9, 16)
	assert.Equal(t, Replace, MergeSameType(prevBottom, nextBottom))
}
