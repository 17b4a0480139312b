package cp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrailInt64RoundTrip(t *testing.T) {
	tr := NewTrail()
	var x int64 = 10

	tr.PushLevel()
	tr.SetInt64(&x, 20)
	assert.Equal(t, int64(20), x)

	tr.PushLevel()
	tr.SetInt64(&x, 30)
	assert.Equal(t, int64(30), x)

	tr.PopTo(1)
	assert.Equal(t, int64(20), x, "popping to level 1 should undo the level-2 write")

	tr.PopTo(0)
	assert.Equal(t, int64(10), x, "popping to level 0 should undo the level-1 write")
}

func TestTrailSetInt64NoOpSkipsEntry(t *testing.T) {
	tr := NewTrail()
	var x int64 = 5
	tr.PushLevel()
	tr.SetInt64(&x, 5)
	assert.Len(t, tr.entries, 0, "setting to the same value must not grow the trail")
}

func TestTrailBoolRoundTrip(t *testing.T) {
	tr := NewTrail()
	b := false
	tr.PushLevel()
	tr.SetBool(&b, true)
	require.True(t, b)
	tr.PopTo(0)
	assert.False(t, b)
}

func TestSwitchOneShotAndReversible(t *testing.T) {
	tr := NewTrail()
	var sw Switch

	tr.PushLevel()
	tr.SaveAndSet(&sw)
	assert.True(t, sw.Value())
	before := len(tr.entries)

	// setting an already-set switch is a no-op, must not grow the trail
	tr.SaveAndSet(&sw)
	assert.Len(t, tr.entries, before)

	tr.PopTo(0)
	assert.False(t, sw.Value())
}

func TestBitsetSaveAndClear(t *testing.T) {
	tr := NewTrail()
	bits := make([]uint64, 1)

	tr.PushLevel()
	tr.SaveBit(bits, 3)
	assert.NotZero(t, bits[0]&(1<<3))

	tr.PushLevel()
	tr.ClearBit(bits, 3)
	assert.Zero(t, bits[0]&(1<<3))

	tr.PopTo(1)
	assert.NotZero(t, bits[0]&(1<<3), "popping past the ClearBit must restore the bit")

	tr.PopTo(0)
	assert.Zero(t, bits[0]&(1<<3), "popping past the SaveBit must clear the bit again")
}

func TestBitsetSaveIsNoOpWhenAlreadySet(t *testing.T) {
	tr := NewTrail()
	bits := make([]uint64, 1)
	bits[0] |= 1 << 5

	tr.PushLevel()
	tr.SaveBit(bits, 5)
	assert.Len(t, tr.entries, 0)
}

func TestNestedLevelsPopInReverseOrder(t *testing.T) {
	tr := NewTrail()
	var a, b, c int64

	tr.PushLevel()
	tr.SetInt64(&a, 1)
	tr.PushLevel()
	tr.SetInt64(&b, 2)
	tr.PushLevel()
	tr.SetInt64(&c, 3)

	assert.Equal(t, 3, tr.CurrentLevel())

	tr.PopTo(0)
	assert.Equal(t, int64(0), a)
	assert.Equal(t, int64(0), b)
	assert.Equal(t, int64(0), c)
	assert.Equal(t, 0, tr.CurrentLevel())
}

func TestPopToAboveCurrentLevelIsNoOp(t *testing.T) {
	tr := NewTrail()
	var x int64 = 1
	tr.PushLevel()
	tr.SetInt64(&x, 2)
	tr.PopTo(5) // no such level; must be a no-op, not a panic
	assert.Equal(t, int64(2), x)
}

func TestNewTrailWithCapacityNonPositiveFallsBack(t *testing.T) {
	tr := NewTrailWithCapacity(0)
	require.NotNil(t, tr)
	assert.Equal(t, 0, tr.CurrentLevel())
}
