package cp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapAddSaturatesOnOverflow(t *testing.T) {
	assert.Equal(t, MaxInt64, CapAdd(MaxValidValue, MaxInt64-1))
	assert.Equal(t, MinInt64, CapAdd(MinValidValue, MinInt64+1))
}

func TestCapAddSentinelPropagation(t *testing.T) {
	assert.Equal(t, MaxInt64, CapAdd(MaxInt64, 5))
	assert.Equal(t, MinInt64, CapAdd(MinInt64, 5))
	// MinInt64 takes precedence when both sentinels are present.
	assert.Equal(t, MinInt64, CapAdd(MinInt64, MaxInt64))
	assert.Equal(t, MinInt64, CapAdd(MaxInt64, MinInt64))
}

func TestCapAddOrdinary(t *testing.T) {
	assert.Equal(t, int64(7), CapAdd(3, 4))
	assert.Equal(t, int64(-1), CapAdd(3, -4))
}

func TestCapSubMirrorsCapAdd(t *testing.T) {
	assert.Equal(t, CapAdd(10, -3), CapSub(10, 3))
	assert.Equal(t, MinInt64, CapSub(5, MaxInt64))
	assert.Equal(t, MaxInt64, CapSub(5, MinInt64))
}

func TestClampToValidRange(t *testing.T) {
	assert.Equal(t, MaxValidValue, ClampToValidRange(MaxInt64))
	assert.Equal(t, MinValidValue, ClampToValidRange(MinInt64))
	assert.Equal(t, int64(42), ClampToValidRange(42))
}

func TestMinValidValueSymmetricAroundZero(t *testing.T) {
	assert.Equal(t, -MaxValidValue, MinValidValue)
}

func TestCapAddCommutative(t *testing.T) {
	inputs := []int64{0, 1, -1, MaxValidValue, MinValidValue, MaxInt64, MinInt64, 12345}
	for _, a := range inputs {
		for _, b := range inputs {
			assert.Equal(t, CapAdd(a, b), CapAdd(b, a), "CapAdd(%d,%d)", a, b)
		}
	}
}
