package cp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntVarInitialBounds(t *testing.T) {
	s := newTestSolver()
	v := s.NewIntVar(2, 8, "x")
	assert.Equal(t, int64(2), v.Min())
	assert.Equal(t, int64(8), v.Max())
	assert.False(t, v.Bound())
}

func TestIntVarSetMinAndMaxTighten(t *testing.T) {
	s := newTestSolver()
	v := s.NewIntVar(0, 10, "x")
	require.NoError(t, v.SetMin(s, 3))
	require.NoError(t, v.SetMax(s, 7))
	require.NoError(t, s.Propagate())
	assert.Equal(t, int64(3), v.Min())
	assert.Equal(t, int64(7), v.Max())
}

func TestIntVarSetMinBelowCurrentIsNoOp(t *testing.T) {
	s := newTestSolver()
	v := s.NewIntVar(5, 10, "x")
	require.NoError(t, v.SetMin(s, 2))
	require.NoError(t, s.Propagate())
	assert.Equal(t, int64(5), v.Min(), "a weaker SetMin must not widen the domain")
}

func TestIntVarSetMinEmptiesDomainFails(t *testing.T) {
	s := newTestSolver()
	v := s.NewIntVar(0, 5, "x")
	err := v.SetMin(s, 9)
	require.Error(t, err)
	var fail *Failure
	assert.ErrorAs(t, err, &fail)
}

func TestIntVarBecomesBoundFiresBoundDemon(t *testing.T) {
	s := newTestSolver()
	v := s.NewIntVar(0, 10, "x")
	fired := false
	v.WhenBound(NewDemon(PriorityNormal, func(s *Solver) error {
		fired = true
		return nil
	}))
	require.NoError(t, v.SetValue(s, 4))
	require.NoError(t, s.Propagate())
	assert.True(t, fired)
	assert.True(t, v.Bound())
	assert.Equal(t, int64(4), v.Value())
}

func TestIntVarRangeDemonFiresOnlyWhenBoundsChange(t *testing.T) {
	s := newTestSolver()
	v := s.NewIntVar(0, 10, "x")
	count := 0
	v.WhenRange(NewDemon(PriorityNormal, func(s *Solver) error {
		count++
		return nil
	}))
	require.NoError(t, v.SetMin(s, 0)) // no-op, shouldn't even enqueue the handler
	require.NoError(t, s.Propagate())
	assert.Equal(t, 0, count)

	require.NoError(t, v.SetMin(s, 3))
	require.NoError(t, s.Propagate())
	assert.Equal(t, 1, count)
}

func TestIntVarValuePanicsWhenUnbound(t *testing.T) {
	s := newTestSolver()
	v := s.NewIntVar(0, 10, "x")
	assert.Panics(t, func() { v.Value() })
}

func TestIntVarSetRangeEmptyFails(t *testing.T) {
	s := newTestSolver()
	v := s.NewIntVar(0, 10, "x")
	err := v.SetRange(s, 8, 3)
	require.Error(t, err)
}

func TestIntVarRemoveValueAtBound(t *testing.T) {
	s := newTestSolver()
	v := s.NewIntVar(1, 5, "x")
	require.NoError(t, v.RemoveValue(s, 1))
	require.NoError(t, s.Propagate())
	assert.Equal(t, int64(2), v.Min())

	require.NoError(t, v.RemoveValue(s, 5))
	require.NoError(t, s.Propagate())
	assert.Equal(t, int64(4), v.Max())
}

func TestIntVarRemoveInteriorValueIsNoOp(t *testing.T) {
	s := newTestSolver()
	v := s.NewIntVar(1, 5, "x")
	require.NoError(t, v.RemoveValue(s, 3))
	require.NoError(t, s.Propagate())
	assert.Equal(t, int64(1), v.Min())
	assert.Equal(t, int64(5), v.Max())
}

func TestIntVarBacktrackRestoresBounds(t *testing.T) {
	s := newTestSolver()
	v := s.NewIntVar(0, 10, "x")
	s.PushLevel()
	require.NoError(t, v.SetMin(s, 4))
	require.NoError(t, s.Propagate())
	assert.Equal(t, int64(4), v.Min())

	s.PopTo(0)
	assert.Equal(t, int64(0), v.Min())
}

func TestIntVarOldMinMaxDuringDemon(t *testing.T) {
	s := newTestSolver()
	v := s.NewIntVar(0, 10, "x")
	var seenOldMin, seenOldMax int64
	v.WhenRange(NewDemon(PriorityNormal, func(s *Solver) error {
		seenOldMin = v.OldMin()
		seenOldMax = v.OldMax()
		return nil
	}))
	require.NoError(t, v.SetMin(s, 3))
	require.NoError(t, s.Propagate())
	assert.Equal(t, int64(0), seenOldMin)
	assert.Equal(t, int64(10), seenOldMax)
}

func TestIntVarContains(t *testing.T) {
	s := newTestSolver()
	v := s.NewIntVar(2, 6, "x")
	assert.True(t, v.Contains(2))
	assert.True(t, v.Contains(6))
	assert.False(t, v.Contains(1))
	assert.False(t, v.Contains(7))
}

func TestIntVarClampsOutOfRangeConstruction(t *testing.T) {
	s := newTestSolver()
	v := s.NewIntVar(MinInt64, MaxInt64, "x")
	assert.Equal(t, MinValidValue, v.Min())
	assert.Equal(t, MaxValidValue, v.Max())
}
