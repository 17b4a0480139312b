package assignment

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/crillab/gophercp/cp"
)

func newTestSolver() *cp.Solver {
	return cp.NewSolver(cp.DefaultParameters())
}

func TestStoreSnapshotsIntBounds(t *testing.T) {
	s := newTestSolver()
	v := s.NewIntVar(0, 10, "v")
	require.NoError(t, v.SetMin(s, 3))
	require.NoError(t, s.Propagate())

	a := NewAssignment(s)
	a.AddInt(v)
	a.Store()

	assert.Equal(t, int64(3), a.ints[0].Min)
	assert.Equal(t, int64(10), a.ints[0].Max)
}

func TestRestoreAppliesSnapshotBackOntoVar(t *testing.T) {
	s := newTestSolver()
	v := s.NewIntVar(0, 10, "v")
	a := NewAssignment(s)
	a.AddInt(v)
	a.ints[0].Min, a.ints[0].Max = 2, 5

	require.NoError(t, a.Restore())
	require.NoError(t, s.Propagate())
	assert.Equal(t, int64(2), v.Min())
	assert.Equal(t, int64(5), v.Max())
}

func TestStoreBypassesIntervalFieldsWhenUnperformed(t *testing.T) {
	s := newTestSolver()
	iv := s.MakeFixedDurationInterval(0, 10, 5, true, "t")
	require.NoError(t, iv.SetPerformed(s, false))
	require.NoError(t, s.Propagate())

	a := NewAssignment(s)
	a.AddInterval(iv)
	a.Store()

	assert.Equal(t, int64(0), a.intervals[0].PerformedMax)
	assert.Equal(t, cp.MinInt64, a.intervals[0].StartMin, "start fields must be left at their sentinel when unperformed")
}

func TestStoreCapturesSequenceRanking(t *testing.T) {
	s := newTestSolver()
	intervals := []cp.IntervalVar{
		s.MakeFixedDurationInterval(0, 10, 2, false, "a"),
		s.MakeFixedDurationInterval(0, 10, 2, false, "b"),
	}
	sv := s.NewSequenceVar(intervals, "seq")
	require.NoError(t, sv.RankFirst(s, 1))

	a := NewAssignment(s)
	a.AddSequence(sv)
	a.Store()
	assert.Equal(t, []int{1, 0}, a.sequences[0].Sequence)
}

func TestEqualTreatsDeactivatedElementsAsEqual(t *testing.T) {
	s := newTestSolver()
	v := s.NewIntVar(0, 10, "v")
	a := NewAssignment(s)
	a.AddInt(v)
	a.ints[0].Active = false
	a.ints[0].Min, a.ints[0].Max = 1, 2

	b := a.Copy()
	b.ints[0].Min, b.ints[0].Max = 99, 100 // different bounds, still inactive

	assert.True(t, a.Equal(b))
}

func TestEqualDetectsDifferentBounds(t *testing.T) {
	s := newTestSolver()
	v := s.NewIntVar(0, 10, "v")
	a := NewAssignment(s)
	a.AddInt(v)
	a.Store()

	b := a.Copy()
	b.ints[0].Max = 3

	assert.False(t, a.Equal(b))
}

func TestCopyIsIndependent(t *testing.T) {
	s := newTestSolver()
	v := s.NewIntVar(0, 10, "v")
	a := NewAssignment(s)
	a.AddInt(v)
	b := a.Copy()
	b.ints[0].Min = 77
	assert.NotEqual(t, a.ints[0].Min, b.ints[0].Min)
}

func TestClearDropsAllElements(t *testing.T) {
	s := newTestSolver()
	v := s.NewIntVar(0, 10, "v")
	a := NewAssignment(s)
	a.AddInt(v)
	a.Clear()
	assert.Empty(t, a.ints)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestSolver()
	v := s.NewIntVar(0, 10, "v")
	a := NewAssignment(s)
	a.AddInt(v)
	require.NoError(t, v.SetRange(s, 2, 7))
	require.NoError(t, s.Propagate())
	a.Store()

	var buf bytes.Buffer
	require.NoError(t, a.Save(&buf))

	loaded := NewAssignment(s)
	loaded.AddInt(v)
	ok, err := loaded.Load(&buf)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(2), loaded.ints[0].Min)
	assert.Equal(t, int64(7), loaded.ints[0].Max)
}

func TestLoadEmptyRecordReturnsFalseNoError(t *testing.T) {
	s := newTestSolver()
	a := NewAssignment(s)
	ok, err := a.Load(&bytes.Buffer{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoadMalformedInputReturnsError(t *testing.T) {
	s := newTestSolver()
	a := NewAssignment(s)
	ok, err := a.Load(bytes.NewReader([]byte("int_vars: [not: valid: yaml:")))
	require.Error(t, err)
	assert.False(t, ok)
}

func TestLoadFallsBackToNameMapOnReorderedRecord(t *testing.T) {
	s := newTestSolver()
	v1 := s.NewIntVar(0, 10, "v1")
	v2 := s.NewIntVar(0, 10, "v2")

	rec := Record{IntVars: []IntVarRecord{
		{VarID: "v2", Min: 4, Max: 6, Active: true},
		{VarID: "v1", Min: 1, Max: 2, Active: true},
	}}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	require.NoError(t, enc.Encode(rec))
	require.NoError(t, enc.Close())

	a := NewAssignment(s)
	a.AddInt(v1)
	a.AddInt(v2)
	ok, err := a.Load(&buf)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(1), a.ints[0].Min)
	assert.Equal(t, int64(4), a.ints[1].Min)
}
