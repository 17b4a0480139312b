package cp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffnPanicsOnMismatchedLengths(t *testing.T) {
	s := newTestSolver()
	x := []*IntVar{s.NewIntVar(0, 10, "x")}
	y := []*IntVar{s.NewIntVar(0, 10, "y")}
	dx := []*IntVar{s.NewIntVar(1, 1, "dx")}
	dy := []*IntVar{s.NewIntVar(1, 1, "dy"), s.NewIntVar(1, 1, "dy2")}
	assert.Panics(t, func() { s.MakeNonOverlappingRectangles(x, y, dx, dy) })
}

func TestDiffnTwoFixedBoxesNoOverlapSucceeds(t *testing.T) {
	s := newTestSolver()
	x := []*IntVar{s.NewIntVar(0, 0, "x0"), s.NewIntVar(5, 5, "x1")}
	y := []*IntVar{s.NewIntVar(0, 0, "y0"), s.NewIntVar(0, 0, "y1")}
	dx := []*IntVar{s.NewIntVar(3, 3, "dx0"), s.NewIntVar(3, 3, "dx1")}
	dy := []*IntVar{s.NewIntVar(3, 3, "dy0"), s.NewIntVar(3, 3, "dy1")}
	require.NoError(t, s.Post(s.MakeNonOverlappingRectangles(x, y, dx, dy)))
}

func TestDiffnTwoFixedOverlappingBoxesFails(t *testing.T) {
	s := newTestSolver()
	x := []*IntVar{s.NewIntVar(0, 0, "x0"), s.NewIntVar(1, 1, "x1")}
	y := []*IntVar{s.NewIntVar(0, 0, "y0"), s.NewIntVar(0, 0, "y1")}
	dx := []*IntVar{s.NewIntVar(3, 3, "dx0"), s.NewIntVar(3, 3, "dx1")}
	dy := []*IntVar{s.NewIntVar(3, 3, "dy0"), s.NewIntVar(3, 3, "dy1")}
	err := s.Post(s.MakeNonOverlappingRectangles(x, y, dx, dy))
	require.Error(t, err)
}

func TestDiffnMandatoryPartsOverlapOnOneAxisPushesApartOnTheOther(t *testing.T) {
	s := newTestSolver()
	// box0's mandatory x-range [5,6) and box1's mandatory x-range [5,8)
	// overlap, so they must be separated on y instead: box0's mandatory
	// y-range [2,3) sits entirely before box1's [4,5), so box1 should be
	// pushed to start no earlier than 3 on y.
	x := []*IntVar{s.NewIntVar(2, 5, "x0"), s.NewIntVar(5, 5, "x1")}
	y := []*IntVar{s.NewIntVar(0, 2, "y0"), s.NewIntVar(2, 4, "y1")}
	dx := []*IntVar{s.NewIntVar(4, 4, "dx0"), s.NewIntVar(3, 3, "dx1")}
	dy := []*IntVar{s.NewIntVar(3, 3, "dy0"), s.NewIntVar(3, 3, "dy1")}
	require.NoError(t, s.Post(s.MakeNonOverlappingRectangles(x, y, dx, dy)))
	assert.GreaterOrEqual(t, y[1].Min(), int64(3))
}

func TestDiffnEnergyCheckRejectsOvercrowdedNeighborhood(t *testing.T) {
	s := newTestSolver()
	// three 4x4 boxes crammed into a region whose bounding box can't fit
	// all three mandatory areas (12x4=48 needed, but bounding box is at
	// most 6x4=24 given the ranges below).
	x := []*IntVar{s.NewIntVar(0, 2, "x0"), s.NewIntVar(0, 2, "x1"), s.NewIntVar(0, 2, "x2")}
	y := []*IntVar{s.NewIntVar(0, 0, "y0"), s.NewIntVar(0, 0, "y1"), s.NewIntVar(0, 0, "y2")}
	dx := []*IntVar{s.NewIntVar(4, 4, "dx0"), s.NewIntVar(4, 4, "dx1"), s.NewIntVar(4, 4, "dx2")}
	dy := []*IntVar{s.NewIntVar(4, 4, "dy0"), s.NewIntVar(4, 4, "dy1"), s.NewIntVar(4, 4, "dy2")}
	err := s.Post(s.MakeNonOverlappingRectangles(x, y, dx, dy))
	require.Error(t, err)
}

func TestDiffnMarkDirtyDrainsAndClearsOnSuccess(t *testing.T) {
	s := newTestSolver()
	x := []*IntVar{s.NewIntVar(0, 20, "x0"), s.NewIntVar(0, 20, "x1")}
	y := []*IntVar{s.NewIntVar(0, 0, "y0"), s.NewIntVar(10, 10, "y1")}
	dx := []*IntVar{s.NewIntVar(3, 3, "dx0"), s.NewIntVar(3, 3, "dx1")}
	dy := []*IntVar{s.NewIntVar(3, 3, "dy0"), s.NewIntVar(3, 3, "dy1")}
	c := s.MakeNonOverlappingRectangles(x, y, dx, dy)
	require.NoError(t, s.Post(c))

	d := c.(*diffn)
	require.NoError(t, x[0].SetMin(s, 5))
	require.NoError(t, s.Propagate())
	for _, dirty := range d.dirty {
		assert.False(t, dirty)
	}
	assert.Empty(t, d.queue)
}

func TestOverlap1D(t *testing.T) {
	assert.True(t, overlap1D(0, 5, 3, 8))
	assert.False(t, overlap1D(0, 5, 5, 8))
	assert.False(t, overlap1D(0, 5, 10, 15))
}

func TestMandatoryRangeEmptyWhenDurationDoesNotCoverSlack(t *testing.T) {
	s := newTestSolver()
	v := s.NewIntVar(0, 10, "v")
	dur := s.NewIntVar(0, 3, "dur")
	_, _, ok := mandatoryRange(v, dur)
	assert.False(t, ok, "a slack-wide start with a possibly-zero duration has no guaranteed mandatory part")
}

func TestMandatoryRangeNonEmptyWhenDurationExceedsSlack(t *testing.T) {
	s := newTestSolver()
	v := s.NewIntVar(0, 2, "v")
	dur := s.NewIntVar(5, 5, "dur")
	lo, hi, ok := mandatoryRange(v, dur)
	require.True(t, ok)
	assert.Equal(t, int64(2), lo)
	assert.Equal(t, int64(5), hi)
}
