package cp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolVars(s *Solver, n int) []*BoolVar {
	out := make([]*BoolVar, n)
	for i := range out {
		out[i] = s.NewBoolVar("b")
	}
	return out
}

func TestBooleanAndForcesTargetWhenAllInputsTrue(t *testing.T) {
	s := newTestSolver()
	inputs := boolVars(s, 3)
	target := s.NewBoolVar("and")
	require.NoError(t, s.Post(s.MakeBooleanAnd(inputs, target)))

	for _, in := range inputs {
		require.NoError(t, in.SetTrue(s))
	}
	require.NoError(t, s.Propagate())
	assert.True(t, target.IsTrue())
}

func TestBooleanAndOneFalseForcesTargetFalse(t *testing.T) {
	s := newTestSolver()
	inputs := boolVars(s, 3)
	target := s.NewBoolVar("and")
	require.NoError(t, s.Post(s.MakeBooleanAnd(inputs, target)))

	require.NoError(t, inputs[1].SetFalse(s))
	require.NoError(t, s.Propagate())
	assert.True(t, target.IsFalse())
}

func TestBooleanAndTargetTrueForcesAllInputsTrue(t *testing.T) {
	s := newTestSolver()
	inputs := boolVars(s, 3)
	target := s.NewBoolVar("and")
	require.NoError(t, s.Post(s.MakeBooleanAnd(inputs, target)))

	require.NoError(t, target.SetTrue(s))
	require.NoError(t, s.Propagate())
	for _, in := range inputs {
		assert.True(t, in.IsTrue())
	}
}

func TestBooleanAndLastUnboundForcedWhenTargetFalse(t *testing.T) {
	s := newTestSolver()
	inputs := boolVars(s, 3)
	target := s.NewBoolVar("and")
	require.NoError(t, s.Post(s.MakeBooleanAnd(inputs, target)))

	require.NoError(t, target.SetFalse(s))
	require.NoError(t, inputs[0].SetTrue(s))
	require.NoError(t, inputs[1].SetTrue(s))
	require.NoError(t, s.Propagate())
	assert.True(t, inputs[2].IsFalse(), "with target forced false and only one input left, it must be forced to the force-value")
}

func TestBooleanOrForcesTargetWhenAnyInputTrue(t *testing.T) {
	s := newTestSolver()
	inputs := boolVars(s, 3)
	target := s.NewBoolVar("or")
	require.NoError(t, s.Post(s.MakeBooleanOr(inputs, target)))

	require.NoError(t, inputs[0].SetTrue(s))
	require.NoError(t, s.Propagate())
	assert.True(t, target.IsTrue())
}

func TestBooleanOrAllFalseForcesTargetFalse(t *testing.T) {
	s := newTestSolver()
	inputs := boolVars(s, 2)
	target := s.NewBoolVar("or")
	require.NoError(t, s.Post(s.MakeBooleanOr(inputs, target)))

	require.NoError(t, inputs[0].SetFalse(s))
	require.NoError(t, inputs[1].SetFalse(s))
	require.NoError(t, s.Propagate())
	assert.True(t, target.IsFalse())
}

func TestSumBooleanLE1ForcesRestFalse(t *testing.T) {
	s := newTestSolver()
	inputs := boolVars(s, 4)
	require.NoError(t, s.Post(s.MakeSumBooleanLE1(inputs)))

	require.NoError(t, inputs[2].SetTrue(s))
	require.NoError(t, s.Propagate())
	for i, in := range inputs {
		if i == 2 {
			assert.True(t, in.IsTrue())
		} else {
			assert.True(t, in.IsFalse())
		}
	}
}

func TestSumBooleanGE1ForcesLastCandidate(t *testing.T) {
	s := newTestSolver()
	inputs := boolVars(s, 3)
	require.NoError(t, s.Post(s.MakeSumBooleanGE1(inputs)))

	require.NoError(t, inputs[0].SetFalse(s))
	require.NoError(t, inputs[1].SetFalse(s))
	require.NoError(t, s.Propagate())
	assert.True(t, inputs[2].IsTrue())
}

func TestSumBooleanGE1AllFalseFails(t *testing.T) {
	s := newTestSolver()
	inputs := boolVars(s, 2)
	require.NoError(t, s.Post(s.MakeSumBooleanGE1(inputs)))

	require.NoError(t, inputs[0].SetFalse(s))
	err := inputs[1].SetFalse(s)
	if err == nil {
		err = s.Propagate()
	}
	require.Error(t, err)
}

func TestSumBooleanEQ1BehavesLikeBothLE1AndGE1(t *testing.T) {
	s := newTestSolver()
	inputs := boolVars(s, 3)
	require.NoError(t, s.Post(s.MakeSumBooleanEQ1(inputs)))

	require.NoError(t, inputs[0].SetTrue(s))
	require.NoError(t, s.Propagate())
	assert.True(t, inputs[1].IsFalse())
	assert.True(t, inputs[2].IsFalse())
}

func TestSumBooleanEQVarTracksSum(t *testing.T) {
	s := newTestSolver()
	inputs := boolVars(s, 3)
	target := s.NewIntVar(0, 3, "sum")
	require.NoError(t, s.Post(s.MakeSumBooleanEQVar(inputs, target)))

	require.NoError(t, inputs[0].SetTrue(s))
	require.NoError(t, inputs[1].SetTrue(s))
	require.NoError(t, s.Propagate())
	assert.Equal(t, int64(2), target.Min())
	assert.Equal(t, int64(3), target.Max())
}

func TestSumBooleanEQVarTargetCollapseForcesRemaining(t *testing.T) {
	s := newTestSolver()
	inputs := boolVars(s, 3)
	target := s.NewIntVar(0, 3, "sum")
	require.NoError(t, s.Post(s.MakeSumBooleanEQVar(inputs, target)))

	require.NoError(t, target.SetMax(s, 0))
	require.NoError(t, s.Propagate())
	for _, in := range inputs {
		assert.True(t, in.IsFalse())
	}
}
