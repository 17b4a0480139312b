package cp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalProdEqVarInitialBounds(t *testing.T) {
	s := newTestSolver()
	vars := boolVars(s, 3)
	coefs := []int64{3, 1, 5}
	target := s.NewIntVar(0, 100, "t")
	require.NoError(t, s.Post(s.MakeBooleanScalProdEqVar(vars, coefs, target)))
	assert.Equal(t, int64(0), target.Min())
	assert.Equal(t, int64(9), target.Max())
}

func TestScalProdEqVarBindingForcesTargetBounds(t *testing.T) {
	s := newTestSolver()
	vars := boolVars(s, 3)
	coefs := []int64{3, 1, 5}
	target := s.NewIntVar(0, 100, "t")
	require.NoError(t, s.Post(s.MakeBooleanScalProdEqVar(vars, coefs, target)))

	require.NoError(t, vars[2].SetTrue(s)) // coefficient 5
	require.NoError(t, s.Propagate())
	assert.GreaterOrEqual(t, target.Min(), int64(5))
}

func TestScalProdEqVarTargetMaxForcesOversizedInputsFalse(t *testing.T) {
	s := newTestSolver()
	vars := boolVars(s, 3)
	coefs := []int64{3, 1, 5}
	target := s.NewIntVar(0, 100, "t")
	require.NoError(t, s.Post(s.MakeBooleanScalProdEqVar(vars, coefs, target)))

	require.NoError(t, target.SetMax(s, 2))
	require.NoError(t, s.Propagate())
	assert.True(t, vars[2].IsFalse(), "coefficient 5 cannot fit in a slack of 2")
}

func TestScalProdLessConstantForcesOversizedInputsFalse(t *testing.T) {
	s := newTestSolver()
	vars := boolVars(s, 3)
	coefs := []int64{3, 1, 5}
	require.NoError(t, s.Post(s.MakeBooleanScalProdLessConstant(vars, coefs, 2)))
	require.NoError(t, s.Propagate())
	assert.True(t, vars[2].IsFalse())
	assert.True(t, vars[0].IsFalse()) // coefficient 3 also exceeds slack 2
}

func TestScalProdEqCstForcesTrueWhenSlackDownExhausted(t *testing.T) {
	s := newTestSolver()
	vars := boolVars(s, 2)
	coefs := []int64{4, 6}
	// sum == 10 forces both since sum_of_all == 10 == k exactly.
	require.NoError(t, s.Post(s.MakeBooleanScalProdEqCst(vars, coefs, 10)))
	require.NoError(t, s.Propagate())
	assert.True(t, vars[0].IsTrue())
	assert.True(t, vars[1].IsTrue())
}

func TestScalProdPanicsOnMismatchedLengths(t *testing.T) {
	s := newTestSolver()
	vars := boolVars(s, 2)
	assert.Panics(t, func() {
		s.MakeBooleanScalProdLessConstant(vars, []int64{1, 2, 3}, 5)
	})
}

func TestScalProdSortedAscendingInternally(t *testing.T) {
	s := newTestSolver()
	vars := boolVars(s, 3)
	coefs := []int64{5, 1, 3}
	c := newScalProd(s, vars, coefs, nil, 10, scalProdLeCst, "")
	assert.Equal(t, []int64{1, 3, 5}, c.coefs)
}
