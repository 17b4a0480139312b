package cp

import "sort"

// scalProdMode distinguishes the three scalar-product contracts of
// spec.md §4.7: PositiveBooleanScalProdEqVar (target is a variable),
// PositiveBooleanScalProdEqCst (target is a constant) and
// BooleanScalProdLessConstant (inequality only, no lower-bound forcing).
type scalProdMode int

const (
	scalProdEqVar scalProdMode = iota
	scalProdEqCst
	scalProdLeCst
)

// scalProd is Σ cᵢxᵢ with non-negative coefficients, propagated by the
// slack-walk of spec.md §4.7: variables are pre-sorted by ascending
// coefficient so that a single backward walk from the largest remaining
// coefficient finds every input that no longer fits the current slack.
type scalProd struct {
	PropagationBaseObject
	vars   []*BoolVar
	coefs  []int64
	target *IntVar
	k      int64
	mode   scalProdMode

	sumOfBound           int64 // Σ cᵢ over xᵢ bound to 1
	sumOfAll             int64 // Σ cᵢ · xᵢ.Max()
	firstUnboundBackward int64 // largest index not yet excluded from the walk
	maxCoef              int64 // coefficient at firstUnboundBackward, cached
}

func newScalProd(s *Solver, vars []*BoolVar, coefs []int64, target *IntVar, k int64, mode scalProdMode, name string) *scalProd {
	if len(vars) != len(coefs) {
		panic("cp: scalar product: vars and coefs have different lengths")
	}
	n := len(vars)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return coefs[idx[a]] < coefs[idx[b]] })
	sortedVars := make([]*BoolVar, n)
	sortedCoefs := make([]int64, n)
	for i, j := range idx {
		sortedVars[i] = vars[j]
		sortedCoefs[i] = coefs[j]
	}
	return &scalProd{
		PropagationBaseObject: PropagationBaseObject{name: name, solver: s},
		vars:                  sortedVars,
		coefs:                 sortedCoefs,
		target:                target,
		k:                     k,
		mode:                  mode,
		firstUnboundBackward:  int64(n - 1),
	}
}

// MakeBooleanScalProdEqVar returns a constraint posting target == Σ cᵢxᵢ,
// all cᵢ non-negative.
func (s *Solver) MakeBooleanScalProdEqVar(vars []*BoolVar, coefs []int64, target *IntVar) Constraint {
	return newScalProd(s, vars, coefs, target, 0, scalProdEqVar, "")
}

// MakeBooleanScalProdEqCst returns a constraint posting Σ cᵢxᵢ == k.
func (s *Solver) MakeBooleanScalProdEqCst(vars []*BoolVar, coefs []int64, k int64) Constraint {
	return newScalProd(s, vars, coefs, nil, k, scalProdEqCst, "")
}

// MakeBooleanScalProdLessConstant returns a constraint posting Σ cᵢxᵢ ≤ k.
func (s *Solver) MakeBooleanScalProdLessConstant(vars []*BoolVar, coefs []int64, k int64) Constraint {
	return newScalProd(s, vars, coefs, nil, k, scalProdLeCst, "")
}

func (c *scalProd) upperBound() int64 {
	if c.mode == scalProdEqVar {
		return c.target.Max()
	}
	return c.k
}

func (c *scalProd) hasLowerBound() bool { return c.mode != scalProdLeCst }

func (c *scalProd) lowerBound() int64 {
	if c.mode == scalProdEqVar {
		return c.target.Min()
	}
	return c.k
}

// propagateFromTop computes slack_up = upperBound - sum_of_bound and
// slack_down = sum_of_all - lowerBound, then walks the sorted variables
// backward from first_unbound_backward, forcing any coefficient that no
// longer fits either slack, stopping at the first one that fits both.
func (c *scalProd) propagateFromTop(s *Solver) error {
	slackUp := c.upperBound() - c.sumOfBound
	if slackUp < 0 {
		return Fail("cp: scalar product %s: sum of bound coefficients exceeds the upper bound", c.Name())
	}
	var slackDown int64
	if c.hasLowerBound() {
		slackDown = c.sumOfAll - c.lowerBound()
		if slackDown < 0 {
			return Fail("cp: scalar product %s: sum of possible coefficients is below the lower bound", c.Name())
		}
	}

	// The walk only ever forces a variable when its coefficient overruns a
	// slack, and coefficients only shrink walking down from
	// firstUnboundBackward; maxCoef is the largest coefficient still in
	// play. If it already fits both slacks, the loop below would break on
	// its very first iteration, so skip it and the matching no-op trail
	// writes entirely.
	if c.firstUnboundBackward < 0 || (c.maxCoef <= slackUp && (!c.hasLowerBound() || c.maxCoef <= slackDown)) {
		return nil
	}

	idx := c.firstUnboundBackward
	for idx >= 0 {
		v := c.vars[idx]
		if v.Bound() {
			idx--
			continue
		}
		ci := c.coefs[idx]
		if ci > slackUp {
			if err := v.SetFalse(s); err != nil {
				return err
			}
			idx--
			continue
		}
		if c.hasLowerBound() && ci > slackDown {
			if err := v.SetTrue(s); err != nil {
				return err
			}
			idx--
			continue
		}
		break
	}
	s.trail.SetInt64(&c.firstUnboundBackward, idx)
	if idx >= 0 {
		s.trail.SetInt64(&c.maxCoef, c.coefs[idx])
	} else {
		s.trail.SetInt64(&c.maxCoef, 0)
	}
	return nil
}

func (c *scalProd) onLeafBound(s *Solver, idx int) error {
	v := c.vars[idx]
	if v.IsTrue() {
		s.trail.SetInt64(&c.sumOfBound, c.sumOfBound+c.coefs[idx])
	} else {
		s.trail.SetInt64(&c.sumOfAll, c.sumOfAll-c.coefs[idx])
	}
	if c.mode == scalProdEqVar {
		if err := c.target.SetMin(s, c.sumOfBound); err != nil {
			return err
		}
		if err := c.target.SetMax(s, c.sumOfAll); err != nil {
			return err
		}
	}
	return c.propagateFromTop(s)
}

func (c *scalProd) Post(s *Solver) error {
	for i := range c.vars {
		idx := i
		c.vars[i].WhenBound(NewDemon(PriorityNormal, func(s *Solver) error {
			return c.onLeafBound(s, idx)
		}))
	}
	if c.mode == scalProdEqVar {
		c.target.WhenRange(NewDemon(PriorityDelayed, c.propagateFromTop))
	}
	return nil
}

func (c *scalProd) InitialPropagate(s *Solver) error {
	c.sumOfBound = 0
	c.sumOfAll = 0
	for i, v := range c.vars {
		if v.IsTrue() {
			c.sumOfBound += c.coefs[i]
			c.sumOfAll += c.coefs[i]
		} else if !v.IsFalse() {
			c.sumOfAll += c.coefs[i]
		}
	}
	last := int64(len(c.vars) - 1)
	for last >= 0 && c.vars[last].Bound() {
		last--
	}
	c.firstUnboundBackward = last
	if last >= 0 {
		c.maxCoef = c.coefs[last]
	} else {
		c.maxCoef = 0
	}
	if c.mode == scalProdEqVar {
		if err := c.target.SetMin(s, c.sumOfBound); err != nil {
			return err
		}
		if err := c.target.SetMax(s, c.sumOfAll); err != nil {
			return err
		}
	}
	return c.propagateFromTop(s)
}
