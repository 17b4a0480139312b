package cp

// booleanAggregator implements BooleanAnd and BooleanOr (spec.md §4.6).
// Both are the same shape: a reversible count of still-unbound inputs, a
// one-shot "decided" latch inhibiting the input demons once the target has
// been forced by a single input, and a symmetric pair of extreme values
// (the value that satisfies every input at once, and the value a single
// input can force the target to).
type booleanAggregator struct {
	PropagationBaseObject
	inputs []*BoolVar
	target *BoolVar

	// normalExtreme is pushed to every input once the target is bound to
	// it (AND: 1, OR: 0). forceValue is the value a single input bound to
	// it immediately forces onto the target (AND: 0, OR: 1).
	normalExtreme int64
	forceValue    int64

	unboundCount int64
	decided      Switch
	inputDemons  []*DemonHandle
}

func newBooleanAggregator(s *Solver, inputs []*BoolVar, target *BoolVar, isAnd bool, name string) *booleanAggregator {
	a := &booleanAggregator{
		PropagationBaseObject: PropagationBaseObject{name: name, solver: s},
		inputs:                inputs,
		target:                target,
	}
	if isAnd {
		a.normalExtreme, a.forceValue = 1, 0
	} else {
		a.normalExtreme, a.forceValue = 0, 1
	}
	unbound := int64(0)
	for _, in := range inputs {
		if !in.Bound() {
			unbound++
		}
	}
	a.unboundCount = unbound
	return a
}

// MakeBooleanAnd returns a constraint posting target == AND(inputs).
func (s *Solver) MakeBooleanAnd(inputs []*BoolVar, target *BoolVar) Constraint {
	return newBooleanAggregator(s, inputs, target, true, "")
}

// MakeBooleanOr returns a constraint posting target == OR(inputs).
func (s *Solver) MakeBooleanOr(inputs []*BoolVar, target *BoolVar) Constraint {
	return newBooleanAggregator(s, inputs, target, false, "")
}

func (a *booleanAggregator) forceInputs(s *Solver, value int64) error {
	for _, in := range a.inputs {
		if in.Bound() {
			continue
		}
		if err := in.SetValue(s, value); err != nil {
			return err
		}
	}
	return nil
}

// checkLastUnbound applies the third rule: if the target is already known
// to be forceValue and only one input remains unbound, that input alone
// must supply forceValue.
func (a *booleanAggregator) checkLastUnbound(s *Solver) error {
	if a.unboundCount != 1 || !a.target.Bound() || a.target.Value() != a.forceValue {
		return nil
	}
	var last *BoolVar
	for _, in := range a.inputs {
		if !in.Bound() {
			last = in
		} else if in.Value() == a.forceValue {
			return nil
		}
	}
	if last == nil {
		return nil
	}
	return last.SetValue(s, a.forceValue)
}

func (a *booleanAggregator) applyInputValue(s *Solver, in *BoolVar) error {
	if in.Value() != a.forceValue {
		if a.unboundCount == 0 && !a.decided.Value() {
			// Every input is bound; if none took forceValue the target
			// takes normalExtreme.
			for _, other := range a.inputs {
				if !other.Bound() || other.Value() != a.normalExtreme {
					return nil
				}
			}
			return a.target.SetValue(s, a.normalExtreme)
		}
		return a.checkLastUnbound(s)
	}
	if a.decided.Value() {
		return nil
	}
	s.trail.SaveAndSet(&a.decided)
	for _, h := range a.inputDemons {
		h.Inhibit(s)
	}
	return a.target.SetValue(s, a.forceValue)
}

func (a *booleanAggregator) onInputBound(s *Solver, in *BoolVar) error {
	s.trail.SetInt64(&a.unboundCount, a.unboundCount-1)
	return a.applyInputValue(s, in)
}

func (a *booleanAggregator) onTargetBound(s *Solver) error {
	if a.target.Value() == a.normalExtreme {
		return a.forceInputs(s, a.normalExtreme)
	}
	return a.checkLastUnbound(s)
}

func (a *booleanAggregator) Post(s *Solver) error {
	a.inputDemons = make([]*DemonHandle, len(a.inputs))
	for i, in := range a.inputs {
		v := in
		h := NewDemonHandle(NewDemon(PriorityNormal, func(s *Solver) error {
			return a.onInputBound(s, v)
		}))
		a.inputDemons[i] = h
		v.WhenBound(h)
	}
	a.target.WhenBound(NewDemon(PriorityNormal, a.onTargetBound))
	return nil
}

func (a *booleanAggregator) InitialPropagate(s *Solver) error {
	for _, in := range a.inputs {
		if in.Bound() {
			if err := a.applyInputValue(s, in); err != nil {
				return err
			}
		}
	}
	if a.target.Bound() {
		if err := a.onTargetBound(s); err != nil {
			return err
		}
	}
	return nil
}

// sumBooleanLE1 forces every other input to 0 the first time any input is
// bound to 1 (spec.md §4.6, "one-shot").
type sumBooleanLE1 struct {
	PropagationBaseObject
	inputs  []*BoolVar
	decided Switch
}

// MakeSumBooleanLE1 returns a constraint posting Σ inputs ≤ 1.
func (s *Solver) MakeSumBooleanLE1(inputs []*BoolVar) Constraint {
	return &sumBooleanLE1{PropagationBaseObject: PropagationBaseObject{solver: s}, inputs: inputs}
}

func (c *sumBooleanLE1) forceRestFalse(s *Solver, except int) error {
	if c.decided.Value() {
		return nil
	}
	s.trail.SaveAndSet(&c.decided)
	for i, in := range c.inputs {
		if i == except || in.Bound() {
			continue
		}
		if err := in.SetFalse(s); err != nil {
			return err
		}
	}
	return nil
}

func (c *sumBooleanLE1) Post(s *Solver) error {
	for i, in := range c.inputs {
		idx := i
		in.WhenBound(NewDemon(PriorityNormal, func(s *Solver) error {
			in := c.inputs[idx]
			if in.IsTrue() {
				return c.forceRestFalse(s, idx)
			}
			return nil
		}))
	}
	return nil
}

func (c *sumBooleanLE1) InitialPropagate(s *Solver) error {
	for i, in := range c.inputs {
		if in.IsTrue() {
			return c.forceRestFalse(s, i)
		}
	}
	return nil
}

// sumBooleanGE1 maintains a reversible bit-set of inputs whose Max is
// still 1; when exactly one remains it is forced true, when none remain
// the constraint fails (spec.md §4.6).
type sumBooleanGE1 struct {
	PropagationBaseObject
	inputs     []*BoolVar
	candidates []uint64
	count      int64
}

// MakeSumBooleanGE1 returns a constraint posting Σ inputs ≥ 1.
func (s *Solver) MakeSumBooleanGE1(inputs []*BoolVar) Constraint {
	return &sumBooleanGE1{
		PropagationBaseObject: PropagationBaseObject{solver: s},
		inputs:                inputs,
		candidates:            make([]uint64, (len(inputs)+63)/64),
		count:                 int64(len(inputs)),
	}
}

func (c *sumBooleanGE1) bit(i int) bool {
	return c.candidates[i/64]&(uint64(1)<<uint(i%64)) != 0
}

func (c *sumBooleanGE1) dropCandidate(s *Solver, i int) error {
	if !c.bit(i) {
		return nil
	}
	s.trail.ClearBit(c.candidates, i)
	s.trail.SetInt64(&c.count, c.count-1)
	switch c.count {
	case 0:
		return Fail("cp: sum-boolean GE1 constraint %s has no candidate left", c.Name())
	case 1:
		for j, in := range c.inputs {
			if c.bit(j) {
				return in.SetTrue(s)
			}
		}
	}
	return nil
}

func (c *sumBooleanGE1) Post(s *Solver) error {
	for i := range c.inputs {
		idx := i
		c.inputs[i].WhenBound(NewDemon(PriorityNormal, func(s *Solver) error {
			if c.inputs[idx].IsFalse() {
				return c.dropCandidate(s, idx)
			}
			return nil
		}))
	}
	return nil
}

func (c *sumBooleanGE1) InitialPropagate(s *Solver) error {
	for i := range c.candidates {
		c.candidates[i] = ^uint64(0)
	}
	if rem := len(c.inputs) % 64; rem != 0 {
		c.candidates[len(c.candidates)-1] &= (uint64(1) << uint(rem)) - 1
	}
	for i, in := range c.inputs {
		if in.IsFalse() {
			if err := c.dropCandidate(s, i); err != nil {
				return err
			}
		}
	}
	return nil
}

// sumBooleanEQ1 combines LE1 and GE1 (spec.md §4.6: "EQ 1: combination of
// the two").
type sumBooleanEQ1 struct {
	le1 *sumBooleanLE1
	ge1 *sumBooleanGE1
}

// MakeSumBooleanEQ1 returns a constraint posting Σ inputs == 1.
func (s *Solver) MakeSumBooleanEQ1(inputs []*BoolVar) Constraint {
	return &sumBooleanEQ1{
		le1: &sumBooleanLE1{PropagationBaseObject: PropagationBaseObject{solver: s}, inputs: inputs},
		ge1: &sumBooleanGE1{
			PropagationBaseObject: PropagationBaseObject{solver: s},
			inputs:                inputs,
			candidates:            make([]uint64, (len(inputs)+63)/64),
			count:                 int64(len(inputs)),
		},
	}
}

func (c *sumBooleanEQ1) Post(s *Solver) error {
	if err := c.le1.Post(s); err != nil {
		return err
	}
	return c.ge1.Post(s)
}

func (c *sumBooleanEQ1) InitialPropagate(s *Solver) error {
	if err := c.le1.InitialPropagate(s); err != nil {
		return err
	}
	return c.ge1.InitialPropagate(s)
}

// sumBooleanEQVar keeps a target IntVar equal to Σ inputs by maintaining
// two reversible counters bracketing the sum: num_always_true (inputs
// bound to 1) and num_possible_true (inputs not yet bound to 0). When the
// target's own range collapses onto either counter, every remaining
// unbound input is forced accordingly (spec.md §4.6).
type sumBooleanEQVar struct {
	PropagationBaseObject
	inputs         []*BoolVar
	target         *IntVar
	numAlwaysTrue  int64
	numPossibleTrue int64
}

// MakeSumBooleanEQVar returns a constraint posting target == Σ inputs.
func (s *Solver) MakeSumBooleanEQVar(inputs []*BoolVar, target *IntVar) Constraint {
	return &sumBooleanEQVar{
		PropagationBaseObject: PropagationBaseObject{solver: s},
		inputs:                inputs,
		target:                target,
		numPossibleTrue:       int64(len(inputs)),
	}
}

func (c *sumBooleanEQVar) tighten(s *Solver) error {
	if err := c.target.SetMin(s, c.numAlwaysTrue); err != nil {
		return err
	}
	if err := c.target.SetMax(s, c.numPossibleTrue); err != nil {
		return err
	}
	if c.target.Max() == c.numAlwaysTrue {
		return c.pushRemaining(s, 0)
	}
	if c.target.Min() == c.numPossibleTrue {
		return c.pushRemaining(s, 1)
	}
	return nil
}

func (c *sumBooleanEQVar) pushRemaining(s *Solver, value int64) error {
	for _, in := range c.inputs {
		if in.Bound() {
			continue
		}
		if err := in.SetValue(s, value); err != nil {
			return err
		}
	}
	return nil
}

func (c *sumBooleanEQVar) onInputBound(s *Solver, in *BoolVar) error {
	if in.IsTrue() {
		s.trail.SetInt64(&c.numAlwaysTrue, c.numAlwaysTrue+1)
	} else {
		s.trail.SetInt64(&c.numPossibleTrue, c.numPossibleTrue-1)
	}
	return c.tighten(s)
}

func (c *sumBooleanEQVar) Post(s *Solver) error {
	for i := range c.inputs {
		idx := i
		c.inputs[i].WhenBound(NewDemon(PriorityNormal, func(s *Solver) error {
			return c.onInputBound(s, c.inputs[idx])
		}))
	}
	c.target.WhenRange(NewDemon(PriorityNormal, c.tighten))
	return nil
}

func (c *sumBooleanEQVar) InitialPropagate(s *Solver) error {
	for _, in := range c.inputs {
		if in.Bound() {
			if in.IsTrue() {
				c.numAlwaysTrue++
			} else {
				c.numPossibleTrue--
			}
		}
	}
	return c.tighten(s)
}
