package cp

// IntVar is a bounded integer domain variable, represented at minimum by
// its [min, max] bounds (spec.md §3 leaves sparse hole-tracking optional;
// this implementation sticks to bounds consistency throughout, per
// spec.md §1's explicit non-goal of arc consistency).
type IntVar struct {
	PropagationBaseObject

	min, max int64 // reversible, canonical committed bounds

	// previousMin/previousMax are the committed bounds as they stood just
	// before the handler's most recent commit, so the demons that commit
	// enqueues read the bounds from the start of the step. They are lazy
	// and non-reversible: updated only when the handler commits a round,
	// never restored by PopTo. A backtrack can thus leave them different
	// from the (restored) current bounds until the next commit.
	previousMin, previousMax int64

	// postponedMin/postponedMax are valid only while inProcess: they hold
	// the bounds as narrowed so far during the current handler round,
	// before being committed to min/max.
	postponedMin, postponedMax int64
	inProcess                  bool

	rangeDemons  []Demon
	boundDemons  []Demon
	domainDemons []Demon

	handler Demon
}

// newIntVar builds an IntVar owned by s with the given bounds, clamped to
// [MinValidValue, MaxValidValue].
func newIntVar(s *Solver, lo, hi int64, name string) *IntVar {
	lo = ClampToValidRange(lo)
	hi = ClampToValidRange(hi)
	v := &IntVar{
		PropagationBaseObject: PropagationBaseObject{name: name, solver: s},
		min:                   lo,
		max:                   hi,
		previousMin:           lo,
		previousMax:           hi,
	}
	v.handler = NewDemon(PriorityVar, v.runHandler)
	return v
}

// Min returns the current committed lower bound.
func (v *IntVar) Min() int64 { return v.min }

// Max returns the current committed upper bound.
func (v *IntVar) Max() int64 { return v.max }

// Bound reports whether the domain has collapsed to a single value.
func (v *IntVar) Bound() bool { return v.min == v.max }

// Value returns the variable's unique value. It panics if the variable is
// not yet bound; callers are expected to check Bound first, as the
// teacher does with Model()/Value() pairs.
func (v *IntVar) Value() int64 {
	if !v.Bound() {
		panic("cp: Value() called on an unbound IntVar")
	}
	return v.min
}

// Contains reports whether val is within [Min, Max]. Bounds consistency
// means any interior value is considered present even if no supporting
// assignment to other variables actually exists.
func (v *IntVar) Contains(val int64) bool {
	return val >= v.min && val <= v.max
}

// OldMin returns the lower bound as of the start of the current
// propagation step. Only meaningful while a demon triggered by this
// variable is running.
func (v *IntVar) OldMin() int64 { return v.previousMin }

// OldMax returns the upper bound as of the start of the current
// propagation step.
func (v *IntVar) OldMax() int64 { return v.previousMax }

func (v *IntVar) curBounds() (int64, int64) {
	if v.inProcess {
		return v.postponedMin, v.postponedMax
	}
	return v.min, v.max
}

func (v *IntVar) beginProcess(s *Solver) {
	v.inProcess = true
	v.postponedMin = v.min
	v.postponedMax = v.max
	s.queue.EnqueueVar(v.handler)
}

// SetMin tightens the lower bound to m, failing if that would make the
// domain empty.
func (v *IntVar) SetMin(s *Solver, m int64) error {
	m = ClampToValidRange(m)
	curMin, curMax := v.curBounds()
	if m <= curMin {
		return nil
	}
	if m > curMax {
		return Fail("cp: SetMin(%d) on %s empties domain [%d,%d]", m, v.Name(), curMin, curMax)
	}
	if !v.inProcess {
		v.beginProcess(s)
	}
	v.postponedMin = m
	return nil
}

// SetMax tightens the upper bound to m, failing if that would make the
// domain empty.
func (v *IntVar) SetMax(s *Solver, m int64) error {
	m = ClampToValidRange(m)
	curMin, curMax := v.curBounds()
	if m >= curMax {
		return nil
	}
	if m < curMin {
		return Fail("cp: SetMax(%d) on %s empties domain [%d,%d]", m, v.Name(), curMin, curMax)
	}
	if !v.inProcess {
		v.beginProcess(s)
	}
	v.postponedMax = m
	return nil
}

// SetRange tightens the domain to [mi, ma].
func (v *IntVar) SetRange(s *Solver, mi, ma int64) error {
	if mi > ma {
		return Fail("cp: SetRange(%d,%d) on %s is empty", mi, ma, v.Name())
	}
	if err := v.SetMin(s, mi); err != nil {
		return err
	}
	return v.SetMax(s, ma)
}

// SetValue binds the variable to a single value.
func (v *IntVar) SetValue(s *Solver, val int64) error {
	return v.SetRange(s, val, val)
}

// RemoveValue removes val from the domain. Since only bounds are tracked,
// this only has an effect when val sits exactly at one of the bounds.
func (v *IntVar) RemoveValue(s *Solver, val int64) error {
	curMin, curMax := v.curBounds()
	switch {
	case val < curMin || val > curMax:
		return nil
	case val == curMin:
		return v.SetMin(s, val+1)
	case val == curMax:
		return v.SetMax(s, val-1)
	default:
		return nil
	}
}

// WhenRange registers a demon fired whenever either bound changes.
func (v *IntVar) WhenRange(d Demon) { v.rangeDemons = append(v.rangeDemons, d) }

// WhenBound registers a demon fired when the variable becomes bound.
func (v *IntVar) WhenBound(d Demon) { v.boundDemons = append(v.boundDemons, d) }

// WhenDomain registers a demon fired on any domain change, the superset
// of range and bound events.
func (v *IntVar) WhenDomain(d Demon) { v.domainDemons = append(v.domainDemons, d) }

// runHandler is this variable's own var-priority demon: it commits the
// postponed bounds computed during this round, then enqueues every demon
// matching the events that actually fired.
func (v *IntVar) runHandler(s *Solver) error {
	oldMin, oldMax := v.min, v.max
	newMin, newMax := v.postponedMin, v.postponedMax
	if newMin < oldMin {
		newMin = oldMin
	}
	if newMax > oldMax {
		newMax = oldMax
	}
	s.trail.SetInt64(&v.min, newMin)
	s.trail.SetInt64(&v.max, newMax)
	v.inProcess = false

	rangeChanged := newMin != oldMin || newMax != oldMax
	becameBound := newMin == newMax && (oldMin != oldMax)

	if rangeChanged {
		for _, d := range v.domainDemons {
			s.enqueueDemon(d)
		}
		for _, d := range v.rangeDemons {
			s.enqueueDemon(d)
		}
	}
	if becameBound {
		for _, d := range v.boundDemons {
			s.enqueueDemon(d)
		}
	}

	v.previousMin, v.previousMax = oldMin, oldMax
	return nil
}
