package cp

// IntervalVar is the composite (start, duration, end, performed) variable
// used to model scheduling intervals (spec.md §3-§4.4). All contract
// variants named in spec.md — FixedDurationPerformed, FixedDurationOptional,
// VariableDuration, FixedConstant, StartVarPerformed, Mirror, RelaxedMin,
// RelaxedMax, the four Synced views — implement this interface.
type IntervalVar interface {
	Name() string

	StartMin() int64
	StartMax() int64
	EndMin() int64
	EndMax() int64
	DurationMin() int64
	DurationMax() int64

	MustBePerformed() bool
	MayBePerformed() bool

	SetStartMin(s *Solver, m int64) error
	SetStartMax(s *Solver, m int64) error
	SetEndMin(s *Solver, m int64) error
	SetEndMax(s *Solver, m int64) error
	SetDurationMin(s *Solver, m int64) error
	SetDurationMax(s *Solver, m int64) error
	SetPerformed(s *Solver, performed bool) error

	WhenStartRange(d Demon)
	WhenEndRange(d Demon)
	WhenDurationRange(d Demon)
	WhenPerformedBound(d Demon)
}

// intervalVar is the concrete storage shared by FixedDurationPerformed,
// FixedDurationOptional, VariableDuration and StartVarPerformed: all four
// are really the same (start, duration, end, performed) triple of
// sub-storages, differing only in how the caller constructed them
// (duration min==max for the fixed-duration variants, performed
// pre-bound to true for the non-optional ones, start possibly an
// already-existing external IntVar for StartVarPerformed). Collapsing
// them into one struct avoids the four-way code duplication the names
// alone would suggest.
type intervalVar struct {
	PropagationBaseObject
	start    *IntVar
	duration *IntVar
	end      *IntVar
	performed *BoolVar
	pushDemon Demon
}

func newIntervalVar(s *Solver, start, duration, end *IntVar, performed *BoolVar, name string) *intervalVar {
	iv := &intervalVar{
		PropagationBaseObject: PropagationBaseObject{name: name, solver: s},
		start:                 start,
		duration:              duration,
		end:                   end,
		performed:             performed,
	}
	iv.pushDemon = NewDemon(PriorityDelayed, iv.push)
	start.WhenRange(iv.pushDemon)
	duration.WhenRange(iv.pushDemon)
	end.WhenRange(iv.pushDemon)
	s.enqueueDemon(iv.pushDemon)
	return iv
}

// MakeFixedDurationInterval builds an interval whose duration is fixed.
// If optional is true, performed is a free three-state boolean; otherwise
// it is bound to true immediately (FixedDurationPerformed/Optional of
// spec.md §3).
func (s *Solver) MakeFixedDurationInterval(startMin, startMax, duration int64, optional bool, name string) IntervalVar {
	start := s.NewIntVar(startMin, startMax, name+"_start")
	dur := s.NewIntVar(duration, duration, name+"_duration")
	end := s.NewIntVar(CapAdd(startMin, duration), CapAdd(startMax, duration), name+"_end")
	var performed *BoolVar
	if optional {
		performed = s.NewBoolVar(name + "_performed")
	} else {
		performed = &BoolVar{IntVar: s.NewIntVar(1, 1, name+"_performed")}
	}
	iv := newIntervalVar(s, start, dur, end, performed, name)
	s.trackInterval(iv)
	return iv
}

// MakeVariableDurationInterval builds an interval whose start, duration
// and end are all independently revisable, tied together by the Push
// invariant (spec.md §4.4).
func (s *Solver) MakeVariableDurationInterval(smin, smax, dmin, dmax, emin, emax int64, optional bool, name string) IntervalVar {
	start := s.NewIntVar(smin, smax, name+"_start")
	dur := s.NewIntVar(dmin, dmax, name+"_duration")
	end := s.NewIntVar(emin, emax, name+"_end")
	var performed *BoolVar
	if optional {
		performed = s.NewBoolVar(name + "_performed")
	} else {
		performed = &BoolVar{IntVar: s.NewIntVar(1, 1, name+"_performed")}
	}
	iv := newIntervalVar(s, start, dur, end, performed, name)
	s.trackInterval(iv)
	return iv
}

// MakeStartVarPerformedInterval wraps an existing IntVar as the start of a
// fixed-duration, always-performed interval.
func (s *Solver) MakeStartVarPerformedInterval(start *IntVar, duration int64, name string) IntervalVar {
	dur := s.NewIntVar(duration, duration, name+"_duration")
	end := s.NewIntVar(CapAdd(start.Min(), duration), CapAdd(start.Max(), duration), name+"_end")
	performed := &BoolVar{IntVar: s.NewIntVar(1, 1, name+"_performed")}
	iv := newIntervalVar(s, start, dur, end, performed, name)
	s.trackInterval(iv)
	return iv
}

func (iv *intervalVar) StartMin() int64    { return iv.start.Min() }
func (iv *intervalVar) StartMax() int64    { return iv.start.Max() }
func (iv *intervalVar) EndMin() int64      { return iv.end.Min() }
func (iv *intervalVar) EndMax() int64      { return iv.end.Max() }
func (iv *intervalVar) DurationMin() int64 { return iv.duration.Min() }
func (iv *intervalVar) DurationMax() int64 { return iv.duration.Max() }

func (iv *intervalVar) MustBePerformed() bool { return iv.performed.IsTrue() }
func (iv *intervalVar) MayBePerformed() bool  { return !iv.performed.IsFalse() }

// guard runs setter; if it fails and the interval may legitimately not be
// performed, the contradiction is absorbed into performed=false instead
// of propagating up (spec.md §4.4: "setters on an optional interval whose
// performed is still undecided never fail").
func (iv *intervalVar) guard(s *Solver, setter func() error) error {
	if iv.performed.IsFalse() {
		return nil
	}
	if err := setter(); err != nil {
		if iv.MustBePerformed() {
			return err
		}
		return iv.performed.SetFalse(s)
	}
	return nil
}

func (iv *intervalVar) SetStartMin(s *Solver, m int64) error {
	return iv.guard(s, func() error { return iv.start.SetMin(s, m) })
}
func (iv *intervalVar) SetStartMax(s *Solver, m int64) error {
	return iv.guard(s, func() error { return iv.start.SetMax(s, m) })
}
func (iv *intervalVar) SetEndMin(s *Solver, m int64) error {
	return iv.guard(s, func() error { return iv.end.SetMin(s, m) })
}
func (iv *intervalVar) SetEndMax(s *Solver, m int64) error {
	return iv.guard(s, func() error { return iv.end.SetMax(s, m) })
}
func (iv *intervalVar) SetDurationMin(s *Solver, m int64) error {
	return iv.guard(s, func() error { return iv.duration.SetMin(s, m) })
}
func (iv *intervalVar) SetDurationMax(s *Solver, m int64) error {
	return iv.guard(s, func() error { return iv.duration.SetMax(s, m) })
}

func (iv *intervalVar) SetPerformed(s *Solver, performed bool) error {
	if performed {
		return iv.performed.SetTrue(s)
	}
	return iv.performed.SetFalse(s)
}

func (iv *intervalVar) WhenStartRange(d Demon)    { iv.start.WhenRange(d) }
func (iv *intervalVar) WhenEndRange(d Demon)      { iv.end.WhenRange(d) }
func (iv *intervalVar) WhenDurationRange(d Demon) { iv.duration.WhenRange(d) }
func (iv *intervalVar) WhenPerformedBound(d Demon) { iv.performed.WhenBound(d) }

// push enforces start + duration = end by tightening each storage to the
// intersection implied by the other two, using saturating arithmetic
// (spec.md §4.4). If the tightening would empty a domain, it is absorbed
// into performed=false unless performed is already required true, in
// which case it fails the solver.
func (iv *intervalVar) push(s *Solver) error {
	sMin, sMax := iv.start.Min(), iv.start.Max()
	dMin, dMax := iv.duration.Min(), iv.duration.Max()
	eMin, eMax := iv.end.Min(), iv.end.Max()

	newEMin := CapAdd(sMin, dMin)
	newEMax := CapAdd(sMax, dMax)
	newSMin := CapSub(eMin, dMax)
	newSMax := CapSub(eMax, dMin)
	newDMin := CapSub(eMin, sMax)
	newDMax := CapSub(eMax, sMin)

	return iv.guard(s, func() error {
		if newSMin > newSMax || newDMin > newDMax || newEMin > newEMax {
			return Fail("cp: interval %s has no consistent start/duration/end", iv.Name())
		}
		if err := iv.start.SetRange(s, newSMin, newSMax); err != nil {
			return err
		}
		if err := iv.duration.SetRange(s, newDMin, newDMax); err != nil {
			return err
		}
		return iv.end.SetRange(s, newEMin, newEMax)
	})
}

// fixedConstantInterval is the FixedConstant variant: every field is a
// literal constant, and no reversible storage exists at all. Any setter
// that would contradict the constants fails immediately.
type fixedConstantInterval struct {
	PropagationBaseObject
	start, duration, end int64
	performed             bool
}

// MakeFixedInterval builds a fully constant interval.
func (s *Solver) MakeFixedInterval(start, duration int64, performed bool, name string) IntervalVar {
	f := &fixedConstantInterval{
		PropagationBaseObject: PropagationBaseObject{name: name, solver: s},
		start:                 start,
		duration:              duration,
		end:                   CapAdd(start, duration),
		performed:             performed,
	}
	s.trackInterval(f)
	return f
}

func (f *fixedConstantInterval) StartMin() int64    { return f.start }
func (f *fixedConstantInterval) StartMax() int64    { return f.start }
func (f *fixedConstantInterval) EndMin() int64      { return f.end }
func (f *fixedConstantInterval) EndMax() int64      { return f.end }
func (f *fixedConstantInterval) DurationMin() int64 { return f.duration }
func (f *fixedConstantInterval) DurationMax() int64 { return f.duration }
func (f *fixedConstantInterval) MustBePerformed() bool { return f.performed }
func (f *fixedConstantInterval) MayBePerformed() bool  { return f.performed }

func (f *fixedConstantInterval) checkConst(s *Solver, ok bool) error {
	if ok {
		return nil
	}
	return Fail("cp: setter on constant interval %s contradicts its fixed value", f.Name())
}

func (f *fixedConstantInterval) SetStartMin(s *Solver, m int64) error { return f.checkConst(s, m <= f.start) }
func (f *fixedConstantInterval) SetStartMax(s *Solver, m int64) error { return f.checkConst(s, m >= f.start) }
func (f *fixedConstantInterval) SetEndMin(s *Solver, m int64) error   { return f.checkConst(s, m <= f.end) }
func (f *fixedConstantInterval) SetEndMax(s *Solver, m int64) error   { return f.checkConst(s, m >= f.end) }
func (f *fixedConstantInterval) SetDurationMin(s *Solver, m int64) error {
	return f.checkConst(s, m <= f.duration)
}
func (f *fixedConstantInterval) SetDurationMax(s *Solver, m int64) error {
	return f.checkConst(s, m >= f.duration)
}
func (f *fixedConstantInterval) SetPerformed(s *Solver, performed bool) error {
	return f.checkConst(s, performed == f.performed)
}
func (f *fixedConstantInterval) WhenStartRange(d Demon)     {}
func (f *fixedConstantInterval) WhenEndRange(d Demon)       {}
func (f *fixedConstantInterval) WhenDurationRange(d Demon)  {}
func (f *fixedConstantInterval) WhenPerformedBound(d Demon) {}
