package cp

// Interval views are zero-cost decorators: they contain no storage of
// their own and delegate every query and mutation to an underlying
// IntervalVar, rewriting it as needed (spec.md §4.4, design notes). They
// deliberately do not embed intervalVar or reuse its storage.

// mirrorInterval negates an interval's start/end around zero, preserving
// duration. kMinValidValue/kMaxValidValue are symmetric around zero so
// mirroring is always exact.
type mirrorInterval struct {
	PropagationBaseObject
	under IntervalVar
}

// MakeMirrorInterval returns a view of under negated around zero.
func (s *Solver) MakeMirrorInterval(under IntervalVar) IntervalVar {
	return &mirrorInterval{PropagationBaseObject: PropagationBaseObject{name: under.Name() + "_mirror", solver: s}, under: under}
}

func (m *mirrorInterval) StartMin() int64    { return -m.under.EndMax() }
func (m *mirrorInterval) StartMax() int64    { return -m.under.EndMin() }
func (m *mirrorInterval) EndMin() int64      { return -m.under.StartMax() }
func (m *mirrorInterval) EndMax() int64      { return -m.under.StartMin() }
func (m *mirrorInterval) DurationMin() int64 { return m.under.DurationMin() }
func (m *mirrorInterval) DurationMax() int64 { return m.under.DurationMax() }
func (m *mirrorInterval) MustBePerformed() bool { return m.under.MustBePerformed() }
func (m *mirrorInterval) MayBePerformed() bool  { return m.under.MayBePerformed() }

func (m *mirrorInterval) SetStartMin(s *Solver, v int64) error { return m.under.SetEndMax(s, -v) }
func (m *mirrorInterval) SetStartMax(s *Solver, v int64) error { return m.under.SetEndMin(s, -v) }
func (m *mirrorInterval) SetEndMin(s *Solver, v int64) error   { return m.under.SetStartMax(s, -v) }
func (m *mirrorInterval) SetEndMax(s *Solver, v int64) error   { return m.under.SetStartMin(s, -v) }
func (m *mirrorInterval) SetDurationMin(s *Solver, v int64) error { return m.under.SetDurationMin(s, v) }
func (m *mirrorInterval) SetDurationMax(s *Solver, v int64) error { return m.under.SetDurationMax(s, v) }
func (m *mirrorInterval) SetPerformed(s *Solver, performed bool) error {
	return m.under.SetPerformed(s, performed)
}
func (m *mirrorInterval) WhenStartRange(d Demon)     { m.under.WhenEndRange(d) }
func (m *mirrorInterval) WhenEndRange(d Demon)       { m.under.WhenStartRange(d) }
func (m *mirrorInterval) WhenDurationRange(d Demon)  { m.under.WhenDurationRange(d) }
func (m *mirrorInterval) WhenPerformedBound(d Demon) { m.under.WhenPerformedBound(d) }

// relaxedInterval implements both RelaxedMin and RelaxedMax: when
// relaxMax is false (RelaxedMin), the min side of start/end is clamped to
// MinValidValue whenever the underlying interval may be performed, and
// SetStartMin/SetEndMin are hard programming errors. When relaxMax is
// true (RelaxedMax) the symmetric max side is relaxed instead.
type relaxedInterval struct {
	PropagationBaseObject
	under    IntervalVar
	relaxMax bool
}

// MakeRelaxedMinInterval relaxes under's min side to MinValidValue
// whenever under may be performed.
func (s *Solver) MakeRelaxedMinInterval(under IntervalVar) IntervalVar {
	return &relaxedInterval{PropagationBaseObject: PropagationBaseObject{name: under.Name() + "_relaxedMin", solver: s}, under: under}
}

// MakeRelaxedMaxInterval relaxes under's max side to MaxValidValue
// whenever under may be performed.
func (s *Solver) MakeRelaxedMaxInterval(under IntervalVar) IntervalVar {
	return &relaxedInterval{PropagationBaseObject: PropagationBaseObject{name: under.Name() + "_relaxedMax", solver: s}, under: under, relaxMax: true}
}

func (r *relaxedInterval) StartMin() int64 {
	if !r.relaxMax && r.under.MayBePerformed() {
		return MinValidValue
	}
	return r.under.StartMin()
}
func (r *relaxedInterval) StartMax() int64 {
	if r.relaxMax && r.under.MayBePerformed() {
		return MaxValidValue
	}
	return r.under.StartMax()
}
func (r *relaxedInterval) EndMin() int64 {
	if !r.relaxMax && r.under.MayBePerformed() {
		return MinValidValue
	}
	return r.under.EndMin()
}
func (r *relaxedInterval) EndMax() int64 {
	if r.relaxMax && r.under.MayBePerformed() {
		return MaxValidValue
	}
	return r.under.EndMax()
}
func (r *relaxedInterval) DurationMin() int64 { return r.under.DurationMin() }
func (r *relaxedInterval) DurationMax() int64 { return r.under.DurationMax() }
func (r *relaxedInterval) MustBePerformed() bool { return r.under.MustBePerformed() }
func (r *relaxedInterval) MayBePerformed() bool  { return r.under.MayBePerformed() }

func (r *relaxedInterval) SetStartMin(s *Solver, v int64) error {
	if !r.relaxMax {
		panic("cp: SetStartMin is a programming error on a RelaxedMin interval view")
	}
	return r.under.SetStartMin(s, v)
}
func (r *relaxedInterval) SetStartMax(s *Solver, v int64) error {
	if r.relaxMax {
		panic("cp: SetStartMax is a programming error on a RelaxedMax interval view")
	}
	return r.under.SetStartMax(s, v)
}
func (r *relaxedInterval) SetEndMin(s *Solver, v int64) error {
	if !r.relaxMax {
		panic("cp: SetEndMin is a programming error on a RelaxedMin interval view")
	}
	return r.under.SetEndMin(s, v)
}
func (r *relaxedInterval) SetEndMax(s *Solver, v int64) error {
	if r.relaxMax {
		panic("cp: SetEndMax is a programming error on a RelaxedMax interval view")
	}
	return r.under.SetEndMax(s, v)
}
func (r *relaxedInterval) SetDurationMin(s *Solver, v int64) error { return r.under.SetDurationMin(s, v) }
func (r *relaxedInterval) SetDurationMax(s *Solver, v int64) error { return r.under.SetDurationMax(s, v) }
func (r *relaxedInterval) SetPerformed(s *Solver, performed bool) error {
	return r.under.SetPerformed(s, performed)
}
func (r *relaxedInterval) WhenStartRange(d Demon)     { r.under.WhenStartRange(d) }
func (r *relaxedInterval) WhenEndRange(d Demon)       { r.under.WhenEndRange(d) }
func (r *relaxedInterval) WhenDurationRange(d Demon)  { r.under.WhenDurationRange(d) }
func (r *relaxedInterval) WhenPerformedBound(d Demon) { r.under.WhenPerformedBound(d) }

// syncedInterval implements the four Start/End-Synced views: a derived,
// fixed-duration interval whose driven edge (its start if driveEnd is
// false, its end if driveEnd is true) tracks (anchor + offset), where the
// anchor is under's start if fromEnd is false and under's end if fromEnd
// is true; the other edge is computed from the fixed duration.
type syncedInterval struct {
	PropagationBaseObject
	under    IntervalVar
	offset   int64
	duration int64
	fromEnd  bool // anchor is under's End, not Start
	driveEnd bool // the synced edge we expose directly is End, not Start
}

func (s *Solver) makeSynced(under IntervalVar, offset, duration int64, fromEnd, driveEnd bool, suffix string) IntervalVar {
	return &syncedInterval{
		PropagationBaseObject: PropagationBaseObject{name: under.Name() + suffix, solver: s},
		under:                 under,
		offset:                offset,
		duration:              duration,
		fromEnd:               fromEnd,
		driveEnd:              driveEnd,
	}
}

// MakeStartSyncedOnStart derives a fixed-duration interval whose start is
// under.StartMin/Max + offset.
func (s *Solver) MakeStartSyncedOnStart(under IntervalVar, offset, duration int64) IntervalVar {
	return s.makeSynced(under, offset, duration, false, false, "_startSyncedOnStart")
}

// MakeStartSyncedOnEnd derives a fixed-duration interval whose start is
// under.EndMin/Max + offset.
func (s *Solver) MakeStartSyncedOnEnd(under IntervalVar, offset, duration int64) IntervalVar {
	return s.makeSynced(under, offset, duration, true, false, "_startSyncedOnEnd")
}

// MakeEndSyncedOnStart derives a fixed-duration interval whose end is
// under.StartMin/Max + offset.
func (s *Solver) MakeEndSyncedOnStart(under IntervalVar, offset, duration int64) IntervalVar {
	return s.makeSynced(under, offset, duration, false, true, "_endSyncedOnStart")
}

// MakeEndSyncedOnEnd derives a fixed-duration interval whose end is
// under.EndMin/Max + offset.
func (s *Solver) MakeEndSyncedOnEnd(under IntervalVar, offset, duration int64) IntervalVar {
	return s.makeSynced(under, offset, duration, true, true, "_endSyncedOnEnd")
}

func (y *syncedInterval) anchorMin() int64 {
	if y.fromEnd {
		return y.under.EndMin()
	}
	return y.under.StartMin()
}
func (y *syncedInterval) anchorMax() int64 {
	if y.fromEnd {
		return y.under.EndMax()
	}
	return y.under.StartMax()
}
func (y *syncedInterval) setAnchorMin(s *Solver, v int64) error {
	if y.fromEnd {
		return y.under.SetEndMin(s, v)
	}
	return y.under.SetStartMin(s, v)
}
func (y *syncedInterval) setAnchorMax(s *Solver, v int64) error {
	if y.fromEnd {
		return y.under.SetEndMax(s, v)
	}
	return y.under.SetStartMax(s, v)
}

func (y *syncedInterval) drivenMin() int64 { return y.anchorMin() + y.offset }
func (y *syncedInterval) drivenMax() int64 { return y.anchorMax() + y.offset }

func (y *syncedInterval) StartMin() int64 {
	if !y.driveEnd {
		return y.drivenMin()
	}
	return y.drivenMin() - y.duration
}
func (y *syncedInterval) StartMax() int64 {
	if !y.driveEnd {
		return y.drivenMax()
	}
	return y.drivenMax() - y.duration
}
func (y *syncedInterval) EndMin() int64 {
	if y.driveEnd {
		return y.drivenMin()
	}
	return y.drivenMin() + y.duration
}
func (y *syncedInterval) EndMax() int64 {
	if y.driveEnd {
		return y.drivenMax()
	}
	return y.drivenMax() + y.duration
}
func (y *syncedInterval) DurationMin() int64 { return y.duration }
func (y *syncedInterval) DurationMax() int64 { return y.duration }
func (y *syncedInterval) MustBePerformed() bool { return y.under.MustBePerformed() }
func (y *syncedInterval) MayBePerformed() bool  { return y.under.MayBePerformed() }

func (y *syncedInterval) SetStartMin(s *Solver, v int64) error {
	if !y.driveEnd {
		return y.setAnchorMin(s, v-y.offset)
	}
	return y.SetEndMin(s, v+y.duration)
}
func (y *syncedInterval) SetStartMax(s *Solver, v int64) error {
	if !y.driveEnd {
		return y.setAnchorMax(s, v-y.offset)
	}
	return y.SetEndMax(s, v+y.duration)
}
func (y *syncedInterval) SetEndMin(s *Solver, v int64) error {
	if y.driveEnd {
		return y.setAnchorMin(s, v-y.offset)
	}
	return y.SetStartMin(s, v-y.duration)
}
func (y *syncedInterval) SetEndMax(s *Solver, v int64) error {
	if y.driveEnd {
		return y.setAnchorMax(s, v-y.offset)
	}
	return y.SetStartMax(s, v-y.duration)
}
func (y *syncedInterval) SetDurationMin(s *Solver, v int64) error {
	if v > y.duration {
		return Fail("cp: synced interval %s has fixed duration %d, cannot raise min to %d", y.Name(), y.duration, v)
	}
	return nil
}
func (y *syncedInterval) SetDurationMax(s *Solver, v int64) error {
	if v < y.duration {
		return Fail("cp: synced interval %s has fixed duration %d, cannot lower max to %d", y.Name(), y.duration, v)
	}
	return nil
}
func (y *syncedInterval) SetPerformed(s *Solver, performed bool) error {
	return y.under.SetPerformed(s, performed)
}
func (y *syncedInterval) WhenStartRange(d Demon) {
	if y.fromEnd {
		y.under.WhenEndRange(d)
	} else {
		y.under.WhenStartRange(d)
	}
}
func (y *syncedInterval) WhenEndRange(d Demon) { y.WhenStartRange(d) }
func (y *syncedInterval) WhenDurationRange(d Demon)  {}
func (y *syncedInterval) WhenPerformedBound(d Demon) { y.under.WhenPerformedBound(d) }
