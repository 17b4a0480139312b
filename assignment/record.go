package assignment

// Record is the wire format of an Assignment (spec.md §6 "Assignment
// record format"): one block per container, YAML-tagged so
// gopkg.in/yaml.v3 can round-trip it without a schema of its own.
type Record struct {
	IntVars   []IntVarRecord   `yaml:"int_vars,omitempty"`
	Intervals []IntervalRecord `yaml:"intervals,omitempty"`
	Sequences []SequenceRecord `yaml:"sequences,omitempty"`
	Objective *IntVarRecord    `yaml:"objective,omitempty"`
}

// IntVarRecord is one IntVar or Objective row.
type IntVarRecord struct {
	VarID  string `yaml:"var_id"`
	Min    int64  `yaml:"min"`
	Max    int64  `yaml:"max"`
	Active bool   `yaml:"active"`
}

// IntervalRecord is one IntervalVar row.
type IntervalRecord struct {
	VarID        string `yaml:"var_id"`
	StartMin     int64  `yaml:"start_min"`
	StartMax     int64  `yaml:"start_max"`
	DurationMin  int64  `yaml:"duration_min"`
	DurationMax  int64  `yaml:"duration_max"`
	EndMin       int64  `yaml:"end_min"`
	EndMax       int64  `yaml:"end_max"`
	PerformedMin int64  `yaml:"performed_min"`
	PerformedMax int64  `yaml:"performed_max"`
	Active       bool   `yaml:"active"`
}

// SequenceRecord is one SequenceVar row.
type SequenceRecord struct {
	VarID    string `yaml:"var_id"`
	Active   bool   `yaml:"active"`
	Sequence []int  `yaml:"sequence"`
}

func (a *Assignment) toRecord() Record {
	rec := Record{
		IntVars:   make([]IntVarRecord, len(a.ints)),
		Intervals: make([]IntervalRecord, len(a.intervals)),
		Sequences: make([]SequenceRecord, len(a.sequences)),
	}
	for i, e := range a.ints {
		rec.IntVars[i] = IntVarRecord{VarID: e.Var.Name(), Min: e.Min, Max: e.Max, Active: e.Active}
	}
	for i, e := range a.intervals {
		rec.Intervals[i] = IntervalRecord{
			VarID: e.Var.Name(), StartMin: e.StartMin, StartMax: e.StartMax,
			DurationMin: e.DurationMin, DurationMax: e.DurationMax,
			EndMin: e.EndMin, EndMax: e.EndMax,
			PerformedMin: e.PerformedMin, PerformedMax: e.PerformedMax, Active: e.Active,
		}
	}
	for i, e := range a.sequences {
		rec.Sequences[i] = SequenceRecord{VarID: e.Var.Name(), Active: e.Active, Sequence: append([]int(nil), e.Sequence...)}
	}
	if a.objective != nil {
		rec.Objective = &IntVarRecord{VarID: a.objective.Var.Name(), Min: a.objective.Min, Max: a.objective.Max, Active: a.objective.Active}
	}
	return rec
}

// skipReason logs the two "Cannot save/load variables..." quirks of
// assignment.cc's IdToElementMap verbatim as an observable behavior
// (spec.md §9): an empty name or a name clashing with one already seen
// is logged and the record is ignored, not an error.
func (a *Assignment) skipReason(reason, name string) {
	a.Log.WithField("var_id", name).Info("assignment: " + reason + "; record ignored")
}

// loadInts applies rec onto a.ints. The fast path assumes the record was
// produced from a container with the same size and ordering (names match
// positionally); on any mismatch it falls back to a name lookup.
func (a *Assignment) loadInts(rec []IntVarRecord) {
	if len(rec) == len(a.ints) {
		fast := true
		for i, r := range rec {
			if a.ints[i].Var.Name() != r.VarID {
				fast = false
				break
			}
		}
		if fast {
			for i, r := range rec {
				a.ints[i].Min, a.ints[i].Max, a.ints[i].Active = r.Min, r.Max, r.Active
			}
			return
		}
	}
	byName := make(map[string]*IntElement, len(a.ints))
	for i := range a.ints {
		name := a.ints[i].Var.Name()
		if name == "" {
			a.skipReason("cannot save/load variables with empty name", name)
			continue
		}
		if _, dup := byName[name]; dup {
			a.skipReason("cannot save/load variables with duplicate names", name)
			continue
		}
		byName[name] = &a.ints[i]
	}
	for _, r := range rec {
		if r.VarID == "" {
			continue
		}
		if e, ok := byName[r.VarID]; ok {
			e.Min, e.Max, e.Active = r.Min, r.Max, r.Active
		} else {
			a.Log.WithField("var_id", r.VarID).Info("assignment: variable not in assignment; skipping variable")
		}
	}
}

func (a *Assignment) loadIntervals(rec []IntervalRecord) {
	if len(rec) == len(a.intervals) {
		fast := true
		for i, r := range rec {
			if a.intervals[i].Var.Name() != r.VarID {
				fast = false
				break
			}
		}
		if fast {
			for i, r := range rec {
				a.intervals[i] = applyIntervalRecord(a.intervals[i], r)
			}
			return
		}
	}
	byName := make(map[string]*IntervalElement, len(a.intervals))
	for i := range a.intervals {
		name := a.intervals[i].Var.Name()
		if name == "" {
			a.skipReason("cannot save/load variables with empty name", name)
			continue
		}
		if _, dup := byName[name]; dup {
			a.skipReason("cannot save/load variables with duplicate names", name)
			continue
		}
		byName[name] = &a.intervals[i]
	}
	for _, r := range rec {
		if r.VarID == "" {
			continue
		}
		if e, ok := byName[r.VarID]; ok {
			*e = applyIntervalRecord(*e, r)
		} else {
			a.Log.WithField("var_id", r.VarID).Info("assignment: variable not in assignment; skipping variable")
		}
	}
}

func applyIntervalRecord(e IntervalElement, r IntervalRecord) IntervalElement {
	e.StartMin, e.StartMax = r.StartMin, r.StartMax
	e.DurationMin, e.DurationMax = r.DurationMin, r.DurationMax
	e.EndMin, e.EndMax = r.EndMin, r.EndMax
	e.PerformedMin, e.PerformedMax = r.PerformedMin, r.PerformedMax
	e.Active = r.Active
	return e
}

func (a *Assignment) loadSequences(rec []SequenceRecord) {
	if len(rec) == len(a.sequences) {
		fast := true
		for i, r := range rec {
			if a.sequences[i].Var.Name() != r.VarID {
				fast = false
				break
			}
		}
		if fast {
			for i, r := range rec {
				a.sequences[i].Sequence = append([]int(nil), r.Sequence...)
				a.sequences[i].Active = r.Active
			}
			return
		}
	}
	byName := make(map[string]*SequenceElement, len(a.sequences))
	for i := range a.sequences {
		name := a.sequences[i].Var.Name()
		if name == "" {
			a.skipReason("cannot save/load variables with empty name", name)
			continue
		}
		if _, dup := byName[name]; dup {
			a.skipReason("cannot save/load variables with duplicate names", name)
			continue
		}
		byName[name] = &a.sequences[i]
	}
	for _, r := range rec {
		if r.VarID == "" {
			continue
		}
		if e, ok := byName[r.VarID]; ok {
			e.Sequence = append([]int(nil), r.Sequence...)
			e.Active = r.Active
		} else {
			a.Log.WithField("var_id", r.VarID).Info("assignment: variable not in assignment; skipping variable")
		}
	}
}
