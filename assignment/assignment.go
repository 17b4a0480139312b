// Package assignment implements the solution-snapshot container of
// spec.md §4.10: a set of non-owning per-variable elements that can be
// stored from a solver's current domains, restored back into it, copied,
// cleared, and serialized to and from the wire Record format defined in
// record.go.
//
// This mirrors constraint_solver/assignment.cc's Assignment class:
// IntVarElement/IntervalVarElement/SequenceVarElement become IntElement/
// IntervalElement/SequenceElement, and AssignmentContainer's Store/
// Restore/Load/Save split is kept, generalized from hash_map<string,E*>
// bookkeeping to a plain Go map since there is no protobuf arena to
// respect here.
package assignment

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/crillab/gophercp/cp"
)

// IntElement is the snapshot of one IntVar: its bounds plus an activated
// flag. A deactivated element is skipped by Store/Restore and compares
// equal to any other deactivated element of the same variable regardless
// of bounds.
type IntElement struct {
	Var    *cp.IntVar
	Min    int64
	Max    int64
	Active bool
}

// IntervalElement is the snapshot of one IntervalVar (spec.md §4.10):
// start/duration/end ranges plus a performed range, bypassed when the
// interval is known unperformed.
type IntervalElement struct {
	Var             cp.IntervalVar
	StartMin        int64
	StartMax        int64
	DurationMin     int64
	DurationMax     int64
	EndMin          int64
	EndMax          int64
	PerformedMin    int64
	PerformedMax    int64
	Active          bool
}

// SequenceElement is the snapshot of one SequenceVar: the ranking decided
// so far, by original interval index.
type SequenceElement struct {
	Var      *cp.SequenceVar
	Sequence []int
	Active   bool
}

// Assignment holds elements for a fixed set of variables registered via
// AddInt/AddInterval/AddSequence/SetObjective. It holds no ownership over
// the variables themselves (spec.md §3 "Ownership": the assignment holds
// non-owning references).
type Assignment struct {
	solver *cp.Solver
	Log    *logrus.Logger

	ints      []IntElement
	intervals []IntervalElement
	sequences []SequenceElement
	objective *IntElement
}

// NewAssignment returns an empty assignment over s's variables.
func NewAssignment(s *cp.Solver) *Assignment {
	return &Assignment{solver: s, Log: s.Log}
}

// AddInt registers v, activated, with sentinel bounds until the next
// Store.
func (a *Assignment) AddInt(v *cp.IntVar) {
	a.ints = append(a.ints, IntElement{Var: v, Min: cp.MinInt64, Max: cp.MaxInt64, Active: true})
}

// AddInterval registers v, activated.
func (a *Assignment) AddInterval(v cp.IntervalVar) {
	a.intervals = append(a.intervals, IntervalElement{
		Var: v, StartMin: cp.MinInt64, StartMax: cp.MaxInt64,
		DurationMin: cp.MinInt64, DurationMax: cp.MaxInt64,
		EndMin: cp.MinInt64, EndMax: cp.MaxInt64,
		PerformedMin: 0, PerformedMax: 1, Active: true,
	})
}

// AddSequence registers v, activated.
func (a *Assignment) AddSequence(v *cp.SequenceVar) {
	a.sequences = append(a.sequences, SequenceElement{Var: v, Active: true})
}

// SetObjective designates v as the (optional) objective element.
func (a *Assignment) SetObjective(v *cp.IntVar) {
	a.objective = &IntElement{Var: v, Min: cp.MinInt64, Max: cp.MaxInt64, Active: true}
}

// HasObjective reports whether an objective element was set.
func (a *Assignment) HasObjective() bool { return a.objective != nil }

// Store snapshots every active element from its variable's current
// bounds. Interval elements bypass start/duration/end when the interval
// is certainly unperformed (PerformedMax == 0), per spec.md §4.10.
func (a *Assignment) Store() {
	for i := range a.ints {
		e := &a.ints[i]
		if !e.Active {
			continue
		}
		e.Min, e.Max = e.Var.Min(), e.Var.Max()
	}
	for i := range a.intervals {
		e := &a.intervals[i]
		if !e.Active {
			continue
		}
		if e.Var.MustBePerformed() {
			e.PerformedMin, e.PerformedMax = 1, 1
		} else if e.Var.MayBePerformed() {
			e.PerformedMin, e.PerformedMax = 0, 1
		} else {
			e.PerformedMin, e.PerformedMax = 0, 0
		}
		if e.PerformedMax != 0 {
			e.StartMin, e.StartMax = e.Var.StartMin(), e.Var.StartMax()
			e.DurationMin, e.DurationMax = e.Var.DurationMin(), e.Var.DurationMax()
			e.EndMin, e.EndMax = e.Var.EndMin(), e.Var.EndMax()
		}
	}
	for i := range a.sequences {
		e := &a.sequences[i]
		if !e.Active {
			continue
		}
		e.Sequence = e.Var.FillSequence()
	}
	if a.objective != nil && a.objective.Active {
		a.objective.Min, a.objective.Max = a.objective.Var.Min(), a.objective.Var.Max()
	}
}

// Restore applies every active element back onto its variable, within a
// FreezeQueue/UnfreezeQueue block so the batch of setters is applied
// atomically (spec.md §4.10).
func (a *Assignment) Restore() error {
	a.solver.FreezeQueue()
	if err := a.restoreLocked(); err != nil {
		_ = a.solver.UnfreezeQueue()
		return err
	}
	return a.solver.UnfreezeQueue()
}

func (a *Assignment) restoreLocked() error {
	for _, e := range a.ints {
		if !e.Active {
			continue
		}
		if err := e.Var.SetRange(a.solver, e.Min, e.Max); err != nil {
			return err
		}
	}
	for _, e := range a.intervals {
		if !e.Active {
			continue
		}
		if e.PerformedMin == e.PerformedMax {
			if err := e.Var.SetPerformed(a.solver, e.PerformedMin != 0); err != nil {
				return err
			}
		}
		if e.PerformedMax != 0 {
			if err := e.Var.SetStartMin(a.solver, e.StartMin); err != nil {
				return err
			}
			if err := e.Var.SetStartMax(a.solver, e.StartMax); err != nil {
				return err
			}
			if err := e.Var.SetDurationMin(a.solver, e.DurationMin); err != nil {
				return err
			}
			if err := e.Var.SetDurationMax(a.solver, e.DurationMax); err != nil {
				return err
			}
			if err := e.Var.SetEndMin(a.solver, e.EndMin); err != nil {
				return err
			}
			if err := e.Var.SetEndMax(a.solver, e.EndMax); err != nil {
				return err
			}
		}
	}
	for _, e := range a.sequences {
		if !e.Active {
			continue
		}
		for _, idx := range e.Sequence {
			if err := e.Var.RankFirst(a.solver, idx); err != nil {
				return err
			}
		}
	}
	if a.objective != nil && a.objective.Active {
		if err := a.objective.Var.SetRange(a.solver, a.objective.Min, a.objective.Max); err != nil {
			return err
		}
	}
	return nil
}

// Copy returns a deep copy of a's elements over the same variables.
func (a *Assignment) Copy() *Assignment {
	c := &Assignment{solver: a.solver, Log: a.Log}
	c.ints = append([]IntElement(nil), a.ints...)
	c.intervals = append([]IntervalElement(nil), a.intervals...)
	c.sequences = make([]SequenceElement, len(a.sequences))
	for i, e := range a.sequences {
		c.sequences[i] = SequenceElement{Var: e.Var, Active: e.Active, Sequence: append([]int(nil), e.Sequence...)}
	}
	if a.objective != nil {
		obj := *a.objective
		c.objective = &obj
	}
	return c
}

// Clear drops every registered element.
func (a *Assignment) Clear() {
	a.ints = nil
	a.intervals = nil
	a.sequences = nil
	a.objective = nil
}

// Equal reports whether a and b hold element-wise equal snapshots for the
// same variables, in the same order (spec.md §4.10): identical var,
// identical activated flag, identical bounds — except two deactivated
// elements always compare equal regardless of bounds.
func (a *Assignment) Equal(b *Assignment) bool {
	if len(a.ints) != len(b.ints) || len(a.intervals) != len(b.intervals) || len(a.sequences) != len(b.sequences) {
		return false
	}
	for i := range a.ints {
		if !intElementsEqual(a.ints[i], b.ints[i]) {
			return false
		}
	}
	for i := range a.intervals {
		if !intervalElementsEqual(a.intervals[i], b.intervals[i]) {
			return false
		}
	}
	for i := range a.sequences {
		if !sequenceElementsEqual(a.sequences[i], b.sequences[i]) {
			return false
		}
	}
	return true
}

func intElementsEqual(x, y IntElement) bool {
	if x.Var != y.Var || x.Active != y.Active {
		return false
	}
	if !x.Active {
		return true
	}
	return x.Min == y.Min && x.Max == y.Max
}

func intervalElementsEqual(x, y IntervalElement) bool {
	if x.Var != y.Var || x.Active != y.Active {
		return false
	}
	if !x.Active {
		return true
	}
	return x.StartMin == y.StartMin && x.StartMax == y.StartMax &&
		x.DurationMin == y.DurationMin && x.DurationMax == y.DurationMax &&
		x.EndMin == y.EndMin && x.EndMax == y.EndMax &&
		x.PerformedMin == y.PerformedMin && x.PerformedMax == y.PerformedMax
}

func sequenceElementsEqual(x, y SequenceElement) bool {
	if x.Var != y.Var || x.Active != y.Active {
		return false
	}
	if !x.Active {
		return true
	}
	if len(x.Sequence) != len(y.Sequence) {
		return false
	}
	for i := range x.Sequence {
		if x.Sequence[i] != y.Sequence[i] {
			return false
		}
	}
	return true
}

// Save writes the current elements to w as a Record (record.go), YAML
// encoded. I/O failures are wrapped with github.com/pkg/errors so the
// caller sees both the underlying cause and the operation that failed.
func (a *Assignment) Save(w io.Writer) error {
	rec := a.toRecord()
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(rec); err != nil {
		return errors.Wrap(err, "assignment: save")
	}
	return nil
}

// Load reads a Record from r and merges it into the elements already
// registered via AddInt/AddInterval/AddSequence. It returns (false, nil)
// for a well-formed but empty record — spec.md §6's "no data" result —
// and (false, err) for a truncated or unreadable one.
func (a *Assignment) Load(r io.Reader) (bool, error) {
	var rec Record
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&rec); err != nil {
		if err == io.EOF {
			return false, nil
		}
		return false, errors.Wrap(err, "assignment: load")
	}
	if len(rec.IntVars) == 0 && len(rec.Intervals) == 0 && len(rec.Sequences) == 0 && rec.Objective == nil {
		return false, nil
	}
	a.loadInts(rec.IntVars)
	a.loadIntervals(rec.Intervals)
	a.loadSequences(rec.Sequences)
	if rec.Objective != nil && a.objective != nil {
		a.objective.Min, a.objective.Max, a.objective.Active = rec.Objective.Min, rec.Objective.Max, rec.Objective.Active
	}
	return true, nil
}
