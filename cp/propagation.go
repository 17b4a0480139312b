package cp

import "fmt"

// Failure is the error type returned by Fail and propagated through every
// setter and propagation method. It carries the name of the object that
// detected the contradiction, which mirrors the teacher's status-string
// reporting in Solver.OutputModel without needing a non-local exception:
// Go's explicit error return is strategy (b) of the design notes (a
// Result/sum-type threaded through every call, with a single match at the
// search choice point).
type Failure struct {
	Reason string
}

func (f *Failure) Error() string {
	if f.Reason == "" {
		return "propagation failure"
	}
	return f.Reason
}

// Fail returns a Failure with the given reason, formatted like fmt.Errorf.
func Fail(format string, args ...interface{}) error {
	return &Failure{Reason: fmt.Sprintf(format, args...)}
}

// PropagationBaseObject is embedded by every object whose state lives on
// the trail and that can be enqueued for propagation: it owns a name and
// a back-reference to the solver that allocated it, matching the
// teacher's convention that every long-lived object is reachable from,
// and only from, the Solver that created it (no cross-owning cycles).
type PropagationBaseObject struct {
	name   string
	solver *Solver
}

// Name returns the object's name, generating and caching an anonymous one
// on first use if none was given at construction.
func (p *PropagationBaseObject) Name() string {
	if p.name == "" {
		p.name = p.solver.nextAnonName()
	}
	return p.name
}

// Solver returns the owning solver.
func (p *PropagationBaseObject) Solver() *Solver { return p.solver }

// A Constraint owns the demons it registers on its variables and knows
// how to seed an initial round of pruning.
type Constraint interface {
	// Post registers this constraint's demons on the variables it
	// observes. Called once, when the constraint is added to the solver.
	Post(s *Solver) error
	// InitialPropagate performs the constraint's first pruning pass,
	// independent of any later variable event.
	InitialPropagate(s *Solver) error
}

// DemonHandle wraps a Demon with a reversible inhibition switch: an
// inhibited demon is skipped until a backtrack past the inhibiting level
// re-enables it. This is how BooleanAnd/BooleanOr stop reacting to
// already-fixed inputs without removing the registration itself
// (spec.md §4.2, §4.6).
// DemonHandle itself implements Demon, so it can be registered directly
// with WhenRange/WhenBound/WhenDomain.
type DemonHandle struct {
	demon     Demon
	inhibited Switch
}

// NewDemonHandle wraps d for reversible inhibition.
func NewDemonHandle(d Demon) *DemonHandle {
	return &DemonHandle{demon: d}
}

// Inhibit reversibly disables the wrapped demon.
func (h *DemonHandle) Inhibit(s *Solver) {
	s.trail.SaveAndSet(&h.inhibited)
}

// Inhibited reports whether the wrapped demon currently skips execution.
func (h *DemonHandle) Inhibited() bool { return h.inhibited.Value() }

// Run executes the wrapped demon, or does nothing if inhibited.
func (h *DemonHandle) Run(s *Solver) error {
	if h.inhibited.Value() {
		return nil
	}
	return h.demon.Run(s)
}

// Priority returns the wrapped demon's priority.
func (h *DemonHandle) Priority() Priority { return h.demon.Priority() }

// funcDemon adapts a plain function plus a fixed priority into a Demon,
// the Go analogue of the teacher's lightweight closures-as-watchers
// (solver/watcher.go attaches a *Clause directly rather than a method
// value; here constraints attach closures over their own state).
type funcDemon struct {
	priority Priority
	run      func(s *Solver) error
}

func (d *funcDemon) Run(s *Solver) error   { return d.run(s) }
func (d *funcDemon) Priority() Priority    { return d.priority }

// NewDemon builds a Demon from a plain function at the given priority.
func NewDemon(priority Priority, run func(s *Solver) error) Demon {
	return &funcDemon{priority: priority, run: run}
}
