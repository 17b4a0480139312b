package cp

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Solver is the top-level owner of every variable, interval, sequence,
// constraint and cache allocated through its factories (spec.md §3
// "Ownership"). It is single-threaded and cooperative: there is no
// parallelism inside propagation (spec.md §5); any multi-solver fan-out
// is the caller's responsibility, one independent Solver per worker.
type Solver struct {
	// Verbose mirrors the teacher's Solver.Verbose switch
	// (crillab-gophersat/solver/solver.go): when true, Log is raised to
	// Debug level.
	Verbose bool

	Log *logrus.Logger

	params Parameters
	trail  *Trail
	queue  *Queue
	cache  *ModelCache

	vars      []*IntVar
	intervals []IntervalVar
	sequences []*SequenceVar
	constrs   []Constraint

	anonCounter int
	started     bool // true once PushLevel has first been called; gates cache inserts
}

// NewSolver returns a fresh Solver configured by params.
func NewSolver(params Parameters) *Solver {
	log := logrus.New()
	log.SetLevel(logrus.InfoLevel)
	return &Solver{
		Log:    log,
		params: params,
		trail:  NewTrailWithCapacity(params.TrailChunkSize),
		queue:  NewQueue(),
		cache:  newModelCache(params.CacheInitialSize),
	}
}

// Parameters returns the configuration this solver was built with.
func (s *Solver) Parameters() Parameters { return s.params }

// Trail exposes the underlying reversible trail, for callers driving
// their own search choice points.
func (s *Solver) Trail() *Trail { return s.trail }

func (s *Solver) nextAnonName() string {
	s.anonCounter++
	return "v#" + uuid.New().String()[:8]
}

func (s *Solver) setVerboseLevel() {
	if s.Verbose {
		s.Log.SetLevel(logrus.DebugLevel)
	}
}

// enqueueDemon routes d to the normal or delayed FIFO according to its
// priority (var-priority demons are pushed directly via EnqueueVar by
// their owning variable, never through this path).
func (s *Solver) enqueueDemon(d Demon) {
	switch d.Priority() {
	case PriorityDelayed:
		s.queue.EnqueueDelayed(d)
	default:
		s.queue.Enqueue(d)
	}
}

// NewIntVar creates and returns an owned integer variable.
func (s *Solver) NewIntVar(lo, hi int64, name string) *IntVar {
	v := newIntVar(s, lo, hi, name)
	s.vars = append(s.vars, v)
	return v
}

// NewBoolVar creates and returns an owned boolean variable.
func (s *Solver) NewBoolVar(name string) *BoolVar {
	b := newBoolVar(s, name)
	s.vars = append(s.vars, b.IntVar)
	return b
}

// NewConst returns an IntVar whose domain is the single value v.
func (s *Solver) NewConst(v int64) *IntVar {
	return s.NewIntVar(v, v, "")
}

// FreezeQueue suspends propagation draining for the duration of a batch
// of otherwise-independent updates.
func (s *Solver) FreezeQueue() { s.queue.FreezeQueue() }

// UnfreezeQueue lifts one freeze level and, if none remain, drains to
// fixpoint.
func (s *Solver) UnfreezeQueue() error { return s.queue.UnfreezeQueue(s) }

// Post registers c's demons and runs its initial propagation pass. It is
// the solver-level equivalent of the teacher's watchClause: a constraint
// is not "live" until Post has run.
func (s *Solver) Post(c Constraint) error {
	s.constrs = append(s.constrs, c)
	s.FreezeQueue()
	if err := c.Post(s); err != nil {
		_ = s.UnfreezeQueue()
		return err
	}
	if err := c.InitialPropagate(s); err != nil {
		_ = s.UnfreezeQueue()
		return err
	}
	return s.UnfreezeQueue()
}

// Propagate drains the queue to a fixpoint, or returns the Failure that
// stopped it. It is safe to call when the queue is already empty (a
// no-op returning nil).
func (s *Solver) Propagate() error {
	s.setVerboseLevel()
	err := s.queue.ExecuteAll(s)
	if err != nil {
		s.Log.WithError(err).Debug("propagation failed")
	}
	return err
}

// PushLevel marks a new backtrack point on the underlying trail and
// records that search has begun, which stops further ModelCache inserts
// (spec.md §4.9: "Inserts are rejected silently once the solver has
// entered search").
func (s *Solver) PushLevel() {
	s.started = true
	s.trail.PushLevel()
}

// PopTo backtracks the trail to level and clears any pending propagation
// (spec.md §4.2: Fail unwinds the queue; the same clearing applies to a
// caller-driven backtrack that didn't go through a Fail).
func (s *Solver) PopTo(level int) {
	s.trail.PopTo(level)
	s.queue.Clear()
}

// CurrentLevel returns the current backtrack depth.
func (s *Solver) CurrentLevel() int { return s.trail.CurrentLevel() }

// IntVars returns every integer/boolean variable this solver owns, in
// creation order.
func (s *Solver) IntVars() []*IntVar { return s.vars }

// Intervals returns every interval variable this solver owns.
func (s *Solver) Intervals() []IntervalVar { return s.intervals }

// trackInterval registers an interval variable as solver-owned, used by
// factories in interval.go so Intervals() can enumerate them.
func (s *Solver) trackInterval(iv IntervalVar) { s.intervals = append(s.intervals, iv) }
