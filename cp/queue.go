package cp

// Priority is the priority class of a Demon, mirroring the teacher's
// distinction between var-level unit propagation and clause-level demons
// (solver/watcher.go keeps a separate binary-clause list that is always
// drained before the general watcher list).
type Priority int

const (
	// PriorityVar demons are a variable's own handler; they always run
	// before any constraint demon reacting to that variable's event.
	PriorityVar Priority = iota
	// PriorityNormal is the default priority for constraint demons.
	PriorityNormal
	// PriorityDelayed demons only run once no normal-priority demon is
	// pending, and may themselves refill the normal queue.
	PriorityDelayed
)

// A Demon is a callable registered on a variable event. Run performs the
// demon's propagation step; an error return is treated as Fail.
type Demon interface {
	Run(s *Solver) error
	Priority() Priority
}

// Queue is the propagation scheduler: two FIFOs (normal, delayed) plus
// front-of-queue var-priority pushes, modeled on the teacher's watcher
// list draining discipline (solver.propagateAndSearch drains unit
// propagation before ever picking a new decision literal).
type Queue struct {
	normal   []Demon
	delayed  []Demon
	freezeDepth int
	failed   bool
	failMsg  string
}

// NewQueue returns an empty propagation queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue pushes d to the back of the normal FIFO, deduplicating against
// the item currently at the back (EnqueueIfNotTop semantics): a demon
// that is already the last one queued is not stacked a second time
// adjacent to itself.
func (q *Queue) Enqueue(d Demon) {
	if len(q.normal) > 0 && q.normal[len(q.normal)-1] == d {
		return
	}
	q.normal = append(q.normal, d)
}

// EnqueueDelayed pushes d to the back of the delayed FIFO.
func (q *Queue) EnqueueDelayed(d Demon) {
	if len(q.delayed) > 0 && q.delayed[len(q.delayed)-1] == d {
		return
	}
	q.delayed = append(q.delayed, d)
}

// EnqueueVar pushes a variable's own handler to the front of the normal
// FIFO, so it is the very next demon drained regardless of what is
// already queued (var priority).
func (q *Queue) EnqueueVar(d Demon) {
	q.normal = append([]Demon{d}, q.normal...)
}

// FreezeQueue suspends draining; nested freezes are counted.
func (q *Queue) FreezeQueue() {
	q.freezeDepth++
}

// UnfreezeQueue lifts one level of freeze and, if no freeze remains,
// drains the queue to fixpoint.
func (q *Queue) UnfreezeQueue(s *Solver) error {
	if q.freezeDepth == 0 {
		panic("UnfreezeQueue called without a matching FreezeQueue")
	}
	q.freezeDepth--
	if q.freezeDepth > 0 {
		return nil
	}
	return q.ExecuteAll(s)
}

// frozen reports whether the queue is currently suspended.
func (q *Queue) frozen() bool {
	return q.freezeDepth > 0
}

// ExecuteAll drains normal demons first, interleaving any new normal
// demons pushed during execution; when normal is empty it executes one
// delayed demon (which may refill normal) and repeats, terminating when
// both are empty or Fail is called.
func (q *Queue) ExecuteAll(s *Solver) error {
	if q.frozen() {
		return nil
	}
	for {
		for len(q.normal) > 0 {
			d := q.normal[0]
			q.normal = q.normal[1:]
			if err := d.Run(s); err != nil {
				q.Clear()
				return err
			}
		}
		if len(q.delayed) == 0 {
			return nil
		}
		d := q.delayed[0]
		q.delayed = q.delayed[1:]
		if err := d.Run(s); err != nil {
			q.Clear()
			return err
		}
	}
}

// Clear empties both FIFOs. Called whenever Fail unwinds, so no demon
// ever observes partially propagated state from a failed round.
func (q *Queue) Clear() {
	q.normal = nil
	q.delayed = nil
}
