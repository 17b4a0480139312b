package cp

// diffn enforces non-overlap between a set of axis-aligned rectangles
// (spec.md §4.8). Each leaf-change demon only records that its box needs
// reinspection; a single delayed demon drains the resulting set so that
// boxes touched several times in one propagation round are re-checked
// once, not once per touch.
type diffn struct {
	PropagationBaseObject
	x, y, dx, dy []*IntVar
	n            int

	dirty []bool
	queue []int

	drainDemon Demon
}

// MakeNonOverlappingRectangles returns a Diffn constraint: no two
// rectangles i != j may share a point in any feasible assignment.
func (s *Solver) MakeNonOverlappingRectangles(x, y, dx, dy []*IntVar) Constraint {
	n := len(x)
	if len(y) != n || len(dx) != n || len(dy) != n {
		panic("cp: non-overlapping rectangles: x, y, dx, dy must have the same length")
	}
	d := &diffn{
		PropagationBaseObject: PropagationBaseObject{solver: s},
		x:                     x,
		y:                     y,
		dx:                    dx,
		dy:                    dy,
		n:                     n,
		dirty:                 make([]bool, n),
	}
	d.drainDemon = NewDemon(PriorityDelayed, d.drain)
	return d
}

func (d *diffn) markDirty(s *Solver, i int) error {
	if d.dirty[i] {
		return nil
	}
	d.dirty[i] = true
	d.queue = append(d.queue, i)
	s.enqueueDemon(d.drainDemon)
	return nil
}

// drain exhaustively processes every box marked dirty, including ones
// marked while this very call is running. Regardless of outcome it
// leaves dirty/queue empty on return, so a Fail never leaves behind a
// box that future markDirty calls would wrongly think is already
// scheduled (the drain demon that would have processed it was itself
// discarded by Queue.Clear on the way out).
func (d *diffn) drain(s *Solver) error {
	defer func() {
		for _, i := range d.queue {
			d.dirty[i] = false
		}
		d.queue = d.queue[:0]
	}()
	for len(d.queue) > 0 {
		i := d.queue[0]
		d.queue = d.queue[1:]
		d.dirty[i] = false
		if err := d.inspect(s, i); err != nil {
			return err
		}
	}
	return d.checkCumulativeRedundancy(s)
}

func overlap1D(aLo, aHi, bLo, bHi int64) bool {
	return aLo < bHi && bLo < aHi
}

// mandatoryRange returns the mandatory occupied interval [StartMax,
// EndMin) of a box along one dimension, the portion of its placement it
// cannot avoid regardless of how start and duration still resolve.
func mandatoryRange(v, dur *IntVar) (lo, hi int64, ok bool) {
	lo = v.Max()
	hi = CapAdd(v.Min(), dur.Min())
	return lo, hi, hi > lo
}

// inspect re-runs techniques 1 and 2 of spec.md §4.8 for box i against
// every other box.
func (d *diffn) inspect(s *Solver, i int) error {
	neighborhood := []int{i}
	loX, hiX := d.x[i].Min(), CapAdd(d.x[i].Max(), d.dx[i].Max())
	loY, hiY := d.y[i].Min(), CapAdd(d.y[i].Max(), d.dy[i].Max())

	for j := 0; j < d.n; j++ {
		if j == i {
			continue
		}
		jLoX, jHiX := d.x[j].Min(), CapAdd(d.x[j].Max(), d.dx[j].Max())
		jLoY, jHiY := d.y[j].Min(), CapAdd(d.y[j].Max(), d.dy[j].Max())
		if !overlap1D(loX, hiX, jLoX, jHiX) || !overlap1D(loY, hiY, jLoY, jHiY) {
			continue
		}
		neighborhood = append(neighborhood, j)
		loX, hiX = minI64(loX, jLoX), maxI64(hiX, jHiX)
		loY, hiY = minI64(loY, jLoY), maxI64(hiY, jHiY)

		if err := d.pushMandatory(s, i, j); err != nil {
			return err
		}
	}

	area := (hiX - loX) * (hiY - loY)
	var minArea int64
	for _, k := range neighborhood {
		minArea = CapAdd(minArea, d.dx[k].Min()*d.dy[k].Min())
	}
	if minArea > area {
		return Fail("cp: non-overlapping rectangles %s: neighborhood of box %d has no room for its mandatory area", d.Name(), i)
	}
	return nil
}

// pushMandatory applies technique 2: if the mandatory parts of i and j
// overlap in both axes the placement is infeasible; if they overlap in
// exactly one axis, the box known to come first on the other axis pushes
// the other box past the end of its own mandatory part.
func (d *diffn) pushMandatory(s *Solver, i, j int) error {
	xLoI, xHiI, okXI := mandatoryRange(d.x[i], d.dx[i])
	xLoJ, xHiJ, okXJ := mandatoryRange(d.x[j], d.dx[j])
	yLoI, yHiI, okYI := mandatoryRange(d.y[i], d.dy[i])
	yLoJ, yHiJ, okYJ := mandatoryRange(d.y[j], d.dy[j])

	overlapX := okXI && okXJ && overlap1D(xLoI, xHiI, xLoJ, xHiJ)
	overlapY := okYI && okYJ && overlap1D(yLoI, yHiI, yLoJ, yHiJ)

	if overlapX && overlapY {
		return Fail("cp: non-overlapping rectangles %s: mandatory parts of boxes %d and %d overlap", d.Name(), i, j)
	}
	if overlapX && okYI && okYJ {
		return d.pushApart(s, d.y[i], yLoI, yHiI, d.y[j], yLoJ, yHiJ)
	}
	if overlapY && okXI && okXJ {
		return d.pushApart(s, d.x[i], xLoI, xHiI, d.x[j], xLoJ, xHiJ)
	}
	return nil
}

// pushApart moves whichever of two non-overlapping mandatory ranges comes
// second to start no earlier than the end of the one that comes first.
func (d *diffn) pushApart(s *Solver, a *IntVar, aLo, aHi int64, b *IntVar, bLo, bHi int64) error {
	switch {
	case aHi <= bLo:
		return b.SetMin(s, aHi)
	case bHi <= aLo:
		return a.SetMin(s, bHi)
	default:
		return nil
	}
}

func (d *diffn) Post(s *Solver) error {
	for i := 0; i < d.n; i++ {
		idx := i
		watch := NewDemon(PriorityNormal, func(s *Solver) error {
			return d.markDirty(s, idx)
		})
		d.x[i].WhenRange(watch)
		d.y[i].WhenRange(watch)
		d.dx[i].WhenRange(watch)
		d.dy[i].WhenRange(watch)
	}
	return nil
}

// checkCumulativeOnAxis is technique 3: project every box's mandatory part
// on pos/extent onto a single resource whose capacity is the current
// bounding box of the other axis, with crossExtent.Min() as each box's
// demand, and run the compulsory-part profile sweep of cumulativeFeasible
// against it (original_source diffn.cc's AddCumulativeConstraint). Using
// Min() as the demand instead of requiring crossExtent to be fully bound
// is the one generalization from the original: it keeps the check sound
// (a lower bound on demand never hides real infeasibility) without
// restricting it to the fully-fixed-size case the original gates it on.
func (d *diffn) checkCumulativeOnAxis(pos, extent, crossPos, crossExtent []*IntVar) error {
	lo := make([]int64, d.n)
	hi := make([]int64, d.n)
	ok := make([]bool, d.n)
	demand := make([]int64, d.n)
	var boundLo, boundHi int64
	for i := 0; i < d.n; i++ {
		lo[i], hi[i], ok[i] = mandatoryRange(pos[i], extent[i])
		demand[i] = crossExtent[i].Min()
		l, h := crossPos[i].Min(), CapAdd(crossPos[i].Max(), crossExtent[i].Max())
		if i == 0 {
			boundLo, boundHi = l, h
		} else {
			boundLo, boundHi = minI64(boundLo, l), maxI64(boundHi, h)
		}
	}
	if !cumulativeFeasible(lo, hi, demand, ok, boundHi-boundLo) {
		return Fail("cp: non-overlapping rectangles %s: cumulative redundancy check failed", d.Name())
	}
	return nil
}

// checkCumulativeRedundancy runs technique 3 on both axes.
func (d *diffn) checkCumulativeRedundancy(s *Solver) error {
	if d.n == 0 {
		return nil
	}
	if err := d.checkCumulativeOnAxis(d.x, d.dx, d.y, d.dy); err != nil {
		return err
	}
	return d.checkCumulativeOnAxis(d.y, d.dy, d.x, d.dx)
}

// InitialPropagate inspects every box once, then runs the cumulative
// redundancy check (technique 3) across the whole set.
func (d *diffn) InitialPropagate(s *Solver) error {
	for i := 0; i < d.n; i++ {
		if err := d.inspect(s, i); err != nil {
			return err
		}
	}
	return d.checkCumulativeRedundancy(s)
}
