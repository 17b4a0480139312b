package cp

// extremeTree is the k-ary MIN/MAX aggregation tree of spec.md §4.5. It
// shares the sumTree's recompute-on-change topology but aggregates with
// min/max instead of add/sub, and its push-down looks for a single child
// able to support the new bound rather than distributing a residual.
type extremeTree struct {
	PropagationBaseObject
	leaves []*IntVar
	target *IntVar
	k      int
	isMax  bool

	levelMin [][]int64
	levelMax [][]int64
}

func newExtremeTree(s *Solver, leaves []*IntVar, target *IntVar, isMax bool, name string) *extremeTree {
	k := s.params.ArraySplitSize
	if k < 2 {
		k = 64
	}
	sizes := buildLevels(len(leaves), k)
	t := &extremeTree{
		PropagationBaseObject: PropagationBaseObject{name: name, solver: s},
		leaves:                leaves,
		target:                target,
		k:                     k,
		isMax:                 isMax,
		levelMin:              make([][]int64, len(sizes)),
		levelMax:              make([][]int64, len(sizes)),
	}
	for l, sz := range sizes {
		t.levelMin[l] = make([]int64, sz)
		t.levelMax[l] = make([]int64, sz)
	}
	return t
}

// MakeMinEqual returns a constraint posting target == min(vars).
func (s *Solver) MakeMinEqual(vars []*IntVar, target *IntVar) Constraint {
	return newExtremeTree(s, vars, target, false, "")
}

// MakeMaxEqual returns a constraint posting target == max(vars).
func (s *Solver) MakeMaxEqual(vars []*IntVar, target *IntVar) Constraint {
	return newExtremeTree(s, vars, target, true, "")
}

func (t *extremeTree) children(level, idx int) (lo, hi int) {
	lo = idx * t.k
	var size int
	if level == 0 {
		size = len(t.leaves)
	} else {
		size = len(t.levelMin[level-1])
	}
	hi = lo + t.k
	if hi > size {
		hi = size
	}
	return lo, hi
}

func (t *extremeTree) childMinMax(level, child int) (int64, int64) {
	if level == 0 {
		return t.leaves[child].Min(), t.leaves[child].Max()
	}
	return t.levelMin[level-1][child], t.levelMax[level-1][child]
}

func (t *extremeTree) combine(a, b int64) int64 {
	if t.isMax {
		return maxI64(a, b)
	}
	return minI64(a, b)
}

func (t *extremeTree) recomputeNode(s *Solver, level, idx int) {
	lo, hi := t.children(level, idx)
	var mn, mx int64
	for c := lo; c < hi; c++ {
		cmin, cmax := t.childMinMax(level, c)
		if c == lo {
			mn, mx = cmin, cmax
		} else {
			mn = t.combine(mn, cmin)
			mx = t.combine(mx, cmax)
		}
	}
	s.trail.SetInt64(&t.levelMin[level][idx], mn)
	s.trail.SetInt64(&t.levelMax[level][idx], mx)
}

func (t *extremeTree) recomputeChain(s *Solver, fromLeaf int) error {
	idx := fromLeaf
	for level := 0; level < len(t.levelMin); level++ {
		nodeIdx := idx / t.k
		t.recomputeNode(s, level, nodeIdx)
		idx = nodeIdx
	}
	root := len(t.levelMin) - 1
	if err := t.target.SetMin(s, t.levelMin[root][0]); err != nil {
		return err
	}
	return t.target.SetMax(s, t.levelMax[root][0])
}

// pushDown refines children from the target's current range: per
// spec.md §4.5, at each node we ask whether exactly one child can still
// support the new bound, and if so push the tight bound into it only.
func (t *extremeTree) pushDown(s *Solver) error {
	root := len(t.levelMin) - 1
	lo, hi := t.target.Min(), t.target.Max()
	if lo > t.levelMin[root][0] {
		s.trail.SetInt64(&t.levelMin[root][0], lo)
	}
	if hi < t.levelMax[root][0] {
		s.trail.SetInt64(&t.levelMax[root][0], hi)
	}
	return t.pushLevel(s, root, 0)
}

func (t *extremeTree) pushLevel(s *Solver, level, idx int) error {
	incomingMin, incomingMax := t.levelMin[level][idx], t.levelMax[level][idx]
	lo, hi := t.children(level, idx)

	if t.isMax {
		// MAX: the target's min must be supported by some child whose max
		// reaches it; if exactly one child's max >= incomingMin, that
		// child alone must raise its min.
		supportIdx, nbSupport := -1, 0
		for c := lo; c < hi; c++ {
			_, cmax := t.childMinMax(level, c)
			if cmax >= incomingMin {
				supportIdx = c
				nbSupport++
			}
		}
		if nbSupport == 0 {
			return Fail("cp: max constraint %s has no child able to reach %d", t.Name(), incomingMin)
		}
		if nbSupport == 1 {
			if err := t.setChildMin(s, level, supportIdx, incomingMin); err != nil {
				return err
			}
		}
		// Every child's max must be <= incomingMax (the aggregate max).
		for c := lo; c < hi; c++ {
			if err := t.setChildMax(s, level, c, incomingMax); err != nil {
				return err
			}
		}
	} else {
		// MIN: symmetric, the target's max must be supported by a child
		// whose min reaches down to it.
		supportIdx, nbSupport := -1, 0
		for c := lo; c < hi; c++ {
			cmin, _ := t.childMinMax(level, c)
			if cmin <= incomingMax {
				supportIdx = c
				nbSupport++
			}
		}
		if nbSupport == 0 {
			return Fail("cp: min constraint %s has no child able to reach %d", t.Name(), incomingMax)
		}
		if nbSupport == 1 {
			if err := t.setChildMax(s, level, supportIdx, incomingMax); err != nil {
				return err
			}
		}
		for c := lo; c < hi; c++ {
			if err := t.setChildMin(s, level, c, incomingMin); err != nil {
				return err
			}
		}
	}

	if level == 0 {
		return nil
	}
	for c := lo; c < hi; c++ {
		if err := t.pushLevel(s, level-1, c); err != nil {
			return err
		}
	}
	return nil
}

func (t *extremeTree) setChildMin(s *Solver, level, child int, mn int64) error {
	if level == 0 {
		return t.leaves[child].SetMin(s, mn)
	}
	if mn > t.levelMin[level-1][child] {
		s.trail.SetInt64(&t.levelMin[level-1][child], mn)
	}
	return nil
}

func (t *extremeTree) setChildMax(s *Solver, level, child int, mx int64) error {
	if level == 0 {
		return t.leaves[child].SetMax(s, mx)
	}
	if mx < t.levelMax[level-1][child] {
		s.trail.SetInt64(&t.levelMax[level-1][child], mx)
	}
	return nil
}

func (t *extremeTree) Post(s *Solver) error {
	for i := range t.leaves {
		idx := i
		d := NewDemon(PriorityNormal, func(s *Solver) error {
			return t.recomputeChain(s, idx)
		})
		t.leaves[i].WhenRange(d)
	}
	d := NewDemon(PriorityDelayed, t.pushDown)
	t.target.WhenRange(d)
	return nil
}

func (t *extremeTree) InitialPropagate(s *Solver) error {
	for level := range t.levelMin {
		sz := len(t.levelMin[level])
		for idx := 0; idx < sz; idx++ {
			t.recomputeNode(s, level, idx)
		}
	}
	root := len(t.levelMin) - 1
	if err := t.target.SetMin(s, t.levelMin[root][0]); err != nil {
		return err
	}
	if err := t.target.SetMax(s, t.levelMax[root][0]); err != nil {
		return err
	}
	return t.pushDown(s)
}
