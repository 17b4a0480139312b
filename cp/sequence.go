package cp

// SequenceVar holds an ordering of a fixed set of interval variables
// (spec.md §3). Ranking decisions are reversible: RankFirst narrows the
// set of positions still unranked and records the choice on the trail.
type SequenceVar struct {
	PropagationBaseObject
	intervals []IntervalVar
	// ranked holds the interval indices decided so far, in order.
	ranked []int
	// rankedLen is reversible: PopTo truncates ranked back to it.
	rankedLen int64
}

// NewSequenceVar builds a sequence variable over the given intervals.
func (s *Solver) NewSequenceVar(intervals []IntervalVar, name string) *SequenceVar {
	sv := &SequenceVar{
		PropagationBaseObject: PropagationBaseObject{name: name, solver: s},
		intervals:             append([]IntervalVar(nil), intervals...),
		ranked:                make([]int, 0, len(intervals)),
	}
	s.sequences = append(s.sequences, sv)
	return sv
}

// Size returns the number of intervals in the sequence.
func (sv *SequenceVar) Size() int { return len(sv.intervals) }

// Interval returns the i-th underlying interval, by original index.
func (sv *SequenceVar) Interval(i int) IntervalVar { return sv.intervals[i] }

// FillSequence returns the current ranking: the interval indices decided
// so far, followed by the remaining indices in their original order.
func (sv *SequenceVar) FillSequence() []int {
	seen := make([]bool, len(sv.intervals))
	out := make([]int, 0, len(sv.intervals))
	for _, idx := range sv.ranked[:sv.rankedLen] {
		out = append(out, idx)
		seen[idx] = true
	}
	for i := range sv.intervals {
		if !seen[i] {
			out = append(out, i)
		}
	}
	return out
}

// RankFirst asserts that the interval at original index idx is the next
// one in the ranking. It fails if idx is already ranked elsewhere.
func (sv *SequenceVar) RankFirst(s *Solver, idx int) error {
	for _, r := range sv.ranked[:sv.rankedLen] {
		if r == idx {
			return Fail("cp: sequence %s: interval %d already ranked", sv.Name(), idx)
		}
	}
	if int64(len(sv.ranked)) == sv.rankedLen {
		sv.ranked = append(sv.ranked, idx)
	} else {
		sv.ranked[sv.rankedLen] = idx
	}
	s.trail.SetInt64(&sv.rankedLen, sv.rankedLen+1)
	return nil
}

// RankedLen returns how many positions are currently decided.
func (sv *SequenceVar) RankedLen() int { return int(sv.rankedLen) }
