package cp

// Label performs the default search strategy of spec.md §5: no heuristic
// selection beyond leftmost-variable, min-value labeling. It repeatedly
// picks the first variable in vars that is not yet bound, tries its
// values from Min() to Max(), propagating and recursing after each trial
// and backtracking to the trail level from before the trial on failure.
// It mirrors the teacher's own decision-then-propagate loop
// (solver/solver.go's search/propagateAndSearch), generalized from
// picking one boolean literal per decision to assigning one integer
// value per decision. It reports whether a fully bound, consistent
// assignment to vars was reached; a false with a nil error means the
// search space was exhausted without success, not that anything failed.
func (s *Solver) Label(vars []*IntVar) (bool, error) {
	for _, v := range vars {
		if !v.Bound() {
			return s.labelVar(vars, v)
		}
	}
	return true, nil
}

func (s *Solver) labelVar(vars []*IntVar, v *IntVar) (bool, error) {
	lo, hi := v.Min(), v.Max()
	for val := lo; val <= hi; val++ {
		level := s.CurrentLevel()
		s.PushLevel()

		err := v.SetValue(s, val)
		if err == nil {
			err = s.Propagate()
		}
		if err == nil {
			found, ferr := s.Label(vars)
			if ferr != nil {
				return false, ferr
			}
			if found {
				return true, nil
			}
		} else if _, isFailure := err.(*Failure); !isFailure {
			return false, err
		}

		s.PopTo(level)
	}
	return false, nil
}
