package cp

// BoolVar is the three-state {0, 1, undecided} storage described in
// spec.md §3. It reuses IntVar's reversible bound machinery wholesale —
// the spec calls this out explicitly ("identical lazy previous/postponed
// scheme") — restricted to the domain {0,1}. It is also what backs the
// "performed" flag of optional interval variables.
type BoolVar struct {
	*IntVar
}

func newBoolVar(s *Solver, name string) *BoolVar {
	return &BoolVar{IntVar: newIntVar(s, 0, 1, name)}
}

// IsTrue reports whether the variable is bound to 1.
func (b *BoolVar) IsTrue() bool { return b.Min() == 1 }

// IsFalse reports whether the variable is bound to 0.
func (b *BoolVar) IsFalse() bool { return b.Max() == 0 }

// IsUndecided reports whether the variable is not yet bound.
func (b *BoolVar) IsUndecided() bool { return !b.Bound() }

// SetTrue binds the variable to 1.
func (b *BoolVar) SetTrue(s *Solver) error { return b.SetValue(s, 1) }

// SetFalse binds the variable to 0.
func (b *BoolVar) SetFalse(s *Solver) error { return b.SetValue(s, 0) }
