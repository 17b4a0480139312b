/*
Package cp is the propagation core of a finite-domain constraint solver.

It provides a reversible trail, a demon-based propagation queue, bounded
integer and boolean variables, composite interval variables used to model
scheduling problems, a small library of bounds-consistency constraints
(sums, mins, maxes, boolean aggregates, scalar products and non-overlapping
rectangles) and a model cache that deduplicates canonical sub-expressions.

Describing a problem

A Solver owns every variable and constraint it creates:

    s := cp.NewSolver(cp.DefaultParameters())
    x := s.NewIntVar(0, 10, "x")
    y := s.NewIntVar(0, 10, "y")
    t := s.NewIntVar(0, 20, "t")
    s.Post(s.MakeSumEqual([]*cp.IntVar{x, y}, t))
    if err := s.Propagate(); err != nil {
        // the problem is already infeasible
    }

Search support is limited to Solver.Label, a leftmost-variable,
min-value labeling with chronological backtracking; there are no restarts
or heuristic selection. Callers can instead drive PushLevel/PopTo around
their own choice points and call Propagate to reach a fixpoint or a Fail.
*/
package cp
