package cp

import "sort"

// cumulativeFeasible is the minimal internal redundancy check behind
// Diffn's technique 3 (spec.md §4.8, grounded on
// original_source/constraint_solver/diffn.cc's AddCumulativeConstraint,
// which projects the rectangles onto one axis and posts a Cumulative
// constraint there). It is not a general-purpose propagator: it only
// answers whether a set of mandatory intervals, each consuming demand[i]
// units of a single resource of size capacity, could ever exceed that
// capacity at some point — a sweep over the compulsory-part profile
// exactly like the time-table check in the pack's own Cumulative
// constraint (gitrdm-gokando/pkg/minikanren/cumulative.go). Intervals
// without a mandatory part (ok[i] == false) contribute nothing, since
// they impose no guaranteed demand at any instant.
func cumulativeFeasible(lo, hi, demand []int64, ok []bool, capacity int64) bool {
	type event struct {
		at    int64
		delta int64
	}
	var events []event
	for i := range lo {
		if !ok[i] || demand[i] <= 0 {
			continue
		}
		events = append(events, event{lo[i], demand[i]})
		events = append(events, event{hi[i], -demand[i]})
	}
	if len(events) == 0 {
		return true
	}
	sort.Slice(events, func(a, b int) bool {
		if events[a].at != events[b].at {
			return events[a].at < events[b].at
		}
		// a task ending exactly where another begins must not be double
		// counted at that instant, so removals sort before additions.
		return events[a].delta < events[b].delta
	})
	var level int64
	for _, e := range events {
		level = CapAdd(level, e.delta)
		if level > capacity {
			return false
		}
	}
	return true
}
