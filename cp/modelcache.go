package cp

import (
	"fmt"
	"hash/fnv"
)

// ModelCache deduplicates canonical forms of expressions and constraints
// built so far (spec.md §4.9), so that two calls asking for "the sum of
// the same variables" or "x <= 3 twice" share structure instead of
// allocating twice. Keys are built from an operation tag plus the
// identities of its operands; two typed buckets (expression, constraint)
// mirror the original's separate ModelCache::Void*/VarConstant*/... family
// without literally reproducing each of its dozen typed caches.
//
// The table is a hand-rolled chained hash table, not Go's builtin map,
// because spec.md §4.9 specifies its exact collision and growth policy
// (separate chaining, doubling at load factor 2) as an observable
// property, not an implementation detail to be left to whatever a map
// happens to do.
type ModelCache struct {
	exprBuckets  [][]cacheEntry
	constrBuckets [][]cacheEntry
	exprCount    int
	constrCount  int
}

type cacheEntry struct {
	key   string
	value interface{}
}

func newModelCache(initialSize int) *ModelCache {
	if initialSize < 1 {
		initialSize = 16
	}
	return &ModelCache{
		exprBuckets:   make([][]cacheEntry, initialSize),
		constrBuckets: make([][]cacheEntry, initialSize),
	}
}

func hashKey(key string, nbBuckets int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32()) % nbBuckets
}

// identity formats a stable identity string for any cache operand: named
// objects use their Name(), everything else falls back to %p / %v.
func identity(v interface{}) string {
	switch t := v.(type) {
	case *IntVar:
		return "iv:" + t.Name()
	case IntervalVar:
		return "itv:" + t.Name()
	case *SequenceVar:
		return "sv:" + t.Name()
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Key builds a canonical cache key from an operation tag and its operands
// (variable(s), constant(s), or arrays thereof), per the families listed
// in spec.md §4.9.
func Key(tag string, operands ...interface{}) string {
	key := tag
	for _, op := range operands {
		switch t := op.(type) {
		case []*IntVar:
			key += "|["
			for i, v := range t {
				if i > 0 {
					key += ","
				}
				key += identity(v)
			}
			key += "]"
		case []int64:
			key += "|["
			for i, c := range t {
				if i > 0 {
					key += ","
				}
				key += fmt.Sprintf("%d", c)
			}
			key += "]"
		default:
			key += "|" + identity(op)
		}
	}
	return key
}

func (c *ModelCache) lookup(buckets [][]cacheEntry, key string) (interface{}, bool) {
	idx := hashKey(key, len(buckets))
	for _, e := range buckets[idx] {
		if e.key == key {
			return e.value, true
		}
	}
	return nil, false
}

func (c *ModelCache) insert(buckets *[][]cacheEntry, count *int, key string, value interface{}) {
	idx := hashKey(key, len(*buckets))
	(*buckets)[idx] = append((*buckets)[idx], cacheEntry{key: key, value: value})
	*count++
	if *count > 2*len(*buckets) {
		c.grow(buckets)
	}
}

func (c *ModelCache) grow(buckets *[][]cacheEntry) {
	old := *buckets
	grown := make([][]cacheEntry, len(old)*2)
	for _, bucket := range old {
		for _, e := range bucket {
			idx := hashKey(e.key, len(grown))
			grown[idx] = append(grown[idx], e)
		}
	}
	*buckets = grown
}

// LookupExpr returns a previously cached expression/constant-building
// result for key, if any.
func (c *ModelCache) LookupExpr(key string) (interface{}, bool) {
	return c.lookup(c.exprBuckets, key)
}

// cacheInsertExpr records value under key, unless the solver has already
// entered search (spec.md §4.9: inserts are silently rejected past that
// point, to avoid reversible invalidation).
func (s *Solver) cacheInsertExpr(key string, value interface{}) {
	if s.started {
		return
	}
	s.cache.insert(&s.cache.exprBuckets, &s.cache.exprCount, key, value)
}

// LookupConstraint returns a previously cached constraint for key, if any.
func (c *ModelCache) LookupConstraint(key string) (interface{}, bool) {
	return c.lookup(c.constrBuckets, key)
}

func (s *Solver) cacheInsertConstraint(key string, value interface{}) {
	if s.started {
		return
	}
	s.cache.insert(&s.cache.constrBuckets, &s.cache.constrCount, key, value)
}

// CachedExpr looks up key in the expression cache; on a miss it calls
// build, caches the result (unless search has started) and returns it.
func (s *Solver) CachedExpr(key string, build func() interface{}) interface{} {
	if v, ok := s.cache.LookupExpr(key); ok {
		return v
	}
	v := build()
	s.cacheInsertExpr(key, v)
	return v
}

// CachedConstraint looks up key in the constraint cache; on a miss it
// calls build, caches the result (unless search has started) and returns
// it.
func (s *Solver) CachedConstraint(key string, build func() Constraint) Constraint {
	if v, ok := s.cache.LookupConstraint(key); ok {
		return v.(Constraint)
	}
	v := build()
	s.cacheInsertConstraint(key, v)
	return v
}
