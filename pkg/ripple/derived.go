package ripple

import (
	"slices"
	"time"
)

// ComputeFunc produces a derived snapshot from the states of the
// dependencies, passed positionally in dependency-list order. A dependency
// naming a store that does not exist yet contributes a nil State; the
// function must tolerate it or fail on its own terms.
type ComputeFunc func(states ...State) State

// derivedSpec records how one derived store is recomputed.
type derivedSpec struct {
	name    string
	deps    []string
	compute ComputeFunc
}

// Derive registers a derived store: a store whose content is written only by
// its compute function, re-run on every Set of any store named in deps.
//
// The backing store is created (or reused) with an empty initial state, the
// specification is registered, and one recomputation runs before Derive
// returns, so the initial value is immediately readable. The returned handle
// has the ordinary Store interface; callers must not Set it directly.
//
// Recomputation is eager: once per upstream Set, reading the live state of
// every dependency at that moment. The result is installed non-silently so
// derived-of-derived chains propagate. Cyclic dependency graphs are a caller
// error and recurse without bound.
func (r *Registry) Derive(name string, deps []string, compute ComputeFunc) *Store {
	st := r.GetOrCreate(name, State{})

	spec := &derivedSpec{
		name:    name,
		deps:    slices.Clone(deps),
		compute: compute,
	}

	r.mu.Lock()
	if prev, ok := r.byName[name]; ok {
		// Re-deriving an existing name replaces its spec in place.
		*prev = *spec
		spec = prev
	} else {
		r.derived = append(r.derived, spec)
		r.byName[name] = spec
	}
	r.mu.Unlock()

	r.runDerived(spec)
	return st
}

// recomputeDependents re-runs every derived spec whose dependency list
// contains the changed store, in registration order. Called from within
// Store.apply, so the whole cascade completes inside the triggering Set.
func (r *Registry) recomputeDependents(changed string) {
	r.mu.RLock()
	var dependents []*derivedSpec
	for _, spec := range r.derived {
		if slices.Contains(spec.deps, changed) {
			dependents = append(dependents, spec)
		}
	}
	r.mu.RUnlock()

	for _, spec := range dependents {
		r.runDerived(spec)
	}
}

// runDerived reads the live dependency states in list order, computes, and
// installs the result on the backing store as a non-silent replacement.
func (r *Registry) runDerived(spec *derivedSpec) {
	start := time.Now()

	states := make([]State, len(spec.deps))
	for i, dep := range spec.deps {
		if st, ok := r.Get(dep); ok {
			states[i] = st.Get()
		}
	}

	result := spec.compute(states...)

	backing := r.GetOrCreate(spec.name, State{})
	backing.Update(func(State) State { return result })

	r.obs.DerivedRecomputed(spec.name, time.Since(start))
}
