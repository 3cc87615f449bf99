// Package ripple provides a minimal reactive value-propagation engine.
//
// Named stores hold immutable state snapshots. Derived stores recompute
// automatically whenever any store they depend on changes. External sinks
// can subscribe to receive transformed values on every change.
//
// # Core Types
//
// Registry owns all stores; one store exists per name within a registry:
//
//	reg := ripple.New()
//	user := reg.GetOrCreate("user", ripple.State{"name": "guest"})
//
// Store is a named holder of one snapshot:
//
//	user.Set(ripple.State{"name": "John"})    // shallow merge + notify
//	name, ok := user.GetPath("name")          // safe dot-path lookup
//	unsub := user.Subscribe(func(next, prev ripple.State) { ... })
//
// Derived stores are written only by their own compute function:
//
//	ui := reg.Derive("ui", []string{"user", "cart"}, func(states ...ripple.State) ripple.State {
//	    return ripple.State{"header": states[0]["name"], "items": states[1]["items"]}
//	})
//
// # Propagation Model
//
// Propagation is synchronous and eager: a Set call notifies the store's
// listeners, then recomputes every derived store that lists it as a
// dependency, each recompute performing its own non-silent Set so chains of
// derived values propagate transitively. All effects of a Set complete
// before it returns.
//
// When several dependencies of one derived store change in the same external
// operation, the derived store recomputes once per upstream Set, so
// subscribers can observe a transient inconsistent intermediate value. There
// is no topological batching. Cyclic dependency graphs are a caller error
// and recurse without bound.
//
// # Thread Safety
//
// The engine assumes a single logical thread of control drives propagation.
// Registry lookup, snapshot swaps, and listener-set mutation are guarded by
// mutexes so incidental concurrent reads are safe, but concurrent Set
// cascades from multiple goroutines have no ordering guarantees.
package ripple
