package ripple

import "sync"

// Store is a named, mutable holder of one immutable state snapshot plus the
// listeners observing it. Stores are created through a Registry and live for
// the registry's lifetime; there is no destroy operation.
type Store struct {
	name string
	reg  *Registry

	// mu protects the snapshot.
	mu    sync.RWMutex
	state State

	// subMu protects the subs slice.
	subMu sync.RWMutex
	subs  []subscription
}

// SetOption configures a single Set or Update call.
type SetOption func(*setOptions)

type setOptions struct {
	silent bool
}

// Silent suppresses listener notification for this transition. Derived
// stores depending on this store still recompute; the asymmetry is part of
// the propagation contract.
func Silent() SetOption {
	return func(o *setOptions) {
		o.silent = true
	}
}

// Name returns the store's registry name.
func (s *Store) Name() string {
	return s.name
}

// Get returns a shallow copy of the current snapshot. Mutating the returned
// map does not affect the store; nested values remain aliased.
func (s *Store) Get() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// GetPath performs a safe dot-path lookup against the current snapshot.
// Missing intermediate keys yield (nil, false), never an error.
func (s *Store) GetPath(path string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Lookup(s.state, path)
}

// Set lays the partial state shallowly over the previous snapshot and
// installs the result as the new snapshot. The previous snapshot is captured
// before the transition; the swap is atomic, with no intermediate state
// visible to readers. Returns the new snapshot.
//
// After the swap the store's listeners are notified with (next, prev) unless
// Silent was given, then every derived store whose dependency list contains
// this store's name recomputes, within this call's stack.
func (s *Store) Set(partial State, opts ...SetOption) State {
	return s.apply(func(prev State) State {
		return prev.Merge(partial)
	}, opts)
}

// Update computes a replacement snapshot from the previous one. The updater
// must return a fully-formed snapshot; returning nil installs an empty one.
// Propagation behaves exactly as in Set.
func (s *Store) Update(fn func(prev State) State, opts ...SetOption) State {
	return s.apply(fn, opts)
}

// Subscribe registers a listener for non-silent transitions and returns its
// unsubscribe handle. Each call is an independent registration; the handle
// removes exactly that registration and is safe to call more than once.
func (s *Store) Subscribe(fn Listener) Unsubscribe {
	id := nextID()

	s.subMu.Lock()
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.removeSubscription(id) })
	}
}

// apply performs the snapshot transition and drives propagation:
// listener fan-out first (unless silent), dependent recomputation second.
func (s *Store) apply(fn func(State) State, opts []SetOption) State {
	var o setOptions
	for _, opt := range opts {
		opt(&o)
	}

	s.mu.Lock()
	prev := s.state
	next := fn(prev)
	if next == nil {
		next = State{}
	}
	s.state = next
	s.mu.Unlock()

	s.reg.observer().StoreSet(s.name, o.silent)

	if !o.silent {
		s.notify(next, prev)
	}
	s.reg.recomputeDependents(s.name)

	return next
}

// notify fans a transition out to all current listeners.
// Copy-before-notify: the subscriber set is snapshotted under the lock so
// listeners may subscribe or unsubscribe from within a callback without
// corrupting the iteration. Listeners added during a firing are not invoked
// for that firing.
func (s *Store) notify(next, prev State) {
	s.subMu.RLock()
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.subMu.RUnlock()

	for _, sub := range subs {
		sub.fn(next, prev)
	}
}

func (s *Store) removeSubscription(id uint64) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}
