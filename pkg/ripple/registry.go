package ripple

import (
	"log/slog"
	"sync"
)

// Registry owns a set of named stores and the derived specifications wired
// between them. It is the explicit context object for all operations: one
// store exists per name within a registry, and independent registries share
// nothing. There are no package-level stores.
type Registry struct {
	mu      sync.RWMutex
	stores  map[string]*Store
	derived []*derivedSpec
	byName  map[string]*derivedSpec

	logger *slog.Logger
	obs    Observer
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the registry's structured logger.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithObserver attaches an observer for store lifecycle and propagation
// events. Use MultiObserver to attach more than one.
func WithObserver(obs Observer) Option {
	return func(r *Registry) {
		if obs != nil {
			r.obs = obs
		}
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		stores: make(map[string]*Store),
		byName: make(map[string]*derivedSpec),
		logger: slog.Default(),
		obs:    noopObserver{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GetOrCreate returns the store registered under name, creating it with a
// copy of initial if absent. Re-registering an existing name returns the
// existing store unchanged and ignores the supplied initial state; this
// idempotence is intentional, not an error.
func (r *Registry) GetOrCreate(name string, initial State) *Store {
	r.mu.Lock()
	if st, ok := r.stores[name]; ok {
		r.mu.Unlock()
		return st
	}

	st := &Store{
		name:  name,
		reg:   r,
		state: initial.Clone(),
	}
	r.stores[name] = st
	r.mu.Unlock()

	r.logger.Debug("store created", "store", name)
	r.obs.StoreCreated(name)
	return st
}

// Get returns the store registered under name, if any.
func (r *Registry) Get(name string) (*Store, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.stores[name]
	return st, ok
}

// Names returns the names of all registered stores. Order is not
// guaranteed.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.stores))
	for name := range r.stores {
		names = append(names, name)
	}
	return names
}

// IsDerived reports whether name has a registered derived specification.
// Derived stores are written only by their own recomputation; outer surfaces
// use this to reject direct writes.
func (r *Registry) IsDerived(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byName[name]
	return ok
}

// Logger returns the registry's logger.
func (r *Registry) Logger() *slog.Logger {
	return r.logger
}

func (r *Registry) observer() Observer {
	return r.obs
}
