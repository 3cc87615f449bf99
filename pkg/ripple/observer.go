package ripple

import "time"

// Observer receives store lifecycle and propagation events. Implementations
// must be fast and must not call back into the registry from within a
// callback; events fire synchronously inside the propagation path.
//
// This is the seam instrumentation attaches through: the metrics and tracing
// packages each provide an Observer so the core stays free of their
// dependencies.
type Observer interface {
	// StoreCreated fires once when a name is first registered.
	StoreCreated(name string)

	// StoreSet fires on every snapshot transition, silent or not.
	StoreSet(name string, silent bool)

	// DerivedRecomputed fires after each derived recomputation, with the
	// time the compute and install took.
	DerivedRecomputed(name string, elapsed time.Duration)
}

// noopObserver is the default observer.
type noopObserver struct{}

func (noopObserver) StoreCreated(string)                     {}
func (noopObserver) StoreSet(string, bool)                   {}
func (noopObserver) DerivedRecomputed(string, time.Duration) {}

// MultiObserver fans events out to several observers in order.
func MultiObserver(obs ...Observer) Observer {
	return multiObserver(obs)
}

type multiObserver []Observer

func (m multiObserver) StoreCreated(name string) {
	for _, o := range m {
		o.StoreCreated(name)
	}
}

func (m multiObserver) StoreSet(name string, silent bool) {
	for _, o := range m {
		o.StoreSet(name, silent)
	}
}

func (m multiObserver) DerivedRecomputed(name string, elapsed time.Duration) {
	for _, o := range m {
		o.DerivedRecomputed(name, elapsed)
	}
}
