package config

import (
	"github.com/ripple-dev/ripple/pkg/ripple"
)

// Seed creates the declared seed stores and derived stores on the registry.
// Derived entries use the declarative compute: a shallow merge of the
// dependency states in list order. Entries are wired in declaration order,
// so later derived entries may depend on earlier ones.
func (c *Config) Seed(reg *ripple.Registry) {
	for _, st := range c.Stores {
		reg.GetOrCreate(st.Name, ripple.State(st.Initial))
	}

	for _, d := range c.Derived {
		reg.Derive(d.Name, d.Deps, mergeCompute)
	}
}

// mergeCompute lays the dependency states over each other in order.
// Nil states from not-yet-registered dependencies are skipped.
func mergeCompute(states ...ripple.State) ripple.State {
	out := ripple.State{}
	for _, s := range states {
		if s == nil {
			continue
		}
		out = out.Merge(s)
	}
	return out
}
