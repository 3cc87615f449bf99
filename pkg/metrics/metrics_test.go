package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/ripple-dev/ripple/pkg/ripple"
)

func TestObserverCountsSets(t *testing.T) {
	promReg := prometheus.NewRegistry()
	obs := NewObserver(WithRegistry(promReg))
	reg := ripple.New(ripple.WithObserver(obs))

	user := reg.GetOrCreate("user", ripple.State{})
	user.Set(ripple.State{"a": 1})
	user.Set(ripple.State{"a": 2}, ripple.Silent())

	if got := testutil.ToFloat64(obs.storesCreated); got != 1 {
		t.Errorf("expected 1 store created, got %v", got)
	}
	if got := testutil.ToFloat64(obs.storeSets.WithLabelValues("user", "false")); got != 1 {
		t.Errorf("expected 1 non-silent set, got %v", got)
	}
	if got := testutil.ToFloat64(obs.storeSets.WithLabelValues("user", "true")); got != 1 {
		t.Errorf("expected 1 silent set, got %v", got)
	}
}

func TestObserverCountsRecomputes(t *testing.T) {
	promReg := prometheus.NewRegistry()
	obs := NewObserver(WithRegistry(promReg), WithNamespace("custom"))
	reg := ripple.New(ripple.WithObserver(obs))

	user := reg.GetOrCreate("user", ripple.State{})
	reg.Derive("ui", []string{"user"}, func(states ...ripple.State) ripple.State {
		return ripple.State{}
	})
	user.Set(ripple.State{"a": 1})

	// Initial derive plus one dependent recompute.
	if got := testutil.ToFloat64(obs.recomputes.WithLabelValues("ui")); got != 2 {
		t.Errorf("expected 2 recomputes, got %v", got)
	}
}
