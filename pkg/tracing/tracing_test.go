package tracing

import (
	"testing"

	"github.com/ripple-dev/ripple/pkg/ripple"
	"go.opentelemetry.io/otel/attribute"
)

func TestObserverRunsThroughPropagation(t *testing.T) {
	// The global provider defaults to a no-op tracer; the observer must
	// still dispatch cleanly through a full propagation cascade.
	obs := NewObserver(
		WithTracerName("ripple-test"),
		WithAttributeExtractor(func(store string) []attribute.KeyValue {
			return []attribute.KeyValue{attribute.String("env", "test")}
		}),
	)
	reg := ripple.New(ripple.WithObserver(obs))

	user := reg.GetOrCreate("user", ripple.State{})
	reg.Derive("ui", []string{"user"}, func(states ...ripple.State) ripple.State {
		return ripple.State{}
	})
	user.Set(ripple.State{"a": 1})
	user.Set(ripple.State{"a": 2}, ripple.Silent())
}

func TestObserverFilter(t *testing.T) {
	var filtered []string
	obs := NewObserver(WithFilter(func(store string) bool {
		filtered = append(filtered, store)
		return false
	}))
	reg := ripple.New(ripple.WithObserver(obs))

	reg.GetOrCreate("user", ripple.State{}).Set(ripple.State{"a": 1})

	if len(filtered) == 0 {
		t.Fatal("expected the filter to be consulted")
	}
	for _, name := range filtered {
		if name != "user" {
			t.Errorf("unexpected store name passed to filter: %q", name)
		}
	}
}
