package ripple

import "testing"

func TestCloneShallow(t *testing.T) {
	nested := map[string]any{"theme": "dark"}
	s := State{"preferences": nested, "count": 1}

	c := s.Clone()
	c["count"] = 2
	if s["count"] != 1 {
		t.Errorf("top-level mutation of clone leaked into original: %v", s["count"])
	}

	// Only one level of copy protection: nested values stay aliased.
	nested["theme"] = "light"
	got, _ := Lookup(c, "preferences.theme")
	if got != "light" {
		t.Errorf("expected nested alias to be visible, got %v", got)
	}
}

func TestCloneNil(t *testing.T) {
	var s State
	c := s.Clone()
	if c == nil {
		t.Fatal("Clone of nil State should return a non-nil map")
	}
	if len(c) != 0 {
		t.Errorf("expected empty clone, got %v", c)
	}
}

func TestMerge(t *testing.T) {
	prev := State{"a": 1, "b": 2}
	next := prev.Merge(State{"b": 3, "c": 4})

	if next["a"] != 1 || next["b"] != 3 || next["c"] != 4 {
		t.Errorf("unexpected merge result: %v", next)
	}
	if prev["b"] != 2 {
		t.Errorf("merge mutated previous snapshot: %v", prev)
	}
}

func TestLookup(t *testing.T) {
	s := State{
		"preferences": State{"theme": "light"},
		"plain":       map[string]any{"k": "v"},
		"leaf":        42,
	}

	if got, ok := Lookup(s, "preferences.theme"); !ok || got != "light" {
		t.Errorf("expected (light, true), got (%v, %v)", got, ok)
	}
	if got, ok := Lookup(s, "plain.k"); !ok || got != "v" {
		t.Errorf("expected (v, true), got (%v, %v)", got, ok)
	}
	if _, ok := Lookup(s, "missing.path"); ok {
		t.Error("missing path should report absent, not fail")
	}
	if _, ok := Lookup(s, "leaf.deeper"); ok {
		t.Error("descending through a non-map leaf should report absent")
	}
	if got, ok := Lookup(s, ""); !ok || got == nil {
		t.Errorf("empty path should resolve to the snapshot itself, got (%v, %v)", got, ok)
	}
}
