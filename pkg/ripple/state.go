package ripple

import "strings"

// State is one immutable snapshot of a store's content: a mapping of string
// keys to caller-defined values, nestable via nested State or map values.
//
// Snapshots are immutable by convention: every transition replaces the whole
// map, and callers must not mutate a State they did not just build. Only one
// level of copy protection is guaranteed (see Clone).
type State map[string]any

// Clone returns a shallow copy of the state. The top level is a fresh map;
// nested maps and slices remain aliased with the original. Clone of a nil
// State returns an empty, non-nil State.
func (s State) Clone() State {
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Merge returns a new snapshot with the partial state's keys laid over this
// one. Neither input is modified.
func (s State) Merge(partial State) State {
	out := make(State, len(s)+len(partial))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range partial {
		out[k] = v
	}
	return out
}

// Lookup resolves a dot-separated path ("preferences.theme") against a
// snapshot. Missing or non-map intermediate keys yield (nil, false), never
// an error. An empty path resolves to the snapshot itself.
func Lookup(s State, path string) (any, bool) {
	if path == "" {
		return s, s != nil
	}

	var current any = s
	for _, key := range strings.Split(path, ".") {
		switch node := current.(type) {
		case State:
			v, ok := node[key]
			if !ok {
				return nil, false
			}
			current = v
		case map[string]any:
			v, ok := node[key]
			if !ok {
				return nil, false
			}
			current = v
		default:
			return nil, false
		}
	}
	return current, true
}
