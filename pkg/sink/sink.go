package sink

import (
	"fmt"

	"github.com/ripple-dev/ripple/pkg/ripple"
)

// Target is an external display target a store can be bound to.
// Implementations decide what text content, attributes, and named properties
// mean for their medium.
type Target interface {
	// SetText replaces the target's default text content.
	SetText(value string)

	// SetAttr sets a named attribute to a string value.
	SetAttr(name, value string)

	// SetProp sets a named property to an arbitrary value.
	SetProp(name string, value any)
}

// Transform converts a snapshot into the value written to the target.
type Transform func(state ripple.State) any

// BindOption configures a single Bind call.
type BindOption func(*bindOptions)

type bindOptions struct {
	transform Transform
	attr      string
	prop      string
}

// WithTransform sets the snapshot-to-value transform.
// The default renders a full structural dump of the snapshot.
func WithTransform(fn Transform) BindOption {
	return func(o *bindOptions) {
		o.transform = fn
	}
}

// WithAttr writes the value into the named attribute instead of the text
// content.
func WithAttr(name string) BindOption {
	return func(o *bindOptions) {
		o.attr = name
	}
}

// WithProp writes the value into the named property instead of the text
// content. If both an attribute and a property are configured, the property
// wins.
func WithProp(name string) BindOption {
	return func(o *bindOptions) {
		o.prop = name
	}
}

// Bind renders the store's current value into the target once, then
// subscribes the same render function so every subsequent non-silent Set
// re-renders. The returned unsubscribe handle removes the binding; calling
// it twice is a no-op.
//
// A failing transform panics outward to the caller of Set, unmodified; the
// binding itself never swallows it.
func Bind(store *ripple.Store, target Target, opts ...BindOption) ripple.Unsubscribe {
	o := bindOptions{
		transform: dump,
	}
	for _, opt := range opts {
		opt(&o)
	}

	render := func(state ripple.State) {
		value := o.transform(state)
		switch {
		case o.prop != "":
			target.SetProp(o.prop, value)
		case o.attr != "":
			target.SetAttr(o.attr, stringify(value))
		default:
			target.SetText(stringify(value))
		}
	}

	render(store.Get())
	return store.Subscribe(func(next, prev ripple.State) {
		render(next)
	})
}

// dump is the default transform: a full structural dump of the snapshot.
func dump(state ripple.State) any {
	return fmt.Sprintf("%v", map[string]any(state))
}

func stringify(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}
