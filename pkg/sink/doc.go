// Package sink wires stores to external display targets.
//
// A sink is an ordinary store subscriber that forwards the store's value,
// optionally transformed, into a Target on every non-silent change:
//
//	el := sink.NewElement("span")
//	unbind := sink.Bind(store, el, sink.WithTransform(func(s ripple.State) any {
//	    return s["name"]
//	}))
//
// Bind renders once immediately from the current snapshot, then re-renders
// on every subsequent change. The returned function removes the underlying
// subscription.
//
// Targets included here: Element (an in-memory element handle with HTML
// rendering), WriterTarget (line-oriented output to an io.Writer), and
// S3Target (publishes the rendered value as an object body, for status-page
// style surfaces).
package sink
