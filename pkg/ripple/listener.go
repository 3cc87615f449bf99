package ripple

// Listener is a change callback invoked with the new and previous snapshots
// after a non-silent transition.
type Listener func(next, prev State)

// Unsubscribe removes the listener registration that produced it. Calling it
// more than once is a no-op, not an error.
type Unsubscribe func()

// subscription pairs a listener with the unique ID used to remove it.
// IDs rather than function identity drive removal because func values are
// not comparable.
type subscription struct {
	id uint64
	fn Listener
}
