package ripple

import "errors"

// ErrStoreNotFound is returned by outer surfaces when a request names a
// store that is not registered. The core itself never fails a lookup this
// way: GetOrCreate is idempotent and GetPath tolerates missing paths.
var ErrStoreNotFound = errors.New("ripple: store not found")

// ErrDerivedStore is returned by outer surfaces when a caller attempts a
// direct write to a derived store. Derived store content is written only by
// its own compute re-run; the core documents this as a caller precondition
// and does not police in-process handles.
var ErrDerivedStore = errors.New("ripple: derived stores cannot be set directly")
