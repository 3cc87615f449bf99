package sink

import (
	"fmt"
	"io"
	"sync"
)

// WriterTarget writes each rendered value as one line to an io.Writer.
// Attributes and properties render as "name=value" lines prefixed with the
// kind, so a console or log file can act as a display target.
type WriterTarget struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterTarget creates a writer-backed target.
func NewWriterTarget(w io.Writer) *WriterTarget {
	return &WriterTarget{w: w}
}

func (t *WriterTarget) SetText(value string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.w, value)
}

func (t *WriterTarget) SetAttr(name, value string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "attr %s=%s\n", name, value)
}

func (t *WriterTarget) SetProp(name string, value any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "prop %s=%v\n", name, value)
}
