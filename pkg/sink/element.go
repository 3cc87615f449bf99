package sink

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Element is an in-memory element handle: the generic display target for
// server-side rendering or tests. It records text content, attributes, and
// properties, and can render itself as an HTML fragment.
type Element struct {
	tag string

	mu    sync.RWMutex
	text  string
	attrs map[string]string
	props map[string]any
}

// NewElement creates an element handle with the given tag.
func NewElement(tag string) *Element {
	return &Element{
		tag:   tag,
		attrs: make(map[string]string),
		props: make(map[string]any),
	}
}

// SetText replaces the element's text content.
func (e *Element) SetText(value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.text = value
}

// SetAttr sets an attribute value.
func (e *Element) SetAttr(name, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.attrs[name] = value
}

// SetProp sets a property value. Properties are not rendered into HTML;
// they model the DOM property side of a real element.
func (e *Element) SetProp(name string, value any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.props[name] = value
}

// Text returns the current text content.
func (e *Element) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text
}

// Attr returns the named attribute value.
func (e *Element) Attr(name string) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.attrs[name]
}

// Prop returns the named property value.
func (e *Element) Prop(name string) any {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.props[name]
}

// HTML renders the element as an HTML fragment with escaped attribute
// values and text content. Attributes render in sorted order so output is
// deterministic.
func (e *Element) HTML() string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var buf strings.Builder
	buf.WriteByte('<')
	buf.WriteString(e.tag)

	names := make([]string, 0, len(e.attrs))
	for name := range e.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&buf, ` %s="%s"`, name, escapeAttr(e.attrs[name]))
	}

	buf.WriteByte('>')
	buf.WriteString(escapeHTML(e.text))
	buf.WriteString("</")
	buf.WriteString(e.tag)
	buf.WriteByte('>')
	return buf.String()
}

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

// escapeAttr escapes text for safe inclusion in HTML attribute values.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		case '\n':
			buf.WriteString("&#10;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}
