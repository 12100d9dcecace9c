// Package components renders the formbot pages and fragments as templ
// components.
package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// markup writes HTML to w and keeps the first error.
type markup struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newMarkup(ctx context.Context, w io.Writer) *markup {
	return &markup{ctx: ctx, w: w}
}

// raw writes s unescaped.
func (m *markup) raw(s string) {
	if m.err == nil {
		_, m.err = io.WriteString(m.w, s)
	}
}

// text writes s as escaped text.
func (m *markup) text(s string) {
	m.raw(templ.EscapeString(s))
}

// open writes a start tag with the given name/value attribute pairs.
// An empty value writes a boolean attribute.
func (m *markup) open(tag string, attrs ...string) {
	m.raw("<" + tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		if attrs[i+1] == "" {
			m.raw(" " + attrs[i])
			continue
		}
		m.raw(" " + attrs[i] + `="` + templ.EscapeString(attrs[i+1]) + `"`)
	}
	m.raw(">")
}

func (m *markup) close(tag string) {
	m.raw("</" + tag + ">")
}

// el writes <tag attrs>text</tag>.
func (m *markup) el(tag, text string, attrs ...string) {
	m.open(tag, attrs...)
	m.text(text)
	m.close(tag)
}

func (m *markup) render(c templ.Component) {
	if m.err == nil && c != nil {
		m.err = c.Render(m.ctx, m.w)
	}
}

// component wraps a markup-writing func as a templ.Component.
func component(fn func(m *markup)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := newMarkup(ctx, w)
		fn(m)
		return m.err
	})
}

// withClass appends name to base when on holds.
func withClass(base, name string, on bool) string {
	if on {
		return base + " " + name
	}
	return base
}
