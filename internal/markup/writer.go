// Package markup writes the HTML fragments the theme emits and cleans the text it receives.
//
// Contents passed to Tag, Link, Span and Div are trusted markup and written verbatim; attribute
// values are always escaped.
package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// Attr is a single attribute. Attributes render in the order given.
type Attr struct {
	Key string
	Val string
}

// A is shorthand for Attr{Key: k, Val: v}.
func A(k, v string) Attr { return Attr{Key: k, Val: v} }

// Class is shorthand for A("class", c).
func Class(c string) Attr { return Attr{Key: "class", Val: c} }

// Escape escapes s for use in text or attribute positions.
func Escape(s string) string { return html.EscapeString(s) }

func writeAttrs(b *strings.Builder, attrs []Attr) {
	for _, a := range attrs {
		// empty values are dropped, except alt which screen readers rely on
		if a.Key == "" || (a.Val == "" && a.Key != "alt") {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(a.Val))
		b.WriteByte('"')
	}
}

// StartTag renders <name attrs>.
func StartTag(name string, attrs ...Attr) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(name)
	writeAttrs(&b, attrs)
	b.WriteByte('>')
	return b.String()
}

// EndTag renders </name>.
func EndTag(name string) string { return "</" + name + ">" }

// EmptyTag renders a void element, <name attrs />.
func EmptyTag(name string, attrs ...Attr) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(name)
	writeAttrs(&b, attrs)
	b.WriteString(" />")
	return b.String()
}

// Tag renders <name attrs>contents</name>.
func Tag(name, contents string, attrs ...Attr) string {
	return StartTag(name, attrs...) + contents + EndTag(name)
}

// Link renders an anchor with href first, followed by attrs.
func Link(href, text string, attrs ...Attr) string {
	all := make([]Attr, 0, len(attrs)+1)
	all = append(all, A("href", href))
	all = append(all, attrs...)
	return Tag("a", text, all...)
}

// Span renders <span class>contents</span>.
func Span(contents, class string) string { return Tag("span", contents, Class(class)) }

// StartSpan renders <span class>.
func StartSpan(class string) string { return StartTag("span", Class(class)) }

// StartDiv renders <div class>.
func StartDiv(class string) string { return StartTag("div", Class(class)) }

// Div renders <div class>contents</div>.
func Div(contents, class string) string { return Tag("div", contents, Class(class)) }

// Icon renders an empty Font Awesome icon element, <i class="fa fa-NAME"></i>. Extra classes
// may follow the glyph name ("caret-right", "envelope-o", "square colours-default").
func Icon(glyph string) string { return Tag("i", "", Class("fa fa-"+glyph)) }

// Em wraps contents in <em>.
func Em(contents string) string { return "<em>" + contents + "</em>" }
