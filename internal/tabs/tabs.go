// Package tabs renders tab trees as Bootstrap nav-tabs rows.
package tabs

import (
	"strings"

	"git.home.luguber.info/inful/essential/internal/host"
	"git.home.luguber.info/inful/essential/internal/markup"
)

// Tab is one tab. Text is trusted markup.
type Tab struct {
	ID    string
	Text  string
	Title string
	// Link is the target. When nil, RawLink is used as a pre-built href.
	Link    *host.URL
	RawLink string

	Selected  bool
	Activated bool
	Inactive  bool
	Subtree   []Tab
}

// Active reports whether the tab is highlighted in its row.
func (t Tab) Active() bool { return t.Selected || t.Activated }

// RenderTree renders the first row of tabs, followed by the row of the last active tab that has
// a subtree. The second row is rendered the same way, so deeper levels nest naturally.
func RenderTree(tabs []Tab) string {
	if len(tabs) == 0 {
		return ""
	}
	var first strings.Builder
	second := ""
	for _, t := range tabs {
		first.WriteString(RenderTab(t))
		if t.Active() && len(t.Subtree) > 0 {
			second = RenderTree(t.Subtree)
		}
	}
	return markup.Tag("ul", first.String(), markup.Class("nav nav-tabs")) + second
}

// RenderTab renders a single tab as a list item.
func RenderTab(t Tab) string {
	switch {
	case t.Active():
		return markup.Tag("li", markup.Tag("a", t.Text), markup.Class("active"))
	case t.Inactive:
		return markup.Tag("li", markup.Tag("a", t.Text), markup.Class("disabled"))
	case t.Link != nil:
		return markup.Tag("li", markup.Link(t.Link.Out(), t.Text, markup.A("title", t.Title)))
	default:
		// legacy form keeps both attributes even when empty
		link := `<a href="` + markup.Escape(t.RawLink) + `" title="` + markup.Escape(t.Title) + `">` + t.Text + `</a>`
		return markup.Tag("li", link)
	}
}
