package menu

import (
	"strconv"
	"strings"

	"git.home.luguber.info/inful/essential/internal/markup"
)

// Serializer renders menus into nested list markup. Submenus without a URL get generated
// "#cm_submenu_N" anchors; N counts per Serializer, so use one Serializer per render pass.
type Serializer struct {
	// Language marks the node rendered with the extra "langmenu" class.
	Language *Node

	submenus int
}

// Render serializes m depth-first inside <ul class="nav">.
func (s *Serializer) Render(m *Menu) string {
	var b strings.Builder
	b.WriteString(markup.StartTag("ul", markup.Class("nav")))
	if m != nil {
		for _, c := range m.Children() {
			s.renderNode(&b, c, 1)
		}
	}
	b.WriteString(markup.EndTag("ul"))
	return b.String()
}

func (s *Serializer) renderNode(b *strings.Builder, n *Node, level int) {
	if !n.HasChildren() {
		href := "#"
		if n.URL != nil {
			href = n.URL.Out()
		}
		b.WriteString("<li>")
		b.WriteString(markup.Link(href, n.Label, markup.A("title", n.Title)))
		b.WriteString("</li>")
		return
	}

	class := "dropdown-submenu"
	if level == 1 {
		class = "dropdown"
	}
	if s.Language != nil && n == s.Language {
		class += " langmenu"
	}
	s.submenus++
	href := "#cm_submenu_" + strconv.Itoa(s.submenus)
	if n.URL != nil {
		href = n.URL.Out()
	}

	b.WriteString(markup.StartTag("li", markup.Class(class)))
	b.WriteString(markup.StartTag("a",
		markup.A("href", href),
		markup.Class("dropdown-toggle"),
		markup.A("data-toggle", "dropdown"),
		markup.A("title", n.Title),
	))
	b.WriteString(n.Label)
	if level == 1 {
		b.WriteString(markup.Icon("caret-right"))
	}
	b.WriteString("</a>")
	b.WriteString(markup.StartTag("ul", markup.Class("dropdown-menu")))
	for _, c := range n.Children() {
		s.renderNode(b, c, level+1)
	}
	b.WriteString("</ul></li>")
}
