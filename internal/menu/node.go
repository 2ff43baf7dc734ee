package menu

import (
	"slices"

	"git.home.luguber.info/inful/essential/internal/host"
)

// Node is one menu entry. Label is trusted markup; Title is plain text.
type Node struct {
	Label string
	URL   *host.URL
	Title string
	Sort  int

	parent   *Node
	children []*Node
	lastSort int
}

// Menu is the root of a tree. The root itself is never rendered.
type Menu struct {
	Node
}

// New returns an empty menu.
func New() *Menu { return &Menu{} }

// Add appends a child placed after the last sibling added.
func (n *Node) Add(label string, url *host.URL, title string) *Node {
	return n.AddSorted(label, url, title, 0)
}

// AddSorted appends a child with an explicit sort key. A key of zero means "after the last sibling".
func (n *Node) AddSorted(label string, url *host.URL, title string, sort int) *Node {
	if sort == 0 {
		sort = n.lastSort + 1
	}
	child := &Node{Label: label, URL: url, Title: title, Sort: sort, parent: n}
	n.children = append(n.children, child)
	n.lastSort = sort
	return child
}

// Parent returns the enclosing node, nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// HasChildren reports whether the node renders as a dropdown.
func (n *Node) HasChildren() bool { return len(n.children) > 0 }

// Children returns the children ordered by sort key, equal keys keeping insertion order.
func (n *Node) Children() []*Node {
	out := slices.Clone(n.children)
	slices.SortStableFunc(out, func(a, b *Node) int { return a.Sort - b.Sort })
	return out
}

// Depth returns the maximum nesting depth below n: 0 for a leaf.
func (n *Node) Depth() int {
	d := 0
	for _, c := range n.children {
		if cd := c.Depth() + 1; cd > d {
			d = cd
		}
	}
	return d
}

func (n *Node) remove(child *Node) {
	if n == nil {
		return
	}
	n.children = slices.DeleteFunc(n.children, func(c *Node) bool { return c == child })
}
