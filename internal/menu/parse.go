package menu

import (
	"strings"

	"git.home.luguber.info/inful/essential/internal/host"
)

// Parse reads the custom menu items format: one item per line,
//
//	label|url|title|langs
//
// with one leading '-' per nesting level. Items whose comma-separated language list does not
// contain lang are dropped together with their children; an empty list shows the item in every
// language. Unparseable URLs become nil.
func Parse(text, lang string) *Menu {
	m := New()
	root := &m.Node
	last := root
	lastDepth := 0
	sort := 0
	var hidden []*Node

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		bits := strings.SplitN(line, "|", 4)
		if bits[0] == "" {
			continue
		}
		label := bits[0]
		var url *host.URL
		var title string
		visible := true
		if len(bits) > 1 {
			if raw := strings.TrimSpace(bits[1]); raw != "" {
				if u, err := host.ParseURL(raw); err == nil {
					url = u
				}
			}
		}
		if len(bits) > 2 {
			title = strings.TrimSpace(bits[2])
		}
		if len(bits) > 3 && lang != "" && strings.TrimSpace(bits[3]) != "" {
			visible = false
			for _, l := range strings.Split(bits[3], ",") {
				if strings.TrimSpace(l) == lang {
					visible = true
					break
				}
			}
		}

		dashes := len(label) - len(strings.TrimLeft(label, "-"))
		depth := dashes + 1
		label = strings.TrimSpace(label[dashes:])

		for lastDepth-depth >= 0 && last != root {
			last = last.parent
			lastDepth--
		}
		sort++
		last = last.AddSorted(label, url, title, sort)
		lastDepth++
		if title == "" {
			last.Title = label
		}
		if !visible {
			hidden = append(hidden, last)
		}
	}

	for _, n := range hidden {
		n.parent.remove(n)
	}
	return m
}
