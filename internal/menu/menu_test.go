package menu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/essential/internal/host"
)

func parseFragment(t *testing.T, s string) []*html.Node {
	t.Helper()
	nodes, err := html.ParseFragment(strings.NewReader(s), &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body})
	require.NoError(t, err)
	return nodes
}

// listDepth counts nested <ul> levels below the outer list.
func listDepth(n *html.Node) int {
	d := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		cd := listDepth(c)
		if c.Type == html.ElementNode && c.DataAtom == atom.Ul {
			cd++
		}
		if cd > d {
			d = cd
		}
	}
	return d
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func TestAdd_SortAndStability(t *testing.T) {
	m := New()
	m.AddSorted("c", nil, "", 300)
	m.AddSorted("a", nil, "", 100)
	m.AddSorted("b1", nil, "", 200)
	m.AddSorted("b2", nil, "", 200)
	next := m.Add("d", nil, "")
	assert.Equal(t, 201, next.Sort)

	var labels []string
	for _, c := range m.Children() {
		labels = append(labels, c.Label)
	}
	assert.Equal(t, []string{"a", "b1", "b2", "d", "c"}, labels)
}

func TestAdd_DefaultSortFollowsInsertion(t *testing.T) {
	m := New()
	a := m.Add("a", nil, "")
	b := m.Add("b", nil, "")
	assert.Equal(t, 1, a.Sort)
	assert.Equal(t, 2, b.Sort)
	assert.Same(t, &m.Node, a.Parent())
}

func TestParse_Nesting(t *testing.T) {
	text := `
Moodle community|http://moodle.org
-Moodle free support|http://moodle.org/support
-Moodle development|http://moodle.org/development
--Moodle Tracker|http://tracker.moodle.org
--Moodle Docs|http://docs.moodle.org
-Moodle News|http://moodle.org/news
Moodle company
-Moodle commercial hosting|http://moodle.com/hosting|Hosting
`
	m := Parse(text, "en")
	top := m.Children()
	require.Len(t, top, 2)
	assert.Equal(t, "Moodle community", top[0].Label)
	assert.Equal(t, "http://moodle.org", top[0].URL.Out())
	require.Len(t, top[0].Children(), 3)
	assert.Len(t, top[0].Children()[1].Children(), 2)
	assert.Nil(t, top[1].URL)
	assert.Equal(t, "Hosting", top[1].Children()[0].Title)
	assert.Equal(t, 3, m.Depth())
}

func TestParse_LanguageFilterDropsSubtree(t *testing.T) {
	text := "English|/en||en\n-Sub|/en/sub\nDeutsch|/de||de,de_du\nAll|/all"
	m := Parse(text, "de")
	var labels []string
	for _, c := range m.Children() {
		labels = append(labels, c.Label)
	}
	assert.Equal(t, []string{"Deutsch", "All"}, labels)
}

func TestParse_EmptyLanguageListShowsItem(t *testing.T) {
	m := Parse("Moodle|https://moodle.org|Moodle site|\nDocs|https://docs.moodle.org|Docs| \nSupport|/support||en, ,de", "en")
	var labels []string
	for _, c := range m.Children() {
		labels = append(labels, c.Label)
	}
	assert.Equal(t, []string{"Moodle", "Docs", "Support"}, labels)

	m = Parse("Support|/support||en, ,de", "fr")
	assert.Empty(t, m.Children())
}

func TestParse_InvalidURLBecomesNil(t *testing.T) {
	m := Parse("Bad|http://bad host/", "en")
	require.Len(t, m.Children(), 1)
	assert.Nil(t, m.Children()[0].URL)
}

func TestSerializer_LeafAndDropdown(t *testing.T) {
	m := New()
	branch := m.AddSorted("<i class=\"fa fa-briefcase\"></i>Courses", nil, "Courses", 200)
	branch.Add("One", host.NewURL("/course/view.php", host.P("id", "2")), "C1")
	m.Add("Plain", nil, "Plain")

	var s Serializer
	out := s.Render(m)
	assert.Equal(t,
		`<ul class="nav">`+
			`<li class="dropdown"><a href="#cm_submenu_1" class="dropdown-toggle" data-toggle="dropdown" title="Courses">`+
			`<i class="fa fa-briefcase"></i>Courses<i class="fa fa-caret-right"></i></a>`+
			`<ul class="dropdown-menu"><li><a href="/course/view.php?id=2" title="C1">One</a></li></ul></li>`+
			`<li><a href="#" title="Plain">Plain</a></li>`+
			`</ul>`, out)
}

func TestSerializer_SubmenuCounterAndLangClass(t *testing.T) {
	m := New()
	lang := m.AddSorted("Language", host.NewURL("#"), "Language", 100)
	lang.Add("English", host.NewURL("/p", host.P("lang", "en")), "English")
	other := m.AddSorted("Other", nil, "Other", 200)
	deep := other.Add("Deep", nil, "Deep")
	deep.Add("Leaf", nil, "Leaf")

	s := Serializer{Language: lang}
	out := s.Render(m)
	nodes := parseFragment(t, out)
	require.Len(t, nodes, 1)

	var classes, hrefs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Li && attr(n, "class") != "" {
			classes = append(classes, attr(n, "class"))
			hrefs = append(hrefs, attr(n.FirstChild, "href"))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(nodes[0])
	assert.Equal(t, []string{"dropdown langmenu", "dropdown", "dropdown-submenu"}, classes)
	assert.Equal(t, []string{"#", "#cm_submenu_2", "#cm_submenu_3"}, hrefs)

	// counter continues for the same serializer
	assert.Contains(t, s.Render(m), "#cm_submenu_5")
}

func TestSerializer_DepthMatchesNesting(t *testing.T) {
	for depth := 1; depth <= 5; depth++ {
		m := New()
		n := &m.Node
		for i := 0; i < depth; i++ {
			n = n.Add("n", nil, "")
			n.Parent().Add("sibling", nil, "")
		}
		var s Serializer
		nodes := parseFragment(t, s.Render(m))
		require.Len(t, nodes, 1)
		assert.Equal(t, atom.Ul, nodes[0].DataAtom)
		assert.Equal(t, m.Depth()-1, listDepth(nodes[0]), "depth %d", depth)
	}
}

func TestSerializer_EmptyMenu(t *testing.T) {
	var s Serializer
	assert.Equal(t, `<ul class="nav"></ul>`, s.Render(New()))
	assert.Equal(t, `<ul class="nav"></ul>`, s.Render(nil))
}
