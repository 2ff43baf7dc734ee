package theme

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/essential/internal/config"
	"git.home.luguber.info/inful/essential/internal/fixture"
	"git.home.luguber.info/inful/essential/internal/lang"
	"git.home.luguber.info/inful/essential/internal/metrics"
)

// newTestRenderer builds a renderer for the demo fixture. editFixture and editConfig may be nil.
func newTestRenderer(t *testing.T, editFixture func(*fixture.Fixture), editConfig func(*config.Config), opts ...Option) *Renderer {
	t.Helper()
	f, err := fixture.Demo()
	require.NoError(t, err)
	if editFixture != nil {
		editFixture(f)
	}
	bundle, err := lang.Load()
	require.NoError(t, err)
	cfg := config.Default()
	if editConfig != nil {
		editConfig(cfg)
	}
	return New(f.Request(bundle), cfg, opts...)
}

func anonymous(f *fixture.Fixture) { f.Session = fixture.Session{SessKey: "x"} }

func guest(f *fixture.Fixture) {
	f.Session = fixture.Session{LoggedIn: true, Guest: true, SessKey: "x"}
	f.User = fixture.User{ID: 1, FirstName: "Guest user"}
}

// parse parses a fragment in a <div> context.
func parse(t *testing.T, s string) []*html.Node {
	t.Helper()
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(s), ctx)
	require.NoError(t, err)
	return nodes
}

func findAll(nodes []*html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return out
}

func byTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == tag }
}

func byClass(class string) func(*html.Node) bool {
	return func(n *html.Node) bool { return hasClass(n, class) }
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// hrefs lists the href of every anchor in s, in document order.
func hrefs(t *testing.T, s string) []string {
	t.Helper()
	var out []string
	for _, a := range findAll(parse(t, s), byTag("a")) {
		out = append(out, attr(a, "href"))
	}
	return out
}

// childItems returns the <li> children of the first dropdown menu in s.
func childItems(t *testing.T, s string) []*html.Node {
	t.Helper()
	menus := findAll(parse(t, s), byClass("dropdown-menu"))
	require.NotEmpty(t, menus)
	var out []*html.Node
	for c := menus[0].FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "li" {
			out = append(out, c)
		}
	}
	return out
}

type countingRecorder struct {
	mu     sync.Mutex
	hooks  map[string]int
	icons  map[metrics.LookupResult]int
	menus  map[string]map[metrics.LookupResult]int
	unread int
	read   int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{
		hooks: map[string]int{},
		icons: map[metrics.LookupResult]int{},
		menus: map[string]map[metrics.LookupResult]int{},
	}
}

func (c *countingRecorder) ObserveRenderDuration(hook string, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks[hook]++
}

func (c *countingRecorder) IncIconLookup(result metrics.LookupResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.icons[result]++
}

func (c *countingRecorder) IncMenuCache(menu string, result metrics.LookupResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.menus[menu] == nil {
		c.menus[menu] = map[metrics.LookupResult]int{}
	}
	c.menus[menu][result]++
}

func (c *countingRecorder) AddMessageSummaries(unread, read int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unread += unread
	c.read += read
}
