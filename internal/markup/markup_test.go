package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTag_AttributeOrderAndEscaping(t *testing.T) {
	got := Tag("a", "<b>x</b>", A("href", "/p?a=1&b=2"), A("title", `say "hi"`))
	assert.Equal(t, `<a href="/p?a=1&amp;b=2" title="say &#34;hi&#34;"><b>x</b></a>`, got)
}

func TestEmptyAttributesDropped(t *testing.T) {
	assert.Equal(t, `<li>`, StartTag("li", Class("")))
	assert.Equal(t, `<img alt="" />`, EmptyTag("img", A("alt", ""), A("title", "")))
	assert.Equal(t, `<a>Invalid URL</a>`, Link("", "Invalid URL", A("target", "")))
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, `<a href="#" title="t">x</a>`, Link("#", "x", A("title", "t")))
	assert.Equal(t, `<span class="msg-time">now</span>`, Span("now", "msg-time"))
	assert.Equal(t, `<div class="message">m</div>`, Div("m", "message"))
	assert.Equal(t, `<i class="fa fa-caret-right"></i>`, Icon("caret-right"))
	assert.Equal(t, `<hr class="sep" />`, EmptyTag("hr", Class("sep")))
	assert.Equal(t, `<em>x</em>`, Em("x"))
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Saved", "Saved"},
		{"keeps markup", `<strong>Done</strong> ok`, `<strong>Done</strong> ok`},
		{"drops script", `a<script>alert(1)</script>b`, "ab"},
		{"drops iframe", `<iframe src="x"></iframe>c`, "c"},
		{"drops handler", `<b onclick="x()">b</b>`, `<b>b</b>`},
		{"drops javascript href", `<a href=" javascript:alert(1)" title="t">l</a>`, `<a title="t">l</a>`},
		{"keeps http href", `<a href="http://x/">l</a>`, `<a href="http://x/">l</a>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}

func TestHTMLToText(t *testing.T) {
	assert.Equal(t, "Hello world again", HTMLToText("<p>Hello <b>world</b></p><p>again</p>"))
	assert.Equal(t, "x", HTMLToText("<style>p{}</style>x"))
	assert.Equal(t, "a & b", HTMLToText("a &amp; b"))
}

func TestMarkdownToText(t *testing.T) {
	assert.Equal(t, "Title Some bold text", MarkdownToText("# Title\n\nSome **bold** text"))
}
