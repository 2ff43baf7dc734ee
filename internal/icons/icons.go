// Package icons maps legacy pix icon tokens onto Font Awesome glyphs.
package icons

import (
	_ "embed"
	"maps"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/essential/internal/foundation/errors"
	"git.home.luguber.info/inful/essential/internal/markup"
)

//go:embed icons.yaml
var tableYAML []byte

// Mapping is one table entry.
type Mapping struct {
	Token string
	Glyph string
}

var loadTable = sync.OnceValues(func() (map[string]string, error) {
	return parseTable(tableYAML)
})

func parseTable(data []byte) (map[string]string, error) {
	var t map[string]string
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "parse icon table").Build()
	}
	for token, glyph := range t {
		if glyph == "" {
			return nil, errors.NewError(errors.CategoryInternal, "icon mapping without glyph").WithContext("icon", token).Build()
		}
	}
	return t, nil
}

func table() map[string]string {
	t, err := loadTable()
	if err != nil {
		// the table is compiled in; a parse failure is a build defect
		panic(err)
	}
	return t
}

// Lookup returns the glyph for a legacy token.
func Lookup(token string) (string, bool) {
	g, ok := table()[token]
	return g, ok
}

// All returns every mapping ordered by token.
func All() []Mapping {
	t := table()
	out := make([]Mapping, 0, len(t))
	for _, token := range slices.Sorted(maps.Keys(t)) {
		out = append(out, Mapping{Token: token, Glyph: t[token]})
	}
	return out
}

// OpenTag renders the opening themed icon tag for glyph.
func OpenTag(glyph, alt string) string {
	return `<i class="fa fa-` + markup.Escape(glyph) + ` icon" title="` + markup.Escape(alt) + `">`
}

// Wrap wraps hostMarkup in the themed icon tag when token is mapped. Unmapped tokens return
// hostMarkup unchanged and false.
func Wrap(token, alt, hostMarkup string) (string, bool) {
	glyph, ok := Lookup(token)
	if !ok {
		return hostMarkup, false
	}
	return OpenTag(glyph, alt) + hostMarkup + "</i>", true
}
