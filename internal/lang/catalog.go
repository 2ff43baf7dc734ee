// Package lang provides the bundled language packs and a string catalog for one language.
package lang

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/essential/internal/foundation/errors"
	"git.home.luguber.info/inful/essential/internal/host"
)

// Fallback is the language every lookup falls back to.
const Fallback = "en"

//go:embed packs/*.yaml
var packFS embed.FS

// pack maps component -> identifier -> text.
type pack map[string]map[string]string

// Bundle holds the parsed packs. It is immutable once loaded.
type Bundle struct {
	packs   map[string]pack
	codes   []string
	tags    []language.Tag
	matcher language.Matcher
}

var loadBundle = sync.OnceValues(func() (*Bundle, error) {
	return parsePacks(packFS)
})

// Load returns the process-wide bundle, parsing the embedded packs on first use.
func Load() (*Bundle, error) { return loadBundle() }

func parsePacks(fsys fs.FS) (*Bundle, error) {
	entries, err := fs.ReadDir(fsys, "packs")
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "read language packs").Build()
	}
	b := &Bundle{packs: make(map[string]pack)}
	for _, e := range entries {
		code := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		data, err := fs.ReadFile(fsys, path.Join("packs", e.Name()))
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryInternal, "read language pack").WithContext("lang", code).Build()
		}
		var p pack
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, errors.WrapError(err, errors.CategoryInternal, "parse language pack").WithContext("lang", code).Build()
		}
		b.packs[code] = p
		b.codes = append(b.codes, code)
	}
	if _, ok := b.packs[Fallback]; !ok {
		return nil, errors.NewError(errors.CategoryInternal, "fallback language pack missing").WithContext("lang", Fallback).Build()
	}
	// fallback first so the matcher prefers it on ties
	slices.Sort(b.codes)
	b.codes = slices.DeleteFunc(b.codes, func(c string) bool { return c == Fallback })
	b.codes = append([]string{Fallback}, b.codes...)
	for _, c := range b.codes {
		b.tags = append(b.tags, language.Make(c))
	}
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

// Codes returns the installed language codes, fallback first.
func (b *Bundle) Codes() []string { return slices.Clone(b.codes) }

// Match picks the best installed language for the given preferences. Each preference may be a
// language code or a full Accept-Language header.
func (b *Bundle) Match(prefs ...string) string {
	var tags []language.Tag
	for _, p := range prefs {
		if p == "" {
			continue
		}
		parsed, _, err := language.ParseAcceptLanguage(p)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}
	if len(tags) == 0 {
		return Fallback
	}
	_, idx, conf := b.matcher.Match(tags...)
	if conf == language.No {
		return Fallback
	}
	return b.codes[idx]
}

// Catalog returns a string catalog for code, matched against the installed packs.
func (b *Bundle) Catalog(code string) *Catalog {
	return &Catalog{bundle: b, code: b.Match(code)}
}

// DisplayName returns the self-name of a language ("Deutsch" for de).
func DisplayName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return code
}

// Catalog implements host.Strings for one language.
type Catalog struct {
	bundle *Bundle
	code   string
}

var _ host.Strings = (*Catalog)(nil)

// Get looks up component/id, falling back to English, then to "[[id]]". The first argument
// replaces {$a}; a map argument replaces {$a->key} placeholders.
func (c *Catalog) Get(id, component string, a ...any) string {
	if component == "" || component == "moodle" {
		component = "core"
	}
	text, ok := c.lookup(c.code, component, id)
	if !ok {
		text, ok = c.lookup(Fallback, component, id)
	}
	if !ok {
		return "[[" + id + "]]"
	}
	if len(a) == 0 || !strings.Contains(text, "{$a") {
		return text
	}
	return substitute(text, a[0])
}

func (c *Catalog) lookup(code, component, id string) (string, bool) {
	p, ok := c.bundle.packs[code]
	if !ok {
		return "", false
	}
	text, ok := p[component][id]
	return text, ok
}

func substitute(text string, a any) string {
	switch v := a.(type) {
	case map[string]any:
		for k, val := range v {
			text = strings.ReplaceAll(text, "{$a->"+k+"}", fmt.Sprint(val))
		}
		return text
	case map[string]string:
		for k, val := range v {
			text = strings.ReplaceAll(text, "{$a->"+k+"}", val)
		}
		return text
	default:
		return strings.ReplaceAll(text, "{$a}", fmt.Sprint(v))
	}
}

// Translations lists installed languages with their self-names.
func (c *Catalog) Translations() []host.Translation {
	out := make([]host.Translation, 0, len(c.bundle.codes))
	for _, code := range c.bundle.codes {
		out = append(out, host.Translation{Code: code, Name: DisplayName(code)})
	}
	slices.SortFunc(out, func(a, b host.Translation) int { return strings.Compare(a.Code, b.Code) })
	return out
}

// Current returns the catalog's language code.
func (c *Catalog) Current() string { return c.code }
