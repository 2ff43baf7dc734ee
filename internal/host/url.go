package host

import (
	"net/url"
	"strings"

	"git.home.luguber.info/inful/essential/internal/foundation/errors"
)

// Param is one query parameter. Parameters keep their insertion order when rendered.
type Param struct {
	Key   string
	Value string
}

// P is shorthand for Param{Key: k, Value: v}.
func P(k, v string) Param { return Param{Key: k, Value: v} }

// URL is an immutable link target: a base (absolute or site-relative), ordered query
// parameters and an optional fragment.
type URL struct {
	base     string
	params   []Param
	fragment string
	// anchor is set when the URL carries a '#', even an empty one.
	anchor bool
}

// NewURL builds a URL from base. A query string or fragment already present in base is split
// off and merged, so NewURL("/login/logout.php?sesskey=x") and
// NewURL("/login/logout.php", P("sesskey", "x")) are equivalent.
func NewURL(base string, params ...Param) *URL {
	u := &URL{base: base}
	if i := strings.IndexByte(u.base, '#'); i >= 0 {
		u.fragment = u.base[i+1:]
		u.base = u.base[:i]
		u.anchor = true
	}
	if i := strings.IndexByte(u.base, '?'); i >= 0 {
		raw := u.base[i+1:]
		u.base = u.base[:i]
		for _, pair := range strings.Split(raw, "&") {
			if pair == "" {
				continue
			}
			k, v, _ := strings.Cut(pair, "=")
			dk, err := url.QueryUnescape(k)
			if err != nil {
				dk = k
			}
			dv, err := url.QueryUnescape(v)
			if err != nil {
				dv = v
			}
			u.params = setParam(u.params, dk, dv)
		}
	}
	for _, p := range params {
		u.params = setParam(u.params, p.Key, p.Value)
	}
	return u
}

// ParseURL validates raw and returns it as a URL. Empty input, whitespace, and unparsable
// input are rejected.
func ParseURL(raw string) (*URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.ValidationError("empty url").Build()
	}
	if strings.ContainsAny(raw, " \t\n\"<>") {
		return nil, errors.ValidationError("url contains invalid characters").WithContext("url", raw).Build()
	}
	if _, err := url.Parse(raw); err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "invalid url").WithContext("url", raw).Build()
	}
	return NewURL(raw), nil
}

// WithParam returns a copy of u with key set to value (replacing an existing key in place).
func (u *URL) WithParam(key, value string) *URL {
	c := u.clone()
	c.params = setParam(c.params, key, value)
	return c
}

// WithoutParam returns a copy of u without key.
func (u *URL) WithoutParam(key string) *URL {
	c := u.clone()
	out := c.params[:0]
	for _, p := range c.params {
		if p.Key != key {
			out = append(out, p)
		}
	}
	c.params = out
	return c
}

// Param returns the value of key and whether it is present.
func (u *URL) Param(key string) (string, bool) {
	for _, p := range u.params {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Base returns the URL without query or fragment.
func (u *URL) Base() string { return u.base }

// Out renders the URL with an encoded query string. The result is not HTML-escaped.
func (u *URL) Out() string {
	if u == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(u.base)
	for i, p := range u.params {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	if u.anchor {
		b.WriteByte('#')
		b.WriteString(u.fragment)
	}
	return b.String()
}

// OutAsLocal strips root from the start of the rendered URL, returning a site-relative path.
// URLs outside root are returned unchanged.
func (u *URL) OutAsLocal(root string) string {
	out := u.Out()
	root = strings.TrimSuffix(root, "/")
	if root != "" && strings.HasPrefix(out, root) {
		local := strings.TrimPrefix(out, root)
		if local == "" {
			return "/"
		}
		return local
	}
	return out
}

func (u *URL) String() string { return u.Out() }

func (u *URL) clone() *URL {
	c := *u
	c.params = append([]Param(nil), u.params...)
	return &c
}

func setParam(params []Param, key, value string) []Param {
	for i := range params {
		if params[i].Key == key {
			params[i].Value = value
			return params
		}
	}
	return append(params, Param{Key: key, Value: value})
}
