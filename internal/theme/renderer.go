package theme

import (
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/essential/internal/config"
	"git.home.luguber.info/inful/essential/internal/host"
	"git.home.luguber.info/inful/essential/internal/logfields"
	"git.home.luguber.info/inful/essential/internal/menu"
	"git.home.luguber.info/inful/essential/internal/metrics"
)

// Renderer is the Essential theme renderer for one request.
type Renderer struct {
	req   host.Request
	theme config.ThemeSettings
	site  config.SiteSettings

	logger     *slog.Logger
	recorder   metrics.Recorder
	extensions []UserMenuExtension

	serializer menu.Serializer
	memo       map[string]*menu.Menu
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger. Request attributes are added to it.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(rec metrics.Recorder) Option {
	return func(r *Renderer) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// WithUserMenuExtensions enables additional user menu sections.
func WithUserMenuExtensions(ext ...UserMenuExtension) Option {
	return func(r *Renderer) {
		r.extensions = append(r.extensions, ext...)
	}
}

// New creates a renderer for req. A nil cfg uses the default settings.
func New(req host.Request, cfg *config.Config, opts ...Option) *Renderer {
	if cfg == nil {
		cfg = config.Default()
	}
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	if req.Now.IsZero() {
		req.Now = time.Now()
	}
	r := &Renderer{
		req:      req,
		theme:    cfg.Theme,
		site:     cfg.Site,
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
		memo:     make(map[string]*menu.Menu),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With(
		logfields.RequestID(req.RequestID),
		logfields.UserID(req.User.ID),
		logfields.PageLayout(req.Page.Layout),
	)
	return r
}

// RequestID returns the id of the render pass.
func (r *Renderer) RequestID() string { return r.req.RequestID }

func (r *Renderer) observe(hook string, start time.Time) {
	r.recorder.ObserveRenderDuration(hook, time.Since(start))
}

func (r *Renderer) str(id, component string, a ...any) string {
	return r.req.Strings.Get(id, component, a...)
}

// pageURL is the current page, or the site root when the host gave none.
func (r *Renderer) pageURL() *host.URL {
	if r.req.Page.URL != nil {
		return r.req.Page.URL
	}
	return host.NewURL("/")
}

func (r *Renderer) hasCapability(capability string, contextID int64) bool {
	if r.req.Permissions == nil {
		return false
	}
	return r.req.Permissions.HasCapability(capability, contextID)
}

func (r *Renderer) loggedIn() bool { return r.req.Session != nil && r.req.Session.IsLoggedIn() }

func (r *Renderer) guest() bool { return r.req.Session != nil && r.req.Session.IsGuest() }

func (r *Renderer) sessKey() string {
	if r.req.Session == nil {
		return ""
	}
	return r.req.Session.SessKey()
}

func (r *Renderer) render(m *menu.Menu) string { return r.serializer.Render(m) }

// memoized returns the cached menu name, building it on first use.
func (r *Renderer) memoized(name string, build func() *menu.Menu) *menu.Menu {
	if m, ok := r.memo[name]; ok {
		r.recorder.IncMenuCache(name, metrics.ResultHit)
		return m
	}
	r.recorder.IncMenuCache(name, metrics.ResultMiss)
	m := build()
	r.memo[name] = m
	r.logger.Debug("Built menu", logfields.Menu(name), logfields.Count(len(m.Children())))
	return m
}

// collator orders names for the current language.
func (r *Renderer) collator() *collate.Collator {
	tag, err := language.Parse(r.req.Strings.Current())
	if err != nil {
		tag = language.English
	}
	return collate.New(tag, collate.IgnoreCase)
}

type named[T any] struct {
	key  string
	name string
	val  T
}

// sortByName sorts items by name using the current language's collation, stable for ties.
func sortByName[T any](r *Renderer, items []named[T]) {
	c := r.collator()
	slices.SortStableFunc(items, func(a, b named[T]) int {
		return c.CompareString(a.name, b.name)
	})
}

func li(s string) string { return "<li>" + s + "</li>" }
