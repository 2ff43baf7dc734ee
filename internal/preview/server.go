// Package preview serves demo pages rendered from a fixture, reloading the fixture when it
// changes on disk.
package preview

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/essential/internal/config"
	"git.home.luguber.info/inful/essential/internal/fixture"
	"git.home.luguber.info/inful/essential/internal/foundation/errors"
	"git.home.luguber.info/inful/essential/internal/lang"
	"git.home.luguber.info/inful/essential/internal/logfields"
	"git.home.luguber.info/inful/essential/internal/metrics"
	"git.home.luguber.info/inful/essential/internal/plugin"
	"git.home.luguber.info/inful/essential/internal/theme"
)

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	// FixturePath is the fixture file to serve. Empty serves the built-in demo fixture.
	FixturePath string
	// Theme names the registered theme plugin; empty means "essential".
	Theme    string
	Registry *plugin.Registry
	Logger   *slog.Logger
}

// Server renders preview pages. A new renderer is built for every request.
type Server struct {
	cfg         *config.Config
	bundle      *lang.Bundle
	registry    *plugin.Registry
	themeName   string
	fixturePath string
	logger      *slog.Logger
	errs        *errors.HTTPErrorAdapter

	prom     *prometheus.Registry
	recorder metrics.Recorder

	mu      sync.RWMutex
	current *fixture.Fixture
	lastErr error
}

// New loads the fixture and checks that the theme is registered.
func New(cfg *config.Config, bundle *lang.Bundle, opts Options) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if opts.Registry == nil {
		opts.Registry = plugin.DefaultRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Theme == "" {
		opts.Theme = "essential"
	}

	s := &Server{
		cfg:       cfg,
		bundle:    bundle,
		registry:  opts.Registry,
		themeName: opts.Theme,
		logger:    opts.Logger,
		errs:      errors.NewHTTPErrorAdapter(opts.Logger),
	}
	if opts.FixturePath != "" {
		abs, err := filepath.Abs(opts.FixturePath)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "resolve fixture path").
				WithContext("path", opts.FixturePath).Build()
		}
		s.fixturePath = abs
	}
	if _, err := s.registry.Theme(s.themeName); err != nil {
		return nil, err
	}
	if cfg.Metrics.Enabled {
		s.prom = prometheus.NewRegistry()
		s.recorder = metrics.NewPrometheusRecorder(s.prom)
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) load() (*fixture.Fixture, error) {
	if s.fixturePath == "" {
		return fixture.Demo()
	}
	return fixture.Load(s.fixturePath)
}

// Reload reads the fixture again. On failure the previous fixture stays in use and the error is
// shown on preview pages until a later reload succeeds.
func (s *Server) Reload() error {
	f, err := s.load()
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err
		return err
	}
	s.current = f
	s.lastErr = nil
	s.logger.Info("Fixture loaded", logfields.Path(s.fixturePath), logfields.Count(len(f.Messages)))
	return nil
}

func (s *Server) snapshot() (*fixture.Fixture, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.lastErr
}

// Handler returns the preview routes:
//
//	GET /              full demo page
//	GET /hooks/{name}  a single hook's markup
//	GET /healthz       liveness
//
// plus the metrics endpoint when metrics are enabled. A "lang" query parameter overrides the
// fixture language.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /hooks/{name}", s.handleHook)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	if s.prom != nil {
		mux.Handle("GET "+s.cfg.Metrics.Path, metrics.HTTPHandler(s.prom))
	}
	return chain(s.logger, s.errs, mux)
}

// newRenderer builds a renderer for one request through the theme plugin.
func (s *Server) newRenderer(r *http.Request, f *fixture.Fixture) (*theme.Renderer, error) {
	pc := plugin.NewPluginContext(r.Context(), s.logger, s.cfg)
	pc.Recorder = s.recorder
	req := f.Request(s.bundle)
	req.RequestID = r.Header.Get("X-Request-Id")
	return s.registry.NewRenderer(pc, s.themeName, s.cfg.Theme.UserMenuExtensions, req)
}

// requestFixture applies per-request overrides to the current fixture.
func (s *Server) requestFixture(r *http.Request, f *fixture.Fixture) *fixture.Fixture {
	code := r.URL.Query().Get("lang")
	if code == "" {
		return f
	}
	fc := *f
	fc.Lang = s.bundle.Match(code)
	return &fc
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	f, lastErr := s.snapshot()
	f = s.requestFixture(r, f)
	rdr, err := s.newRenderer(r, f)
	if err != nil {
		s.errs.WriteErrorResponse(w, r, err)
		return
	}
	status := ""
	if lastErr != nil {
		status = "Fixture reload failed, showing the last good fixture: " + lastErr.Error()
	}
	page, err := RenderPage(r.Context(), rdr, f, status)
	if err != nil {
		s.errs.WriteErrorResponse(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}

func (s *Server) handleHook(w http.ResponseWriter, r *http.Request) {
	f, _ := s.snapshot()
	f = s.requestFixture(r, f)
	rdr, err := s.newRenderer(r, f)
	if err != nil {
		s.errs.WriteErrorResponse(w, r, err)
		return
	}
	out, err := rdr.Render(r.Context(), r.PathValue("name"))
	if err != nil {
		s.errs.WriteErrorResponse(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(out))
}

// ListenAndServe serves on the configured address and watches the fixture until ctx is done,
// then shuts the server down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Preview.Listen)
	if err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "listen").
			WithContext("address", s.cfg.Preview.Listen).Build()
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()
	go func() {
		if err := s.Watch(ctx); err != nil {
			s.logger.Error("Fixture watcher stopped", logfields.Error(err))
		}
	}()
	s.logger.Info("Preview server listening", slog.String("address", ln.Addr().String()))

	select {
	case err := <-serveErr:
		if err != nil {
			return errors.WrapError(err, errors.CategoryRuntime, "preview server").Build()
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "shut down preview server").Build()
	}
	s.logger.Info("Preview server stopped")
	return nil
}
