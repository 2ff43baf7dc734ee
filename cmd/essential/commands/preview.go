package commands

import (
	"context"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/essential/internal/lang"
	"git.home.luguber.info/inful/essential/internal/preview"
)

// PreviewCmd implements the 'preview' command.
type PreviewCmd struct {
	Fixture string `arg:"" optional:"" help:"Fixture file to serve and watch (defaults to preview.fixture, or the built-in demo when that file does not exist)."`
	Listen  string `name:"listen" help:"Listen address (defaults to preview.listen)."`
	Metrics bool   `name:"metrics" help:"Expose Prometheus metrics regardless of the settings file."`
	Theme   string `name:"theme" default:"essential" help:"Registered theme plugin to render with."`
}

func (p *PreviewCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	if p.Listen != "" {
		cfg.Preview.Listen = p.Listen
	}
	if p.Metrics {
		cfg.Metrics.Enabled = true
	}
	path := p.Fixture
	if path == "" && fileExists(cfg.Preview.Fixture) {
		path = cfg.Preview.Fixture
	}

	bundle, err := lang.Load()
	if err != nil {
		return err
	}
	srv, err := preview.New(cfg, bundle, preview.Options{
		FixturePath: path,
		Theme:       p.Theme,
		Registry:    g.registry(),
		Logger:      g.Logger,
	})
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx)
}
