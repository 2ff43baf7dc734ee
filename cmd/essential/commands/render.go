package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/essential/internal/fixture"
	"git.home.luguber.info/inful/essential/internal/lang"
	"git.home.luguber.info/inful/essential/internal/logfields"
	"git.home.luguber.info/inful/essential/internal/messages"
	"git.home.luguber.info/inful/essential/internal/plugin"
	"git.home.luguber.info/inful/essential/internal/preview"
	"git.home.luguber.info/inful/essential/internal/theme"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	Fixture string   `arg:"" optional:"" type:"existingfile" help:"Fixture file (defaults to the built-in demo)."`
	Hook    []string `short:"k" name:"hook" help:"Hook to render (repeatable; all hooks when omitted)."`
	Page    bool     `name:"page" help:"Render the full demo page instead of individual hooks."`
	Lang    string   `short:"l" name:"lang" help:"Override the fixture language."`
	DB      string   `name:"db" type:"existingfile" help:"Serve messages from this SQLite store instead of the fixture."`
	Theme   string   `name:"theme" default:"essential" help:"Registered theme plugin to render with."`
}

func (c *RenderCmd) Run(g *Global, root *CLI) error {
	ctx := context.Background()
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	f, err := loadFixture(c.Fixture)
	if err != nil {
		return err
	}
	bundle, err := lang.Load()
	if err != nil {
		return err
	}
	if c.Lang != "" {
		f.Lang = bundle.Match(c.Lang)
	}

	var opts []fixture.RequestOption
	if c.DB != "" {
		store, err := messages.NewSQLiteStore(c.DB)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		opts = append(opts, fixture.WithMessageStore(store))
	}

	pc := plugin.NewPluginContext(ctx, g.Logger, cfg)
	r, err := g.registry().NewRenderer(pc, c.Theme, cfg.Theme.UserMenuExtensions, f.Request(bundle, opts...))
	if err != nil {
		return err
	}
	g.Logger.Debug("Rendering fixture", logfields.RequestID(r.RequestID()), logfields.PageLayout(f.Page.Layout))

	if c.Page {
		page, err := preview.RenderPage(ctx, r, f, "")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(g.Out, page)
		return err
	}

	hooks := c.Hook
	if len(hooks) == 0 {
		hooks = theme.HookNames()
	}
	for _, name := range hooks {
		out, err := r.Render(ctx, name)
		if err != nil {
			return err
		}
		if len(hooks) == 1 {
			_, err = fmt.Fprintln(g.Out, out)
		} else {
			_, err = fmt.Fprintf(g.Out, "== %s ==\n%s\n", name, out)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
