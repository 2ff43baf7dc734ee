// Package commands implements the essential CLI.
package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/essential/internal/config"
	"git.home.luguber.info/inful/essential/internal/fixture"
	"git.home.luguber.info/inful/essential/internal/logfields"
	"git.home.luguber.info/inful/essential/internal/plugin"
)

// Global holds state shared by all commands.
type Global struct {
	Logger *slog.Logger
	// Out receives command output; os.Stdout unless a test replaces it.
	Out io.Writer
	// Registry resolves theme and user menu plugins; the global registry when nil.
	Registry *plugin.Registry
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Settings file path" default:"essential.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Render   RenderCmd   `cmd:"" help:"Render one or all hooks for a fixture"`
	Icons    IconsCmd    `cmd:"" help:"List the icon substitution table"`
	Init     InitCmd     `cmd:"" help:"Write an example settings file"`
	Preview  PreviewCmd  `cmd:"" help:"Serve a demo page rendered from a fixture, reloading on change"`
	Messages MessagesCmd `cmd:"" help:"Manage the SQLite message store"`
	Plugins  PluginsCmd  `cmd:"" help:"List registered theme and user menu plugins"`
}

// AfterApply runs after flag parsing and installs a logger honouring --verbose. The logger is
// rebuilt from the settings file once a command loads it.
func (c *CLI) AfterApply(g *Global) error {
	if g.Out == nil {
		g.Out = os.Stdout
	}
	g.Logger = config.Default().Logging.NewLogger(os.Stderr, c.Verbose)
	slog.SetDefault(g.Logger)
	return nil
}

// loadConfig reads the settings file, falling back to the defaults when it does not exist, and
// reconfigures logging from it.
func (c *CLI) loadConfig(g *Global) (*config.Config, error) {
	cfg := config.Default()
	if _, err := os.Stat(c.Config); err == nil {
		loaded, err := config.Load(c.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		slog.Debug("No settings file, using defaults", logfields.Path(c.Config))
	}
	g.Logger = cfg.Logging.NewLogger(os.Stderr, c.Verbose)
	slog.SetDefault(g.Logger)
	return cfg, nil
}

func (g *Global) registry() *plugin.Registry {
	if g.Registry != nil {
		return g.Registry
	}
	return plugin.DefaultRegistry()
}

// loadFixture reads path, or the built-in demo fixture when path is empty.
func loadFixture(path string) (*fixture.Fixture, error) {
	if path == "" {
		return fixture.Demo()
	}
	return fixture.Load(path)
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}
