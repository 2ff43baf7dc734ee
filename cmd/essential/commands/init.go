package commands

import (
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/essential/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force  bool   `help:"Overwrite existing settings file"`
	Output string `short:"o" name:"output" help:"Directory to write essential.yaml into (defaults to --config)."`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	path := root.Config
	if i.Output != "" {
		path = filepath.Join(i.Output, "essential.yaml")
	}
	_, _ = fmt.Fprintf(g.Out, "Writing settings to %s\n", path)
	if err := config.Init(path, i.Force); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(g.Out, "initialized successfully")
	return nil
}
