package commands

import (
	"fmt"
	"text/tabwriter"

	"git.home.luguber.info/inful/essential/internal/icons"
)

// IconsCmd implements the 'icons' command.
type IconsCmd struct {
	Lookup string `arg:"" optional:"" help:"Show only the glyph for this icon token."`
}

func (c *IconsCmd) Run(g *Global) error {
	if c.Lookup != "" {
		glyph, ok := icons.Lookup(c.Lookup)
		if !ok {
			_, err := fmt.Fprintf(g.Out, "%s: no glyph (host icon is used)\n", c.Lookup)
			return err
		}
		_, err := fmt.Fprintln(g.Out, glyph)
		return err
	}

	tw := tabwriter.NewWriter(g.Out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "TOKEN\tGLYPH")
	for _, m := range icons.All() {
		_, _ = fmt.Fprintf(tw, "%s\tfa-%s\n", m.Token, m.Glyph)
	}
	return tw.Flush()
}
