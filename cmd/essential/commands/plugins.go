package commands

import (
	"fmt"
	"text/tabwriter"
)

// PluginsCmd implements the 'plugins' command.
type PluginsCmd struct{}

func (c *PluginsCmd) Run(g *Global) error {
	tw := tabwriter.NewWriter(g.Out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tVERSION\tTYPE\tDESCRIPTION")
	for _, p := range g.registry().List() {
		m := p.Metadata()
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.Name, m.Version, m.Type, m.Description)
	}
	return tw.Flush()
}
