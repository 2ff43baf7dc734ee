package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/essential/cmd/essential/commands"
	"git.home.luguber.info/inful/essential/internal/foundation/errors"
	_ "git.home.luguber.info/inful/essential/internal/plugin/themes/essential"
	_ "git.home.luguber.info/inful/essential/internal/plugin/usermenu"
	"git.home.luguber.info/inful/essential/internal/version"
)

func main() {
	cli := &commands.CLI{}
	global := &commands.Global{Out: os.Stdout, Logger: slog.Default()}

	parser := kong.Parse(cli,
		kong.Name("essential"),
		kong.Description("Render and preview the Essential theme."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
	)

	if err := parser.Run(global, cli); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, global.Logger).HandleError(err)
	}
}
