package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/essential/internal/lang"
	"git.home.luguber.info/inful/essential/internal/logfields"
	"git.home.luguber.info/inful/essential/internal/messages"
)

// MessagesCmd groups the message store commands.
type MessagesCmd struct {
	Seed MessagesSeedCmd `cmd:"" help:"Load a fixture's users and messages into a SQLite store"`
	List MessagesListCmd `cmd:"" help:"Show the messages panel a user would see"`
}

// MessagesSeedCmd implements 'messages seed'.
type MessagesSeedCmd struct {
	Fixture string `arg:"" optional:"" type:"existingfile" help:"Fixture file (defaults to the built-in demo)."`
	DB      string `name:"db" default:"messages.db" help:"SQLite database file."`
}

func (c *MessagesSeedCmd) Run(g *Global) error {
	f, err := loadFixture(c.Fixture)
	if err != nil {
		return err
	}
	store, err := messages.NewSQLiteStore(c.DB)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	n, err := f.Seed(context.Background(), store)
	if err != nil {
		return err
	}
	g.Logger.Info("Seeded message store", logfields.Path(c.DB), logfields.Count(n))
	_, err = fmt.Fprintf(g.Out, "seeded %d messages into %s\n", n, c.DB)
	return err
}

// MessagesListCmd implements 'messages list'.
type MessagesListCmd struct {
	User int64  `arg:"" help:"Recipient user id."`
	DB   string `name:"db" default:"messages.db" help:"SQLite database file."`
	Lang string `short:"l" name:"lang" default:"en" help:"Language for relative times."`
}

func (c *MessagesListCmd) Run(g *Global) error {
	ctx := context.Background()
	store, err := messages.NewSQLiteStore(c.DB)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	panel, err := messages.Fetch(ctx, store, c.User)
	if err != nil {
		return err
	}
	if panel.Empty() {
		_, err = fmt.Fprintln(g.Out, "no messages")
		return err
	}
	bundle, err := lang.Load()
	if err != nil {
		return err
	}
	strs := bundle.Catalog(c.Lang)
	now := time.Now()

	tw := tabwriter.NewWriter(g.Out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "STATE\tKIND\tFROM\tWHEN\tTEXT")
	for _, s := range panel.Summaries {
		state := "read"
		if s.Unread {
			state = "unread"
		}
		from := s.From.FullName()
		if from == "" {
			from = "-"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			state, s.Kind, from, messages.RelativeTime(now, s.Time, strs), s.Text)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(g.Out, "%d new\n", panel.NewCount)
	return err
}
