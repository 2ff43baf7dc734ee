package messages

import (
	"context"
	"slices"
	"strconv"
	"time"
	"unicode/utf8"

	"git.home.luguber.info/inful/essential/internal/foundation/errors"
	"git.home.luguber.info/inful/essential/internal/host"
	"git.home.luguber.info/inful/essential/internal/markup"
)

// MaxSummaries is the panel size.
const MaxSummaries = 5

const (
	maxTextLen   = 18
	truncatedLen = 15
)

// Kind distinguishes system notifications from user-to-user messages.
type Kind string

const (
	KindNotification Kind = "notification"
	KindMessage      Kind = "message"
)

// Summary is one panel entry.
type Summary struct {
	Kind Kind
	Text string
	URL  *host.URL
	// From is the resolved sender; zero for notifications.
	From   host.User
	Time   time.Time
	Unread bool
}

// Panel is the result of Fetch.
type Panel struct {
	Summaries []Summary
	// NewCount is the number of unread summaries.
	NewCount int
}

// Empty reports whether the panel has nothing to show.
func (p Panel) Empty() bool { return len(p.Summaries) == 0 }

// Fetch loads up to MaxSummaries unread rows for userID and backfills with read rows when fewer
// than MaxSummaries are unread. Unread summaries come first; each group is newest first.
func Fetch(ctx context.Context, store host.MessageStore, userID int64) (Panel, error) {
	var p Panel
	if store == nil {
		return p, nil
	}

	unread, err := store.Unread(ctx, userID, MaxSummaries)
	if err != nil {
		return p, errors.StoreError(err, "load unread messages").WithContext("user_id", userID).Build()
	}
	unread = newestFirst(unread, MaxSummaries)
	p.NewCount = len(unread)

	rows := unread
	if remaining := MaxSummaries - len(unread); remaining > 0 {
		read, err := store.Read(ctx, userID, remaining)
		if err != nil {
			return p, errors.StoreError(err, "load read messages").WithContext("user_id", userID).Build()
		}
		rows = append(rows, newestFirst(read, remaining)...)
	}

	p.Summaries = make([]Summary, 0, len(rows))
	for _, rec := range rows {
		s, err := process(ctx, store, userID, rec)
		if err != nil {
			return p, err
		}
		p.Summaries = append(p.Summaries, s)
	}
	return p, nil
}

func newestFirst(recs []host.MessageRecord, limit int) []host.MessageRecord {
	recs = slices.Clone(recs)
	slices.SortStableFunc(recs, func(a, b host.MessageRecord) int {
		return b.TimeCreated.Compare(a.TimeCreated)
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}

func process(ctx context.Context, store host.MessageStore, userID int64, rec host.MessageRecord) (Summary, error) {
	s := Summary{
		Time:   rec.TimeCreated,
		Unread: rec.TimeRead.IsZero(),
	}
	if rec.Notification || rec.FromUserID < 1 {
		s.Kind = KindNotification
		s.Text = rec.SmallMessage
		if rec.ContextURL != "" {
			s.URL = host.NewURL(rec.ContextURL)
		}
		return s, nil
	}

	s.Kind = KindMessage
	s.Text = Truncate(PlainText(rec.SmallMessage, rec.Format))
	sender, ok, err := store.User(ctx, rec.FromUserID)
	if err != nil {
		return s, errors.StoreError(err, "load message sender").WithContext("user_id", rec.FromUserID).Build()
	}
	if !ok {
		sender = host.User{ID: rec.FromUserID}
	}
	s.From = sender
	s.URL = host.NewURL("/message/index.php",
		host.P("user1", strconv.FormatInt(userID, 10)),
		host.P("user2", strconv.FormatInt(rec.FromUserID, 10)),
	)
	return s, nil
}

// PlainText converts a message body in the given format to plain text.
func PlainText(text string, format int) string {
	switch format {
	case host.FormatHTML:
		return markup.HTMLToText(text)
	case host.FormatMarkdown:
		return markup.MarkdownToText(text)
	default:
		return text
	}
}

// Truncate shortens texts longer than 18 characters to their first 15 followed by "...".
func Truncate(text string) string {
	if utf8.RuneCountInString(text) <= maxTextLen {
		return text
	}
	runes := []rune(text)
	return string(runes[:truncatedLen]) + "..."
}
