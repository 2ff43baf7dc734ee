package messages

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/essential/internal/host"
	"git.home.luguber.info/inful/essential/internal/lang"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func english(t *testing.T) host.Strings {
	t.Helper()
	b, err := lang.Load()
	require.NoError(t, err)
	return b.Catalog("en")
}

func newStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRelativeTime(t *testing.T) {
	strs := english(t)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{0, "a few seconds ago"},
		{-30 * time.Second, "a few seconds ago"},
		{19 * time.Second, "a few seconds ago"},
		{20 * time.Second, "20 seconds ago"},
		{59 * time.Second, "59 seconds ago"},
		{60 * time.Second, "1 minute ago"},
		{119 * time.Second, "1 minute ago"},
		{120 * time.Second, "2 minutes ago"},
		{3600 * time.Second, "1 hour ago"},
		{7199 * time.Second, "1 hour ago"},
		{5 * time.Hour, "5 hours ago"},
		{36 * time.Hour, "1 day ago"},
		{29 * 24 * time.Hour, "29 days ago"},
		{30 * 24 * time.Hour, "1 month ago"},
		{364 * 24 * time.Hour, "12 months ago"},
		{365 * 24 * time.Hour, "1 year ago"},
		{3 * 365 * 24 * time.Hour, "3 years ago"},
	}
	for _, tt := range tests {
		t.Run(tt.want+"/"+tt.ago.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeTime(now, now.Add(-tt.ago), strs))
		})
	}
}

func TestRelativeTime_German(t *testing.T) {
	b, err := lang.Load()
	require.NoError(t, err)
	de := b.Catalog("de")
	assert.Equal(t, "vor 2 Stunden", RelativeTime(now, now.Add(-2*time.Hour), de))
	assert.Equal(t, "vor einigen Sekunden", RelativeTime(now, now, de))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "exactly eighteen!!", Truncate("exactly eighteen!!"))
	assert.Equal(t, "this is a longe...", Truncate("this is a longer message"))
	assert.Equal(t, "ääääääääääääääá...", Truncate("ääääääääääääääáéíóú"))
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "Hi there", PlainText("<p>Hi <b>there</b></p>", host.FormatHTML))
	assert.Equal(t, "Hi there", PlainText("Hi **there**", host.FormatMarkdown))
	assert.Equal(t, "Hi <b>", PlainText("Hi <b>", host.FormatPlain))
}

func seed(t *testing.T, s *SQLiteStore, to int64, unread, read int) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.PutUser(ctx, host.User{ID: 7, FirstName: "Grace", LastName: "Hopper"}))
	for i := 0; i < unread; i++ {
		_, err := s.Add(ctx, host.MessageRecord{
			FromUserID:   7,
			ToUserID:     to,
			SmallMessage: fmt.Sprintf("unread %d", i),
			TimeCreated:  now.Add(-time.Duration(i+1) * time.Minute),
		})
		require.NoError(t, err)
	}
	for i := 0; i < read; i++ {
		_, err := s.Add(ctx, host.MessageRecord{
			FromUserID:   7,
			ToUserID:     to,
			SmallMessage: fmt.Sprintf("read %d", i),
			TimeCreated:  now.Add(-time.Duration(i+1) * time.Hour),
			TimeRead:     now,
		})
		require.NoError(t, err)
	}
}

func TestFetch_CapsUnreadAtFive(t *testing.T) {
	s := newStore(t)
	seed(t, s, 2, 7, 3)

	p, err := Fetch(context.Background(), s, 2)
	require.NoError(t, err)
	require.Len(t, p.Summaries, MaxSummaries)
	assert.Equal(t, 5, p.NewCount)
	for i, sum := range p.Summaries {
		assert.True(t, sum.Unread)
		if i > 0 {
			assert.True(t, !sum.Time.After(p.Summaries[i-1].Time), "descending order")
		}
	}
	assert.Equal(t, "unread 0", p.Summaries[0].Text)
}

func TestFetch_BackfillsWithRead(t *testing.T) {
	s := newStore(t)
	seed(t, s, 2, 2, 10)

	p, err := Fetch(context.Background(), s, 2)
	require.NoError(t, err)
	require.Len(t, p.Summaries, 5)
	assert.Equal(t, 2, p.NewCount)
	assert.True(t, p.Summaries[1].Unread)
	assert.False(t, p.Summaries[2].Unread)
	assert.Equal(t, "read 0", p.Summaries[2].Text)
	assert.Equal(t, "read 2", p.Summaries[4].Text)
}

func TestFetch_Empty(t *testing.T) {
	s := newStore(t)
	p, err := Fetch(context.Background(), s, 99)
	require.NoError(t, err)
	assert.True(t, p.Empty())
	assert.Zero(t, p.NewCount)

	p, err = Fetch(context.Background(), nil, 99)
	require.NoError(t, err)
	assert.True(t, p.Empty())
}

func TestFetch_ProcessesRows(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.PutUser(ctx, host.User{ID: 7, FirstName: "Grace"}))
	_, err := s.Add(ctx, host.MessageRecord{
		FromUserID: 7, ToUserID: 2, SmallMessage: "<p>Could you look at <b>this</b> assignment?</p>",
		Format: host.FormatHTML, TimeCreated: now.Add(-time.Minute),
	})
	require.NoError(t, err)
	_, err = s.Add(ctx, host.MessageRecord{
		FromUserID: 7, ToUserID: 2, SmallMessage: "Your submission has been graded and commented",
		Notification: true, ContextURL: "/mod/assign/view.php?id=3", TimeCreated: now.Add(-2 * time.Minute),
	})
	require.NoError(t, err)
	_, err = s.Add(ctx, host.MessageRecord{
		FromUserID: 0, ToUserID: 2, SmallMessage: "System maintenance tonight",
		TimeCreated: now.Add(-3 * time.Minute),
	})
	require.NoError(t, err)
	_, err = s.Add(ctx, host.MessageRecord{
		FromUserID: 8, ToUserID: 2, SmallMessage: "short",
		TimeCreated: now.Add(-4 * time.Minute),
	})
	require.NoError(t, err)

	p, err := Fetch(ctx, s, 2)
	require.NoError(t, err)
	require.Len(t, p.Summaries, 4)

	msg := p.Summaries[0]
	assert.Equal(t, KindMessage, msg.Kind)
	assert.Equal(t, "Could you look ...", msg.Text)
	assert.Equal(t, "Grace", msg.From.FirstName)
	assert.Equal(t, "/message/index.php?user1=2&user2=7", msg.URL.Out())

	note := p.Summaries[1]
	assert.Equal(t, KindNotification, note.Kind)
	assert.Equal(t, "Your submission has been graded and commented", note.Text)
	assert.Equal(t, "/mod/assign/view.php?id=3", note.URL.Out())

	system := p.Summaries[2]
	assert.Equal(t, KindNotification, system.Kind)
	assert.Nil(t, system.URL)

	unknown := p.Summaries[3]
	assert.Equal(t, int64(8), unknown.From.ID)
	assert.Equal(t, "short", unknown.Text)
}

func TestSQLiteStore_UserLookup(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.PutUser(ctx, host.User{ID: 3, FirstName: "Ada", Email: "ada@example.org"}))

	u, ok, err := s.User(ctx, 3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "ada@example.org", u.Email)

	_, ok, err = s.User(ctx, 4)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStore_ReadRowsKeepTimeRead(t *testing.T) {
	s := newStore(t)
	seed(t, s, 2, 0, 1)
	rows, err := s.Read(context.Background(), 2, 5)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, now.Unix(), rows[0].TimeRead.Unix())

	unread, err := s.Unread(context.Background(), 2, 5)
	require.NoError(t, err)
	assert.Empty(t, unread)
}
