package messages

import (
	"strconv"
	"time"

	"git.home.luguber.info/inful/essential/internal/host"
)

type unit struct {
	seconds          int64
	singular, plural string
}

var units = []unit{
	{60 * 60 * 24 * 365, "year", "years"},
	{60 * 60 * 24 * 30, "month", "months"},
	{60 * 60 * 24, "day", "days"},
	{60 * 60, "hour", "hours"},
	{60, "minute", "minutes"},
}

// fewSeconds is the threshold below which the age is not counted.
const fewSeconds = 20

// RelativeTime describes how long before now then happened, e.g. "3 hours ago". The largest
// unit with a whole count of at least one wins; ages under 20 seconds (and future times) read
// "a few seconds ago".
func RelativeTime(now, then time.Time, strs host.Strings) string {
	diff := int64(now.Sub(then) / time.Second)
	for _, u := range units {
		n := diff / u.seconds
		if n < 1 {
			continue
		}
		name := u.plural
		if n == 1 {
			name = u.singular
		}
		return strs.Get("ago", "message", strconv.FormatInt(n, 10)+" "+strs.Get(name, ""))
	}
	if diff >= fewSeconds {
		return strs.Get("ago", "message", strconv.FormatInt(diff, 10)+" "+strs.Get("seconds", ""))
	}
	return strs.Get("ago", "message", strs.Get("few", "theme_essential")+" "+strs.Get("seconds", ""))
}
