package theme

import (
	"context"
	"strconv"
	"strings"
	"time"

	"git.home.luguber.info/inful/essential/internal/host"
	"git.home.luguber.info/inful/essential/internal/logfields"
	"git.home.luguber.info/inful/essential/internal/markup"
	"git.home.luguber.info/inful/essential/internal/menu"
	"git.home.luguber.info/inful/essential/internal/messages"
)

// MessagesMenu renders the message panel dropdown. It is "" for anonymous and guest users and
// when the site disables messaging.
func (r *Renderer) MessagesMenu(ctx context.Context) string {
	defer r.observe("messages_menu", time.Now())

	if !r.loggedIn() || r.guest() || !r.site.Messaging {
		return ""
	}

	panel, err := messages.Fetch(ctx, r.req.Messages, r.req.User.ID)
	if err != nil {
		r.logger.Warn("Failed to load messages", logfields.Hook("messages_menu"), logfields.Error(err))
		panel = messages.Panel{}
	}
	r.recorder.AddMessageSummaries(panel.NewCount, len(panel.Summaries)-panel.NewCount)

	m := menu.New()
	recent := host.NewURL("/message/index.php", host.P("viewing", "recentconversations"))
	if panel.Empty() {
		m.AddSorted(markup.Tag("span", markup.Icon("envelope-o")), recent,
			r.str("nomessagesfound", "theme_essential"), sortMessages)
		return r.render(m)
	}

	icon := markup.Icon("envelope-o")
	if panel.NewCount > 0 {
		icon = markup.Icon("envelope")
	}
	label := markup.Tag("span", strconv.Itoa(panel.NewCount)) + icon
	branch := m.AddSorted(label, recent, r.str("unreadmessages", "message", panel.NewCount), sortMessages)
	for _, s := range panel.Summaries {
		branch.Add(r.summaryMarkup(s), s.URL, s.Text)
	}
	return r.render(m)
}

func (r *Renderer) summaryMarkup(s messages.Summary) string {
	state, suffix := "read", "-o"
	if s.Unread {
		state, suffix = "unread", ""
	}
	when := markup.Escape(messages.RelativeTime(r.req.Now, s.Time, r.req.Strings))

	var b strings.Builder
	if s.Kind == messages.KindNotification {
		b.WriteString(markup.StartDiv("notification " + state))
		b.WriteString(markup.Tag("i", "", markup.Class("fa fa-info-circle icon")))
		b.WriteString(markup.Span(markup.Icon("comment"+suffix)+when, "msg-time"))
		b.WriteString(markup.Span(markup.CleanText(s.Text), "notification-text"))
		b.WriteString("</div>")
		return b.String()
	}

	b.WriteString(markup.StartDiv("message " + state))
	b.WriteString(markup.Span(r.req.Renderer.UserPicture(s.From, 60, false), "msg-picture"))
	b.WriteString(markup.StartSpan("msg-body"))
	b.WriteString(markup.Span(markup.Icon("comments"+suffix)+when, "msg-time"))
	b.WriteString(markup.Span(markup.Escape(s.From.FirstName), "msg-sender"))
	b.WriteString(markup.Span(markup.Escape(s.Text), "msg-text"))
	b.WriteString("</span></div>")
	return b.String()
}
